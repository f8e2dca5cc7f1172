package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a table handles
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeDeploy     MessageType = "deploy"
	MessageTypePromotion  MessageType = "promotion"
	MessageTypeResign     MessageType = "resign"
	MessageTypeTableState MessageType = "tableState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload moves a piece on the sender's board, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DeployPayload drops a pooled piece: {"piece":"knight","square":"f3"}.
// Piece may also be a single letter.
type DeployPayload struct {
	Piece  string `json:"piece"`
	Square string `json:"square"`
}

type PromotionPayload struct {
	Piece string `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in an envelope of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
