package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
	"github.com/benbeisheim/bughouse-backend/internal/ws"
)

// Conn is the part of a websocket connection a table writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific table
type TableConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewTableConnections() *TableConnections {
	return &TableConnections{
		connections: make(map[string]Conn),
	}
}

// Table hosts one bughouse game: the shared GameState, its four seats
// and everyone watching. All game calls go through mu, and state is
// broadcast before mu is released. Lock order is mu, then connections.mu.
type Table struct {
	ID          string
	mu          sync.Mutex
	game        *model.GameState
	seats       map[model.Seat]string // seat -> playerID
	lastMove    *model.MoveResult
	version     uint64
	connections *TableConnections
	log         zerolog.Logger
}

// TableState is what clients see. Version grows with every accepted
// command, and states reach each connection in version order.
type TableState struct {
	ID       string               `json:"id"`
	Version  uint64               `json:"version"`
	Players  []model.ClientPlayer `json:"players"`
	Boards   []BoardState         `json:"boards"`
	LastMove *model.MoveResult    `json:"lastMove"`
}

type BoardState struct {
	Board            model.BoardID          `json:"board"`
	BFEN             string                 `json:"bfen"`
	ToMove           model.Color            `json:"toMove"`
	Outcome          model.Outcome          `json:"outcome"`
	PendingPromotion model.PieceType        `json:"pendingPromotion,omitempty"`
	Pools            map[model.Color]string `json:"pools"`
}

func NewTable(id string, logger zerolog.Logger) *Table {
	return &Table{
		ID:          id,
		game:        model.NewGameState(),
		seats:       make(map[model.Seat]string, len(model.Seats)),
		connections: NewTableConnections(),
		log:         logger.With().Str("table_id", id).Logger(),
	}
}

// AddPlayer seats playerID in the first free seat. A player who is
// already seated keeps their seat.
func (t *Table) AddPlayer(playerID string) (model.Seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seat, ok := t.seatOf(playerID); ok {
		return seat, nil
	}
	for _, seat := range model.Seats {
		if _, taken := t.seats[seat]; !taken {
			t.seats[seat] = playerID
			t.log.Info().Str("player_id", playerID).Stringer("seat", seat).Msg("player seated")
			return seat, nil
		}
	}
	return model.Seat{}, ErrTableFull
}

// AddPlayerAt seats playerID in a chosen seat.
func (t *Table) AddPlayerAt(playerID string, seat model.Seat) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !seat.IsValid() {
		return fmt.Errorf("%w: bad seat %s", model.ErrNotLegal, seat)
	}
	if current, ok := t.seatOf(playerID); ok {
		if current == seat {
			return nil
		}
		return fmt.Errorf("%w: already seated at %s", ErrSeatTaken, current)
	}
	if _, taken := t.seats[seat]; taken {
		return fmt.Errorf("%w: %s", ErrSeatTaken, seat)
	}
	t.seats[seat] = playerID
	t.log.Info().Str("player_id", playerID).Stringer("seat", seat).Msg("player seated")
	return nil
}

func (t *Table) IsPlayerSeated(playerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.seatOf(playerID)
	return ok
}

func (t *Table) SeatOf(playerID string) (model.Seat, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.seatOf(playerID)
}

func (t *Table) seatOf(playerID string) (model.Seat, bool) {
	for seat, id := range t.seats {
		if id == playerID {
			return seat, true
		}
	}
	return model.Seat{}, false
}

// canSpectate reports whether the table is still gathering players.
func (t *Table) canSpectate() bool {
	return len(t.seats) < len(model.Seats)
}

// actingSeat is the seat playerID acts for, which must be on turn.
func (t *Table) actingSeat(playerID string) (model.Seat, error) {
	seat, ok := t.seatOf(playerID)
	if !ok {
		return model.Seat{}, ErrNotSeated
	}
	if !t.game.Outcome(seat.Board).IsOver() && t.game.ActiveColor(seat.Board) != seat.Color {
		return model.Seat{}, fmt.Errorf("%w: %s to move on board %s", model.ErrNotTurn, t.game.ActiveColor(seat.Board), seat.Board)
	}
	return seat, nil
}

func (t *Table) MakeMove(playerID string, from, to model.Position) (*model.MoveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID)
	if err != nil {
		return nil, err
	}
	res, err := t.game.Move(seat.Board, from, to)
	if err != nil {
		return nil, err
	}
	t.lastMove = res
	t.version++

	t.log.Info().
		Str("player_id", playerID).
		Stringer("board", seat.Board).
		Str("move", fmt.Sprintf("%s-%s", from, to)).
		Str("outcome", string(res.Outcome)).
		Msg("move applied")
	t.broadcastState(t.stateLocked())
	return res, nil
}

func (t *Table) Deploy(playerID string, kind model.PieceType, to model.Position) (*model.MoveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, ok := t.seatOf(playerID)
	if !ok {
		return nil, ErrNotSeated
	}
	res, err := t.game.DeployPiece(seat.Board, seat.Color, kind, to)
	if err != nil {
		return nil, err
	}
	t.lastMove = res
	t.version++

	t.log.Info().
		Str("player_id", playerID).
		Stringer("board", seat.Board).
		Str("piece", string(kind)).
		Stringer("square", to).
		Msg("piece deployed")
	t.broadcastState(t.stateLocked())
	return res, nil
}

// SetPromotion picks the piece the player's next promoting pawn becomes.
func (t *Table) SetPromotion(playerID string, kind model.PieceType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, err := t.actingSeat(playerID)
	if err != nil {
		return err
	}
	if err := t.game.SetPendingPromotion(seat.Board, kind); err != nil {
		return err
	}
	t.version++
	t.broadcastState(t.stateLocked())
	return nil
}

func (t *Table) Resign(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat, ok := t.seatOf(playerID)
	if !ok {
		return ErrNotSeated
	}
	if err := t.game.Resign(seat.Board, seat.Color); err != nil {
		return err
	}
	t.version++

	t.log.Info().Str("player_id", playerID).Stringer("seat", seat).Msg("player resigned")
	t.broadcastState(t.stateLocked())
	return nil
}

func (t *Table) LegalMoves(b model.BoardID, from model.Position) []model.Position {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.LegalMoves(b, from.Rank, from.File)
}

// Snapshot returns a copy of the game for read-only use outside the lock.
func (t *Table) Snapshot() *model.GameState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.game.Clone()
}

func (t *Table) State() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stateLocked()
}

func (t *Table) stateLocked() TableState {
	state := TableState{
		ID:       t.ID,
		Version:  t.version,
		Players:  make([]model.ClientPlayer, 0, len(t.seats)),
		Boards:   make([]BoardState, 0, len(model.Boards)),
		LastMove: t.lastMove,
	}
	for _, seat := range model.Seats {
		if id, ok := t.seats[seat]; ok {
			state.Players = append(state.Players, model.Player{ID: id, Seat: seat}.Client())
		}
	}
	for _, b := range model.Boards {
		pending, _ := t.game.PendingPromotion(b)
		state.Boards = append(state.Boards, BoardState{
			Board:            b,
			BFEN:             notation.EncodeBoard(t.game, b),
			ToMove:           t.game.ActiveColor(b),
			Outcome:          t.game.Outcome(b),
			PendingPromotion: pending,
			Pools: map[model.Color]string{
				model.White: notation.EncodePool(t.game.Pool(b, model.White), model.White),
				model.Black: notation.EncodePool(t.game.Pool(b, model.Black), model.Black),
			},
		})
	}
	return state
}

func (t *Table) RegisterConnection(playerID string, conn Conn) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isPlayerSeatedLocked(playerID) && !t.canSpectate() {
		return ErrNotAuthorized
	}

	t.connections.mu.Lock()
	if _, exists := t.connections.connections[playerID]; exists {
		t.connections.mu.Unlock()
		// keep the healthy connection, turn the newcomer away
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		_ = conn.Close()
		t.log.Debug().Str("player_id", playerID).Msg("duplicate connection rejected")
		return nil
	}
	t.connections.connections[playerID] = conn
	t.connections.mu.Unlock()
	t.log.Info().Str("player_id", playerID).Msg("connection registered")

	t.broadcastState(t.stateLocked())
	return nil
}

func (t *Table) isPlayerSeatedLocked(playerID string) bool {
	_, ok := t.seatOf(playerID)
	return ok
}

// UnregisterConnection forgets conn if it is still the player's current one.
func (t *Table) UnregisterConnection(playerID string, conn Conn) {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	if current, exists := t.connections.connections[playerID]; exists && current == conn {
		delete(t.connections.connections, playerID)
		t.log.Info().Str("player_id", playerID).Msg("connection unregistered")
	}
}

// SendError reports a failed command to one player.
func (t *Table) SendError(playerID string, cause error) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		t.log.Error().Err(err).Msg("failed to encode error message")
		return
	}
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	if conn, ok := t.connections.connections[playerID]; ok {
		if err := conn.WriteJSON(msg); err != nil {
			t.log.Warn().Err(err).Str("player_id", playerID).Msg("failed to send error")
		}
	}
}

// broadcastState writes state to every connection of the table, dropping
// connections that fail. Callers hold t.mu.
func (t *Table) broadcastState(state TableState) {
	payload, err := json.Marshal(state)
	if err != nil {
		t.log.Error().Err(err).Msg("failed to marshal table state")
		return
	}
	msg := ws.Message{Type: ws.MessageTypeTableState, Payload: payload}

	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()

	for playerID, conn := range t.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			t.log.Warn().Err(err).Str("player_id", playerID).Msg("failed to send state, dropping connection")
			delete(t.connections.connections, playerID)
		}
	}
}
