package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/service"
	"github.com/benbeisheim/bughouse-backend/internal/ws"
)

type WebSocketController struct {
	tableService *service.TableService
	log          zerolog.Logger
}

func NewWebSocketController(tableService *service.TableService, logger zerolog.Logger) *WebSocketController {
	return &WebSocketController{
		tableService: tableService,
		log:          logger.With().Str("component", "websocket").Logger(),
	}
}

// HandleConnection is called when a new WebSocket connection to a table is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	tableID := c.Params("tableId")
	playerID, _ := c.Locals("playerID").(string)
	log := wsc.log.With().Str("table_id", tableID).Str("player_id", playerID).Logger()

	if err := wsc.tableService.RegisterConnection(tableID, playerID, c); err != nil {
		log.Warn().Err(err).Msg("failed to register connection")
		_ = c.WriteJSON(errorMessage(err))
		c.Close()
		return
	}
	defer wsc.tableService.UnregisterConnection(tableID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("read error, closing")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Msg("parse error")
			wsc.tableService.SendError(tableID, playerID, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(tableID, playerID, msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("command rejected")
			wsc.tableService.SendError(tableID, playerID, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(tableID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.tableService.HandleMove(tableID, playerID, move)

	case ws.MessageTypeDeploy:
		var deploy ws.DeployPayload
		if err := json.Unmarshal(msg.Payload, &deploy); err != nil {
			return err
		}
		return wsc.tableService.HandleDeploy(tableID, playerID, deploy)

	case ws.MessageTypePromotion:
		var promotion ws.PromotionPayload
		if err := json.Unmarshal(msg.Payload, &promotion); err != nil {
			return err
		}
		return wsc.tableService.HandlePromotion(tableID, playerID, promotion)

	case ws.MessageTypeResign:
		return wsc.tableService.HandleResign(tableID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and holds the socket open until a
// table is found, then sends the match event and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	log := wsc.log.With().Str("player_id", playerID).Logger()

	ch := make(chan string, 1)
	if err := wsc.tableService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		log.Warn().Err(err).Msg("failed to register matchmaking channel")
		c.Close()
		return
	}
	if err := wsc.tableService.JoinMatchmaking(playerID); err != nil {
		log.Debug().Err(err).Msg("join matchmaking")
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			log.Debug().Msg("matchmaking channel replaced")
			break
		}
		if err := c.WriteMessage(websocket.TextMessage, []byte(event)); err != nil {
			log.Warn().Err(err).Msg("failed to send match event")
		}
	case <-closed:
		wsc.tableService.UnregisterMatchmakingChannel(playerID, ch)
		wsc.tableService.LeaveMatchmaking(playerID)
		log.Info().Msg("left matchmaking")
	}
	c.Close()
}

func errorMessage(err error) ws.Message {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	return msg
}
