package controller

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
	"github.com/benbeisheim/bughouse-backend/internal/render"
	"github.com/benbeisheim/bughouse-backend/internal/service"
)

type TableController struct {
	tableService *service.TableService
	log          zerolog.Logger
}

func NewTableController(tableService *service.TableService, logger zerolog.Logger) *TableController {
	return &TableController{
		tableService: tableService,
		log:          logger.With().Str("component", "table_controller").Logger(),
	}
}

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrTableNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrTableFull),
		errors.Is(err, service.ErrSeatTaken),
		errors.Is(err, service.ErrTableExists),
		errors.Is(err, service.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotSeated),
		errors.Is(err, service.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, notation.ErrInvalidCommand),
		errors.Is(err, model.ErrNotLegal):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func (tc *TableController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		tc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (tc *TableController) CreateTable(c *fiber.Ctx) error {
	tableID, err := tc.tableService.CreateTable()
	if err != nil {
		return tc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Table created",
		"table_id": tableID,
	})
}

// JoinTable seats the caller. ?board=A&color=white asks for a seat.
func (tc *TableController) JoinTable(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	playerID := c.Locals("playerID").(string)

	var want *model.Seat
	if board, color := c.Query("board"), c.Query("color"); board != "" || color != "" {
		seat, err := model.ParseSeat(board, color)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		want = &seat
	}

	seat, err := tc.tableService.JoinTable(tableID, playerID, want)
	if err != nil {
		return tc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Table joined",
		"board":   seat.Board.String(),
		"color":   seat.Color,
		"partner": seat.Partner().String(),
	})
}

func (tc *TableController) GetTableState(c *fiber.Ctx) error {
	state, err := tc.tableService.GetTableState(c.Params("tableId"))
	if err != nil {
		return tc.fail(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := tc.tableService.JoinMatchmaking(playerID); err != nil {
		return tc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (tc *TableController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if !tc.tableService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}

// MatchmakingStatus lets clients without a websocket poll for their table.
func (tc *TableController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	event, ok := tc.tableService.MatchFor(playerID)
	if !ok {
		return c.JSON(fiber.Map{
			"status": "waiting",
		})
	}
	return c.JSON(fiber.Map{
		"status": "matched",
		"match":  event,
	})
}

// BoardSVG renders one board. ?square=e2 highlights that piece's moves.
func (tc *TableController) BoardSVG(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	b, err := model.ParseBoardID(c.Params("board"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	game, err := tc.tableService.Snapshot(tableID)
	if err != nil {
		return tc.fail(c, err)
	}

	var marks []model.Position
	if square := c.Query("square"); square != "" {
		from, err := notation.ParseSquare(square)
		if err != nil {
			return tc.fail(c, err)
		}
		marks = game.LegalMoves(b, from.Rank, from.File)
	}

	var buf bytes.Buffer
	render.SVG(&buf, game, b, marks)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (tc *TableController) LegalMoves(c *fiber.Ctx) error {
	b, err := model.ParseBoardID(c.Params("board"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	square := c.Query("square")
	moves, err := tc.tableService.LegalMoves(c.Params("tableId"), b, square)
	if err != nil {
		return tc.fail(c, err)
	}

	names := make([]string, 0, len(moves))
	for _, p := range moves {
		names = append(names, notation.SquareName(p))
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  names,
	})
}
