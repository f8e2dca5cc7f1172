package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
	"github.com/benbeisheim/bughouse-backend/internal/ws"
)

type TableService struct {
	tableManager *TableManager
}

func NewTableService(tableManager *TableManager) *TableService {
	return &TableService{
		tableManager: tableManager,
	}
}

func (ts *TableService) CreateTable() (string, error) {
	tableID := uuid.New().String()

	if err := ts.tableManager.CreateTable(tableID); err != nil {
		return "", fmt.Errorf("failed to create table: %w", err)
	}
	return tableID, nil
}

// JoinTable seats the player, in seat if given, else in the first free one.
func (ts *TableService) JoinTable(tableID, playerID string, seat *model.Seat) (model.Seat, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return model.Seat{}, err
	}
	if seat == nil {
		return table.AddPlayer(playerID)
	}
	if err := table.AddPlayerAt(playerID, *seat); err != nil {
		return model.Seat{}, err
	}
	return *seat, nil
}

func (ts *TableService) JoinMatchmaking(playerID string) error {
	return ts.tableManager.JoinMatchmaking(playerID)
}

func (ts *TableService) LeaveMatchmaking(playerID string) bool {
	return ts.tableManager.LeaveMatchmaking(playerID)
}

func (ts *TableService) MatchFor(playerID string) (model.MatchFoundEvent, bool) {
	return ts.tableManager.MatchFor(playerID)
}

func (ts *TableService) GetTableState(tableID string) (TableState, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return TableState{}, err
	}
	return table.State(), nil
}

// Snapshot copies the table's game for rendering.
func (ts *TableService) Snapshot(tableID string) (*model.GameState, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	return table.Snapshot(), nil
}

func (ts *TableService) LegalMoves(tableID string, b model.BoardID, square string) ([]model.Position, error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	from, err := notation.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return table.LegalMoves(b, from), nil
}

func (ts *TableService) HandleMove(tableID, playerID string, move ws.MovePayload) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	from, err := notation.ParseSquare(move.From)
	if err != nil {
		return err
	}
	to, err := notation.ParseSquare(move.To)
	if err != nil {
		return err
	}
	_, err = table.MakeMove(playerID, from, to)
	return err
}

func (ts *TableService) HandleDeploy(tableID, playerID string, deploy ws.DeployPayload) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	kind, err := notation.ParsePieceType(deploy.Piece)
	if err != nil {
		return err
	}
	to, err := notation.ParseSquare(deploy.Square)
	if err != nil {
		return err
	}
	_, err = table.Deploy(playerID, kind, to)
	return err
}

func (ts *TableService) HandlePromotion(tableID, playerID string, promotion ws.PromotionPayload) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	kind, err := notation.ParsePromotion(promotion.Piece)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrPromotionProblem, err)
	}
	return table.SetPromotion(playerID, kind)
}

func (ts *TableService) HandleResign(tableID, playerID string) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	return table.Resign(playerID)
}

func (ts *TableService) RegisterConnection(tableID, playerID string, conn Conn) error {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return err
	}
	return table.RegisterConnection(playerID, conn)
}

func (ts *TableService) UnregisterConnection(tableID, playerID string, conn Conn) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return
	}
	table.UnregisterConnection(playerID, conn)
}

func (ts *TableService) SendError(tableID, playerID string, cause error) {
	table, err := ts.tableManager.GetTable(tableID)
	if err != nil {
		return
	}
	table.SendError(playerID, cause)
}

func (ts *TableService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return ts.tableManager.RegisterMatchmakingChannel(playerID, ch)
}

func (ts *TableService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	ts.tableManager.UnregisterMatchmakingChannel(playerID, ch)
}
