package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

type TableManager struct {
	tables           map[string]*Table
	queue            *model.Queue
	matchingChannels map[string]chan string
	matches          map[string]model.MatchFoundEvent
	mu               sync.RWMutex
	log              zerolog.Logger
}

func NewTableManager(logger zerolog.Logger) *TableManager {
	return &TableManager{
		tables:           make(map[string]*Table),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		matches:          make(map[string]model.MatchFoundEvent),
		log:              logger.With().Str("component", "table_manager").Logger(),
	}
}

// Start runs matchmaking every interval until ctx is done.
func (tm *TableManager) Start(ctx context.Context, interval time.Duration) {
	go tm.processMatchmaking(ctx, interval)
}

func (tm *TableManager) processMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				if _, ok := tm.matchPlayers(); !ok {
					break
				}
			}
		}
	}
}

// matchPlayers seats the four longest waiting players at a new table and
// tells each of them where they sit.
func (tm *TableManager) matchPlayers() (string, bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	players, ok := tm.queue.GetNextTable()
	if !ok {
		return "", false
	}

	tableID := uuid.New().String()
	table := NewTable(tableID, tm.log)
	for _, p := range players {
		seat, err := table.AddPlayer(p.ID)
		if err != nil {
			tm.log.Error().Err(err).Str("player_id", p.ID).Msg("error adding player to table")
			continue
		}
		event := model.MatchFoundEvent{TableID: tableID, Board: seat.Board.String(), Color: seat.Color}
		tm.matches[p.ID] = event
		tm.notifyMatch(p.ID, event)
	}
	tm.tables[tableID] = table
	tm.log.Info().Str("table_id", tableID).Msg("match found")
	return tableID, true
}

// notifyMatch sends the event to a waiting channel and closes it.
func (tm *TableManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := tm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		tm.log.Error().Err(err).Msg("failed to marshal match event")
		return
	}
	select {
	case ch <- string(payload):
		tm.log.Debug().Str("player_id", playerID).Msg("sent match found event")
	default:
		tm.log.Warn().Str("player_id", playerID).Msg("failed to send match found event")
	}
	delete(tm.matchingChannels, playerID)
	close(ch)
}

func (tm *TableManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if existing, exists := tm.matchingChannels[playerID]; exists {
		delete(tm.matchingChannels, playerID)
		close(existing)
	}
	tm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets ch if it is still registered. The
// channel is left open; its creator owns it.
func (tm *TableManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if current, ok := tm.matchingChannels[playerID]; ok && current == ch {
		delete(tm.matchingChannels, playerID)
	}
}

func (tm *TableManager) CreateTable(tableID string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, exists := tm.tables[tableID]; exists {
		return ErrTableExists
	}
	tm.tables[tableID] = NewTable(tableID, tm.log)
	tm.log.Info().Str("table_id", tableID).Msg("table created")
	return nil
}

func (tm *TableManager) GetTable(tableID string) (*Table, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	table, exists := tm.tables[tableID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return table, nil
}

func (tm *TableManager) JoinMatchmaking(playerID string) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	delete(tm.matches, playerID)
	if err := tm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	tm.log.Info().Str("player_id", playerID).Int("queued", tm.queue.Size()).Msg("player queued")
	return nil
}

func (tm *TableManager) LeaveMatchmaking(playerID string) bool {
	return tm.queue.RemovePlayer(playerID)
}

// MatchFor reports the latest table a queued player was seated at.
func (tm *TableManager) MatchFor(playerID string) (model.MatchFoundEvent, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	event, ok := tm.matches[playerID]
	return event, ok
}
