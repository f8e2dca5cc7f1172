package model

import (
	"errors"
	"sync"
	"time"
)

// PlayersPerTable is how many queued players make a table.
const PlayersPerTable = 4

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// MatchFoundEvent tells a queued player where they were seated.
type MatchFoundEvent struct {
	TableID string `json:"tableId"`
	Board   string `json:"board"`
	Color   Color  `json:"color"`
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		Player:   player,
		JoinedAt: time.Now(),
	})
	return nil
}

// RemovePlayer drops a player who gave up waiting.
func (q *Queue) RemovePlayer(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// GetNextTable takes the four players who have waited longest.
func (q *Queue) GetNextTable() ([]Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < PlayersPerTable {
		return nil, false
	}
	players := make([]Player, 0, PlayersPerTable)
	for _, qp := range q.players[:PlayersPerTable] {
		players = append(players, qp.Player)
	}
	q.players = q.players[PlayersPerTable:]
	return players, true
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
