package model

import "fmt"

// boardState is everything a single board carries besides its grid.
type boardState struct {
	board            Board
	active           Color
	lastDouble       *Position
	halfMove         int
	fullMove         int
	pendingPromotion PieceType
	outcome          Outcome
}

func newBoardState() boardState {
	return boardState{
		board:    *NewBoard(),
		active:   White,
		fullMove: 1,
		outcome:  InProgress,
	}
}

// GameState is the bughouse aggregate: two boards and four pools.
// It is not safe for concurrent use; hosts serialize every mutating call
// against one GameState (service.Table does).
type GameState struct {
	boards [2]boardState
	pools  [2][2]Pool // [board][color]
}

func NewGameState() *GameState {
	g := &GameState{}
	g.Refresh()
	return g
}

// Refresh resets the whole aggregate to the starting position.
func (g *GameState) Refresh() {
	for _, b := range Boards {
		g.boards[b] = newBoardState()
	}
	g.pools = [2][2]Pool{}
}

func (g *GameState) state(b BoardID) *boardState {
	if !b.IsValid() {
		return nil
	}
	return &g.boards[b]
}

// Board exposes the grid of one board; nil for an unknown id.
func (g *GameState) Board(b BoardID) *Board {
	st := g.state(b)
	if st == nil {
		return nil
	}
	return &st.board
}

func (g *GameState) PieceAt(b BoardID, rank, file int) Piece {
	st := g.state(b)
	if st == nil {
		return NoPiece
	}
	return st.board.At(Position{Rank: rank, File: file})
}

func (g *GameState) ActiveColor(b BoardID) Color {
	st := g.state(b)
	if st == nil {
		return ""
	}
	return st.active
}

func (g *GameState) CastlingRights(b BoardID) CastlingRights {
	st := g.state(b)
	if st == nil {
		return CastlingRights{}
	}
	return st.board.Moved.Rights()
}

func (g *GameState) LastDoubleMovedPawn(b BoardID) (Position, bool) {
	st := g.state(b)
	if st == nil || st.lastDouble == nil {
		return Position{}, false
	}
	return *st.lastDouble, true
}

func (g *GameState) HalfMoveClock(b BoardID) int {
	st := g.state(b)
	if st == nil {
		return 0
	}
	return st.halfMove
}

func (g *GameState) FullMoveNumber(b BoardID) int {
	st := g.state(b)
	if st == nil {
		return 0
	}
	return st.fullMove
}

func (g *GameState) Outcome(b BoardID) Outcome {
	st := g.state(b)
	if st == nil {
		return ""
	}
	return st.outcome
}

func (g *GameState) PendingPromotion(b BoardID) (PieceType, bool) {
	st := g.state(b)
	if st == nil || st.pendingPromotion == "" {
		return "", false
	}
	return st.pendingPromotion, true
}

func (g *GameState) Pool(b BoardID, c Color) Pool {
	if !b.IsValid() || !c.IsValid() {
		return Pool{}
	}
	return g.pools[b][c.index()]
}

func (g *GameState) PoolCount(b BoardID, c Color, t PieceType) int {
	return g.Pool(b, c).Count(t)
}

// SetPendingPromotion records the kind the next promoting pawn on b becomes.
func (g *GameState) SetPendingPromotion(b BoardID, t PieceType) error {
	st := g.state(b)
	if st == nil {
		return fmt.Errorf("%w: unknown board %d", ErrNotLegal, b)
	}
	if !t.IsPromotion() {
		return fmt.Errorf("%w: cannot promote to %q", ErrPromotionProblem, t)
	}
	st.pendingPromotion = t
	return nil
}

func (g *GameState) ClearPendingPromotion(b BoardID) {
	if st := g.state(b); st != nil {
		st.pendingPromotion = ""
	}
}

// Setup aids used by the notation codec and by tests.

func (g *GameState) Clear(b BoardID) {
	if st := g.state(b); st != nil {
		st.board.Clear()
		st.lastDouble = nil
	}
}

func (g *GameState) SetPiece(b BoardID, rank, file int, p Piece) {
	if st := g.state(b); st != nil {
		st.board.Set(Position{Rank: rank, File: file}, p)
	}
}

func (g *GameState) SetActiveColor(b BoardID, c Color) {
	if st := g.state(b); st != nil && c.IsValid() {
		st.active = c
	}
}

func (g *GameState) SetLastDoubleMovedPawn(b BoardID, pos *Position) {
	st := g.state(b)
	if st == nil {
		return
	}
	if pos == nil || !pos.InBounds() {
		st.lastDouble = nil
		return
	}
	p := *pos
	st.lastDouble = &p
}

func (g *GameState) SetClocks(b BoardID, halfMove, fullMove int) {
	if st := g.state(b); st != nil {
		st.halfMove = halfMove
		st.fullMove = fullMove
	}
}

func (g *GameState) SetCastlingRights(b BoardID, r CastlingRights) {
	if st := g.state(b); st != nil {
		st.board.Moved = FlagsFromRights(r)
	}
}

func (g *GameState) SetPool(b BoardID, c Color, p Pool) {
	if b.IsValid() && c.IsValid() {
		g.pools[b][c.index()] = p
	}
}

func (g *GameState) AddToPool(b BoardID, c Color, t PieceType, n int) {
	if b.IsValid() && c.IsValid() {
		g.pools[b][c.index()].add(t, n)
	}
}

func (g *GameState) SetOutcome(b BoardID, o Outcome) {
	if st := g.state(b); st != nil {
		st.outcome = o
	}
}

// Clone returns an independent copy of the aggregate.
func (g *GameState) Clone() *GameState {
	c := *g
	for i := range c.boards {
		if ld := g.boards[i].lastDouble; ld != nil {
			p := *ld
			c.boards[i].lastDouble = &p
		}
	}
	return &c
}
