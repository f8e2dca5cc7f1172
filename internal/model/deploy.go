package model

import "fmt"

// Deploy places a piece of kind from c's pool on board b onto (rank, file).
func (g *GameState) Deploy(b BoardID, c Color, kind PieceType, rank, file int) error {
	_, err := g.DeployPiece(b, c, kind, Position{Rank: rank, File: file})
	return err
}

// DeployPiece is Deploy returning a description of the placement.
func (g *GameState) DeployPiece(b BoardID, c Color, kind PieceType, to Position) (*MoveResult, error) {
	st := g.state(b)
	if st == nil || !c.IsValid() {
		return nil, fmt.Errorf("%w: deploy on board %d by %q", ErrNotLegal, b, c)
	}
	if st.outcome.IsOver() {
		return nil, fmt.Errorf("%w: board %s ended with %s", ErrAlreadyOver, b, st.outcome)
	}
	if !to.InBounds() || !kind.IsDeployable() {
		return nil, fmt.Errorf("%w: cannot deploy %s at %s", ErrNotLegal, kind, to)
	}
	if !st.board.IsEmpty(to) {
		return nil, fmt.Errorf("%w: %s is occupied", ErrNotEmpty, to)
	}
	pool := &g.pools[b][c.index()]
	if pool.Count(kind) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s on board %s", ErrNoPieceInPool, c, kind, b)
	}
	if kind == Pawn && to.Rank == homeRank(c) {
		return nil, fmt.Errorf("%w: pawn on own back rank %s", ErrNotLegal, to)
	}
	if c != st.active {
		return nil, fmt.Errorf("%w: %s to move on board %s", ErrNotTurn, st.active, b)
	}

	pool.take(kind)
	piece := NewPiece(kind, c)
	st.board.Set(to, piece)

	if kind == Pawn {
		p := to
		st.lastDouble = &p
	} else {
		st.lastDouble = nil
	}
	if kind == Rook {
		if flag := st.board.Moved.rookFlag(to, c); flag != nil {
			*flag = false
		}
	}
	st.endPly(kind == Pawn)
	g.recheckPatt(b)

	return &MoveResult{
		Board:    b,
		Piece:    piece,
		To:       to,
		Deployed: &PoolSlot{Board: b, Color: c, Type: kind},
		Outcome:  st.outcome,
	}, nil
}
