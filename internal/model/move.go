package model

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// MoveResult describes what an accepted move did, for presentation layers.
type MoveResult struct {
	Board        BoardID   `json:"board"`
	Piece        Piece     `json:"piece"`
	From         Position  `json:"from"`
	To           Position  `json:"to"`
	Captured     *Piece    `json:"captured,omitempty"`
	CastleRook   *RookMove `json:"castleRook,omitempty"`
	EnPassant    bool      `json:"enPassant,omitempty"`
	Promotion    PieceType `json:"promotion,omitempty"`
	CreditedTo   *PoolSlot `json:"creditedTo,omitempty"`
	Outcome      Outcome   `json:"outcome"`
	KingCaptured bool      `json:"kingCaptured,omitempty"`
	Deployed     *PoolSlot `json:"deployed,omitempty"`
}

type RookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// PoolSlot names one of the four pools.
type PoolSlot struct {
	Board BoardID   `json:"board"`
	Color Color     `json:"color"`
	Type  PieceType `json:"type"`
}

// MakeMove validates and applies an ordinary move on board b.
func (g *GameState) MakeMove(b BoardID, from, to Position) error {
	_, err := g.Move(b, from, to)
	return err
}

// Move is MakeMove returning a description of the applied move.
func (g *GameState) Move(b BoardID, from, to Position) (*MoveResult, error) {
	st := g.state(b)
	if st == nil {
		return nil, fmt.Errorf("%w: unknown board %d", ErrNotLegal, b)
	}
	if st.outcome.IsOver() {
		return nil, fmt.Errorf("%w: board %s ended with %s", ErrAlreadyOver, b, st.outcome)
	}
	if !from.InBounds() || !to.InBounds() {
		return nil, fmt.Errorf("%w: %s-%s out of bounds", ErrNotLegal, from, to)
	}
	piece := st.board.At(from)
	if piece.IsEmpty() {
		return nil, fmt.Errorf("%w: no piece at %s", ErrNotLegal, from)
	}
	if piece.Color != st.active {
		return nil, fmt.Errorf("%w: %s to move on board %s", ErrNotTurn, st.active, b)
	}
	if !st.isLegal(from, to) {
		return nil, fmt.Errorf("%w: %s %s-%s", ErrNotLegal, piece.Type, from, to)
	}
	promoting := piece.Type == Pawn && to.Rank == homeRank(piece.Color.Opposite())
	if promoting && !st.pendingPromotion.IsPromotion() {
		return nil, fmt.Errorf("%w: no promotion piece chosen for %s", ErrPromotionProblem, to)
	}

	res := &MoveResult{Board: b, Piece: piece, From: from, To: to}

	captured := st.board.At(to)
	capturePos := to
	if piece.Type == Pawn && captured.IsEmpty() && from.File != to.File {
		capturePos = Position{Rank: from.Rank, File: to.File}
		captured = st.board.At(capturePos)
		res.EnPassant = true
	}

	st.board.Set(from, NoPiece)
	st.board.Set(capturePos, NoPiece)
	placed := piece
	if promoting {
		placed = Piece{Type: st.pendingPromotion, Color: piece.Color, Promoted: true}
		res.Promotion = st.pendingPromotion
		st.pendingPromotion = ""
	}
	st.board.Set(to, placed)

	switch piece.Type {
	case King:
		st.board.Moved.setKingMoved(piece.Color)
		res.CastleRook = st.castleRook(from, to, piece.Color)
	case Rook:
		if flag := st.board.Moved.rookFlag(from, piece.Color); flag != nil {
			*flag = true
		}
	}

	if !captured.IsEmpty() {
		c := captured
		res.Captured = &c
		if captured.Type == Rook {
			if flag := st.board.Moved.rookFlag(capturePos, captured.Color); flag != nil {
				*flag = true
			}
		}
		if captured.Type == King {
			st.outcome = winFor(piece.Color, b)
			res.KingCaptured = true
		} else {
			slot := g.credit(b, piece.Color, captured)
			res.CreditedTo = &slot
		}
	}

	if piece.Type == Pawn && abs(to.Rank-from.Rank) == 2 {
		p := to
		st.lastDouble = &p
	} else {
		st.lastDouble = nil
	}
	st.endPly(piece.Type == Pawn || !captured.IsEmpty())

	if !st.outcome.IsOver() {
		g.recheckPatt(b)
	}
	res.Outcome = st.outcome
	return res, nil
}

// credit hands a captured piece to the partner board's pool of the
// capturing colour, which the capturer's partner plays there.
func (g *GameState) credit(b BoardID, capturer Color, captured Piece) PoolSlot {
	slot := PoolSlot{Board: b.Partner(), Color: capturer, Type: captured.creditType()}
	g.pools[slot.Board][slot.Color.index()].add(slot.Type, 1)
	return slot
}

// castleRook moves the rook when a king move follows the castling pattern.
func (st *boardState) castleRook(from, to Position, c Color) *RookMove {
	rank := homeRank(c)
	if from != (Position{Rank: rank, File: kingFile}) || to.Rank != rank || abs(to.File-from.File) != 2 {
		return nil
	}
	mv := &RookMove{
		From: Position{Rank: rank, File: kingsideRookFile},
		To:   Position{Rank: rank, File: kingsideCastle - 1},
	}
	if to.File == queensideCastle {
		mv.From.File = queensideRookFile
		mv.To.File = queensideCastle + 1
	}
	rook := st.board.At(mv.From)
	st.board.Set(mv.From, NoPiece)
	st.board.Set(mv.To, rook)
	if flag := st.board.Moved.rookFlag(mv.From, c); flag != nil {
		*flag = true
	}
	return mv
}

// endPly advances clocks and hands the turn over.
func (st *boardState) endPly(resetHalfMove bool) {
	if resetHalfMove {
		st.halfMove = 0
	} else {
		st.halfMove++
	}
	if st.active == Black {
		st.fullMove++
	}
	st.active = st.active.Opposite()
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
