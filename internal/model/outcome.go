package model

import "fmt"

type Outcome string

const (
	InProgress Outcome = "in_progress"
	WhiteWinsA Outcome = "white_wins_a"
	BlackWinsA Outcome = "black_wins_a"
	WhiteWinsB Outcome = "white_wins_b"
	BlackWinsB Outcome = "black_wins_b"
	Stalemate  Outcome = "stalemate"
)

func (o Outcome) IsOver() bool {
	return o != InProgress
}

// Winner reports the winning colour, if the outcome has one.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case WhiteWinsA, WhiteWinsB:
		return White, true
	case BlackWinsA, BlackWinsB:
		return Black, true
	}
	return "", false
}

func winFor(c Color, b BoardID) Outcome {
	switch {
	case c == White && b == BoardA:
		return WhiteWinsA
	case c == Black && b == BoardA:
		return BlackWinsA
	case c == White && b == BoardB:
		return WhiteWinsB
	default:
		return BlackWinsB
	}
}

// Resign ends board b in favour of the opponent of c.
func (g *GameState) Resign(b BoardID, c Color) error {
	st := g.state(b)
	if st == nil || !c.IsValid() {
		return fmt.Errorf("%w: resign on board %d by %q", ErrNotLegal, b, c)
	}
	if st.outcome.IsOver() {
		return fmt.Errorf("%w: board %s ended with %s", ErrAlreadyOver, b, st.outcome)
	}
	st.outcome = winFor(c.Opposite(), b)
	return nil
}

// CheckPatt reports whether c is stalled on board b: no piece other than
// the king can move, the king stands unattacked and the pool is empty.
// A positive result ends the board as a stalemate.
func (g *GameState) CheckPatt(b BoardID, c Color) bool {
	st := g.state(b)
	if st == nil || !c.IsValid() {
		return false
	}
	if !g.isPatt(b, c) {
		return false
	}
	if !st.outcome.IsOver() {
		st.outcome = Stalemate
	}
	return true
}

func (g *GameState) isPatt(b BoardID, c Color) bool {
	st := &g.boards[b]
	if !g.pools[b][c.index()].IsEmpty() {
		return false
	}
	king, ok := st.board.findKing(c)
	if !ok || st.board.isAttacked(c, king) {
		return false
	}
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			pos := Position{Rank: r, File: f}
			piece := st.board.At(pos)
			if piece.IsEmpty() || piece.Color != c || piece.Type == King {
				continue
			}
			if len(st.legalMoves(pos)) > 0 {
				return false
			}
		}
	}
	return true
}

// recheckPatt runs the stalemate test for both colours after a ply.
func (g *GameState) recheckPatt(b BoardID) {
	for _, c := range []Color{White, Black} {
		if g.CheckPatt(b, c) {
			return
		}
	}
}
