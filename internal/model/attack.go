package model

// IsAttacked reports whether a piece of the colour opposing c could reach
// (rank, file) on board b. Only castling and the stalemate check use it.
func (g *GameState) IsAttacked(b BoardID, c Color, rank, file int) bool {
	st := g.state(b)
	if st == nil {
		return false
	}
	return st.board.isAttacked(c, Position{Rank: rank, File: file})
}

func (b *Board) isAttacked(c Color, pos Position) bool {
	if !pos.InBounds() {
		return false
	}
	attacker := c.Opposite()
	if b.slidingAttack(attacker, pos, rookDirs, Rook) || b.slidingAttack(attacker, pos, bishopDirs, Bishop) {
		return true
	}
	if b.stepAttack(attacker, pos, knightDirs, Knight) || b.stepAttack(attacker, pos, kingDirs, King) {
		return true
	}
	// an attacking pawn sits one rank behind the square, seen from its side
	back := -pawnDirection(attacker)
	for _, df := range []int{-1, 1} {
		piece := b.At(Position{Rank: pos.Rank + back, File: pos.File + df})
		if piece.Type == Pawn && piece.Color == attacker {
			return true
		}
	}
	return false
}

func (b *Board) slidingAttack(attacker Color, pos Position, dirs []Position, slider PieceType) bool {
	for _, dir := range dirs {
		target := pos.add(dir)
		for target.InBounds() {
			piece := b.At(target)
			if !piece.IsEmpty() {
				if piece.Color == attacker && (piece.Type == slider || piece.Type == Queen) {
					return true
				}
				break
			}
			target = target.add(dir)
		}
	}
	return false
}

func (b *Board) stepAttack(attacker Color, pos Position, dirs []Position, stepper PieceType) bool {
	for _, dir := range dirs {
		piece := b.At(pos.add(dir))
		if piece.Color == attacker && piece.Type == stepper {
			return true
		}
	}
	return false
}
