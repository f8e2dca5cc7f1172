package model

var (
	rookDirs   = []Position{{Rank: 1, File: 0}, {Rank: -1, File: 0}, {Rank: 0, File: 1}, {Rank: 0, File: -1}}
	bishopDirs = []Position{{Rank: 1, File: 1}, {Rank: 1, File: -1}, {Rank: -1, File: 1}, {Rank: -1, File: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	knightDirs = []Position{{Rank: 2, File: 1}, {Rank: 2, File: -1}, {Rank: -2, File: 1}, {Rank: -2, File: -1}, {Rank: 1, File: 2}, {Rank: 1, File: -2}, {Rank: -1, File: 2}, {Rank: -1, File: -2}}
	kingDirs   = queenDirs
)

const (
	kingFile          = 4
	queensideRookFile = 0
	kingsideRookFile  = BoardSize - 1
	queensideCastle   = 2
	kingsideCastle    = 6
)

type moveGenerator func(st *boardState, from Position, piece Piece) []Position

// Promoted pieces move like their type; the flag only matters on capture.
var moveGenerators = map[PieceType]moveGenerator{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

// LegalMoves lists the destinations of the piece standing on (rank, file).
// Moves are not filtered by king exposure: capturing the king wins.
func (g *GameState) LegalMoves(b BoardID, rank, file int) []Position {
	st := g.state(b)
	if st == nil {
		return []Position{}
	}
	return st.legalMoves(Position{Rank: rank, File: file})
}

func (st *boardState) legalMoves(from Position) []Position {
	piece := st.board.At(from)
	if piece.IsEmpty() {
		return []Position{}
	}
	gen, ok := moveGenerators[piece.Type]
	if !ok {
		return []Position{}
	}
	return gen(st, from, piece)
}

func (st *boardState) isLegal(from, to Position) bool {
	for _, p := range st.legalMoves(from) {
		if p == to {
			return true
		}
	}
	return false
}

func pawnMoves(st *boardState, from Position, piece Piece) []Position {
	moves := []Position{}
	dir := pawnDirection(piece.Color)
	one := Position{Rank: from.Rank + dir, File: from.File}
	if one.InBounds() && st.board.IsEmpty(one) {
		moves = append(moves, one)
		two := Position{Rank: from.Rank + 2*dir, File: from.File}
		if from.Rank == pawnRank(piece.Color) && two.InBounds() && st.board.IsEmpty(two) {
			moves = append(moves, two)
		}
	}
	for _, df := range []int{-1, 1} {
		diag := Position{Rank: from.Rank + dir, File: from.File + df}
		if !diag.InBounds() {
			continue
		}
		if st.board.isEnemy(diag, piece.Color) {
			moves = append(moves, diag)
			continue
		}
		if st.isEnPassantTarget(from, diag, piece.Color) {
			moves = append(moves, diag)
		}
	}
	return moves
}

// isEnPassantTarget reports whether a pawn of color c on from may move
// diagonally to the empty square to, taking the pawn beside it.
func (st *boardState) isEnPassantTarget(from, to Position, c Color) bool {
	if st.lastDouble == nil || !st.board.IsEmpty(to) {
		return false
	}
	passed := Position{Rank: from.Rank, File: to.File}
	if passed != *st.lastDouble {
		return false
	}
	victim := st.board.At(passed)
	return victim.Type == Pawn && victim.Color != c
}

func knightMoves(st *boardState, from Position, piece Piece) []Position {
	return stepMoves(st, from, piece, knightDirs)
}

func bishopMoves(st *boardState, from Position, piece Piece) []Position {
	return slideMoves(st, from, piece, bishopDirs)
}

func rookMoves(st *boardState, from Position, piece Piece) []Position {
	return slideMoves(st, from, piece, rookDirs)
}

func queenMoves(st *boardState, from Position, piece Piece) []Position {
	return slideMoves(st, from, piece, queenDirs)
}

func kingMoves(st *boardState, from Position, piece Piece) []Position {
	moves := stepMoves(st, from, piece, kingDirs)
	return append(moves, st.castlingMoves(from, piece.Color)...)
}

func stepMoves(st *boardState, from Position, piece Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := from.add(dir)
		if target.InBounds() && (st.board.IsEmpty(target) || st.board.isEnemy(target, piece.Color)) {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(st *boardState, from Position, piece Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := from.add(dir)
		for target.InBounds() {
			if st.board.IsEmpty(target) {
				moves = append(moves, target)
			} else {
				if st.board.isEnemy(target, piece.Color) {
					moves = append(moves, target)
				}
				break
			}
			target = target.add(dir)
		}
	}
	return moves
}

func (st *boardState) castlingMoves(from Position, c Color) []Position {
	rank := homeRank(c)
	if from != (Position{Rank: rank, File: kingFile}) || st.board.Moved.kingMoved(c) {
		return nil
	}
	var moves []Position
	if st.canCastle(c, kingsideRookFile, kingsideCastle) {
		moves = append(moves, Position{Rank: rank, File: kingsideCastle})
	}
	if st.canCastle(c, queensideRookFile, queensideCastle) {
		moves = append(moves, Position{Rank: rank, File: queensideCastle})
	}
	return moves
}

func (st *boardState) canCastle(c Color, rookFile, kingTo int) bool {
	rank := homeRank(c)
	rookPos := Position{Rank: rank, File: rookFile}
	if flag := st.board.Moved.rookFlag(rookPos, c); flag == nil || *flag {
		return false
	}
	if st.board.At(rookPos) != NewPiece(Rook, c) {
		return false
	}
	lo, hi := rookFile+1, kingFile-1
	if rookFile > kingFile {
		lo, hi = kingFile+1, rookFile-1
	}
	for f := lo; f <= hi; f++ {
		if !st.board.IsEmpty(Position{Rank: rank, File: f}) {
			return false
		}
	}
	step := 1
	if kingTo < kingFile {
		step = -1
	}
	for f := kingFile; f != kingTo+step; f += step {
		if st.board.isAttacked(c, Position{Rank: rank, File: f}) {
			return false
		}
	}
	return true
}
