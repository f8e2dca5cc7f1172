package model

import "fmt"

const BoardSize = 8

type BoardID int

const (
	BoardA BoardID = iota
	BoardB
)

var Boards = []BoardID{BoardA, BoardB}

func (b BoardID) String() string {
	switch b {
	case BoardA:
		return "A"
	case BoardB:
		return "B"
	}
	return "?"
}

func (b BoardID) IsValid() bool {
	return b == BoardA || b == BoardB
}

// Partner is the board that receives this board's captures.
func (b BoardID) Partner() BoardID {
	if b == BoardA {
		return BoardB
	}
	return BoardA
}

func (b BoardID) MarshalText() ([]byte, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("unknown board %d", int(b))
	}
	return []byte(b.String()), nil
}

func (b *BoardID) UnmarshalText(text []byte) error {
	id, err := ParseBoardID(string(text))
	if err != nil {
		return err
	}
	*b = id
	return nil
}

func ParseBoardID(s string) (BoardID, error) {
	switch s {
	case "A", "a":
		return BoardA, nil
	case "B", "b":
		return BoardB, nil
	}
	return 0, fmt.Errorf("unknown board %q", s)
}

// Position addresses a square. Rank 0 is black's back rank.
type Position struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func (p Position) InBounds() bool {
	return p.Rank >= 0 && p.Rank < BoardSize && p.File >= 0 && p.File < BoardSize
}

func (p Position) add(d Position) Position {
	return Position{Rank: p.Rank + d.Rank, File: p.File + d.File}
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Rank, p.File)
	}
	return fmt.Sprintf("%c%d", p.File+'a', BoardSize-p.Rank)
}

// MovedFlags records which castling pieces have left their home square.
type MovedFlags struct {
	WhiteKing          bool `json:"whiteKing"`
	BlackKing          bool `json:"blackKing"`
	WhiteQueensideRook bool `json:"whiteQueensideRook"`
	WhiteKingsideRook  bool `json:"whiteKingsideRook"`
	BlackQueensideRook bool `json:"blackQueensideRook"`
	BlackKingsideRook  bool `json:"blackKingsideRook"`
}

type Board struct {
	squares [BoardSize][BoardSize]Piece
	Moved   MovedFlags
}

func homeRank(c Color) int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

func pawnRank(c Color) int {
	if c == White {
		return BoardSize - 2
	}
	return 1
}

func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

var backRow = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset puts the standard starting arrangement on the board.
func (b *Board) Reset() {
	b.Clear()
	for f := 0; f < BoardSize; f++ {
		b.squares[homeRank(Black)][f] = NewPiece(backRow[f], Black)
		b.squares[pawnRank(Black)][f] = NewPiece(Pawn, Black)
		b.squares[pawnRank(White)][f] = NewPiece(Pawn, White)
		b.squares[homeRank(White)][f] = NewPiece(backRow[f], White)
	}
}

// Clear empties every square and marks all castling pieces unmoved.
func (b *Board) Clear() {
	b.squares = [BoardSize][BoardSize]Piece{}
	b.Moved = MovedFlags{}
}

// At returns NoPiece for empty or out of range squares.
func (b *Board) At(p Position) Piece {
	if !p.InBounds() {
		return NoPiece
	}
	return b.squares[p.Rank][p.File]
}

func (b *Board) Set(p Position, piece Piece) {
	if !p.InBounds() {
		return
	}
	b.squares[p.Rank][p.File] = piece
}

func (b *Board) IsEmpty(p Position) bool {
	return b.At(p).IsEmpty()
}

// ColorAt reports false for empty squares.
func (b *Board) ColorAt(p Position) (Color, bool) {
	piece := b.At(p)
	if piece.IsEmpty() {
		return "", false
	}
	return piece.Color, true
}

func (b *Board) isEnemy(p Position, c Color) bool {
	piece := b.At(p)
	return !piece.IsEmpty() && piece.Color != c
}

func (b *Board) findKing(c Color) (Position, bool) {
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			piece := b.squares[r][f]
			if piece.Type == King && piece.Color == c {
				return Position{Rank: r, File: f}, true
			}
		}
	}
	return Position{}, false
}

// CastlingRights is the FEN view of the moved flags.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func (m MovedFlags) Rights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  !m.WhiteKing && !m.WhiteKingsideRook,
		WhiteQueenside: !m.WhiteKing && !m.WhiteQueensideRook,
		BlackKingside:  !m.BlackKing && !m.BlackKingsideRook,
		BlackQueenside: !m.BlackKing && !m.BlackQueensideRook,
	}
}

// FlagsFromRights marks a king moved only when both of its rights are gone.
func FlagsFromRights(r CastlingRights) MovedFlags {
	return MovedFlags{
		WhiteKing:          !r.WhiteKingside && !r.WhiteQueenside,
		BlackKing:          !r.BlackKingside && !r.BlackQueenside,
		WhiteQueensideRook: !r.WhiteQueenside,
		WhiteKingsideRook:  !r.WhiteKingside,
		BlackQueensideRook: !r.BlackQueenside,
		BlackKingsideRook:  !r.BlackKingside,
	}
}

func (m *MovedFlags) kingMoved(c Color) bool {
	if c == White {
		return m.WhiteKing
	}
	return m.BlackKing
}

func (m *MovedFlags) setKingMoved(c Color) {
	if c == White {
		m.WhiteKing = true
	} else {
		m.BlackKing = true
	}
}

// rookFlag points at the flag of the rook whose home corner is pos, if any.
func (m *MovedFlags) rookFlag(pos Position, c Color) *bool {
	if pos.Rank != homeRank(c) {
		return nil
	}
	switch {
	case c == White && pos.File == 0:
		return &m.WhiteQueensideRook
	case c == White && pos.File == BoardSize-1:
		return &m.WhiteKingsideRook
	case c == Black && pos.File == 0:
		return &m.BlackQueensideRook
	case c == Black && pos.File == BoardSize-1:
		return &m.BlackKingsideRook
	}
	return nil
}
