package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// DeployableTypes lists the pool slots in pool-string order.
var DeployableTypes = []PieceType{Pawn, Rook, Knight, Bishop, Queen}

// PromotionTypes are the kinds a pawn may become on the last rank.
var PromotionTypes = []PieceType{Rook, Knight, Bishop, Queen}

func (p PieceType) IsDeployable() bool {
	return p.poolIndex() >= 0
}

func (p PieceType) IsPromotion() bool {
	switch p {
	case Rook, Knight, Bishop, Queen:
		return true
	}
	return false
}

func (p PieceType) poolIndex() int {
	for i, t := range DeployableTypes {
		if t == p {
			return i
		}
	}
	return -1
}

// Letter returns the upper case FEN letter of the piece type.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return 0
}

// PieceTypeFromLetter accepts either case.
func PieceTypeFromLetter(c byte) (PieceType, bool) {
	switch c | 0x20 {
	case 'k':
		return King, true
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	case 'p':
		return Pawn, true
	}
	return "", false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) IsValid() bool {
	return c == White || c == Black
}

func (c Color) index() int {
	if c == Black {
		return 1
	}
	return 0
}

// Piece is a value; the zero Piece is an empty square.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Promoted bool      `json:"promoted,omitempty"`
}

var NoPiece = Piece{}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// Symbol is the FEN letter, upper case for white.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return ""
	}
	l := p.Type.Letter()
	if p.Color == Black {
		l |= 0x20
	}
	return string(l)
}

// creditType is the kind a captured piece is worth in a pool.
func (p Piece) creditType() PieceType {
	if p.Promoted {
		return Pawn
	}
	return p.Type
}
