package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

var (
	ErrInvalidBFEN = errors.New("invalid bfen")
	ErrInvalidPool = errors.New("invalid pool")
)

const promotedMark = '~'

// StartingPositionBFEN is a fresh board.
const StartingPositionBFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// EncodeBoard writes one board as a BFEN line: FEN plus promotion marks,
// with castling rights always four characters wide.
func EncodeBoard(g *model.GameState, b model.BoardID) string {
	builder := strings.Builder{}
	board := g.Board(b)
	for r := 0; r < model.BoardSize; r++ {
		skip := 0
		for f := 0; f < model.BoardSize; f++ {
			piece := board.At(model.Position{Rank: r, File: f})
			if piece.IsEmpty() {
				skip++
				continue
			}
			if skip > 0 {
				builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			builder.WriteString(piece.Symbol())
			if piece.Promoted {
				builder.WriteByte(promotedMark)
			}
		}
		if skip > 0 {
			builder.WriteString(strconv.Itoa(skip))
		}
		if r != model.BoardSize-1 {
			builder.WriteByte('/')
		}
	}

	builder.WriteByte(' ')
	if g.ActiveColor(b) == model.Black {
		builder.WriteByte('b')
	} else {
		builder.WriteByte('w')
	}

	builder.WriteByte(' ')
	builder.WriteString(encodeCastling(g.CastlingRights(b)))

	builder.WriteByte(' ')
	builder.WriteString(enPassantTarget(g, b))

	fmt.Fprintf(&builder, " %d %d", g.HalfMoveClock(b), g.FullMoveNumber(b))
	return builder.String()
}

func encodeCastling(r model.CastlingRights) string {
	out := []byte("----")
	if r.WhiteKingside {
		out[0] = 'K'
	}
	if r.WhiteQueenside {
		out[1] = 'Q'
	}
	if r.BlackKingside {
		out[2] = 'k'
	}
	if r.BlackQueenside {
		out[3] = 'q'
	}
	return string(out)
}

// enPassantTarget names the square behind the last pawn that moved two
// squares or was deployed.
func enPassantTarget(g *model.GameState, b model.BoardID) string {
	pawn, ok := g.LastDoubleMovedPawn(b)
	if !ok {
		return "-"
	}
	piece := g.PieceAt(b, pawn.Rank, pawn.File)
	if piece.Type != model.Pawn {
		return "-"
	}
	target := model.Position{Rank: pawn.Rank - forward(piece.Color), File: pawn.File}
	if !target.InBounds() {
		return "-"
	}
	return target.String()
}

func forward(c model.Color) int {
	if c == model.White {
		return -1
	}
	return 1
}

// boardRecord is a parsed BFEN line, applied only once fully valid.
type boardRecord struct {
	squares    [model.BoardSize][model.BoardSize]model.Piece
	active     model.Color
	rights     model.CastlingRights
	lastDouble *model.Position
	halfMove   int
	fullMove   int
}

// DecodeBoard replaces board b of g with the position in line. On error
// g is left untouched.
func DecodeBoard(g *model.GameState, b model.BoardID, line string) error {
	if !b.IsValid() {
		return fmt.Errorf("%w: unknown board %d", ErrInvalidBFEN, b)
	}
	rec, err := parseBoard(line)
	if err != nil {
		return err
	}
	g.Clear(b)
	for r := 0; r < model.BoardSize; r++ {
		for f := 0; f < model.BoardSize; f++ {
			g.SetPiece(b, r, f, rec.squares[r][f])
		}
	}
	g.SetActiveColor(b, rec.active)
	g.SetCastlingRights(b, rec.rights)
	g.SetLastDoubleMovedPawn(b, rec.lastDouble)
	g.SetClocks(b, rec.halfMove, rec.fullMove)
	g.ClearPendingPromotion(b)
	g.SetOutcome(b, model.InProgress)
	return nil
}

func parseBoard(line string) (*boardRecord, error) {
	segments := strings.Fields(line)
	if len(segments) != 6 {
		return nil, fmt.Errorf("%w: incorrect number of segments", ErrInvalidBFEN)
	}
	rec := &boardRecord{}

	rows := strings.Split(segments[0], "/")
	if len(rows) != model.BoardSize {
		return nil, fmt.Errorf("%w: invalid board configuration", ErrInvalidBFEN)
	}
	for r, row := range rows {
		if err := parseRow(row, &rec.squares[r]); err != nil {
			return nil, fmt.Errorf("%w: rank %d: %v", ErrInvalidBFEN, model.BoardSize-r, err)
		}
	}

	switch segments[1] {
	case "w":
		rec.active = model.White
	case "b":
		rec.active = model.Black
	default:
		return nil, fmt.Errorf("%w: invalid turn", ErrInvalidBFEN)
	}

	rights, err := parseCastling(segments[2])
	if err != nil {
		return nil, err
	}
	rec.rights = rights

	if segments[3] != "-" {
		target, err := ParseSquare(segments[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square", ErrInvalidBFEN)
		}
		// the pawn that just moved belongs to the side not on turn
		mover := rec.active.Opposite()
		pawn := model.Position{Rank: target.Rank + forward(mover), File: target.File}
		if !pawn.InBounds() || rec.squares[pawn.Rank][pawn.File] != model.NewPiece(model.Pawn, mover) {
			return nil, fmt.Errorf("%w: no pawn behind en passant square %s", ErrInvalidBFEN, segments[3])
		}
		rec.lastDouble = &pawn
	}

	if rec.halfMove, err = strconv.Atoi(segments[4]); err != nil || rec.halfMove < 0 {
		return nil, fmt.Errorf("%w: invalid half move clock", ErrInvalidBFEN)
	}
	if rec.fullMove, err = strconv.Atoi(segments[5]); err != nil || rec.fullMove < 1 {
		return nil, fmt.Errorf("%w: invalid full move number", ErrInvalidBFEN)
	}
	return rec, nil
}

func parseRow(row string, out *[model.BoardSize]model.Piece) error {
	f := 0
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c >= '1' && c <= '8' {
			f += int(c - '0')
			if f > model.BoardSize {
				return errors.New("skip out of bounds")
			}
			continue
		}
		t, ok := model.PieceTypeFromLetter(c)
		if !ok {
			return fmt.Errorf("unknown symbol '%c'", c)
		}
		if f >= model.BoardSize {
			return errors.New("too many cells")
		}
		color := model.White
		if c >= 'a' && c <= 'z' {
			color = model.Black
		}
		piece := model.NewPiece(t, color)
		if i+1 < len(row) && row[i+1] == promotedMark {
			if !t.IsPromotion() {
				return fmt.Errorf("%s cannot be promoted", t)
			}
			piece.Promoted = true
			i++
		}
		out[f] = piece
		f++
	}
	if f != model.BoardSize {
		return errors.New("missing cells")
	}
	return nil
}

// parseCastling accepts the padded form (K-k-) as well as plain FEN (Kk, -).
func parseCastling(s string) (model.CastlingRights, error) {
	var r model.CastlingRights
	if len(s) == 0 || len(s) > 4 {
		return r, fmt.Errorf("%w: invalid castling rights", ErrInvalidBFEN)
	}
	for _, c := range s {
		switch c {
		case 'K':
			r.WhiteKingside = true
		case 'Q':
			r.WhiteQueenside = true
		case 'k':
			r.BlackKingside = true
		case 'q':
			r.BlackQueenside = true
		case '-':
		default:
			return r, fmt.Errorf("%w: invalid castling rights", ErrInvalidBFEN)
		}
	}
	return r, nil
}
