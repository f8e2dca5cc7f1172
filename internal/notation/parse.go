package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

var ErrInvalidCommand = errors.New("invalid command")

type CommandKind string

const (
	CommandMove   CommandKind = "move"
	CommandDeploy CommandKind = "deploy"
)

// Command is a parsed move ("e2-e4") or deployment ("P@e4", "n@c6").
type Command struct {
	Kind  CommandKind
	From  model.Position
	To    model.Position
	Piece model.PieceType
	Color model.Color
}

// ParseSquare converts algebraic notation to a position; files may be
// either case.
func ParseSquare(s string) (model.Position, error) {
	if len(s) != 2 {
		return model.Position{}, fmt.Errorf("%w: bad square %q", ErrInvalidCommand, s)
	}
	file := int(s[0]|0x20) - 'a'
	rank := int(s[1] - '1')
	if file < 0 || file >= model.BoardSize || rank < 0 || rank >= model.BoardSize {
		return model.Position{}, fmt.Errorf("%w: bad square %q", ErrInvalidCommand, s)
	}
	return model.Position{Rank: model.BoardSize - 1 - rank, File: file}, nil
}

func SquareName(p model.Position) string {
	return p.String()
}

func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if at := strings.IndexByte(s, '@'); at >= 0 {
		if at != 1 {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
		}
		t, ok := model.PieceTypeFromLetter(s[0])
		if !ok || !t.IsDeployable() {
			return Command{}, fmt.Errorf("%w: cannot deploy %q", ErrInvalidCommand, s[:1])
		}
		to, err := ParseSquare(s[2:])
		if err != nil {
			return Command{}, err
		}
		color := model.White
		if s[0] >= 'a' && s[0] <= 'z' {
			color = model.Black
		}
		return Command{Kind: CommandDeploy, To: to, Piece: t, Color: color}, nil
	}

	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, s)
	}
	fromPos, err := ParseSquare(from)
	if err != nil {
		return Command{}, err
	}
	toPos, err := ParseSquare(to)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CommandMove, From: fromPos, To: toPos}, nil
}

// ParsePieceType reads a piece kind given as a letter ("q", "N") or a
// name ("queen").
func ParsePieceType(s string) (model.PieceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 {
		if t, ok := model.PieceTypeFromLetter(s[0]); ok {
			return t, nil
		}
		return "", fmt.Errorf("%w: unknown piece %q", ErrInvalidCommand, s)
	}
	switch t := model.PieceType(s); t {
	case model.King, model.Queen, model.Rook, model.Bishop, model.Knight, model.Pawn:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown piece %q", ErrInvalidCommand, s)
}

// ParsePromotion reads a promotion choice such as "q" or "queen".
func ParsePromotion(s string) (model.PieceType, error) {
	t, err := ParsePieceType(s)
	if err != nil {
		return "", err
	}
	if !t.IsPromotion() {
		return "", fmt.Errorf("%w: cannot promote to %s", ErrInvalidCommand, t)
	}
	return t, nil
}
