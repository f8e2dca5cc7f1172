package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
)

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiBlack, color.Bold)
	highlight  = color.New(color.BgGreen)
	muted      = color.New(color.Faint)
)

// Terminal draws board b with rank 8 on top. Squares in marks are
// highlighted; the board itself is not touched.
func Terminal(w io.Writer, g *model.GameState, b model.BoardID, marks []model.Position) error {
	marked := make(map[model.Position]bool, len(marks))
	for _, p := range marks {
		marked[p] = true
	}

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "board %s  %s to move  %s\n", b, g.ActiveColor(b), g.Outcome(b))
	for r := 0; r < model.BoardSize; r++ {
		builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		fmt.Fprintf(&builder, " %d |", model.BoardSize-r)
		for f := 0; f < model.BoardSize; f++ {
			pos := model.Position{Rank: r, File: f}
			cell := " " + symbol(g.PieceAt(b, r, f)) + " "
			if marked[pos] {
				cell = highlight.Sprint(cell)
			}
			builder.WriteString(cell + "|")
		}
		builder.WriteString("\n")
	}
	builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for f := 0; f < model.BoardSize; f++ {
		fmt.Fprintf(&builder, "  %c ", 'a'+f)
	}
	builder.WriteString("\n")
	for _, c := range []model.Color{model.White, model.Black} {
		pool := notation.EncodePool(g.Pool(b, c), c)
		fmt.Fprintf(&builder, "   %s pool: %s\n", c, muted.Sprint(pool))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func symbol(p model.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	if p.Color == model.White {
		return whitePiece.Sprint(p.Symbol())
	}
	return blackPiece.Sprint(p.Symbol())
}
