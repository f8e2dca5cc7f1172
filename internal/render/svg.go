package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

const (
	squareSize = 60
	margin     = 20
	lightFill  = "fill:#f0d9b5"
	darkFill   = "fill:#b58863"
	markFill   = "fill:#7fc97f;fill-opacity:0.6"
)

var glyphs = map[model.PieceType][2]string{
	model.King:   {"♔", "♚"},
	model.Queen:  {"♕", "♛"},
	model.Rook:   {"♖", "♜"},
	model.Bishop: {"♗", "♝"},
	model.Knight: {"♘", "♞"},
	model.Pawn:   {"♙", "♟"},
}

// SVG draws board b as an image, marking the squares in marks.
func SVG(w io.Writer, g *model.GameState, b model.BoardID, marks []model.Position) {
	size := model.BoardSize*squareSize + 2*margin
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title(fmt.Sprintf("board %s", b))
	canvas.Rect(0, 0, size, size, "fill:#302e2b")

	marked := make(map[model.Position]bool, len(marks))
	for _, p := range marks {
		marked[p] = true
	}

	for r := 0; r < model.BoardSize; r++ {
		for f := 0; f < model.BoardSize; f++ {
			x, y := margin+f*squareSize, margin+r*squareSize
			fill := lightFill
			if (r+f)%2 == 1 {
				fill = darkFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)
			if marked[model.Position{Rank: r, File: f}] {
				canvas.Rect(x, y, squareSize, squareSize, markFill)
			}
			piece := g.PieceAt(b, r, f)
			if piece.IsEmpty() {
				continue
			}
			glyph := glyphs[piece.Type][0]
			if piece.Color == model.Black {
				glyph = glyphs[piece.Type][1]
			}
			style := "font-size:44px;text-anchor:middle;dominant-baseline:central"
			if piece.Promoted {
				style += ";font-style:italic"
			}
			canvas.Text(x+squareSize/2, y+squareSize/2, glyph, style)
		}
	}

	label := "font-size:12px;fill:#ddd;text-anchor:middle;dominant-baseline:central"
	for i := 0; i < model.BoardSize; i++ {
		canvas.Text(margin+i*squareSize+squareSize/2, size-margin/2, string(rune('a'+i)), label)
		canvas.Text(margin/2, margin+i*squareSize+squareSize/2, fmt.Sprint(model.BoardSize-i), label)
	}
	canvas.End()
}
