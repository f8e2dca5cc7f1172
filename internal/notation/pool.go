package notation

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

// EncodePool lists every pooled piece as its FEN letter, pawns first.
// An empty pool is "-".
func EncodePool(p model.Pool, c model.Color) string {
	builder := strings.Builder{}
	for _, t := range model.DeployableTypes {
		piece := model.NewPiece(t, c)
		for i := 0; i < p.Count(t); i++ {
			builder.WriteString(piece.Symbol())
		}
	}
	if builder.Len() == 0 {
		return "-"
	}
	return builder.String()
}

// DecodePool reads a pool of colour c. Letters may come in any order but
// must all be in c's case.
func DecodePool(s string, c model.Color) (model.Pool, error) {
	var p model.Pool
	if s == "" || s == "-" {
		return p, nil
	}
	for i := 0; i < len(s); i++ {
		t, ok := model.PieceTypeFromLetter(s[i])
		if !ok || !t.IsDeployable() {
			return model.Pool{}, fmt.Errorf("%w: unknown piece '%c'", ErrInvalidPool, s[i])
		}
		upper := s[i] >= 'A' && s[i] <= 'Z'
		if upper != (c == model.White) {
			return model.Pool{}, fmt.Errorf("%w: '%c' is not a %s piece", ErrInvalidPool, s[i], c)
		}
		p = addOne(p, t)
	}
	return p, nil
}

func addOne(p model.Pool, t model.PieceType) model.Pool {
	for i, d := range model.DeployableTypes {
		if d == t {
			p[i]++
		}
	}
	return p
}
