package notation

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

// GameRecord is the text form of a whole bughouse position: one BFEN line
// per board and the four pools.
type GameRecord struct {
	BoardA     string `json:"boardA"`
	BoardB     string `json:"boardB"`
	PoolAWhite string `json:"poolAWhite"`
	PoolABlack string `json:"poolABlack"`
	PoolBWhite string `json:"poolBWhite"`
	PoolBBlack string `json:"poolBBlack"`
}

func EncodeGame(g *model.GameState) GameRecord {
	return GameRecord{
		BoardA:     EncodeBoard(g, model.BoardA),
		BoardB:     EncodeBoard(g, model.BoardB),
		PoolAWhite: EncodePool(g.Pool(model.BoardA, model.White), model.White),
		PoolABlack: EncodePool(g.Pool(model.BoardA, model.Black), model.Black),
		PoolBWhite: EncodePool(g.Pool(model.BoardB, model.White), model.White),
		PoolBBlack: EncodePool(g.Pool(model.BoardB, model.Black), model.Black),
	}
}

// DecodeGame builds a fresh GameState from rec.
func DecodeGame(rec GameRecord) (*model.GameState, error) {
	g := model.NewGameState()
	if err := DecodeBoard(g, model.BoardA, rec.BoardA); err != nil {
		return nil, fmt.Errorf("board A: %w", err)
	}
	if err := DecodeBoard(g, model.BoardB, rec.BoardB); err != nil {
		return nil, fmt.Errorf("board B: %w", err)
	}
	pools := []struct {
		board model.BoardID
		color model.Color
		s     string
	}{
		{model.BoardA, model.White, rec.PoolAWhite},
		{model.BoardA, model.Black, rec.PoolABlack},
		{model.BoardB, model.White, rec.PoolBWhite},
		{model.BoardB, model.Black, rec.PoolBBlack},
	}
	for _, p := range pools {
		pool, err := DecodePool(p.s, p.color)
		if err != nil {
			return nil, fmt.Errorf("pool %s %s: %w", p.board, p.color, err)
		}
		g.SetPool(p.board, p.color, pool)
	}
	return g, nil
}

// String prints the record as six lines in board A, board B, pools order.
func (r GameRecord) String() string {
	return strings.Join([]string{
		r.BoardA, r.BoardB,
		r.PoolAWhite, r.PoolABlack, r.PoolBWhite, r.PoolBBlack,
	}, "\n")
}

// ParseGameRecord reads the six line form produced by String.
func ParseGameRecord(s string) (GameRecord, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 6 {
		return GameRecord{}, fmt.Errorf("%w: want 6 lines, got %d", ErrInvalidBFEN, len(lines))
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return GameRecord{
		BoardA:     lines[0],
		BoardB:     lines[1],
		PoolAWhite: lines[2],
		PoolABlack: lines[3],
		PoolBWhite: lines[4],
		PoolBBlack: lines[5],
	}, nil
}
