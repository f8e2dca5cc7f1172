package main

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

var deployKinds = []model.PieceType{model.Pawn, model.Knight, model.Bishop, model.Rook, model.Queen}

func runPerft(w io.Writer, g *model.GameState, b model.BoardID, depth int) error {
	start := time.Now()
	nodes := perftParallel(g, b, depth)
	elapsed := time.Since(start)

	_, err := message.NewPrinter(language.English).
		Fprintf(w, "d=%d nodes=%d rate=%dn/s (%.3fs elapsed)\n",
			depth, nodes, int(float64(nodes)/elapsed.Seconds()), elapsed.Seconds())
	return err
}

// children lists every position reachable in one ply on board b: ordinary
// moves, promoting to a queen, and deployments from the side's pool.
func children(g *model.GameState, b model.BoardID) []*model.GameState {
	if g.Outcome(b).IsOver() {
		return nil
	}
	c := g.ActiveColor(b)
	var out []*model.GameState
	for r := 0; r < model.BoardSize; r++ {
		for f := 0; f < model.BoardSize; f++ {
			piece := g.PieceAt(b, r, f)
			if piece.IsEmpty() {
				continue
			}
			if piece.Color != c {
				continue
			}
			from := model.Position{Rank: r, File: f}
			for _, to := range g.LegalMoves(b, r, f) {
				child := g.Clone()
				if piece.Type == model.Pawn {
					_ = child.SetPendingPromotion(b, model.Queen)
				}
				if err := child.MakeMove(b, from, to); err != nil {
					continue
				}
				out = append(out, child)
			}
		}
	}
	for _, kind := range deployKinds {
		if g.PoolCount(b, c, kind) == 0 {
			continue
		}
		for r := 0; r < model.BoardSize; r++ {
			for f := 0; f < model.BoardSize; f++ {
				if !g.PieceAt(b, r, f).IsEmpty() {
					continue
				}
				child := g.Clone()
				if err := child.Deploy(b, c, kind, r, f); err != nil {
					continue
				}
				out = append(out, child)
			}
		}
	}
	return out
}

func perft(g *model.GameState, b model.BoardID, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	next := children(g, b)
	if depth == 1 {
		return uint64(len(next))
	}
	var sum uint64
	for _, child := range next {
		sum += perft(child, b, depth-1)
	}
	return sum
}

// perftParallel is perft with one goroutine per root ply.
func perftParallel(g *model.GameState, b model.BoardID, depth int) uint64 {
	if depth <= 1 {
		return perft(g, b, depth)
	}
	var (
		sum uint64
		wg  sync.WaitGroup
	)
	for _, child := range children(g, b) {
		child := child
		wg.Add(1)
		go func() {
			defer wg.Done()
			atomic.AddUint64(&sum, perft(child, b, depth-1))
		}()
	}
	wg.Wait()
	return sum
}
