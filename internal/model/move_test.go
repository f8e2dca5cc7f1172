package model

import (
	"errors"
	"testing"
)

func TestMakeMoveErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		board    BoardID
		from, to Position
		wantErr  error
	}{
		{name: "black moves first", board: BoardA, from: at(1, 4), to: at(3, 4), wantErr: ErrNotTurn},
		{name: "pawn too far", board: BoardA, from: at(6, 4), to: at(3, 4), wantErr: ErrNotLegal},
		{name: "empty origin", board: BoardA, from: at(4, 4), to: at(3, 4), wantErr: ErrNotLegal},
		{name: "origin off board", board: BoardA, from: at(-1, 4), to: at(3, 4), wantErr: ErrNotLegal},
		{name: "destination off board", board: BoardA, from: at(6, 4), to: at(6, 8), wantErr: ErrNotLegal},
		{name: "own piece", board: BoardA, from: at(7, 0), to: at(6, 0), wantErr: ErrNotLegal},
		{name: "unknown board", board: BoardID(2), from: at(6, 4), to: at(4, 4), wantErr: ErrNotLegal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewGameState()
			before := *g.Board(BoardA)
			err := g.MakeMove(tt.board, tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if *g.Board(BoardA) != before {
				t.Error("board changed after rejected move")
			}
			if got := g.ActiveColor(BoardA); got != White {
				t.Errorf("turn changed after rejected move: got=%s", got)
			}
		})
	}
}

func TestMoveClocks(t *testing.T) {
	t.Parallel()

	g := NewGameState()
	steps := []struct {
		from, to Position
		half     int
		full     int
		active   Color
	}{
		{from: at(7, 6), to: at(5, 5), half: 1, full: 1, active: Black},
		{from: at(0, 1), to: at(2, 2), half: 2, full: 2, active: White},
		{from: at(6, 4), to: at(4, 4), half: 0, full: 2, active: Black},
		{from: at(1, 3), to: at(3, 3), half: 0, full: 3, active: White},
		{from: at(4, 4), to: at(3, 3), half: 0, full: 3, active: Black},
	}
	for i, s := range steps {
		if err := g.MakeMove(BoardA, s.from, s.to); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if got := g.HalfMoveClock(BoardA); got != s.half {
			t.Errorf("step %d: unexpected half move clock: got=%d want=%d", i, got, s.half)
		}
		if got := g.FullMoveNumber(BoardA); got != s.full {
			t.Errorf("step %d: unexpected full move number: got=%d want=%d", i, got, s.full)
		}
		if got := g.ActiveColor(BoardA); got != s.active {
			t.Errorf("step %d: unexpected active colour: got=%s want=%s", i, got, s.active)
		}
	}
	if got := g.ActiveColor(BoardB); got != White {
		t.Errorf("board B turn changed: got=%s", got)
	}
	if got := g.HalfMoveClock(BoardB); got != 0 {
		t.Errorf("board B clock changed: got=%d", got)
	}
}

func TestCaptureCreditsPartner(t *testing.T) {
	t.Parallel()

	g := NewGameState()
	for _, s := range [][2]Position{
		{at(6, 4), at(4, 4)},
		{at(1, 3), at(3, 3)},
	} {
		if err := g.MakeMove(BoardA, s[0], s[1]); err != nil {
			t.Fatal("unexpected error:", err)
		}
	}
	res, err := g.Move(BoardA, at(4, 4), at(3, 3))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if res.Captured == nil || *res.Captured != black(Pawn) {
		t.Errorf("unexpected captured piece: got=%v", res.Captured)
	}
	want := PoolSlot{Board: BoardB, Color: White, Type: Pawn}
	if res.CreditedTo == nil || *res.CreditedTo != want {
		t.Errorf("unexpected credit: got=%v want=%v", res.CreditedTo, want)
	}
	if got := g.PoolCount(BoardB, White, Pawn); got != 1 {
		t.Errorf("unexpected pool count: got=%d want=1", got)
	}
	if !g.Pool(BoardA, White).IsEmpty() || !g.Pool(BoardA, Black).IsEmpty() || !g.Pool(BoardB, Black).IsEmpty() {
		t.Error("credit landed in the wrong pool")
	}

	// the partner plays the credited piece on the other board
	if err := g.Deploy(BoardB, White, Pawn, 5, 0); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := g.PieceAt(BoardB, 5, 0); got != white(Pawn) {
		t.Errorf("unexpected deployed piece: got=%v", got)
	}
	if got := g.PoolCount(BoardB, White, Pawn); got != 0 {
		t.Errorf("unexpected pool count: got=%d want=0", got)
	}
}

func TestCaptureCreditsCapturingColour(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		board BoardID
		plies [][2]Position
		want  PoolSlot
	}{
		{
			name:  "white takes on A",
			board: BoardA,
			plies: [][2]Position{{at(6, 4), at(4, 4)}, {at(1, 3), at(3, 3)}, {at(4, 4), at(3, 3)}},
			want:  PoolSlot{Board: BoardB, Color: White, Type: Pawn},
		},
		{
			name:  "black takes on B",
			board: BoardB,
			plies: [][2]Position{{at(6, 4), at(4, 4)}, {at(1, 3), at(3, 3)}, {at(6, 0), at(5, 0)}, {at(3, 3), at(4, 4)}},
			want:  PoolSlot{Board: BoardA, Color: Black, Type: Pawn},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewGameState()
			var res *MoveResult
			for _, p := range tt.plies {
				var err error
				if res, err = g.Move(tt.board, p[0], p[1]); err != nil {
					t.Fatal("unexpected error:", err)
				}
			}
			if res.CreditedTo == nil || *res.CreditedTo != tt.want {
				t.Errorf("unexpected credit: got=%v want=%v", res.CreditedTo, tt.want)
			}
			if got := g.PoolCount(tt.want.Board, tt.want.Color, Pawn); got != 1 {
				t.Errorf("unexpected capturing colour pool: got=%d want=1", got)
			}
			if got := g.PoolCount(tt.want.Board, tt.want.Color.Opposite(), Pawn); got != 0 {
				t.Errorf("unexpected captured colour pool: got=%d want=0", got)
			}
		})
	}
}

func TestKingCapture(t *testing.T) {
	t.Parallel()

	g := customGame(White,
		placement{at(7, 4), white(King)},
		placement{at(7, 1), white(Knight)},
		placement{at(4, 4), white(Queen)},
		placement{at(0, 4), black(King)},
		placement{at(0, 1), black(Knight)},
	)
	g.AddToPool(BoardA, Black, Rook, 1)

	res, err := g.Move(BoardA, at(4, 4), at(0, 4))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !res.KingCaptured || res.Outcome != WhiteWinsA {
		t.Errorf("unexpected result: got=%+v", res)
	}
	if got := g.Outcome(BoardA); got != WhiteWinsA {
		t.Errorf("unexpected outcome: got=%s want=%s", got, WhiteWinsA)
	}
	if !g.Pool(BoardB, Black).IsEmpty() {
		t.Error("king must not be pooled")
	}

	if err := g.MakeMove(BoardA, at(0, 1), at(2, 2)); !errors.Is(err, ErrAlreadyOver) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrAlreadyOver)
	}
	if err := g.Deploy(BoardA, Black, Rook, 3, 3); !errors.Is(err, ErrAlreadyOver) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrAlreadyOver)
	}
	if got := len(g.LegalMoves(BoardA, 0, 1)); got == 0 {
		t.Error("queries should still work on a finished board")
	}

	if err := g.MakeMove(BoardB, at(6, 4), at(4, 4)); err != nil {
		t.Fatal("board B should be unaffected:", err)
	}
	if got := g.Outcome(BoardB); got != InProgress {
		t.Errorf("unexpected board B outcome: got=%s", got)
	}
}

func TestNoCheckRestriction(t *testing.T) {
	t.Parallel()

	g := customGame(White,
		placement{at(7, 0), white(King)},
		placement{at(5, 0), white(Rook)},
		placement{at(0, 0), black(Rook)},
		placement{at(0, 7), black(King)},
	)
	if err := g.MakeMove(BoardA, at(5, 0), at(5, 3)); err != nil {
		t.Fatal("exposing the king should be legal:", err)
	}
	res, err := g.Move(BoardA, at(0, 0), at(7, 0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if res.Outcome != BlackWinsA {
		t.Errorf("unexpected outcome: got=%s want=%s", res.Outcome, BlackWinsA)
	}
}

func TestPromotion(t *testing.T) {
	t.Parallel()

	g := customGame(White,
		placement{at(7, 4), white(King)},
		placement{at(7, 1), white(Knight)},
		placement{at(1, 0), white(Pawn)},
		placement{at(0, 4), black(King)},
		placement{at(0, 6), black(Knight)},
	)

	err := g.MakeMove(BoardA, at(1, 0), at(0, 0))
	if !errors.Is(err, ErrPromotionProblem) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrPromotionProblem)
	}
	if got := g.PieceAt(BoardA, 1, 0); got != white(Pawn) {
		t.Errorf("pawn moved on failed promotion: got=%v", got)
	}
	if got := g.ActiveColor(BoardA); got != White {
		t.Errorf("turn changed on failed promotion: got=%s", got)
	}

	if err := g.SetPendingPromotion(BoardA, King); !errors.Is(err, ErrPromotionProblem) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrPromotionProblem)
	}
	if err := g.SetPendingPromotion(BoardA, Queen); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got, ok := g.PendingPromotion(BoardA); !ok || got != Queen {
		t.Errorf("unexpected pending promotion: got=%s,%v", got, ok)
	}

	res, err := g.Move(BoardA, at(1, 0), at(0, 0))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	want := Piece{Type: Queen, Color: White, Promoted: true}
	if got := g.PieceAt(BoardA, 0, 0); got != want {
		t.Errorf("unexpected promoted piece: got=%v want=%v", got, want)
	}
	if res.Promotion != Queen {
		t.Errorf("unexpected promotion in result: got=%s", res.Promotion)
	}
	if _, ok := g.PendingPromotion(BoardA); ok {
		t.Error("pending promotion should be cleared")
	}

	// the promoted queen is worth a pawn to whoever takes it
	if err := g.MakeMove(BoardA, at(0, 4), at(0, 3)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := g.MakeMove(BoardA, at(7, 1), at(5, 2)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	g.SetPiece(BoardA, 0, 1, black(Rook))
	if err := g.MakeMove(BoardA, at(0, 1), at(0, 0)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := g.PoolCount(BoardB, Black, Pawn); got != 1 {
		t.Errorf("unexpected pawn credit: got=%d want=1", got)
	}
	if got := g.PoolCount(BoardB, Black, Queen); got != 0 {
		t.Errorf("unexpected queen credit: got=%d want=0", got)
	}
}

func TestPromotionByCapture(t *testing.T) {
	t.Parallel()

	g := customGame(Black,
		placement{at(7, 4), white(King)},
		placement{at(7, 1), white(Knight)},
		placement{at(7, 7), white(Rook)},
		placement{at(6, 6), black(Pawn)},
		placement{at(0, 4), black(King)},
		placement{at(0, 0), black(Rook)},
	)
	if err := g.SetPendingPromotion(BoardA, Knight); err != nil {
		t.Fatal("unexpected error:", err)
	}
	res, err := g.Move(BoardA, at(6, 6), at(7, 7))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := g.PieceAt(BoardA, 7, 7); got != (Piece{Type: Knight, Color: Black, Promoted: true}) {
		t.Errorf("unexpected piece: got=%v", got)
	}
	if res.CreditedTo == nil || res.CreditedTo.Type != Rook || res.CreditedTo.Color != Black {
		t.Errorf("unexpected credit: got=%v", res.CreditedTo)
	}
	if got := g.CastlingRights(BoardA); got.WhiteKingside {
		t.Errorf("captured rook still grants castling: got=%+v", got)
	}
}

func TestCastleMove(t *testing.T) {
	t.Parallel()

	g := customGame(White,
		placement{at(7, 4), white(King)},
		placement{at(7, 0), white(Rook)},
		placement{at(7, 7), white(Rook)},
		placement{at(0, 4), black(King)},
		placement{at(0, 1), black(Knight)},
	)
	res, err := g.Move(BoardA, at(7, 4), at(7, 6))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if res.CastleRook == nil || res.CastleRook.From != at(7, 7) || res.CastleRook.To != at(7, 5) {
		t.Errorf("unexpected rook move: got=%+v", res.CastleRook)
	}
	if got := g.PieceAt(BoardA, 7, 5); got != white(Rook) {
		t.Errorf("rook not relocated: got=%v", got)
	}
	if got := g.PieceAt(BoardA, 7, 7); !got.IsEmpty() {
		t.Errorf("corner not emptied: got=%v", got)
	}
	if got := g.PieceAt(BoardA, 7, 6); got != white(King) {
		t.Errorf("king not on g1: got=%v", got)
	}
	if got := g.CastlingRights(BoardA); got.WhiteKingside || got.WhiteQueenside {
		t.Errorf("white rights not revoked: got=%+v", got)
	}
	if got := g.HalfMoveClock(BoardA); got != 1 {
		t.Errorf("unexpected half move clock: got=%d want=1", got)
	}
}

func TestRookMoveRevokesOneSide(t *testing.T) {
	t.Parallel()

	g := customGame(White,
		placement{at(7, 4), white(King)},
		placement{at(7, 0), white(Rook)},
		placement{at(7, 7), white(Rook)},
		placement{at(0, 4), black(King)},
		placement{at(0, 1), black(Knight)},
	)
	if err := g.MakeMove(BoardA, at(7, 7), at(5, 7)); err != nil {
		t.Fatal("unexpected error:", err)
	}
	got := g.CastlingRights(BoardA)
	if got.WhiteKingside || !got.WhiteQueenside {
		t.Errorf("unexpected rights: got=%+v", got)
	}
	if got := g.Board(BoardA).Moved.WhiteKing; got {
		t.Error("king flag should be untouched")
	}
}
