package model

import "testing"

func TestIsAttacked(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		pieces []placement
		color  Color
		square Position
		want   bool
	}{
		{name: "white pawn attacks upwards", pieces: []placement{{at(6, 4), white(Pawn)}}, color: Black, square: at(5, 3), want: true},
		{name: "white pawn not backwards", pieces: []placement{{at(6, 4), white(Pawn)}}, color: Black, square: at(7, 3), want: false},
		{name: "pawn does not attack ahead", pieces: []placement{{at(6, 4), white(Pawn)}}, color: Black, square: at(5, 4), want: false},
		{name: "black pawn attacks downwards", pieces: []placement{{at(1, 4), black(Pawn)}}, color: White, square: at(2, 5), want: true},
		{name: "own pawn does not count", pieces: []placement{{at(1, 4), black(Pawn)}}, color: Black, square: at(2, 5), want: false},
		{name: "knight", pieces: []placement{{at(3, 3), black(Knight)}}, color: White, square: at(5, 4), want: true},
		{name: "king", pieces: []placement{{at(3, 3), white(King)}}, color: Black, square: at(4, 4), want: true},
		{name: "rook along file", pieces: []placement{{at(0, 0), black(Rook)}}, color: White, square: at(7, 0), want: true},
		{name: "rook blocked", pieces: []placement{{at(0, 0), black(Rook)}, {at(4, 0), white(Pawn)}}, color: White, square: at(7, 0), want: false},
		{name: "queen diagonal", pieces: []placement{{at(0, 0), black(Queen)}}, color: White, square: at(7, 7), want: true},
		{name: "bishop not orthogonal", pieces: []placement{{at(0, 0), black(Bishop)}}, color: White, square: at(0, 5), want: false},
		{name: "promoted rook", pieces: []placement{{at(2, 2), Piece{Type: Rook, Color: White, Promoted: true}}}, color: Black, square: at(2, 6), want: true},
		{name: "empty board", color: White, square: at(4, 4), want: false},
		{name: "off the board", pieces: []placement{{at(0, 0), black(Queen)}}, color: White, square: at(8, 8), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := customGame(White, tt.pieces...)
			if got := g.IsAttacked(BoardA, tt.color, tt.square.Rank, tt.square.File); got != tt.want {
				t.Errorf("unexpected attack: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestIsAttackedStartingPosition(t *testing.T) {
	t.Parallel()

	g := NewGameState()
	if !g.IsAttacked(BoardA, Black, 5, 5) {
		t.Error("f3 should be covered by white")
	}
	if g.IsAttacked(BoardA, Black, 4, 4) {
		t.Error("e4 should not be covered by white")
	}
	if !g.IsAttacked(BoardA, White, 2, 0) {
		t.Error("a6 should be covered by black")
	}
	if g.IsAttacked(BoardID(3), White, 2, 0) {
		t.Error("unknown board reported an attack")
	}
}
