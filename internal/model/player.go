package model

import "fmt"

// Seat is one of the four places at a bughouse table.
type Seat struct {
	Board BoardID `json:"board"`
	Color Color   `json:"color"`
}

// Seats lists the seats in the order players fill them. Teams are
// A-white with B-white and A-black with B-black.
var Seats = []Seat{
	{Board: BoardA, Color: White},
	{Board: BoardA, Color: Black},
	{Board: BoardB, Color: White},
	{Board: BoardB, Color: Black},
}

// Partner is the teammate's seat: the same colour on the other board,
// whose pool receives this seat's captures.
func (s Seat) Partner() Seat {
	return Seat{Board: s.Board.Partner(), Color: s.Color}
}

func (s Seat) IsValid() bool {
	return s.Board.IsValid() && s.Color.IsValid()
}

func (s Seat) String() string {
	return fmt.Sprintf("%s-%s", s.Board, s.Color)
}

// ParseSeat reads "A-white" style seat names.
func ParseSeat(board, color string) (Seat, error) {
	b, err := ParseBoardID(board)
	if err != nil {
		return Seat{}, err
	}
	c := Color(color)
	if !c.IsValid() {
		return Seat{}, fmt.Errorf("unknown colour %q", color)
	}
	return Seat{Board: b, Color: c}, nil
}

type Player struct {
	ID   string
	Seat Seat
}

// ClientPlayer is a seated player as sent to clients.
type ClientPlayer struct {
	ID    string `json:"name"`
	Board string `json:"board"`
	Color Color  `json:"color"`
}

func (p Player) Client() ClientPlayer {
	return ClientPlayer{ID: p.ID, Board: p.Seat.Board.String(), Color: p.Seat.Color}
}
