package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
	"github.com/benbeisheim/bughouse-backend/internal/render"
)

const help = `commands:
  A e2-e4        move on board A (or B)
  B P@e4         deploy from a pool; lower case letter for black
  A e2           show the legal moves of the piece on e2
  promote A q    choose the next promotion piece on board A
  resign A white resign board A for white
  show           draw both boards
  fen            print the position as a game record
  refresh        start over
  quit`

var errQuit = errors.New("quit")

// session is the interactive two board loop.
type session struct {
	game *model.GameState
	out  io.Writer
}

func newSession(g *model.GameState, out io.Writer) *session {
	return &session{game: g, out: out}
}

func (s *session) run(in io.Reader) error {
	s.show()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		err := s.exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprintln(s.out, help)
		return nil
	case "show":
		s.show()
		return nil
	case "fen":
		fmt.Fprintln(s.out, notation.EncodeGame(s.game).String())
		return nil
	case "refresh":
		s.game.Refresh()
		s.show()
		return nil
	case "promote":
		if len(fields) != 3 {
			return fmt.Errorf("usage: promote <board> <piece>")
		}
		b, err := model.ParseBoardID(fields[1])
		if err != nil {
			return err
		}
		kind, err := notation.ParsePromotion(fields[2])
		if err != nil {
			return err
		}
		return s.game.SetPendingPromotion(b, kind)
	case "resign":
		if len(fields) != 3 {
			return fmt.Errorf("usage: resign <board> <color>")
		}
		seat, err := model.ParseSeat(fields[1], strings.ToLower(fields[2]))
		if err != nil {
			return err
		}
		if err := s.game.Resign(seat.Board, seat.Color); err != nil {
			return err
		}
		s.showBoard(seat.Board, nil)
		return nil
	}

	if len(fields) != 2 {
		return fmt.Errorf("unknown command %q, try help", line)
	}
	b, err := model.ParseBoardID(fields[0])
	if err != nil {
		return err
	}
	if len(fields[1]) == 2 {
		from, err := notation.ParseSquare(fields[1])
		if err != nil {
			return err
		}
		moves := s.game.LegalMoves(b, from.Rank, from.File)
		s.showBoard(b, moves)
		return nil
	}

	cmd, err := notation.ParseCommand(fields[1])
	if err != nil {
		return err
	}
	switch cmd.Kind {
	case notation.CommandDeploy:
		err = s.game.Deploy(b, cmd.Color, cmd.Piece, cmd.To.Rank, cmd.To.File)
	default:
		err = s.game.MakeMove(b, cmd.From, cmd.To)
	}
	if err != nil {
		return err
	}
	s.showBoard(b, nil)
	if partner := b.Partner(); !s.game.Pool(partner, model.White).IsEmpty() || !s.game.Pool(partner, model.Black).IsEmpty() {
		s.poolLine(partner)
	}
	return nil
}

func (s *session) show() {
	for _, b := range model.Boards {
		s.showBoard(b, nil)
	}
}

func (s *session) showBoard(b model.BoardID, marks []model.Position) {
	if err := render.Terminal(s.out, s.game, b, marks); err != nil {
		fmt.Fprintln(s.out, "error:", err)
	}
}

func (s *session) poolLine(b model.BoardID) {
	fmt.Fprintf(s.out, "board %s pools: %s %s\n", b,
		notation.EncodePool(s.game.Pool(b, model.White), model.White),
		notation.EncodePool(s.game.Pool(b, model.Black), model.Black))
}
