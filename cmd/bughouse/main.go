package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/bughouse-backend/internal/model"
	"github.com/benbeisheim/bughouse-backend/internal/notation"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	perftDepth = flag.Int("perft", 0, "count move and deploy sequences on board A to this depth and exit")
	position   = flag.String("position", "", "file holding a six line game record to start from")
)

func main() {
	flag.Parse()

	if err := realMain(); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain() error {
	g, err := loadPosition(*position)
	if err != nil {
		return err
	}
	if *perftDepth > 0 {
		return runPerft(os.Stdout, g, model.BoardA, *perftDepth)
	}
	return newSession(g, os.Stdout).run(os.Stdin)
}

func loadPosition(path string) (*model.GameState, error) {
	if path == "" {
		return model.NewGameState(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := notation.ParseGameRecord(string(raw))
	if err != nil {
		return nil, err
	}
	return notation.DecodeGame(rec)
}
