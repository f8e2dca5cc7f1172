package model

import "errors"

var (
	ErrNotLegal         = errors.New("move not legal")
	ErrNotTurn          = errors.New("not your turn")
	ErrNotEmpty         = errors.New("square not empty")
	ErrNoPieceInPool    = errors.New("no piece in pool")
	ErrPromotionProblem = errors.New("promotion problem")
	ErrAlreadyOver      = errors.New("game already over")
)
