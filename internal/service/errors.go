package service

import (
	"errors"

	"github.com/benbeisheim/bughouse-backend/internal/model"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already exists")
	ErrTableFull     = errors.New("table is full")
	ErrSeatTaken     = errors.New("seat is taken")
	ErrNotSeated     = errors.New("player not seated at this table")
	ErrNotAuthorized = errors.New("not authorized to join this table")
	ErrAlreadyQueued = model.ErrAlreadyQueued
)
