package domain

import "errors"

var (
	ErrUnknownMachine    = errors.New("unknown machine")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnexpectedTopic   = errors.New("unexpected topic")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrEmptyFleet        = errors.New("fleet has no machines")
)
