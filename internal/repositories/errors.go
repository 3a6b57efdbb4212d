package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientStock is returned when an order asks for more units than are in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)
