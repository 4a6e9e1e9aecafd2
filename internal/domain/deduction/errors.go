package deduction

import "errors"

var (
	ErrTypeNotFound = errors.New("deduction type not found")
	ErrEmptyCatalog = errors.New("deduction type catalog is empty")
)
