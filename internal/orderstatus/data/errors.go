package data

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
)
