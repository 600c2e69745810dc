package engine

import "errors"

var (
	ErrMalformed         = errors.New("malformed dataset")
	ErrNoRows            = errors.New("no complete rows in dataset")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnknownColumn     = errors.New("unknown column")
)
