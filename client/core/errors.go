package core

import "errors"

var (
	ErrBadArguments = errors.New("bad arguments")
	ErrNotFound     = errors.New("record not found")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrBadFormat    = errors.New("bad time format")
)
