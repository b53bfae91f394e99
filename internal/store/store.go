package store

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateKey    = errors.New("already exists")
	ErrAlreadyDeleted  = errors.New("already deleted")
)
