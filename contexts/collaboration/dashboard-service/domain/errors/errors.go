package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("dashboard request is invalid")
)
