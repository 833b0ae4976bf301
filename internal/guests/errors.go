package guests

import "errors"

var (
	ErrProfileNotFound = errors.New("guest profile not found")
	ErrInvalidAddress  = errors.New("invalid wallet address")
)
