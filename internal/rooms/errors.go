package rooms

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrInvalidRoomMetadata = errors.New("invalid room metadata")
)
