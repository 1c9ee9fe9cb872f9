package post

import "errors"

var (
	// ErrPostNotFound indicates the post doesn't exist or is not visible.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidInput indicates missing required fields on create.
	ErrInvalidInput = errors.New("invalid post input")
)
