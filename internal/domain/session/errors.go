package session

import "errors"

var (
	ErrKeyNotFound       = errors.New("session key not found")
	ErrSessionNotFound   = errors.New("session not found or expired")
	ErrInvalidBackendURL = errors.New("backend url must start with http:// or https://")
)
