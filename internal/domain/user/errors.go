package user

import "errors"

var (
	ErrEmailNotRegistered = errors.New("email is not registered")
	ErrRosterUnavailable  = errors.New("user roster could not be loaded")
)
