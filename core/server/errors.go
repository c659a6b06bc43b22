package server

import "errors"

var (
	// ErrServerAlreadyRunning is returned by Start when the server was
	// started twice without an intervening Stop.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// ErrMissingAddress is returned when the server address is not provided.
	ErrMissingAddress = errors.New("server address is required")
)
