package model

import "errors"

// Common errors used across the application
var (
	// Profile errors
	ErrInvalidProfileName = errors.New("invalid profile name")
	ErrNoActiveProfile    = errors.New("no active profile")

	// Economy errors
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrItemNotFound       = errors.New("shop item not found")
	ErrAlreadyOwned       = errors.New("item is already owned")
	ErrInsufficientPoints = errors.New("insufficient points")

	// Game errors
	ErrUnknownGame       = errors.New("unknown game")
	ErrSessionNotRunning = errors.New("session is not running")
	ErrInvalidOption     = errors.New("invalid answer option")
	ErrInvalidCard       = errors.New("invalid card")

	// Maze errors
	ErrInvalidDirection = errors.New("invalid direction")
)
