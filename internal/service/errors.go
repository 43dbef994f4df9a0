package service

import "errors"

// Errors shared by several services
var (
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidRange = errors.New("invalid range")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidID    = errors.New("invalid id")
)
