package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound returned when a feed or item does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists returned when a unique field collides with an existing record
	ErrAlreadyExists = errors.New("already exists")
)

// ParseError is returned when a remote feed can't be retrieved or parsed
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StoreError is returned when persistence of ingested data fails
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
