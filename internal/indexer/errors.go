package indexer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLocation is returned when a location name is not configured.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrPathNotFound is returned when a configured root is missing or not a directory.
	ErrPathNotFound = errors.New("location path not found")
	// ErrWalk matches every *WalkError.
	ErrWalk = errors.New("walk failed")
	// ErrInvalidExtensionFilter is returned for an empty or malformed extension set.
	ErrInvalidExtensionFilter = errors.New("invalid extension filter")
)

// WalkError reports a root that could not be read.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrWalk) true for any WalkError.
func (e *WalkError) Is(target error) bool {
	return target == ErrWalk
}
