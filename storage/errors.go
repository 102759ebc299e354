package storage

import "errors"

var (
	// ErrUnavailable indicates the blob store could not be reached.
	ErrUnavailable = errors.New("storage: store unreachable")

	// ErrInvalidResponse indicates the store returned a malformed or
	// unexpected response.
	ErrInvalidResponse = errors.New("storage: invalid response")

	// ErrEmptyContent indicates an attempt to store empty content.
	ErrEmptyContent = errors.New("storage: content is empty")
)
