package domain

import "errors"

var (
	// ErrFetchFailure is returned when the product-listing endpoint cannot be read
	ErrFetchFailure = errors.New("product fetch failed")

	// ErrPageNotFound is returned when a page session does not exist or has expired
	ErrPageNotFound = errors.New("page not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSessionStoreUnavailable is returned when the page store cannot be reached
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)
