package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrNotOrderOwner   = errors.New("cannot access another user's order")

	// -- Validation & Input --
	ErrInvalidSnapshot = errors.New("invalid checkout snapshot")
	ErrTotalMismatch   = errors.New("snapshot total does not match item subtotals")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")

	// -- Gateway & Operation Failures --
	ErrOrderCreationFailed = errors.New("order could not be created")
)
