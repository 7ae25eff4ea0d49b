package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidKind  = errors.New("invalid product kind")
	ErrInvalidPrice = errors.New("invalid product price")
	ErrEmptyName    = errors.New("product name is required")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("not the product owner")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
