package cart

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrProductNotFound = errors.New("product not found")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")

	// -- Database & Operation Failures --
	ErrFailedGetCart    = errors.New("failed to get cart items")
	ErrFailedUpdateCart = errors.New("failed to update cart item")
)
