package rest

import (
	"errors"
	"net/http"

	"minecart-be/internal/cart"
	"minecart-be/internal/chat"
	"minecart-be/internal/notification"
	"minecart-be/internal/order"
	"minecart-be/internal/payment"
	"minecart-be/internal/product"
	"minecart-be/internal/user"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes. Unknown errors become
// opaque 500s so repository details never leak to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrUnauthenticated),
		errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, chat.ErrUserNotAuthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrNotOrderOwner),
		errors.Is(err, product.ErrNotProductOwner):
		return http.StatusForbidden

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, order.ErrInvalidSnapshot),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, product.ErrInvalidKind),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrEmptyName),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrMessageTooLong):
		return http.StatusBadRequest

	case errors.Is(err, order.ErrOrderCreationFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
