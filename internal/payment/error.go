package payment

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrWatchExists     = errors.New("a poller is already watching this payment")
)
