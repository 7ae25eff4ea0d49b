package chat

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrEmptyMessage         = errors.New("message body is empty")
	ErrMessageTooLong       = errors.New("message body exceeds the limit")
)
