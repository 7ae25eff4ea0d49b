package notification

import (
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	TypeOrderCreated     Type = "order_created"
	TypePaymentApproved  Type = "payment_approved"
	TypePaymentFailed    Type = "payment_failed"
	TypePollTimeout      Type = "poll_timeout"
	TypeStatusCheckError Type = "status_check_error"
	TypeChatMessage      Type = "chat_message"
)

// Severity drives how the storefront styles the toast.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

// Data is the tagged payload: each notification type carries exactly one
// variant with only the fields that type needs.
type Data interface {
	notificationData()
}

type OrderCreatedData struct {
	OrderID uint   `json:"order_id"`
	Amount  string `json:"amount"`
}

type PaymentApprovedData struct {
	OrderID uint   `json:"order_id"`
	Amount  string `json:"amount,omitempty"`
}

type PaymentFailedData struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

type PollTimeoutData struct {
	OrderID  uint `json:"order_id"`
	Attempts int  `json:"attempts"`
}

type StatusCheckErrorData struct {
	OrderID uint `json:"order_id"`
	Attempt int  `json:"attempt"`
}

type ChatMessageData struct {
	FromUserID uint   `json:"from_user_id"`
	Preview    string `json:"preview"`
}

func (OrderCreatedData) notificationData()     {}
func (PaymentApprovedData) notificationData()  {}
func (PaymentFailedData) notificationData()    {}
func (PollTimeoutData) notificationData()      {}
func (StatusCheckErrorData) notificationData() {}
func (ChatMessageData) notificationData()      {}

type Notification struct {
	ID        uint
	UserID    uint
	Type      Type
	Severity  Severity
	Message   string
	Data      Data
	ReadAt    *time.Time
	CreatedAt time.Time
}

// decodeData rebuilds the typed payload from its stored JSON.
func decodeData(t Type, raw json.RawMessage) (Data, error) {
	var (
		data Data
		err  error
	)

	switch t {
	case TypeOrderCreated:
		var d OrderCreatedData
		err = json.Unmarshal(raw, &d)
		data = d
	case TypePaymentApproved:
		var d PaymentApprovedData
		err = json.Unmarshal(raw, &d)
		data = d
	case TypePaymentFailed:
		var d PaymentFailedData
		err = json.Unmarshal(raw, &d)
		data = d
	case TypePollTimeout:
		var d PollTimeoutData
		err = json.Unmarshal(raw, &d)
		data = d
	case TypeStatusCheckError:
		var d StatusCheckErrorData
		err = json.Unmarshal(raw, &d)
		data = d
	case TypeChatMessage:
		var d ChatMessageData
		err = json.Unmarshal(raw, &d)
		data = d
	default:
		return nil, fmt.Errorf("unknown notification type: %s", t)
	}

	return data, err
}
