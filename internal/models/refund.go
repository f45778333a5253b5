package models

import "time"

// RefundStatus — закрытый набор статусов возврата.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

// Valid сообщает, входит ли статус в закрытый набор значений.
func (s RefundStatus) Valid() bool {
	switch s {
	case RefundPending, RefundApproved, RefundRejected:
		return true
	}
	return false
}

// Refund — запрос на возврат денег по бронированию.
type Refund struct {
	ID           string       `json:"id"`
	BookingID    string       `json:"bookingId"`
	Amount       int          `json:"amount"`
	Reason       string       `json:"reason"`
	Status       RefundStatus `json:"status"`
	RequestedAt  time.Time    `json:"requestedAt"`
	ProcessedAt  *time.Time   `json:"processedAt,omitempty"`
	CustomerName string       `json:"customerName"`
}

// RefundDecision — событие о решении по возврату, публикуемое в очередь уведомлений.
type RefundDecision struct {
	RefundID  string       `json:"refundId"`
	BookingID string       `json:"bookingId"`
	Status    RefundStatus `json:"status"`
	DecidedBy string       `json:"decidedBy"`
	DecidedAt time.Time    `json:"decidedAt"`
}
