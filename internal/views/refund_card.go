package views

import (
	"errors"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// BadgeVariant — визуальный вариант значка статуса.
type BadgeVariant string

const (
	BadgeWarning     BadgeVariant = "warning"
	BadgeSuccess     BadgeVariant = "success"
	BadgeDestructive BadgeVariant = "destructive"
	BadgeSecondary   BadgeVariant = "secondary"
)

// ErrActionUnavailable возвращается при вызове действия, которое карточка не предлагает.
var ErrActionUnavailable = errors.New("refund action unavailable")

// RefundAction — обработчик решения по возврату, передаётся снаружи.
type RefundAction func(refundID string) error

// RefundCard — карточка запроса на возврат для администратора.
type RefundCard struct {
	ID           string              `json:"id"`
	BookingID    string              `json:"bookingId"`
	Amount       int                 `json:"amount"`
	Reason       string              `json:"reason"`
	Status       models.RefundStatus `json:"status"`
	Badge        BadgeVariant        `json:"badge"`
	RequestedAt  time.Time           `json:"requestedAt"`
	ProcessedAt  *time.Time          `json:"processedAt,omitempty"`
	CustomerName string              `json:"customerName"`
	Actions      []string            `json:"actions"`

	onApprove RefundAction
	onReject  RefundAction
}

// RefundBadge сопоставляет каждому статусу ровно один вариант значка.
func RefundBadge(status models.RefundStatus) BadgeVariant {
	switch status {
	case models.RefundPending:
		return BadgeWarning
	case models.RefundApproved:
		return BadgeSuccess
	case models.RefundRejected:
		return BadgeDestructive
	}
	return BadgeSecondary
}

// NewRefundCard строит карточку. Колбэки могут быть nil.
func NewRefundCard(r models.Refund, onApprove, onReject RefundAction) *RefundCard {
	c := &RefundCard{
		ID:           r.ID,
		BookingID:    r.BookingID,
		Amount:       r.Amount,
		Reason:       r.Reason,
		Status:       r.Status,
		Badge:        RefundBadge(r.Status),
		RequestedAt:  r.RequestedAt,
		ProcessedAt:  r.ProcessedAt,
		CustomerName: r.CustomerName,
		Actions:      []string{},
		onApprove:    onApprove,
		onReject:     onReject,
	}
	if c.HasActions() {
		c.Actions = []string{"approve", "reject"}
	}
	return c
}

// HasActions сообщает, показываются ли кнопки одобрения и отклонения:
// только для статуса pending и только если переданы оба колбэка.
func (c *RefundCard) HasActions() bool {
	return c.Status == models.RefundPending && c.onApprove != nil && c.onReject != nil
}

// Approve вызывает колбэк одобрения.
func (c *RefundCard) Approve() error {
	if !c.HasActions() {
		return ErrActionUnavailable
	}
	return c.onApprove(c.ID)
}

// Reject вызывает колбэк отклонения.
func (c *RefundCard) Reject() error {
	if !c.HasActions() {
		return ErrActionUnavailable
	}
	return c.onReject(c.ID)
}
