package models

// Registration связывает ровно одного пользователя с одной поездкой.
// Платёж появляется только после оплаты.
type Registration struct {
	ID         string   `json:"id"`
	FlagshipID string   `json:"flagshipId"`
	UserID     string   `json:"userId"`
	PaymentID  *string  `json:"paymentId,omitempty"`
	Status     string   `json:"status"`
	Comment    string   `json:"comment,omitempty"`
	User       *User    `json:"user,omitempty"`
	Payment    *Payment `json:"payment,omitempty"`
}

// Paid сообщает, привязан ли к регистрации платёж.
func (r Registration) Paid() bool {
	return r.PaymentID != nil && *r.PaymentID != ""
}
