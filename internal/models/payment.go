package models

// Payment — запись о платеже, только для отображения.
type Payment struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Amount      int    `json:"amount"`
	Discount    int    `json:"discount"`
	Status      string `json:"status"`
	PaymentType string `json:"paymentType"`
	Date        string `json:"date"`
}
