package models

// Payment mirrors the upstream channeling API's payment record.
type Payment struct {
	ID            string  `json:"id"`
	AppointmentID string  `json:"appointmentId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
	Date          string  `json:"date"`
}

// PaymentStats is the aggregate view shown on the payments page.
type PaymentStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalPayments int     `json:"totalPayments"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`
	FailedCount   int     `json:"failedCount"`
}
