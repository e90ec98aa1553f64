package models

import (
	"time"
)

// Appointment mirrors the upstream channeling API's appointment record.
type Appointment struct {
	ID            string    `json:"id"`
	DoctorID      string    `json:"doctorId"`
	DoctorName    string    `json:"doctorName"`
	PatientName   string    `json:"patientName"`
	PatientEmail  string    `json:"patientEmail"`
	PatientPhone  string    `json:"patientPhone"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Amount        float64   `json:"amount"`
	Hospital      string    `json:"hospital"`
	Specialty     string    `json:"specialty"`
	CreatedAt     time.Time `json:"createdAt"`
}

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusPending   = "pending"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// CreateAppointmentRequest is the single-booking payload from the dashboard.
type CreateAppointmentRequest struct {
	DoctorID     string `json:"doctorId"`
	DoctorName   string `json:"doctorName"`
	PatientName  string `json:"patientName"`
	PatientEmail string `json:"patientEmail"`
	PatientPhone string `json:"patientPhone"`
	Date         string `json:"date"`
	Time         string `json:"time"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}
