package channeling

import (
	"github.com/echannel-lk/agent-backend/models"
)

// BulkAppointmentInput is one row of a bulk booking request. Client-side
// temporary ids are never part of this payload.
type BulkAppointmentInput struct {
	DoctorName     string `json:"doctorName"`
	PatientName    string `json:"patientName"`
	PatientNIC     string `json:"patientNIC"`
	PatientEmail   string `json:"patientEmail"`
	PatientPhone   string `json:"patientPhone"`
	PaymentMethod  string `json:"paymentMethod"`
	SLTPhoneNumber string `json:"sltPhoneNumber,omitempty"`
	EmployeeNIC    string `json:"employeeNIC,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

// BulkResult is the created/failed split returned by a bulk submit.
type BulkResult struct {
	Created []models.Appointment `json:"created"`
	Failed  []BulkFailure        `json:"failed"`
}

// BulkFailure describes one row the upstream rejected.
type BulkFailure struct {
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
	Reason      string `json:"reason"`
}

// DoctorFilters narrows a doctor search.
type DoctorFilters struct {
	Query     string
	Specialty string
	Hospital  string
}

// AppointmentFilters narrows an appointment listing.
type AppointmentFilters struct {
	Status   string
	Doctor   string
	Hospital string
	DateFrom string
	DateTo   string
}

// PaymentFilters narrows a payment listing.
type PaymentFilters struct {
	Status string
	Method string
}
