package bulk

import (
	"github.com/google/uuid"
)

// Row statuses. A row is submittable only while StatusValid.
const (
	StatusPending = "pending"
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// Corporate payment methods.
const (
	PaymentBillToPhone      = "BILL_TO_PHONE"
	PaymentDeductFromSalary = "DEDUCT_FROM_SALARY"
)

// Row is one candidate appointment in a bulk batch. The ID is a temporary
// client-side identity, unique within the batch only; it is stripped before
// submission.
type Row struct {
	ID             string `json:"id"`
	DoctorName     string `json:"doctorName"`
	PatientName    string `json:"patientName"`
	PatientNIC     string `json:"patientNIC"`
	PatientEmail   string `json:"patientEmail"`
	PatientPhone   string `json:"patientPhone"`
	PaymentMethod  string `json:"paymentMethod"`
	SLTPhoneNumber string `json:"sltPhoneNumber"`
	EmployeeNIC    string `json:"employeeNIC"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
}

// NewRow returns an empty pending row with a fresh temporary id.
func NewRow() Row {
	return Row{ID: uuid.NewString(), Status: StatusPending}
}

// ValidPaymentMethod reports whether m is one of the closed payment enum.
func ValidPaymentMethod(m string) bool {
	return m == PaymentBillToPhone || m == PaymentDeductFromSalary
}
