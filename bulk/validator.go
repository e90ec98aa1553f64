package bulk

import (
	"regexp"
)

// Row validation messages. At most one is attached per row; the first
// failing rule wins.
const (
	ErrAllFieldsRequired = "All fields required"
	ErrSLTPhoneRequired  = "SLT phone number required for Bill to Phone"
	ErrInvalidEmail      = "Invalid email"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateRow classifies a single row. Rules run in a fixed order and the
// first failure short-circuits the rest.
func validateRow(row Row) Row {
	if row.DoctorName == "" || row.PatientName == "" || row.PatientNIC == "" ||
		row.PatientEmail == "" || row.PatientPhone == "" ||
		row.Date == "" || row.Time == "" {
		row.Status = StatusInvalid
		row.Error = ErrAllFieldsRequired
		return row
	}

	if row.PaymentMethod == PaymentBillToPhone && row.SLTPhoneNumber == "" {
		row.Status = StatusInvalid
		row.Error = ErrSLTPhoneRequired
		return row
	}

	if !emailPattern.MatchString(row.PatientEmail) {
		row.Status = StatusInvalid
		row.Error = ErrInvalidEmail
		return row
	}

	row.Status = StatusValid
	row.Error = ""
	return row
}

// ValidateAll recomputes the status of every row. The pass is deterministic
// and idempotent: running it twice on unchanged rows yields identical
// classifications.
func ValidateAll(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = validateRow(row)
	}
	return out
}
