package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRow() Row {
	row := NewRow()
	row.DoctorName = "Dr. Saman Perera"
	row.PatientName = "John Smith"
	row.PatientNIC = "923456789V"
	row.PatientEmail = "john@example.com"
	row.PatientPhone = "+94771234567"
	row.PaymentMethod = PaymentDeductFromSalary
	row.Date = "2025-11-15"
	row.Time = "09:00"
	return row
}

func TestValidateRow_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Row)
	}{
		{"missing doctor", func(r *Row) { r.DoctorName = "" }},
		{"missing patient name", func(r *Row) { r.PatientName = "" }},
		{"missing NIC", func(r *Row) { r.PatientNIC = "" }},
		{"missing email", func(r *Row) { r.PatientEmail = "" }},
		{"missing phone", func(r *Row) { r.PatientPhone = "" }},
		{"missing date", func(r *Row) { r.Date = "" }},
		{"missing time", func(r *Row) { r.Time = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := completeRow()
			tt.mutate(&row)

			got := validateRow(row)

			assert.Equal(t, StatusInvalid, got.Status)
			assert.Equal(t, ErrAllFieldsRequired, got.Error)
		})
	}
}

func TestValidateRow_RequiredFieldsWinOverLaterRules(t *testing.T) {
	// A row missing a required field gets the required-fields reason even
	// when the email is also broken and the SLT phone is missing.
	row := completeRow()
	row.PatientName = ""
	row.PatientEmail = "not-an-email"
	row.PaymentMethod = PaymentBillToPhone
	row.SLTPhoneNumber = ""

	got := validateRow(row)

	assert.Equal(t, StatusInvalid, got.Status)
	assert.Equal(t, ErrAllFieldsRequired, got.Error)
}

func TestValidateRow_SLTPhoneRequiredForBillToPhone(t *testing.T) {
	row := completeRow()
	row.PaymentMethod = PaymentBillToPhone
	row.SLTPhoneNumber = ""

	got := validateRow(row)

	assert.Equal(t, StatusInvalid, got.Status)
	assert.Equal(t, ErrSLTPhoneRequired, got.Error)
}

func TestValidateRow_SLTRuleWinsOverEmail(t *testing.T) {
	row := completeRow()
	row.PaymentMethod = PaymentBillToPhone
	row.SLTPhoneNumber = ""
	row.PatientEmail = "broken"

	got := validateRow(row)

	assert.Equal(t, ErrSLTPhoneRequired, got.Error)
}

func TestValidateRow_SLTNotRequiredForSalaryDeduction(t *testing.T) {
	row := completeRow()
	row.PaymentMethod = PaymentDeductFromSalary
	row.SLTPhoneNumber = ""

	got := validateRow(row)

	assert.Equal(t, StatusValid, got.Status)
	assert.Empty(t, got.Error)
}

func TestValidateRow_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"john@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.lk", true},
		{"no-at-sign.com", false},
		{"nothing-after-dot@example.", false},
		{"spaces in@local.com", false},
		{"@example.com", false},
		{"john@", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			row := completeRow()
			row.PatientEmail = tt.email

			got := validateRow(row)

			if tt.valid {
				assert.Equal(t, StatusValid, got.Status)
			} else {
				assert.Equal(t, StatusInvalid, got.Status)
				assert.Equal(t, ErrInvalidEmail, got.Error)
			}
		})
	}
}

func TestValidateRow_ValidClearsPreviousError(t *testing.T) {
	row := completeRow()
	row.Status = StatusInvalid
	row.Error = ErrInvalidEmail

	got := validateRow(row)

	assert.Equal(t, StatusValid, got.Status)
	assert.Empty(t, got.Error)
}

func TestValidateAll_Idempotent(t *testing.T) {
	rows := []Row{completeRow(), completeRow(), completeRow()}
	rows[1].PatientEmail = "broken"
	rows[2].PaymentMethod = PaymentBillToPhone

	first := ValidateAll(rows)
	second := ValidateAll(first)

	require.Equal(t, first, second)
	assert.Equal(t, StatusValid, first[0].Status)
	assert.Equal(t, ErrInvalidEmail, first[1].Error)
	assert.Equal(t, ErrSLTPhoneRequired, first[2].Error)
}
