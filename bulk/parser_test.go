package bulk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "Doctor Name,Patient Name,Patient NIC,Patient Email,Patient Phone,Payment Method,SLT Phone Number,Employee NIC,Date,Time"

func TestParseCSV_HappyPath(t *testing.T) {
	input := csvHeader + "\n" +
		"Dr. Saman Perera,John Smith,923456789V,john@example.com,+94771234567,BILL_TO_PHONE,+94112345678,,2025-11-15,09:00\n" +
		"Dr. Nimal Fernando,Jane Doe,857654321V,jane@example.com,+94771234568,DEDUCT_FROM_SALARY,,912345678V,2025-11-15,10:00\n"

	rows, skipped, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, "Dr. Saman Perera", rows[0].DoctorName)
	assert.Equal(t, "John Smith", rows[0].PatientName)
	assert.Equal(t, "923456789V", rows[0].PatientNIC)
	assert.Equal(t, PaymentBillToPhone, rows[0].PaymentMethod)
	assert.Equal(t, "+94112345678", rows[0].SLTPhoneNumber)
	assert.Equal(t, "912345678V", rows[1].EmployeeNIC)

	for _, row := range rows {
		assert.Equal(t, StatusPending, row.Status)
		assert.NotEmpty(t, row.ID)
	}
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
}

func TestParseCSV_TrimsFields(t *testing.T) {
	input := csvHeader + "\n" +
		" Dr. Saman Perera , John Smith ,923456789V, john@example.com ,+94771234567, bill_to_phone ,+94112345678,,2025-11-15, 09:00 \n"

	rows, _, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Dr. Saman Perera", rows[0].DoctorName)
	assert.Equal(t, "john@example.com", rows[0].PatientEmail)
	assert.Equal(t, PaymentBillToPhone, rows[0].PaymentMethod, "payment method is case-normalized")
	assert.Equal(t, "09:00", rows[0].Time)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(csvHeader + "\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one data row")
}

func TestParseCSV_EmptyFile(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseCSV_MissingRequiredColumns(t *testing.T) {
	input := "Doctor Name,Patient Name,Patient Email,Date,Time\n" +
		"Dr. Saman Perera,John Smith,john@example.com,2025-11-15,09:00\n"

	_, _, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "Patient NIC")
	assert.Contains(t, err.Error(), "Patient Phone")
	assert.Contains(t, err.Error(), "Payment Method")
	assert.NotContains(t, err.Error(), "Doctor Name")
}

func TestParseCSV_OptionalColumnsMayBeOmitted(t *testing.T) {
	input := "Doctor Name,Patient Name,Patient NIC,Patient Email,Patient Phone,Payment Method,Date,Time\n" +
		"Dr. Saman Perera,John Smith,923456789V,john@example.com,+94771234567,DEDUCT_FROM_SALARY,2025-11-15,09:00\n"

	rows, skipped, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].SLTPhoneNumber)
	assert.Empty(t, rows[0].EmployeeNIC)
}

func TestParseCSV_ShortLineSkipped(t *testing.T) {
	input := csvHeader + "\n" +
		"Dr. Saman Perera,John Smith\n" +
		"Dr. Nimal Fernando,Jane Doe,857654321V,jane@example.com,+94771234568,DEDUCT_FROM_SALARY,,912345678V,2025-11-15,10:00\n"

	rows, skipped, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].PatientName)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "line 2")
}

func TestParseCSV_InvalidPaymentMethodExcludedIndividually(t *testing.T) {
	input := csvHeader + "\n" +
		"Dr. Saman Perera,John Smith,923456789V,john@example.com,+94771234567,CASH,,,2025-11-15,09:00\n" +
		"Dr. Nimal Fernando,Jane Doe,857654321V,jane@example.com,+94771234568,DEDUCT_FROM_SALARY,,,2025-11-15,10:00\n"

	rows, skipped, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Jane Doe", rows[0].PatientName)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0], "invalid payment method")
	assert.Contains(t, skipped[0], "CASH")
}

func TestParseCSV_AllRowsExcluded(t *testing.T) {
	input := csvHeader + "\n" +
		"Dr. Saman Perera,John Smith,923456789V,john@example.com,+94771234567,CASH,,,2025-11-15,09:00\n"

	_, skipped, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable rows")
	assert.Len(t, skipped, 1)
}
