package bulk

import (
	"bytes"
	"encoding/csv"
)

// TemplateFilename is the download name offered to the browser.
const TemplateFilename = "bulk-booking-template.csv"

// templateRows demonstrate both payment methods with data that passes every
// validation rule, so a re-uploaded template validates clean.
var templateRows = [][]string{
	{"Dr. Saman Perera", "John Smith", "923456789V", "john@example.com", "+94771234567", PaymentBillToPhone, "+94112345678", "", "2025-11-15", "09:00"},
	{"Dr. Nimal Fernando", "Jane Doe", "857654321V", "jane@example.com", "+94771234568", PaymentDeductFromSalary, "", "912345678V", "2025-11-15", "10:00"},
}

// Template renders the example CSV taught to agents.
func Template() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(TemplateHeaders)
	for _, row := range templateRows {
		_ = w.Write(row)
	}
	w.Flush()
	return buf.Bytes()
}
