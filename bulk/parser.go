package bulk

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Column headers of the bulk upload format, in canonical order.
const (
	ColDoctorName    = "Doctor Name"
	ColPatientName   = "Patient Name"
	ColPatientNIC    = "Patient NIC"
	ColPatientEmail  = "Patient Email"
	ColPatientPhone  = "Patient Phone"
	ColPaymentMethod = "Payment Method"
	ColSLTPhone      = "SLT Phone Number"
	ColEmployeeNIC   = "Employee NIC"
	ColDate          = "Date"
	ColTime          = "Time"
)

// TemplateHeaders is the full header row of the CSV template.
var TemplateHeaders = []string{
	ColDoctorName, ColPatientName, ColPatientNIC, ColPatientEmail,
	ColPatientPhone, ColPaymentMethod, ColSLTPhone, ColEmployeeNIC,
	ColDate, ColTime,
}

// requiredHeaders must all be present for a CSV to be accepted. The SLT
// phone and employee NIC columns are conditional fields and may be omitted.
var requiredHeaders = []string{
	ColDoctorName, ColPatientName, ColPatientNIC, ColPatientEmail,
	ColPatientPhone, ColPaymentMethod, ColDate, ColTime,
}

// ParseCSV converts an uploaded CSV into pending rows. It returns the rows,
// a list of per-line problems for lines that were excluded individually, and
// an error when the whole file is unusable. Callers must leave their current
// batch untouched on error.
func ParseCSV(r io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read CSV file: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("CSV must contain a header row and at least one data row")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredHeaders {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	var skipped []string
	for n, record := range records[1:] {
		line := n + 2
		if len(record) < len(header) {
			skipped = append(skipped, fmt.Sprintf("line %d: expected %d fields, got %d", line, len(header), len(record)))
			continue
		}

		method := strings.ToUpper(field(record, ColPaymentMethod))
		if !ValidPaymentMethod(method) {
			skipped = append(skipped, fmt.Sprintf("line %d: invalid payment method %q", line, field(record, ColPaymentMethod)))
			continue
		}

		row := NewRow()
		row.DoctorName = field(record, ColDoctorName)
		row.PatientName = field(record, ColPatientName)
		row.PatientNIC = field(record, ColPatientNIC)
		row.PatientEmail = field(record, ColPatientEmail)
		row.PatientPhone = field(record, ColPatientPhone)
		row.PaymentMethod = method
		row.SLTPhoneNumber = field(record, ColSLTPhone)
		row.EmployeeNIC = field(record, ColEmployeeNIC)
		row.Date = field(record, ColDate)
		row.Time = field(record, ColTime)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, skipped, fmt.Errorf("no usable rows found in CSV")
	}
	return rows, skipped, nil
}
