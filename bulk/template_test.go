package bulk

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_HeaderOrder(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(string(Template())), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t,
		"Doctor Name,Patient Name,Patient NIC,Patient Email,Patient Phone,Payment Method,SLT Phone Number,Employee NIC,Date,Time",
		lines[0])
}

func TestTemplate_DemonstratesBothPaymentMethods(t *testing.T) {
	content := string(Template())

	assert.Contains(t, content, PaymentBillToPhone)
	assert.Contains(t, content, PaymentDeductFromSalary)
}

// Re-ingesting the template must produce rows that validate clean; the
// template is the canonical teaching example of the format.
func TestTemplate_RoundTrip(t *testing.T) {
	rows, skipped, err := ParseCSV(bytes.NewReader(Template()))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 2)

	validated := ValidateAll(rows)
	for i, row := range validated {
		assert.Equal(t, StatusValid, row.Status, "template row %d should be valid: %s", i, row.Error)
		assert.Empty(t, row.Error)
	}
}
