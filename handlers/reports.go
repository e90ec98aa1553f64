package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/models"
)

// GenerateReport aggregates upstream data for the requested range and
// stores the result as a snapshot the dashboard can reopen later.
func GenerateReport(c *fiber.Ctx) error {
	var req models.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}

	if req.Type != models.ReportTypeAppointments &&
		req.Type != models.ReportTypeRevenue &&
		req.Type != models.ReportTypeDoctors {
		return fail(c, 400, "Invalid report type")
	}
	if req.DateFrom == "" || req.DateTo == "" {
		return fail(c, 400, "Date range is required")
	}

	data, err := buildReportData(c, req)
	if err != nil {
		return fail(c, 502, err.Error())
	}

	report := models.Report{
		ID:          uuid.NewString(),
		AgentID:     agentID(c),
		Type:        req.Type,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Data:        data,
		GeneratedAt: time.Now(),
	}

	payload, err := json.Marshal(report.Data)
	if err != nil {
		return fail(c, 500, "Failed to encode report data")
	}
	_, err = database.GetDB().Exec(context.Background(),
		`INSERT INTO reports (id, agent_id, report_type, date_from, date_to, data, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.AgentID, report.Type, report.DateFrom, report.DateTo, string(payload), report.GeneratedAt)
	if err != nil {
		return fail(c, 500, "Failed to store report")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Report generated",
		"data":    report,
	})
}

// buildReportData computes the aggregate for one report type.
func buildReportData(c *fiber.Ctx, req models.GenerateReportRequest) (map[string]any, error) {
	filters := channeling.AppointmentFilters{DateFrom: req.DateFrom, DateTo: req.DateTo}
	appts, err := upstream.ListAppointments(c.Context(), filters)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case models.ReportTypeAppointments:
		byStatus := map[string]int{}
		for _, a := range appts {
			byStatus[a.Status]++
		}
		return map[string]any{
			"total":    len(appts),
			"byStatus": byStatus,
		}, nil

	case models.ReportTypeRevenue:
		var total, paid, pending float64
		for _, a := range appts {
			total += a.Amount
			switch a.PaymentStatus {
			case models.PaymentStatusPaid:
				paid += a.Amount
			case models.PaymentStatusPending:
				pending += a.Amount
			}
		}
		return map[string]any{
			"totalAmount":   total,
			"paidAmount":    paid,
			"pendingAmount": pending,
			"appointments":  len(appts),
		}, nil

	default: // doctors
		byDoctor := map[string]int{}
		for _, a := range appts {
			byDoctor[a.DoctorName]++
		}
		return map[string]any{
			"total":    len(appts),
			"byDoctor": byDoctor,
		}, nil
	}
}

// GetReports lists the agent's stored report snapshots.
func GetReports(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(context.Background(),
		`SELECT id, agent_id, report_type, date_from, date_to, data, generated_at
		 FROM reports WHERE agent_id = $1 ORDER BY generated_at DESC`, agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to load reports")
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		report, err := scanReport(rows.Scan)
		if err != nil {
			return fail(c, 500, "Failed to read reports")
		}
		reports = append(reports, report)
	}
	return ok(c, reports)
}

// GetReportByID fetches one stored report.
func GetReportByID(c *fiber.Ctx) error {
	row := database.GetDB().QueryRow(context.Background(),
		`SELECT id, agent_id, report_type, date_from, date_to, data, generated_at
		 FROM reports WHERE id = $1 AND agent_id = $2`, c.Params("id"), agentID(c))

	report, err := scanReport(row.Scan)
	if err != nil {
		return fail(c, 404, "Report not found")
	}
	return ok(c, report)
}

// DeleteReport removes a stored report.
func DeleteReport(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(context.Background(),
		"DELETE FROM reports WHERE id = $1 AND agent_id = $2", c.Params("id"), agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to delete report")
	}
	if tag.RowsAffected() == 0 {
		return fail(c, 404, "Report not found")
	}
	return okMessage(c, "Report deleted", nil)
}

// ExportReportCSV renders a stored report as a downloadable CSV.
func ExportReportCSV(c *fiber.Ctx) error {
	row := database.GetDB().QueryRow(context.Background(),
		`SELECT id, agent_id, report_type, date_from, date_to, data, generated_at
		 FROM reports WHERE id = $1 AND agent_id = $2`, c.Params("id"), agentID(c))

	report, err := scanReport(row.Scan)
	if err != nil {
		return fail(c, 404, "Report not found")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Metric", "Value"})
	_ = w.Write([]string{"Report Type", report.Type})
	_ = w.Write([]string{"From", report.DateFrom})
	_ = w.Write([]string{"To", report.DateTo})
	for key, value := range report.Data {
		switch v := value.(type) {
		case map[string]int:
			for name, count := range v {
				_ = w.Write([]string{key + ": " + name, fmt.Sprint(count)})
			}
		case map[string]any:
			for name, count := range v {
				_ = w.Write([]string{key + ": " + name, fmt.Sprint(count)})
			}
		default:
			_ = w.Write([]string{key, fmt.Sprint(v)})
		}
	}
	w.Flush()

	filename := fmt.Sprintf("report-%s-%s.csv", report.Type, report.DateFrom)
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// scanReport reads one report row, decoding the JSONB payload.
func scanReport(scan func(dest ...any) error) (models.Report, error) {
	var report models.Report
	var dateFrom, dateTo time.Time
	var raw []byte
	if err := scan(&report.ID, &report.AgentID, &report.Type, &dateFrom, &dateTo, &raw, &report.GeneratedAt); err != nil {
		return models.Report{}, err
	}
	report.DateFrom = dateFrom.Format("2006-01-02")
	report.DateTo = dateTo.Format("2006-01-02")
	if err := json.Unmarshal(raw, &report.Data); err != nil {
		return models.Report{}, err
	}
	return report, nil
}
