package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/bulk"
	"github.com/echannel-lk/agent-backend/middleware"
	"github.com/echannel-lk/agent-backend/models"
)

// GetBulkRows returns the agent's working batch with its summary figures.
func GetBulkRows(c *fiber.Ctx) error {
	rows := batches.Rows(agentID(c))
	validCount, estimate := batches.Summary(agentID(c))
	return ok(c, fiber.Map{
		"rows":            rows,
		"validCount":      validCount,
		"estimatedAmount": estimate,
	})
}

// AddBulkRow appends an empty row to the batch.
func AddBulkRow(c *fiber.Ctx) error {
	row := batches.AddRow(agentID(c))
	return c.Status(201).JSON(fiber.Map{"success": true, "data": row})
}

// UpdateBulkRow edits a row's fields. Edited rows drop back to pending
// until the next validation pass.
func UpdateBulkRow(c *fiber.Ctx) error {
	var row bulk.Row
	if err := c.BodyParser(&row); err != nil {
		return fail(c, 400, "Invalid request body")
	}
	row.ID = c.Params("id")
	row.PaymentMethod = strings.ToUpper(strings.TrimSpace(row.PaymentMethod))
	if row.PaymentMethod != "" && !bulk.ValidPaymentMethod(row.PaymentMethod) {
		return fail(c, 400, "Invalid payment method")
	}

	updated, err := batches.UpdateRow(agentID(c), row)
	if err != nil {
		return fail(c, 404, "Row not found")
	}
	return ok(c, updated)
}

// DeleteBulkRow removes a row from the batch.
func DeleteBulkRow(c *fiber.Ctx) error {
	if err := batches.RemoveRow(agentID(c), c.Params("id")); err != nil {
		return fail(c, 404, "Row not found")
	}
	return okMessage(c, "Row removed", nil)
}

// UploadBulkCSV parses an uploaded CSV and replaces the batch with its
// rows. Every failure path leaves the existing batch untouched.
func UploadBulkCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, 400, "CSV file is required")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return fail(c, 400, "Only .csv files are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, 400, "Could not read uploaded file")
	}
	defer file.Close()

	rows, skipped, err := bulk.ParseCSV(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
			"skipped": skipped,
		})
	}

	batches.Replace(agentID(c), rows)

	return okMessage(c, fmt.Sprintf("%d rows imported", len(rows)), fiber.Map{
		"rows":    rows,
		"skipped": skipped,
	})
}

// ValidateBulkRows reruns validation over the whole batch and reports the
// valid/invalid split.
func ValidateBulkRows(c *fiber.Ctx) error {
	rows, valid, invalid := batches.Validate(agentID(c))
	return okMessage(c, fmt.Sprintf("%d valid, %d invalid entries", valid, invalid), fiber.Map{
		"rows":    rows,
		"valid":   valid,
		"invalid": invalid,
	})
}

// SubmitBulkBooking sends the valid rows upstream as a single batch and
// reconciles the created/failed split.
func SubmitBulkBooking(c *fiber.Ctx) error {
	result, err := batches.Submit(c.Context(), agentID(c), upstream)
	if err != nil {
		switch {
		case errors.Is(err, bulk.ErrNoValidRows):
			return fail(c, 400, "No valid entries. Please validate your data first")
		case errors.Is(err, bulk.ErrSubmitInFlight):
			return fail(c, 409, "A bulk submission is already in progress")
		default:
			return fail(c, 502, "Bulk booking failed: "+err.Error())
		}
	}

	var message string
	if result.Partial() {
		message = fmt.Sprintf("%d appointments created, %d failed", result.Created, result.Failed)
		middleware.LogCustomEvent(models.LogLevelWarning, "Bulk booking partially complete", agentEmail(c),
			map[string]interface{}{
				"submitted": result.Submitted,
				"created":   result.Created,
				"failed":    result.Failed,
				"failures":  result.FailedRows,
			})
	} else {
		message = fmt.Sprintf("All %d appointments created successfully", result.Created)
		middleware.LogCustomEvent(models.LogLevelSuccess, "Bulk booking complete", agentEmail(c),
			map[string]interface{}{"created": result.Created})
	}
	createNotification(agentID(c), "Bulk Booking Processed", message)

	return okMessage(c, message, result)
}

// DownloadBulkTemplate serves the example CSV for the bulk upload format.
func DownloadBulkTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+bulk.TemplateFilename+`"`)
	return c.Send(bulk.Template())
}
