package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/middleware"
	"github.com/echannel-lk/agent-backend/models"
)

// CreateAppointment books a single appointment through the upstream.
func CreateAppointment(c *fiber.Ctx) error {
	var req models.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}

	if req.DoctorName == "" || req.PatientName == "" || req.PatientEmail == "" ||
		req.PatientPhone == "" || req.Date == "" || req.Time == "" {
		return fail(c, 400, "All appointment fields are required")
	}

	appt, err := upstream.CreateAppointment(c.Context(), req)
	if err != nil {
		return fail(c, 502, err.Error())
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Appointment booked",
		"data":    appt,
	})
}

// GetAppointments lists appointments with optional filters. The free-text
// search is applied here over patient and doctor names, matching the
// dashboard's filtering.
func GetAppointments(c *fiber.Ctx) error {
	filters := channeling.AppointmentFilters{
		Status:   c.Query("status"),
		Doctor:   c.Query("doctor"),
		Hospital: c.Query("hospital"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}

	appts, err := upstream.ListAppointments(c.Context(), filters)
	if err != nil {
		return fail(c, 502, err.Error())
	}

	if search := strings.ToLower(c.Query("search")); search != "" {
		filtered := make([]models.Appointment, 0, len(appts))
		for _, a := range appts {
			if strings.Contains(strings.ToLower(a.PatientName), search) ||
				strings.Contains(strings.ToLower(a.DoctorName), search) {
				filtered = append(filtered, a)
			}
		}
		appts = filtered
	}

	return ok(c, appts)
}

// GetUnpaidAppointments returns the pending-confirmation queue.
func GetUnpaidAppointments(c *fiber.Ctx) error {
	appts, err := upstream.UnpaidAppointments(c.Context())
	if err != nil {
		return fail(c, 502, err.Error())
	}

	// The queue only shows entries still awaiting an agent decision.
	pending := make([]models.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Status == models.AppointmentStatusPending {
			pending = append(pending, a)
		}
	}
	return ok(c, pending)
}

// ConfirmAppointment confirms a pending appointment upstream, then returns
// the authoritative refreshed queue. Any divergence between the tentative
// local removal on the dashboard and this list is resolved in the list's
// favor.
func ConfirmAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	appt, err := upstream.ConfirmAppointment(c.Context(), id)
	if err != nil {
		return fail(c, 502, err.Error())
	}

	createNotification(agentID(c), "Appointment Confirmed",
		"Appointment for "+appt.PatientName+" has been confirmed. The patient has been notified by email.")
	middleware.LogCustomEvent(models.LogLevelSuccess, "Appointment confirmed", agentEmail(c),
		map[string]interface{}{"appointment_id": id})

	queue, err := upstream.UnpaidAppointments(c.Context())
	if err != nil {
		// Confirmation already happened; report it even if the refetch failed.
		return okMessage(c, "Appointment confirmed", fiber.Map{"appointment": appt})
	}
	return okMessage(c, "Appointment confirmed", fiber.Map{
		"appointment": appt,
		"pending":     queue,
	})
}

// CancelAppointment cancels a pending appointment with a reason.
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.CancelAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return fail(c, 400, "Cancellation reason is required")
	}

	if err := upstream.CancelAppointment(c.Context(), id, strings.TrimSpace(req.Reason)); err != nil {
		return fail(c, 502, err.Error())
	}

	createNotification(agentID(c), "Appointment Cancelled",
		"Appointment "+id+" has been cancelled. The patient has been notified by email.")
	middleware.LogCustomEvent(models.LogLevelInfo, "Appointment cancelled", agentEmail(c),
		map[string]interface{}{"appointment_id": id, "reason": req.Reason})

	queue, err := upstream.UnpaidAppointments(c.Context())
	if err != nil {
		return okMessage(c, "Appointment cancelled", nil)
	}
	return okMessage(c, "Appointment cancelled", fiber.Map{"pending": queue})
}
