package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/bulk"
	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/config"
	"github.com/echannel-lk/agent-backend/models"
)

// Upstream is the slice of the channeling client the handlers use;
// *channeling.Client satisfies it.
type Upstream interface {
	SearchDoctors(ctx context.Context, filters channeling.DoctorFilters) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	BulkCreateAppointments(ctx context.Context, rows []channeling.BulkAppointmentInput) (*channeling.BulkResult, error)
	ListAppointments(ctx context.Context, filters channeling.AppointmentFilters) ([]models.Appointment, error)
	UnpaidAppointments(ctx context.Context) ([]models.Appointment, error)
	ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string) error
	ListPayments(ctx context.Context, filters channeling.PaymentFilters) ([]models.Payment, error)
	PaymentStats(ctx context.Context) (*models.PaymentStats, error)
}

var (
	cfg      *config.Config
	upstream Upstream
	batches  *bulk.Store
)

// Setup wires the handler package's collaborators. Called once from main.
func Setup(c *config.Config, u Upstream, b *bulk.Store) {
	cfg = c
	upstream = u
	batches = b
}

func agentID(c *fiber.Ctx) int {
	id, _ := c.Locals("agent_id").(int)
	return id
}

func agentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("agent_email").(string)
	return email
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okMessage(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
