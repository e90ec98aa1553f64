package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/models"
)

// GetProfile returns the authenticated agent's account.
func GetProfile(c *fiber.Ctx) error {
	var agent models.Agent
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id, company_name, email, phone, agent_type, status, mfa_enabled, created_at, updated_at
		 FROM agents WHERE id = $1`, agentID(c)).
		Scan(&agent.ID, &agent.CompanyName, &agent.Email, &agent.Phone,
			&agent.Type, &agent.Status, &agent.MFAEnabled, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return fail(c, 404, "Agent not found")
	}
	return ok(c, agent)
}

// UpdateProfile edits the mutable account fields.
func UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}
	if req.CompanyName == "" {
		return fail(c, 400, "Company name is required")
	}

	var agent models.Agent
	err := database.GetDB().QueryRow(context.Background(),
		`UPDATE agents SET company_name = $1, phone = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING id, company_name, email, phone, agent_type, status, mfa_enabled, created_at, updated_at`,
		req.CompanyName, req.Phone, agentID(c)).
		Scan(&agent.ID, &agent.CompanyName, &agent.Email, &agent.Phone,
			&agent.Type, &agent.Status, &agent.MFAEnabled, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return fail(c, 500, "Failed to update profile")
	}

	return okMessage(c, "Profile updated", agent)
}
