package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/middleware"
	"github.com/echannel-lk/agent-backend/models"
)

// RegisterAgent creates a corporate agent account.
func RegisterAgent(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}

	if req.CompanyName == "" || req.Email == "" || req.Password == "" {
		return fail(c, 400, "Company name, email and password are required")
	}
	if req.Type == "" {
		req.Type = models.AgentTypeCorporate
	}
	if req.Type != models.AgentTypeCorporate && req.Type != models.AgentTypeIndividual {
		return fail(c, 400, "Invalid agent type")
	}

	var exists int
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT COUNT(*) FROM agents WHERE email = $1", req.Email).Scan(&exists)
	if err != nil {
		return fail(c, 500, "Internal server error")
	}
	if exists > 0 {
		return fail(c, 409, "Email is already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, 500, "Failed to process password")
	}

	var agent models.Agent
	err = database.GetDB().QueryRow(context.Background(),
		`INSERT INTO agents (company_name, email, phone, password, agent_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, company_name, email, phone, agent_type, status, created_at, updated_at`,
		req.CompanyName, req.Email, req.Phone, string(hashedPassword), req.Type, models.AgentStatusActive).
		Scan(&agent.ID, &agent.CompanyName, &agent.Email, &agent.Phone, &agent.Type, &agent.Status, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return fail(c, 500, "Failed to create agent")
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Agent registered successfully",
		"data":    fiber.Map{"agent": agent},
	})
}

// Login authenticates an agent and opens a session.
func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid request body")
	}

	var agent models.Agent
	var mfaSecret *string
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id, company_name, email, phone, password, agent_type, status, mfa_enabled, mfa_secret, created_at, updated_at
		 FROM agents WHERE email = $1`, req.Email).
		Scan(&agent.ID, &agent.CompanyName, &agent.Email, &agent.Phone, &agent.Password,
			&agent.Type, &agent.Status, &agent.MFAEnabled, &mfaSecret, &agent.CreatedAt, &agent.UpdatedAt)
	if err != nil {
		return fail(c, 401, "Invalid credentials")
	}

	if agent.Status != models.AgentStatusActive {
		return fail(c, 403, "Agent account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte(req.Password)); err != nil {
		return fail(c, 401, "Invalid credentials")
	}

	if agent.MFAEnabled {
		if req.MFACode == "" {
			return c.Status(401).JSON(fiber.Map{
				"success":     false,
				"message":     "MFA code required",
				"mfaRequired": true,
			})
		}
		if mfaSecret == nil || !totp.Validate(req.MFACode, *mfaSecret) {
			return fail(c, 401, "Invalid MFA code")
		}
	}

	tokens, err := openSession(agent.ID, agent.Email)
	if err != nil {
		return fail(c, 500, "Failed to create session")
	}

	agent.Password = ""
	return okMessage(c, "Login successful", fiber.Map{
		"agent":  agent,
		"tokens": tokens,
	})
}

// RefreshToken rotates a refresh token and issues a new access token.
func RefreshToken(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return fail(c, 400, "Refresh token required")
	}

	var agentID int
	var email string
	var expiresAt time.Time
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT s.agent_id, a.email, s.expires_at
		 FROM sessions s JOIN agents a ON a.id = s.agent_id
		 WHERE s.refresh_token = $1`, req.RefreshToken).
		Scan(&agentID, &email, &expiresAt)
	if err != nil {
		return fail(c, 401, "Invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_, _ = database.GetDB().Exec(context.Background(),
			"DELETE FROM sessions WHERE refresh_token = $1", req.RefreshToken)
		return fail(c, 401, "Refresh token expired")
	}

	// Rotation: the presented token is consumed either way.
	_, _ = database.GetDB().Exec(context.Background(),
		"DELETE FROM sessions WHERE refresh_token = $1", req.RefreshToken)

	tokens, err := openSession(agentID, email)
	if err != nil {
		return fail(c, 500, "Failed to refresh session")
	}

	return ok(c, fiber.Map{"tokens": tokens})
}

// Logout closes the session identified by the refresh token.
func Logout(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err == nil && req.RefreshToken != "" {
		_, _ = database.GetDB().Exec(context.Background(),
			"DELETE FROM sessions WHERE refresh_token = $1", req.RefreshToken)
	}
	return okMessage(c, "Logged out", nil)
}

// openSession issues a token pair and persists the refresh half.
func openSession(agentID int, email string) (*models.TokenPair, error) {
	accessToken, err := middleware.GenerateJWT(agentID, email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	_, err = database.GetDB().Exec(context.Background(),
		"INSERT INTO sessions (agent_id, refresh_token, expires_at) VALUES ($1, $2, $3)",
		agentID, refreshToken, time.Now().Add(cfg.RefreshTokenTTL))
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SetupMFA generates a TOTP secret for the agent. MFA stays disabled until
// the first code is verified.
func SetupMFA(c *fiber.Ctx) error {
	email := agentEmail(c)

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "eChannel Agent Portal",
		AccountName: email,
	})
	if err != nil {
		return fail(c, 500, "Failed to generate MFA secret")
	}

	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE agents SET mfa_secret = $1, mfa_enabled = FALSE, updated_at = NOW() WHERE id = $2",
		key.Secret(), agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to store MFA secret")
	}

	return ok(c, fiber.Map{
		"secret":     key.Secret(),
		"otpauthUrl": key.URL(),
	})
}

// VerifyMFA checks the first TOTP code and enables MFA.
func VerifyMFA(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return fail(c, 400, "MFA code required")
	}

	var secret *string
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT mfa_secret FROM agents WHERE id = $1", agentID(c)).Scan(&secret)
	if err != nil || secret == nil {
		return fail(c, 400, "MFA setup has not been started")
	}

	if !totp.Validate(req.Code, *secret) {
		return fail(c, 401, "Invalid MFA code")
	}

	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE agents SET mfa_enabled = TRUE, updated_at = NOW() WHERE id = $1", agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to enable MFA")
	}

	return okMessage(c, "MFA enabled", nil)
}

// DisableMFA turns MFA off after re-checking the password.
func DisableMFA(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return fail(c, 400, "Password required")
	}

	var hashed string
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT password FROM agents WHERE id = $1", agentID(c)).Scan(&hashed)
	if err != nil {
		return fail(c, 500, "Internal server error")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)); err != nil {
		return fail(c, 401, "Invalid password")
	}

	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE agents SET mfa_enabled = FALSE, mfa_secret = NULL, updated_at = NOW() WHERE id = $1", agentID(c))
	if err != nil {
		return fail(c, 500, "Failed to disable MFA")
	}

	return okMessage(c, "MFA disabled", nil)
}
