package models

import (
	"time"
)

// Agent represents a corporate agent account in the agents table.
type Agent struct {
	ID          int       `json:"id" db:"id"`
	CompanyName string    `json:"companyName" db:"company_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Password    string    `json:"-" db:"password"`
	Type        string    `json:"type" db:"agent_type"`
	Status      string    `json:"status" db:"status"`
	MFAEnabled  bool      `json:"mfaEnabled" db:"mfa_enabled"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Valid agent types and statuses.
const (
	AgentTypeCorporate  = "corporate"
	AgentTypeIndividual = "individual"

	AgentStatusActive   = "active"
	AgentStatusInactive = "inactive"
)

type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Type        string `json:"type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
}
