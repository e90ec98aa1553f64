package models

import (
	"time"
)

// Report is a generated report snapshot stored in the reports table.
type Report struct {
	ID          string         `json:"id" db:"id"`
	AgentID     int            `json:"agentId" db:"agent_id"`
	Type        string         `json:"type" db:"report_type"`
	DateFrom    string         `json:"dateFrom" db:"date_from"`
	DateTo      string         `json:"dateTo" db:"date_to"`
	Data        map[string]any `json:"data" db:"data"`
	GeneratedAt time.Time      `json:"generatedAt" db:"generated_at"`
}

const (
	ReportTypeAppointments = "appointments"
	ReportTypeRevenue      = "revenue"
	ReportTypeDoctors      = "doctors"
)

type GenerateReportRequest struct {
	Type     string `json:"type"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// DashboardStats backs the dashboard KPI cards.
type DashboardStats struct {
	TotalAppointments    int     `json:"totalAppointments"`
	PendingConfirmations int     `json:"pendingConfirmations"`
	Revenue              float64 `json:"revenue"`
	RevenueChange        float64 `json:"revenueChange"`
	AppointmentsChange   float64 `json:"appointmentsChange"`
	ActiveDoctors        int     `json:"activeDoctors"`
	DoctorsChange        float64 `json:"doctorsChange"`
}
