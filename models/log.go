package models

// CreateLogRequest is one audit-log entry as written by the logging middleware.
type CreateLogRequest struct {
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	StatusCode   int     `json:"status_code"`
	ResponseTime *int    `json:"response_time,omitempty"`
	UserAgent    *string `json:"user_agent,omitempty"`
	IP           string  `json:"ip"`
	Body         *string `json:"body,omitempty"`
	Query        *string `json:"query,omitempty"`
	Email        *string `json:"email,omitempty"`
	LogLevel     *string `json:"log_level,omitempty"`
	Environment  *string `json:"environment,omitempty"`
	URL          *string `json:"url,omitempty"`
}

// Log levels derived from response status codes.
const (
	LogLevelSuccess = "success"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)
