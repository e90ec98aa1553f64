package middleware

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/models"
)

// LoggingMiddleware records every request in the logs table. Writes happen
// on a separate goroutine so a slow audit insert never delays a response.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		responseTime := int(time.Since(start).Milliseconds())
		logEntry := createLogEntry(c, responseTime)
		go saveLogToDB(logEntry)

		return err
	}
}

// createLogEntry captures the request after the handler chain has run.
func createLogEntry(c *fiber.Ctx, responseTime int) models.CreateLogRequest {
	var email *string
	if agentEmail := c.Locals("agent_email"); agentEmail != nil {
		if emailStr, ok := agentEmail.(string); ok {
			email = &emailStr
		}
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.Split(forwarded, ",")[0]
	}

	userAgent := c.Get("User-Agent")
	var userAgentPtr *string
	if userAgent != "" {
		userAgentPtr = &userAgent
	}

	var bodyPtr *string
	if c.Method() == "POST" || c.Method() == "PUT" || c.Method() == "PATCH" {
		body := string(c.Body())
		if body != "" {
			body = filterSensitiveData(body)
			bodyPtr = &body
		}
	}

	var queryPtr *string
	if queryStr := string(c.Request().URI().QueryString()); queryStr != "" {
		queryPtr = &queryStr
	}

	url := c.OriginalURL()
	var urlPtr *string
	if url != "" {
		urlPtr = &url
	}

	logLevel := determineLogLevel(c.Response().StatusCode())

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	return models.CreateLogRequest{
		Method:       c.Method(),
		Path:         c.Path(),
		StatusCode:   c.Response().StatusCode(),
		ResponseTime: &responseTime,
		UserAgent:    userAgentPtr,
		IP:           ip,
		Body:         bodyPtr,
		Query:        queryPtr,
		Email:        email,
		LogLevel:     &logLevel,
		Environment:  &environment,
		URL:          urlPtr,
	}
}

// filterSensitiveData masks credential fields before the body is persisted.
func filterSensitiveData(body string) string {
	sensitiveFields := []string{"password", "mfaCode", "secret", "refreshToken", "accessToken"}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		if len(body) > 1000 {
			return body[:1000] + "...[truncated]"
		}
		return body
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = "[FILTERED]"
		}
	}

	filteredJSON, _ := json.Marshal(data)
	filteredBody := string(filteredJSON)
	if len(filteredBody) > 1000 {
		return filteredBody[:1000] + "...[truncated]"
	}
	return filteredBody
}

func determineLogLevel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return models.LogLevelSuccess
	case statusCode >= 300 && statusCode < 400:
		return models.LogLevelInfo
	case statusCode >= 400 && statusCode < 500:
		return models.LogLevelWarning
	case statusCode >= 500:
		return models.LogLevelError
	default:
		return models.LogLevelInfo
	}
}

func saveLogToDB(logEntry models.CreateLogRequest) {
	db := database.GetDB()
	if db == nil {
		log.Println("Audit log skipped: no database connection")
		return
	}

	query := `
		INSERT INTO logs (
			method, path, status_code, response_time, user_agent, ip,
			body, query, email, log_level, environment, url, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := db.Exec(context.Background(), query,
		logEntry.Method,
		logEntry.Path,
		logEntry.StatusCode,
		logEntry.ResponseTime,
		logEntry.UserAgent,
		logEntry.IP,
		logEntry.Body,
		logEntry.Query,
		logEntry.Email,
		logEntry.LogLevel,
		logEntry.Environment,
		logEntry.URL,
		time.Now(),
	)
	if err != nil {
		log.Printf("Failed to persist audit log: %v", err)
	}
}

// LogCustomEvent records an application event (bulk submission outcomes,
// confirmations) alongside the request logs.
func LogCustomEvent(level, message, agentEmail string, additionalData map[string]interface{}) {
	logEntry := models.CreateLogRequest{
		Method:     "EVENT",
		Path:       "/event",
		StatusCode: 200,
		IP:         "127.0.0.1",
		LogLevel:   &level,
	}

	if agentEmail != "" {
		logEntry.Email = &agentEmail
	}

	if additionalData != nil {
		additionalData["message"] = message
		bodyJSON, _ := json.Marshal(additionalData)
		bodyStr := string(bodyJSON)
		logEntry.Body = &bodyStr
	} else {
		logEntry.Body = &message
	}

	go saveLogToDB(logEntry)
}
