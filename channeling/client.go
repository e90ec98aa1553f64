package channeling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/echannel-lk/agent-backend/models"
)

// Client is a REST client for the upstream hospital channeling API. The base
// URL is fixed at construction; nothing here consults the environment.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// envelope is the upstream API's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a channeling client. A zero timeout falls back to 20s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do performs one request and decodes the envelope's data field into out.
// Non-2xx responses and success:false bodies both come back as errors with
// the upstream message when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("channeling: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("channeling: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("channeling: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("channeling: read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("channeling: malformed response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("channeling: %s", msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("channeling: decode response data: %w", err)
		}
	}
	return nil
}

// SearchDoctors queries the upstream doctor directory.
func (c *Client) SearchDoctors(ctx context.Context, filters DoctorFilters) ([]models.Doctor, error) {
	query := url.Values{}
	if filters.Query != "" {
		query.Set("q", filters.Query)
	}
	if filters.Specialty != "" {
		query.Set("specialty", filters.Specialty)
	}
	if filters.Hospital != "" {
		query.Set("hospital", filters.Hospital)
	}

	var doctors []models.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors", query, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor fetches one doctor by id.
func (c *Client) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id), nil, nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// CreateAppointment books a single appointment upstream.
func (c *Client) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// BulkCreateAppointments submits a batch of bookings in one request and
// returns the upstream's created/failed split. There is no retry and no
// idempotency key; duplicate delivery is the upstream's problem to detect.
func (c *Client) BulkCreateAppointments(ctx context.Context, rows []BulkAppointmentInput) (*BulkResult, error) {
	var result BulkResult
	if err := c.do(ctx, http.MethodPost, "/appointments/bulk", nil, rows, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAppointments fetches appointments matching the filters.
func (c *Client) ListAppointments(ctx context.Context, filters AppointmentFilters) ([]models.Appointment, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.Doctor != "" {
		query.Set("doctor", filters.Doctor)
	}
	if filters.Hospital != "" {
		query.Set("hospital", filters.Hospital)
	}
	if filters.DateFrom != "" {
		query.Set("dateFrom", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query.Set("dateTo", filters.DateTo)
	}

	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", query, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// UnpaidAppointments fetches the pending-confirmation queue.
func (c *Client) UnpaidAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/unpaid", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// ConfirmAppointment confirms a pending appointment.
func (c *Client) ConfirmAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments/"+url.PathEscape(id)+"/confirm", nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// CancelAppointment cancels a pending appointment with a reason.
func (c *Client) CancelAppointment(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPost, "/appointments/"+url.PathEscape(id)+"/cancel", nil, body, nil)
}

// ListPayments fetches payments matching the filters.
func (c *Client) ListPayments(ctx context.Context, filters PaymentFilters) ([]models.Payment, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.Method != "" {
		query.Set("method", filters.Method)
	}

	var payments []models.Payment
	if err := c.do(ctx, http.MethodGet, "/payments", query, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// PaymentStats fetches the aggregate payment figures.
func (c *Client) PaymentStats(ctx context.Context) (*models.PaymentStats, error) {
	var stats models.PaymentStats
	if err := c.do(ctx, http.MethodGet, "/payments/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
