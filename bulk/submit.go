package bulk

import (
	"context"
	"errors"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/models"
)

var (
	// ErrNoValidRows means the batch holds nothing submittable; no network
	// call is made in that case.
	ErrNoValidRows = errors.New("no valid entries to submit")
	// ErrSubmitInFlight means another submission for the same agent has not
	// resolved yet.
	ErrSubmitInFlight = errors.New("a bulk submission is already in progress")
)

// BulkCreator is the slice of the upstream client the submitter needs.
type BulkCreator interface {
	BulkCreateAppointments(ctx context.Context, rows []channeling.BulkAppointmentInput) (*channeling.BulkResult, error)
}

// SubmitResult reconciles the upstream's created/failed split with what was
// sent. Created+Failed always equals Submitted.
type SubmitResult struct {
	Submitted  int                      `json:"submitted"`
	Created    int                      `json:"created"`
	Failed     int                      `json:"failed"`
	FailedRows []channeling.BulkFailure `json:"failedRows,omitempty"`
	Bookings   []models.Appointment     `json:"bookings"`
}

// Partial reports whether the upstream rejected some of the batch.
func (r *SubmitResult) Partial() bool {
	return r.Failed > 0
}

// Submit sends the agent's valid rows upstream as one request. On transport
// or upstream failure the batch is left untouched so the agent can retry.
// On success, full or partial, the batch resets to a single empty pending
// row; failed rows are reported but not re-queued.
func (s *Store) Submit(ctx context.Context, agentID int, creator BulkCreator) (*SubmitResult, error) {
	s.mu.Lock()
	b := s.get(agentID)
	if b.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	var payload []channeling.BulkAppointmentInput
	for _, row := range b.rows {
		if row.Status != StatusValid {
			continue
		}
		payload = append(payload, channeling.BulkAppointmentInput{
			DoctorName:     row.DoctorName,
			PatientName:    row.PatientName,
			PatientNIC:     row.PatientNIC,
			PatientEmail:   row.PatientEmail,
			PatientPhone:   row.PatientPhone,
			PaymentMethod:  row.PaymentMethod,
			SLTPhoneNumber: row.SLTPhoneNumber,
			EmployeeNIC:    row.EmployeeNIC,
			Date:           row.Date,
			Time:           row.Time,
		})
	}
	if len(payload) == 0 {
		s.mu.Unlock()
		return nil, ErrNoValidRows
	}
	b.inFlight = true
	s.mu.Unlock()

	result, err := creator.BulkCreateAppointments(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	b.inFlight = false
	if err != nil {
		return nil, err
	}

	b.reset()
	return &SubmitResult{
		Submitted:  len(payload),
		Created:    len(result.Created),
		Failed:     len(result.Failed),
		FailedRows: result.Failed,
		Bookings:   result.Created,
	}, nil
}
