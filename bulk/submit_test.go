package bulk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/models"
)

type fakeCreator struct {
	mu       sync.Mutex
	calls    int
	payloads [][]channeling.BulkAppointmentInput
	result   *channeling.BulkResult
	err      error
	block    chan struct{}
}

func (f *fakeCreator) BulkCreateAppointments(ctx context.Context, rows []channeling.BulkAppointmentInput) (*channeling.BulkResult, error) {
	f.mu.Lock()
	f.calls++
	f.payloads = append(f.payloads, rows)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.result, f.err
}

func validatedStore(t *testing.T, rows ...Row) *Store {
	t.Helper()
	store := NewStore()
	store.Replace(1, rows)
	store.Validate(1)
	return store
}

func TestSubmit_RefusedWithNoValidRows(t *testing.T) {
	store := NewStore()
	bad := completeRow()
	bad.PatientEmail = "broken"
	store.Replace(1, []Row{bad})
	store.Validate(1)

	creator := &fakeCreator{}
	_, err := store.Submit(context.Background(), 1, creator)

	assert.ErrorIs(t, err, ErrNoValidRows)
	assert.Zero(t, creator.calls, "refusal must not reach the network")
}

func TestSubmit_PendingRowsAreNotSubmittable(t *testing.T) {
	store := NewStore()
	store.Replace(1, []Row{completeRow()}) // never validated

	creator := &fakeCreator{}
	_, err := store.Submit(context.Background(), 1, creator)

	assert.ErrorIs(t, err, ErrNoValidRows)
	assert.Zero(t, creator.calls)
}

func TestSubmit_PayloadStripsTemporaryIDsAndInvalidRows(t *testing.T) {
	good := completeRow()
	bad := completeRow()
	bad.PatientEmail = "broken"
	store := validatedStore(t, good, bad)

	creator := &fakeCreator{result: &channeling.BulkResult{
		Created: []models.Appointment{{ID: "apt-1"}},
	}}
	result, err := store.Submit(context.Background(), 1, creator)
	require.NoError(t, err)

	require.Len(t, creator.payloads, 1)
	payload := creator.payloads[0]
	require.Len(t, payload, 1, "only valid rows are submitted")
	assert.Equal(t, good.PatientName, payload[0].PatientName)
	assert.Equal(t, good.PaymentMethod, payload[0].PaymentMethod)
	assert.Equal(t, 1, result.Submitted)
}

func TestSubmit_FullSuccessResetsBatch(t *testing.T) {
	store := validatedStore(t, completeRow(), completeRow(), completeRow())

	creator := &fakeCreator{result: &channeling.BulkResult{
		Created: []models.Appointment{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}}
	result, err := store.Submit(context.Background(), 1, creator)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Submitted)
	assert.Equal(t, 3, result.Created)
	assert.Zero(t, result.Failed)
	assert.False(t, result.Partial())

	rows := store.Rows(1)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPending, rows[0].Status)
	assert.Empty(t, rows[0].PatientName)
}

func TestSubmit_PartialFailureStillResetsBatch(t *testing.T) {
	store := validatedStore(t, completeRow(), completeRow(), completeRow())

	creator := &fakeCreator{result: &channeling.BulkResult{
		Created: []models.Appointment{{ID: "a"}, {ID: "b"}},
		Failed:  []channeling.BulkFailure{{PatientName: "John Smith", Reason: "slot taken"}},
	}}
	result, err := store.Submit(context.Background(), 1, creator)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Partial())
	assert.Equal(t, result.Submitted, result.Created+result.Failed)
	require.Len(t, result.FailedRows, 1)
	assert.Equal(t, "slot taken", result.FailedRows[0].Reason)

	// Failed rows are reported, not re-queued.
	rows := store.Rows(1)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusPending, rows[0].Status)
}

func TestSubmit_UpstreamErrorLeavesBatchUntouched(t *testing.T) {
	store := validatedStore(t, completeRow(), completeRow())
	before := store.Rows(1)

	creator := &fakeCreator{err: errors.New("upstream returned status 500")}
	_, err := store.Submit(context.Background(), 1, creator)
	require.Error(t, err)

	assert.Equal(t, before, store.Rows(1), "batch must survive a failed submit for retry")

	// The in-flight flag is released, so a retry is possible.
	creator2 := &fakeCreator{result: &channeling.BulkResult{Created: []models.Appointment{{}, {}}}}
	_, err = store.Submit(context.Background(), 1, creator2)
	assert.NoError(t, err)
}

func TestSubmit_ConcurrentSubmitRejected(t *testing.T) {
	store := validatedStore(t, completeRow())

	block := make(chan struct{})
	creator := &fakeCreator{
		result: &channeling.BulkResult{Created: []models.Appointment{{}}},
		block:  block,
	}

	done := make(chan error, 1)
	go func() {
		_, err := store.Submit(context.Background(), 1, creator)
		done <- err
	}()

	// Wait for the first submit to be in flight.
	require.Eventually(t, func() bool {
		creator.mu.Lock()
		defer creator.mu.Unlock()
		return creator.calls == 1
	}, time.Second, time.Millisecond)

	_, err := store.Submit(context.Background(), 1, &fakeCreator{})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(block)
	require.NoError(t, <-done)
}
