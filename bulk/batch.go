package bulk

import (
	"errors"
	"sync"

	"github.com/echannel-lk/agent-backend/models"
)

var (
	ErrRowNotFound = errors.New("row not found in batch")
)

// Store keeps one working batch per agent. All access goes through the
// store's mutex; batches are in-memory only and reset on restart.
type Store struct {
	mu      sync.Mutex
	batches map[int]*batch
}

type batch struct {
	rows     []Row
	inFlight bool
}

// NewStore creates an empty batch store.
func NewStore() *Store {
	return &Store{batches: make(map[int]*batch)}
}

// get returns the agent's batch, creating one with a single empty pending
// row on first use. Callers must hold s.mu.
func (s *Store) get(agentID int) *batch {
	b, ok := s.batches[agentID]
	if !ok {
		b = &batch{rows: []Row{NewRow()}}
		s.batches[agentID] = b
	}
	return b
}

// Rows returns a copy of the agent's current batch.
func (s *Store) Rows(agentID int) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.get(agentID).rows...)
}

// AddRow appends an empty pending row and returns it.
func (s *Store) AddRow(agentID int) Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(agentID)
	row := NewRow()
	b.rows = append(b.rows, row)
	return row
}

// UpdateRow replaces the editable fields of the identified row. Any edit
// resets the row to pending and clears its previous validation reason.
func (s *Store) UpdateRow(agentID int, updated Row) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(agentID)
	for i, row := range b.rows {
		if row.ID == updated.ID {
			updated.Status = StatusPending
			updated.Error = ""
			b.rows[i] = updated
			return updated, nil
		}
	}
	return Row{}, ErrRowNotFound
}

// RemoveRow deletes a row from the batch.
func (s *Store) RemoveRow(agentID int, rowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(agentID)
	for i, row := range b.rows {
		if row.ID == rowID {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

// Replace swaps the whole batch for freshly parsed rows. Parsing failures
// never reach this point, so the previous batch survives a bad upload.
func (s *Store) Replace(agentID int, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(agentID).rows = append([]Row(nil), rows...)
}

// Validate runs a full atomic pass over the batch and returns the
// reclassified rows with valid/invalid counts.
func (s *Store) Validate(agentID int) ([]Row, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(agentID)
	b.rows = ValidateAll(b.rows)

	valid, invalid := 0, 0
	for _, row := range b.rows {
		switch row.Status {
		case StatusValid:
			valid++
		case StatusInvalid:
			invalid++
		}
	}
	return append([]Row(nil), b.rows...), valid, invalid
}

// Summary reports the valid-row count and the fee estimate shown on the
// bulk page. The true per-row fee is only known after upstream confirmation,
// so the estimate is a flat consultation fee per valid row.
func (s *Store) Summary(agentID int) (int, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	valid := 0
	for _, row := range s.get(agentID).rows {
		if row.Status == StatusValid {
			valid++
		}
	}
	return valid, float64(valid) * models.ConsultationFee
}

// reset puts the batch back to a single empty pending row. Callers must
// hold s.mu.
func (b *batch) reset() {
	b.rows = []Row{NewRow()}
}
