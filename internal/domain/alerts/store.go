package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps alerts in memory. Resolved alerts leave the active set but stay
// in the history for per-patient queries.
type Store struct {
	mu      sync.RWMutex
	active  map[uuid.UUID]*EmergencyAlert
	history []*EmergencyAlert
}

// NewStore returns an empty alert store.
func NewStore() *Store {
	return &Store{active: make(map[uuid.UUID]*EmergencyAlert)}
}

// Add inserts the alert into the active set and the history.
func (s *Store) Add(a *EmergencyAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[a.ID] = a
	s.history = append(s.history, a)
}

// Resolve marks the alert resolved and removes it from the active set. It
// returns false if no active alert has the given ID.
func (s *Store) Resolve(id uuid.UUID, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.active[id]
	if !ok {
		return false
	}
	a.Resolved = true
	a.ResolvedAt = &at
	delete(s.active, id)
	return true
}

// Active returns snapshots of all currently unresolved alerts, oldest first.
// Copies keep callers (JSON marshaling in handlers) safe from a concurrent
// Resolve mutating the stored structs.
func (s *Store) Active() []EmergencyAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EmergencyAlert, 0, len(s.active))
	for _, a := range s.history {
		if !a.Resolved {
			out = append(out, *a)
		}
	}
	return out
}

// ByPatient returns snapshots of every alert ever raised for the patient,
// oldest first.
func (s *Store) ByPatient(patientID string) []EmergencyAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []EmergencyAlert
	for _, a := range s.history {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out
}
