package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the outcome of a submission as seen by the history view.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobPrinted JobStatus = "printed"
	JobFailed  JobStatus = "failed"
)

const defaultLimit = 50

// Job is one submission in the history.
type Job struct {
	ID       uuid.UUID
	Kind     string
	Path     string
	Status   JobStatus
	Error    string
	Started  time.Time
	Finished time.Time
}

// Duration returns how long the job took, or how long it has been running.
func (j Job) Duration(now time.Time) time.Duration {
	if j.Finished.IsZero() {
		return now.Sub(j.Started)
	}
	return j.Finished.Sub(j.Started)
}

// Health records the result of the most recent backend ping.
type Health struct {
	Checked             bool
	CheckedAt           time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the backend has been unreachable for multiple pings.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Jobs    []Job // newest first
	Health  Health
	Printed int
	Failed  int
}

// Store coordinates concurrent updates from the controller, the health poller
// and the UI.
type Store struct {
	mu      sync.RWMutex
	limit   int
	jobs    []Job // oldest first
	health  Health
	printed int
	failed  int
}

// NewStore returns a Store keeping at most limit jobs.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Store{limit: limit}
}

// Begin records a new pending job.
func (s *Store) Begin(id uuid.UUID, kind, path string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limit <= 0 {
		s.limit = defaultLimit
	}
	s.jobs = append(s.jobs, Job{ID: id, Kind: kind, Path: path, Status: JobPending, Started: at})
	if over := len(s.jobs) - s.limit; over > 0 {
		s.jobs = append(s.jobs[:0:0], s.jobs[over:]...)
	}
}

// Finish marks the job as printed, or as failed with errMsg when failed is true.
// Unknown ids are ignored; the job may already have been evicted.
func (s *Store) Finish(id uuid.UUID, failed bool, errMsg string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		s.failed++
	} else {
		s.printed++
	}
	for i := len(s.jobs) - 1; i >= 0; i-- {
		if s.jobs[i].ID != id {
			continue
		}
		s.jobs[i].Finished = at
		s.jobs[i].Error = errMsg
		s.jobs[i].Status = JobPrinted
		if failed {
			s.jobs[i].Status = JobFailed
		}
		return
	}
}

// SetHealth records a ping result. When err is nil the failure count resets.
func (s *Store) SetHealth(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health.Checked = true
	s.health.CheckedAt = time.Now()
	s.health.LastError = err
	if err != nil {
		s.health.ConsecutiveFailures++
		return
	}
	s.health.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Health:  s.health,
		Printed: s.printed,
		Failed:  s.failed,
	}
	if s.health.LastError != nil {
		snap.Health.LastError = fmt.Errorf("%w", s.health.LastError)
	}
	if len(s.jobs) > 0 {
		snap.Jobs = make([]Job, len(s.jobs))
		for i, job := range s.jobs {
			snap.Jobs[len(s.jobs)-1-i] = job
		}
	}
	return snap
}
