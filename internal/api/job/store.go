// internal/api/job/store.go
package job

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockscope/stockscope/internal/core"
)

// Status represents job status.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Job tracks one asynchronous report generation.
type Job struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Status    Status    `json:"status"`
	Progress  int       `json:"progress"`
	Path      string    `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store manages report jobs in memory. Jobs age out after the TTL and the
// oldest is evicted when the store is full.
type Store struct {
	jobs    map[string]*Job
	order   []string // insertion order for eviction
	maxSize int
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewStore creates a job store holding at most maxSize jobs for ttl each.
// A ttl of zero disables expiry.
func NewStore(maxSize int, ttl time.Duration) *Store {
	return &Store{
		jobs:    make(map[string]*Job),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Create registers a new pending job for ticker and returns a copy of it.
func (s *Store) Create(ticker string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.pruneLocked(now)

	job := &Job{
		ID:        uuid.New().String(),
		Ticker:    ticker,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Evict oldest if at capacity
	if len(s.jobs) >= s.maxSize && len(s.order) > 0 {
		oldest := s.order[0]
		delete(s.jobs, oldest)
		s.order = s.order[1:]
	}

	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)

	jobCopy := *job
	return &jobCopy
}

// Get retrieves a job by ID. Expired jobs count as missing.
func (s *Store) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok || s.expired(job, time.Now()) {
		return nil, core.ErrJobNotFound
	}

	// Return copy to prevent race conditions
	jobCopy := *job
	return &jobCopy, nil
}

// Update modifies a job using an update function.
func (s *Store) Update(id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return core.ErrJobNotFound
	}

	fn(job)
	job.UpdatedAt = time.Now()
	return nil
}

// List returns copies of all live jobs, oldest first.
func (s *Store) List() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	result := make([]Job, 0, len(s.jobs))
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok && !s.expired(job, now) {
			result = append(result, *job)
		}
	}
	return result
}

func (s *Store) expired(job *Job, now time.Time) bool {
	return s.ttl > 0 && now.Sub(job.UpdatedAt) > s.ttl
}

// pruneLocked drops expired jobs. Callers must hold the write lock.
func (s *Store) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if job, ok := s.jobs[id]; ok && s.expired(job, now) {
			delete(s.jobs, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}
