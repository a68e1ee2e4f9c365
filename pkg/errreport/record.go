package errreport

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is one reported failure.
type Record struct {
	Label     string    `json:"label"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail,omitempty"`
	Kind      Kind      `json:"kind"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink stores records.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// MemorySink keeps the most recent records in memory, oldest first.
type MemorySink struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

// NewMemorySink creates a sink holding at most capacity records.
// Non-positive capacity means unbounded.
func NewMemorySink(capacity int) *MemorySink {
	return &MemorySink{capacity: capacity}
}

func (s *MemorySink) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if s.capacity > 0 && len(s.records) > s.capacity {
		s.records = append([]Record(nil), s.records[len(s.records)-s.capacity:]...)
	}
	return nil
}

// Records returns a copy of the stored records.
func (s *MemorySink) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// ByLabel returns stored records with the given label.
func (s *MemorySink) ByLabel(label string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, r := range s.records {
		if r.Label == label {
			out = append(out, r)
		}
	}
	return out
}

// MultiSink appends to every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Append(ctx context.Context, rec Record) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Append(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
