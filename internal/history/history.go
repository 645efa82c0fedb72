// Package history records login, logout and authentication-failure events
// into the host application's history. Records are an auditability contract:
// callers rely on them being appended, not just logged.
package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"membergate/internal/platform/middleware"
)

// Record is one history entry. Keep it transport-agnostic so sinks can fan out.
type Record struct {
	ID        uuid.UUID
	Timestamp time.Time
	Action    string
	Detail    string
	RequestID string
}

// Sink persists history records, append-only.
type Sink interface {
	Append(ctx context.Context, record Record) error
}

// Recorder timestamps and enriches records before handing them to the sink.
// It satisfies the bridge's HistoryLog interface.
type Recorder struct {
	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

type RecorderOption func(*Recorder)

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

func NewRecorder(sink Sink, logger *slog.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

func (r *Recorder) Add(ctx context.Context, action, detail string) error {
	record := Record{
		ID:        uuid.New(),
		Timestamp: r.now().UTC(),
		Action:    action,
		Detail:    detail,
		RequestID: middleware.GetRequestID(ctx),
	}
	r.logger.InfoContext(ctx, action,
		"detail", detail,
		"history_id", record.ID.String(),
		"log_type", "audit",
	)
	return r.sink.Append(ctx, record)
}

// MemorySink keeps records in memory for tests and local development.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything appended so far.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}
