package authbridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// The host membership application normally supplies the Authenticator,
// SessionStore and FlashMessages. The implementations below keep a
// standalone deployment functional: sessions live in process, flashes go to
// the log, and direct logins are refused until a host is wired in.

// MemorySessionStore holds the authenticated identity in process.
type MemorySessionStore struct {
	mu       sync.Mutex
	memberID int
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) SetIdentity(_ context.Context, memberID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberID = memberID
	return nil
}

func (s *MemorySessionStore) ClearIdentity(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberID = 0
	return nil
}

// Identity returns the stored member id, zero when logged out.
func (s *MemorySessionStore) Identity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberID
}

// LogFlash writes flash messages to the structured log.
type LogFlash struct {
	Logger *slog.Logger
}

func (f LogFlash) AddError(ctx context.Context, message string) {
	if f.Logger == nil {
		return
	}
	f.Logger.ErrorContext(ctx, "flash", "message", message)
}

// NoHostAuthenticator rejects every credential pair.
type NoHostAuthenticator struct{}

func (NoHostAuthenticator) Authenticate(context.Context, string, string) (int, error) {
	return 0, errors.New("no host login subsystem configured")
}
