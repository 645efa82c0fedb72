// Package authbridge bridges plaintext credential logins into the host
// application's session subsystem. It sits on the login leg of the OAuth2
// flow, before token issuance.
package authbridge

import (
	"context"
	"log/slog"
	"strings"

	"membergate/internal/platform/metrics"
	dErrors "membergate/pkg/domain-errors"
	"membergate/pkg/secrets"
)

// History actions recorded by the bridge. These records are part of the
// auditability contract, not incidental logging.
const (
	historyLogin       = "login"
	historyLoginFailed = "authentication failed"
	historyLogout      = "logout"
)

const msgSuperadminRefused = "the superadmin account cannot authenticate through this service"

// Authenticator is the host application's credential verification.
// Error Contract: returns an error for bad credentials; the member id is
// only valid when err is nil.
type Authenticator interface {
	Authenticate(ctx context.Context, nick, password string) (int, error)
}

// SessionStore holds the authenticated identity for the host session.
type SessionStore interface {
	SetIdentity(ctx context.Context, memberID int) error
	ClearIdentity(ctx context.Context) error
}

// HistoryLog appends audit records to the host application's history.
type HistoryLog interface {
	Add(ctx context.Context, action, detail string) error
}

// FlashMessages surfaces one-shot messages on the host UI.
type FlashMessages interface {
	AddError(ctx context.Context, message string)
}

// Superadmin carries the privileged account's login and stored password hash.
type Superadmin struct {
	Login        string
	PasswordHash string
}

type Bridge struct {
	auth       Authenticator
	sessions   SessionStore
	history    HistoryLog
	flash      FlashMessages
	superadmin Superadmin
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type Option func(*Bridge)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

func New(auth Authenticator, sessions SessionStore, history HistoryLog, flash FlashMessages, superadmin Superadmin, opts ...Option) *Bridge {
	b := &Bridge{
		auth:       auth,
		sessions:   sessions,
		history:    history,
		flash:      flash,
		superadmin: superadmin,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Login authenticates nick/password and populates the host session. The
// superadmin account is always refused on this path, whether or not its
// password verifies: third-party clients never get superadmin identities.
func (b *Bridge) Login(ctx context.Context, nick, password string) (int, error) {
	if strings.TrimSpace(nick) == "" || strings.TrimSpace(password) == "" {
		b.metrics.IncrementLoginAttempt("rejected")
		return 0, dErrors.New(dErrors.CodeAuthenticationFailed, "missing credentials")
	}

	if b.superadmin.Login != "" && nick == b.superadmin.Login {
		verified := secrets.VerifyWithLegacy(password, b.superadmin.PasswordHash)
		b.logger.ErrorContext(ctx, "superadmin login attempt refused", "verified", verified)
		b.flash.AddError(ctx, msgSuperadminRefused)
		b.metrics.IncrementLoginAttempt("superadmin_refused")
		return 0, dErrors.New(dErrors.CodeAuthenticationFailed, msgSuperadminRefused)
	}

	memberID, err := b.auth.Authenticate(ctx, nick, password)
	if err != nil {
		b.addHistory(ctx, historyLoginFailed, nick)
		b.metrics.IncrementLoginAttempt("failed")
		return 0, dErrors.New(dErrors.CodeAuthenticationFailed, "authentication failed")
	}

	if err := b.sessions.SetIdentity(ctx, memberID); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session identity")
	}
	b.addHistory(ctx, historyLogin, "")
	b.metrics.IncrementLoginAttempt("success")
	return memberID, nil
}

// Logout clears the session identity and records the event.
func (b *Bridge) Logout(ctx context.Context) error {
	if err := b.sessions.ClearIdentity(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session identity")
	}
	b.addHistory(ctx, historyLogout, "")
	return nil
}

func (b *Bridge) addHistory(ctx context.Context, action, detail string) {
	if err := b.history.Add(ctx, action, detail); err != nil {
		b.logger.ErrorContext(ctx, "failed to append history record",
			"action", action,
			"error", err,
		)
	}
}
