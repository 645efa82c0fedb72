// Package service implements claims assembly: eligibility gates, the base
// claim set and the scope-gated claim groups exposed to relying clients.
package service

import (
	"context"
	"log/slog"

	"membergate/internal/claims/models"
	"membergate/internal/platform/metrics"
)

// MemberStore defines the read-only lookup interface for member data.
// Error Contract: LoadByID returns store.ErrNotFound (wrapped) when the
// member doesn't exist.
type MemberStore interface {
	LoadByID(ctx context.Context, id int) (*models.Member, error)
	ListSocialsForMember(ctx context.Context, id int) ([]models.Social, error)
}

type Service struct {
	members MemberStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(members MemberStore, opts ...Option) *Service {
	svc := &Service{
		members: members,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
