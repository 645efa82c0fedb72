package service

import (
	"context"

	"membergate/internal/platform/middleware"
	dErrors "membergate/pkg/domain-errors"
)

// authorizationFailure logs a rejected claims request, bumps the failure
// counter and returns the user-facing authorization error for the boundary
// to translate into a 401.
func (s *Service) authorizationFailure(ctx context.Context, reason, message string, memberID int) error {
	attrs := []any{
		"reason", reason,
		"member_id", memberID,
	}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	s.logger.WarnContext(ctx, "claims request rejected", attrs...)
	s.metrics.IncrementAuthorizationFailure(reason)
	return dErrors.New(dErrors.CodeUnauthorized, message)
}
