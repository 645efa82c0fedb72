// Package httptransport is the thin HTTP layer. It delegates to the claims
// core without embedding business logic so transport concerns stay isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	contracts "membergate/contracts/claims"
	"membergate/internal/claims/models"
	"membergate/internal/platform/config"
	"membergate/internal/resourceserver"
	"membergate/internal/scope"
	dErrors "membergate/pkg/domain-errors"
)

// ClaimsService assembles the claims payload for a validated grant.
type ClaimsService interface {
	Assemble(ctx context.Context, memberID int, options, scopes []string) (models.ClaimsPayload, error)
}

// TokenValidator validates the inbound bearer token.
type TokenValidator interface {
	ValidateRequest(r *http.Request) (*resourceserver.Grant, error)
}

// SessionCloser forces the host session closed after an authorization
// failure so a rejected member isn't left half logged in.
type SessionCloser interface {
	Logout(ctx context.Context) error
}

type Handler struct {
	validator TokenValidator
	claims    ClaimsService
	sessions  SessionCloser
	cfg       config.Store
	catalog   *scope.Catalog
	logger    *slog.Logger
}

func NewHandler(validator TokenValidator, claims ClaimsService, sessions SessionCloser, cfg config.Store, catalog *scope.Catalog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		validator: validator,
		claims:    claims,
		sessions:  sessions,
		cfg:       cfg,
		catalog:   catalog,
		logger:    logger,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so error
// envelopes stay consistent: {"message": <text>} with the mapped status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case dErrors.CodeUnauthorized, dErrors.CodeAuthenticationFailed:
			status = http.StatusUnauthorized
			message = dErrors.Message(err)
		case dErrors.CodeNotFound:
			status = http.StatusNotFound
			message = dErrors.Message(err)
		case dErrors.CodeInvalidInput:
			status = http.StatusBadRequest
			message = dErrors.Message(err)
		}
	}
	writeJSON(w, status, contracts.ErrorResponse{Message: message})
}
