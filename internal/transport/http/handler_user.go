package httptransport

import (
	"context"
	"net/http"

	"membergate/internal/policy"
	platformstrings "membergate/internal/platform/strings"
	dErrors "membergate/pkg/domain-errors"
)

// handleUser is the userinfo-style endpoint relying clients call with their
// bearer token. The grant triple from the token is trusted as-is; the access
// policy merges in the client's configured options and scopes.
func (h *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	grant, err := h.validator.ValidateRequest(r)
	if err != nil {
		h.logger.WarnContext(ctx, "bearer token rejected", "error", err)
		writeError(w, err)
		return
	}

	// Unknown granted scopes are logged and ignored, never fatal, so scope
	// negotiation stays forward-compatible.
	if h.catalog != nil {
		for _, granted := range grant.Scopes {
			h.catalog.Lookup(granted)
		}
	}

	options := h.resolveOptions(grant.ClientID)
	scopes := policy.MergeScopes(h.cfg, grant.ClientID, grant.Scopes, false)

	payload, err := h.claims.Assemble(ctx, grant.MemberID, options, scopes)
	if err != nil {
		h.logger.ErrorContext(ctx, "claims request failed",
			"member_id", grant.MemberID,
			"client_id", grant.ClientID,
			"error", err,
		)
		if dErrors.IsAuthorization(err) {
			h.forceLogout(ctx)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

// resolveOptions combines the client's explicit option flags with the gate
// implied by its required authorization level. An unconfigured or
// misconfigured client degrades to the strictest default, teamonly.
func (h *Handler) resolveOptions(clientID string) []string {
	options := policy.ResolveOptions(h.cfg, clientID)
	level := policy.ResolveAuthorizationLevel(h.cfg, clientID)
	return platformstrings.DedupeAndTrimLower(append(options, level.Options()...))
}

func (h *Handler) forceLogout(ctx context.Context) {
	if h.sessions == nil {
		return
	}
	if err := h.sessions.Logout(ctx); err != nil {
		h.logger.ErrorContext(ctx, "forced logout failed", "error", err)
	}
}
