package httptransport

import (
	"net/http"

	contracts "membergate/contracts/claims"
	"membergate/internal/scope"
)

// handleScopes advertises the scope catalog so relying clients can build
// consent screens. The list is static and carries no member data, so the
// endpoint needs no token.
func (h *Handler) handleScopes(w http.ResponseWriter, _ *http.Request) {
	var descriptors []scope.Descriptor
	if h.catalog != nil {
		descriptors = h.catalog.List()
	}
	scopes := make([]contracts.ScopeView, 0, len(descriptors))
	for _, d := range descriptors {
		scopes = append(scopes, contracts.ScopeView{
			Scope:       d.ID,
			Description: d.Description,
		})
	}
	writeJSON(w, http.StatusOK, scopes)
}
