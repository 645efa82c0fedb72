// Package claims hosts the stable wire shapes relying clients consume from
// the user endpoint. Keep these versioned independently from internal
// assembly or persistence models.
package claims

// ContractVersion identifies the contract schema version for compatibility checks.
// Bump on breaking changes to the shapes below; consumers can pin or roll forward.
const ContractVersion = "v0.1.0"

// ErrorResponse is the error envelope every non-2xx response carries.
type ErrorResponse struct {
	Message string `json:"message"`
}

// AddressView mirrors the OIDC address claim shape. Formatted and
// StreetAddress only appear when the precise localization scope is granted.
type AddressView struct {
	Locality      string  `json:"locality"`
	Region        string  `json:"region"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Formatted     *string `json:"formatted,omitempty"`
	StreetAddress *string `json:"street_address,omitempty"`
}

// SocialsView is the socials claim: linked account URLs keyed by network
// type. A type linked more than once keeps the last URL.
type SocialsView map[string]string

// ScopeView is one advertised scope on the scopes endpoint.
type ScopeView struct {
	Scope       string `json:"scope"`
	Description string `json:"description"`
}
