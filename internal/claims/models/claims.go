package models

// ClaimsPayload maps claim names to values as exposed to relying clients.
// It is built fresh per request and discarded after serialization. JSON
// marshaling sorts keys, so serialized payloads are deterministic.
type ClaimsPayload map[string]any

// Address is the nested address claim emitted for the localization scopes.
// Missing fields are empty strings, not null. Formatted and StreetAddress are
// only present for the precise localization scope.
type Address struct {
	Locality      string  `json:"locality"`
	Region        string  `json:"region"`
	PostalCode    string  `json:"postal_code"`
	Country       string  `json:"country"`
	Formatted     *string `json:"formatted,omitempty"`
	StreetAddress *string `json:"street_address,omitempty"`
}
