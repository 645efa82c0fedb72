// Package scope holds the static registry of scope identifiers known to the
// authorization server and the claim groups they unlock.
package scope

import (
	"log/slog"

	dErrors "membergate/pkg/domain-errors"
)

// Scope identifiers accepted by the claims assembler.
const (
	Default             = "member"
	Personal            = "member:personal"
	Localization        = "member:localization"
	LocalizationPrecise = "member:localization:precise"
	Phones              = "member:phones"
	Socials             = "member:socials"
	Groups              = "member:groups"
	DueDate             = "member:due_date"
)

// Descriptor describes one known scope for consent screens and the
// authorization server's scope-validation hook.
type Descriptor struct {
	ID          string
	Description string
}

// known is the fixed catalog, in presentation order. member:phones is
// honored by the assembler but not advertised here, matching the historical
// behavior of the membership application.
var known = []Descriptor{
	{Default, "Access to your member basic information: name, login, email, language, company name"},
	{Personal, "Access to more precise personal data: birth date, job, gender, birth place, GnuPG ID"},
	{Localization, "Access to your localization data: zipcode, town, region, country"},
	{LocalizationPrecise, "Access to your precise localization data: full address"},
	{Socials, "Access to your social networks data"},
	{Groups, "Access to the groups you belong to"},
	{DueDate, "Access to your due date"},
}

// Catalog validates scope identifiers against the known set.
type Catalog struct {
	logger *slog.Logger
}

func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{logger: logger}
}

// List returns the known scopes in a stable order.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, len(known))
	copy(out, known)
	return out
}

// Describe returns the descriptor for identifier, or a not-found error.
func (c *Catalog) Describe(identifier string) (Descriptor, error) {
	for _, d := range known {
		if d.ID == identifier {
			return d, nil
		}
	}
	return Descriptor{}, dErrors.New(dErrors.CodeNotFound, "unknown scope identifier: "+identifier)
}

// Lookup is the scope-validation hook shape consumed by the external OAuth2
// server library. Unknown identifiers are logged and resolve to nil so scope
// negotiation stays forward-compatible.
func (c *Catalog) Lookup(identifier string) *Descriptor {
	for _, d := range known {
		if d.ID == identifier {
			found := d
			return &found
		}
	}
	c.logger.Error("unknown scope identifier", "scope", identifier)
	return nil
}
