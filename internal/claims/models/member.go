package models

// Member is the read-only view of a member record owned by the external
// datastore. The identifier is immutable once assigned; everything else
// reflects the stored state at load time.
type Member struct {
	ID int

	// FamilyName and GivenName are the canonical name fields the login
	// derivation works from. FullName is the long display form ("DURAND
	// René"), DisplayName the short one.
	FamilyName  string
	GivenName   string
	FullName    string
	DisplayName string

	Email    string
	Language string

	// Status is the membership status code; StatusLabel its human label,
	// which seeds group derivation.
	Status      int
	StatusLabel string

	Active   bool
	UpToDate bool

	Admin         bool
	Staff         bool
	ManagedGroups int

	Street  string
	Zip     string
	Town    string
	Region  string
	Country string

	Phone  string
	Mobile string

	BirthDate  string
	BirthPlace string
	Job        string
	Gender     string
	GPGID      string

	// AdminNotes is free text maintained by staff. It may embed an inline
	// #GROUPS:a;b;c# directive picked up by group derivation.
	AdminNotes string

	// DueDate is nil when the member has no dues due date recorded.
	DueDate *string
}

// IsTeamMember reports whether the member passes the teamonly gate.
func (m *Member) IsTeamMember() bool {
	return m.Admin || m.Staff || m.ManagedGroups > 0
}

// Social is one social-network link attached to a member.
type Social struct {
	Type string
	URL  string
}
