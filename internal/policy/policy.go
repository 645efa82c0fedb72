// Package policy resolves per-client access configuration: required
// authorization level, access-gate options and configured scopes. All
// functions are pure so they stay testable without a member or controller.
package policy

import (
	"strings"

	"membergate/internal/platform/config"
	"membergate/internal/scope"
)

// AuthorizationLevel is the per-client policy gate restricting which members
// may authenticate at all.
type AuthorizationLevel string

const (
	// LevelTeamOnly restricts logins to admins, staff and group managers.
	LevelTeamOnly AuthorizationLevel = "teamonly"
	// LevelUpToDate restricts logins to members current with their dues.
	LevelUpToDate AuthorizationLevel = "uptodate"
	// LevelAnyActive is the baseline: any active member may log in.
	LevelAnyActive AuthorizationLevel = "anyactive"
)

// ResolveAuthorizationLevel reads "{clientID}.authorize". Absent or
// unrecognized values degrade to teamonly, the strictest common default.
// Misconfiguration must never fail the request here.
func ResolveAuthorizationLevel(cfg config.Store, clientID string) AuthorizationLevel {
	if cfg == nil {
		return LevelTeamOnly
	}
	switch AuthorizationLevel(strings.ToLower(strings.TrimSpace(cfg.Get(clientID + ".authorize")))) {
	case LevelUpToDate:
		return LevelUpToDate
	case LevelAnyActive:
		return LevelAnyActive
	case LevelTeamOnly:
		return LevelTeamOnly
	default:
		return LevelTeamOnly
	}
}

// Options returns the access-gate flags implied by an authorization level.
func (l AuthorizationLevel) Options() []string {
	switch l {
	case LevelUpToDate:
		return []string{string(LevelUpToDate)}
	case LevelAnyActive:
		return nil
	default:
		return []string{string(LevelTeamOnly)}
	}
}

// ResolveOptions splits the semicolon/space-delimited "{clientID}.options"
// value into a deduplicated, lowercased set.
func ResolveOptions(cfg config.Store, clientID string) []string {
	if cfg == nil {
		return nil
	}
	options := make([]string, 0, 2)
	seen := make(map[string]struct{})
	for _, raw := range cfg.GetList(clientID + ".options") {
		for _, opt := range SplitList(raw) {
			opt = strings.ToLower(opt)
			if _, dup := seen[opt]; dup {
				continue
			}
			seen[opt] = struct{}{}
			options = append(options, opt)
		}
	}
	return options
}

// MergeScopes combines the default scope, the scopes requested at runtime and
// the client's configured "{clientID}.scopes" into an ordered, deduplicated,
// lowercased list. cfg may be nil, in which case the configured step is
// skipped.
func MergeScopes(cfg config.Store, clientID string, requested []string, includeDefault bool) []string {
	scopes := make([]string, 0, len(requested)+2)
	seen := make(map[string]struct{})

	add := func(raw string) {
		for _, s := range SplitList(raw) {
			s = strings.ToLower(s)
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			scopes = append(scopes, s)
		}
	}

	if includeDefault {
		add(scope.Default)
	}
	for _, s := range requested {
		add(s)
	}
	if cfg != nil {
		for _, s := range cfg.GetList(clientID + ".scopes") {
			add(s)
		}
	}
	return scopes
}

// MergeScopeString is MergeScopes for a scope list given as a single
// delimited string, as received from the authorization server.
func MergeScopeString(cfg config.Store, clientID string, requested string, includeDefault bool) []string {
	return MergeScopes(cfg, clientID, SplitList(requested), includeDefault)
}

// SplitList splits a scope or option list on semicolons, commas and spaces,
// dropping empty entries.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == ' '
	})
}
