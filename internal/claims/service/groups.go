package service

import (
	"regexp"
	"strings"

	"membergate/internal/claims/models"
	"membergate/pkg/textnorm"
)

// groupDirective matches the inline #GROUPS:a;b;c# tag staff may embed in a
// member's free-text admin notes. This string convention is a compatibility
// surface for existing deployments; the encoding must not change without a
// migration path.
var groupDirective = regexp.MustCompile(`(?is)#GROUPS:([^#]*)#`)

var groupCleaner = strings.NewReplacer(" ", "_", "/", "", "(", "", ")", "")

// DeriveGroups computes the ordered group list for a member: the status label
// first, then the structural role flags, then any groups declared through the
// admin-notes directive. The order is a contract for downstream consumers
// mapping groups to roles.
func DeriveGroups(member *models.Member) []string {
	groups := []string{member.StatusLabel}

	if member.Admin {
		groups = append(groups, "admin")
	}
	if member.Staff {
		groups = append(groups, "staff")
	}
	if member.ManagedGroups > 0 {
		groups = append(groups, "groupmanager")
	}
	if member.UpToDate {
		groups = append(groups, "uptodate")
	}

	if match := groupDirective.FindStringSubmatch(member.AdminNotes); match != nil {
		groups = append(groups, strings.Split(match[1], ";")...)
	}

	for i, group := range groups {
		group = strings.TrimSpace(group)
		group = groupCleaner.Replace(group)
		group = strings.ReplaceAll(group, "__", "_")
		groups[i] = textnorm.Normalize(group)
	}
	return groups
}
