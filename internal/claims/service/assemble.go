package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"membergate/internal/claims/models"
	"membergate/internal/member/store"
	"membergate/internal/scope"
	dErrors "membergate/pkg/domain-errors"
	"membergate/pkg/textnorm"
)

// Gate failure messages. These are user-facing and end up verbatim in the 401
// response body.
const (
	msgMemberNotFound   = "member not found"
	msgNotActive        = "you are not an active member"
	msgInvalidEmail     = "missing or invalid email address"
	msgNotTeamMember    = "you are not a team member"
	msgNotUpToDate      = "you are not an up-to-date member"
	msgDefaultScopeText = "default scope (%s) has not been authorized"
)

// Access-gate option flags, as resolved from per-client configuration.
const (
	OptionTeamOnly = "teamonly"
	OptionUpToDate = "uptodate"
)

// Assemble loads the member, enforces the eligibility gates and builds the
// claims payload for the final scope set. Gate evaluation order is fixed so
// error messages stay deterministic: not-found, default scope, active, email,
// teamonly, uptodate. All gate failures carry dErrors.CodeUnauthorized.
//
// The result is a pure function of (member state, options, scopes): calling
// twice against an unmodified member yields identical payloads.
func (s *Service) Assemble(ctx context.Context, memberID int, options []string, scopes []string) (models.ClaimsPayload, error) {
	start := time.Now()

	optionSet := toSet(options)
	scopeSet := toSet(scopes)
	s.logger.DebugContext(ctx, "assembling claims",
		"member_id", memberID,
		"options", strings.Join(options, ";"),
		"scopes", strings.Join(scopes, ";"),
	)

	if memberID == 0 {
		return nil, s.authorizationFailure(ctx, "member_not_found", msgMemberNotFound, memberID)
	}
	member, err := s.members.LoadByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, s.authorizationFailure(ctx, "member_not_found", msgMemberNotFound, memberID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
	}

	if _, ok := scopeSet[scope.Default]; !ok {
		return nil, s.authorizationFailure(ctx, "default_scope_missing",
			fmt.Sprintf(msgDefaultScopeText, scope.Default), memberID)
	}
	if !member.Active {
		return nil, s.authorizationFailure(ctx, "member_not_active", msgNotActive, memberID)
	}
	if !validEmail(member.Email) {
		return nil, s.authorizationFailure(ctx, "invalid_email", msgInvalidEmail, memberID)
	}
	if _, ok := optionSet[OptionTeamOnly]; ok && !member.IsTeamMember() {
		return nil, s.authorizationFailure(ctx, "not_team_member", msgNotTeamMember, memberID)
	}
	if _, ok := optionSet[OptionUpToDate]; ok && !member.UpToDate {
		return nil, s.authorizationFailure(ctx, "not_up_to_date", msgNotUpToDate, memberID)
	}

	login := CanonicalLogin(member)
	payload := models.ClaimsPayload{
		"id":          member.ID,
		"sub":         member.ID,
		"identifier":  member.ID,
		"name":        member.FullName,
		"displayName": member.DisplayName,
		"username":    login,
		"userName":    login,
		"email":       member.Email,
		"mail":        member.Email,
		"locale":      member.Language,
		"language":    member.Language,
		"status":      member.Status,
	}

	// Scope-gated claim groups, applied in a fixed documented order.
	groups := []struct {
		scope string
		add   func(context.Context, *models.Member, models.ClaimsPayload) error
	}{
		{scope.Personal, s.addPersonalClaims},
		{scope.Localization, s.addLocalizationClaims},
		{scope.LocalizationPrecise, s.addPreciseLocalizationClaims},
		{scope.Phones, s.addPhoneClaims},
		{scope.Socials, s.addSocialClaims},
		{scope.Groups, s.addGroupClaims},
		{scope.DueDate, s.addDueDateClaims},
	}
	for _, group := range groups {
		if _, ok := scopeSet[group.scope]; !ok {
			continue
		}
		if err := group.add(ctx, member, payload); err != nil {
			return nil, err
		}
	}

	s.metrics.IncrementClaimsIssued()
	s.metrics.ObserveClaimsLatency(time.Since(start).Seconds())
	return payload, nil
}

func (s *Service) addPersonalClaims(_ context.Context, member *models.Member, payload models.ClaimsPayload) error {
	payload["birthdate"] = member.BirthDate
	payload["birthplace"] = member.BirthPlace
	payload["job"] = member.Job
	payload["gender"] = member.Gender
	payload["gpgid"] = member.GPGID
	return nil
}

func (s *Service) addLocalizationClaims(_ context.Context, member *models.Member, payload models.ClaimsPayload) error {
	ensureAddress(member, payload)
	return nil
}

// addPreciseLocalizationClaims extends the address object with the formatted
// multi-line postal address and the bare street address.
func (s *Service) addPreciseLocalizationClaims(_ context.Context, member *models.Member, payload models.ClaimsPayload) error {
	address := ensureAddress(member, payload)
	formatted := formatPostalAddress(member)
	street := member.Street
	address.Formatted = &formatted
	address.StreetAddress = &street
	return nil
}

func ensureAddress(member *models.Member, payload models.ClaimsPayload) *models.Address {
	if existing, ok := payload["address"].(*models.Address); ok {
		return existing
	}
	address := &models.Address{
		Locality:   member.Town,
		Region:     member.Region,
		PostalCode: member.Zip,
		Country:    member.Country,
	}
	payload["address"] = address
	return address
}

// formatPostalAddress renders the street on its own line, a blank separator
// line, then "zip town", region and country, skipping empty segments.
func formatPostalAddress(member *models.Member) string {
	var lines []string
	if member.Street != "" {
		lines = append(lines, member.Street, "")
	}
	if zipTown := strings.TrimSpace(member.Zip + " " + member.Town); zipTown != "" {
		lines = append(lines, zipTown)
	}
	if member.Region != "" {
		lines = append(lines, member.Region)
	}
	if member.Country != "" {
		lines = append(lines, member.Country)
	}
	return strings.Join(lines, "\r\n")
}

func (s *Service) addPhoneClaims(_ context.Context, member *models.Member, payload models.ClaimsPayload) error {
	switch {
	case member.Phone != "" && member.Mobile != "":
		payload["phone"] = member.Phone
		payload["mobile_phone"] = member.Mobile
	case member.Phone != "":
		payload["phone"] = member.Phone
	default:
		payload["phone"] = member.Mobile
	}
	return nil
}

// addSocialClaims emits one entry per linked social record. Members without
// any linked record get no socials claim at all.
func (s *Service) addSocialClaims(ctx context.Context, member *models.Member, payload models.ClaimsPayload) error {
	socials, err := s.members.ListSocialsForMember(ctx, member.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list social links")
	}
	if len(socials) == 0 {
		return nil
	}
	links := make(map[string]string, len(socials))
	for _, social := range socials {
		links[social.Type] = social.URL
	}
	payload["socials"] = links
	return nil
}

func (s *Service) addGroupClaims(ctx context.Context, member *models.Member, payload models.ClaimsPayload) error {
	groups := DeriveGroups(member)
	s.logger.DebugContext(ctx, "derived groups",
		"member_id", member.ID,
		"groups", strings.Join(groups, ";"),
	)
	payload["groups"] = groups
	return nil
}

func (s *Service) addDueDateClaims(_ context.Context, member *models.Member, payload models.ClaimsPayload) error {
	payload["due_date"] = member.DueDate
	return nil
}

var nameSeparators = regexp.MustCompile(`[\s,-]+`)

// CanonicalLogin derives the non-stored username exposed to clients, in the
// form {first-letter-of-given-name}.{family-name-part}, both normalized. A
// family-name token shorter than 4 characters is padded with the next token.
func CanonicalLogin(member *models.Member) string {
	namePart := member.FamilyName
	tokens := splitName(member.FamilyName)
	if len(tokens) > 0 {
		namePart = tokens[0]
		if len([]rune(namePart)) < 4 && len(tokens) > 1 {
			namePart += tokens[1]
		}
	}

	initial := ""
	if given := textnorm.Normalize(member.GivenName); given != "" {
		initial = string([]rune(given)[0])
	}
	return initial + "." + textnorm.Normalize(namePart)
}

func splitName(name string) []string {
	var tokens []string
	for _, token := range nameSeparators.Split(name, -1) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// validEmail performs lightweight validation of an email address format.
func validEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
