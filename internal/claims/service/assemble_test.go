package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"membergate/internal/claims/models"
	"membergate/internal/member/store"
	dErrors "membergate/pkg/domain-errors"
)

// fixtureMember mirrors the reference record used throughout these tests:
// an active member with a full address, a landline and no dues due date.
func fixtureMember() *models.Member {
	return &models.Member{
		ID:          3992,
		FamilyName:  "Durand",
		GivenName:   "René",
		FullName:    "DURAND René",
		DisplayName: "René DURAND",
		Email:       "rene.durand@example.org",
		Language:    "fr_FR",
		Status:      9,
		StatusLabel: "Non-member",
		Active:      true,
		Street:      "66, boulevard De Oliveira",
		Zip:         "39 069",
		Town:        "Martel",
		Region:      "",
		Country:     "Antarctique",
		Phone:       "0439153432",
		BirthDate:   "1941-12-26",
		BirthPlace:  "Gonzalez-sur-Meunier",
		Job:         "Chef de fabrication",
		Gender:      "Unspecified",
	}
}

func baseClaims(member *models.Member) models.ClaimsPayload {
	return models.ClaimsPayload{
		"id":          member.ID,
		"sub":         member.ID,
		"identifier":  member.ID,
		"name":        "DURAND René",
		"displayName": "René DURAND",
		"username":    "r.durand",
		"userName":    "r.durand",
		"email":       member.Email,
		"mail":        member.Email,
		"locale":      "fr_FR",
		"language":    "fr_FR",
		"status":      9,
	}
}

func (s *ServiceSuite) expectMember(member *models.Member) {
	s.mockMemberStore.EXPECT().LoadByID(gomock.Any(), member.ID).Return(member, nil)
}

func (s *ServiceSuite) TestAssembleBaseClaims() {
	member := fixtureMember()
	s.expectMember(member)

	payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), baseClaims(member), payload)
}

func (s *ServiceSuite) TestAssembleGates() {
	s.T().Run("zero member id", func(t *testing.T) {
		_, err := s.service.Assemble(context.Background(), 0, []string{"teamonly"}, []string{"member"})
		assert.True(t, dErrors.IsAuthorization(err))
		assert.EqualError(t, err, "member not found")
	})

	s.T().Run("lookup miss", func(t *testing.T) {
		s.mockMemberStore.EXPECT().LoadByID(gomock.Any(), 42).Return(nil, store.ErrNotFound)

		_, err := s.service.Assemble(context.Background(), 42, nil, []string{"member"})
		assert.True(t, dErrors.IsAuthorization(err))
		assert.EqualError(t, err, "member not found")
	})

	s.T().Run("store failure is internal, not user-facing", func(t *testing.T) {
		s.mockMemberStore.EXPECT().LoadByID(gomock.Any(), 42).Return(nil, assert.AnError)

		_, err := s.service.Assemble(context.Background(), 42, nil, []string{"member"})
		assert.False(t, dErrors.IsAuthorization(err))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.T().Run("default scope missing", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, nil)
		assert.True(t, dErrors.IsAuthorization(err))
		assert.EqualError(t, err, "default scope (member) has not been authorized")
	})

	s.T().Run("default scope checked before activity", func(t *testing.T) {
		member := fixtureMember()
		member.Active = false
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member:groups"})
		assert.EqualError(t, err, "default scope (member) has not been authorized")
	})

	s.T().Run("inactive member", func(t *testing.T) {
		member := fixtureMember()
		member.Active = false
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member"})
		assert.True(t, dErrors.IsAuthorization(err))
		assert.EqualError(t, err, "you are not an active member")
	})

	s.T().Run("missing email", func(t *testing.T) {
		member := fixtureMember()
		member.Email = ""
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member"})
		assert.EqualError(t, err, "missing or invalid email address")
	})

	s.T().Run("malformed email", func(t *testing.T) {
		member := fixtureMember()
		member.Email = "not-an-address"
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member"})
		assert.EqualError(t, err, "missing or invalid email address")
	})

	s.T().Run("teamonly rejects plain member", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, []string{"teamonly"}, []string{"member"})
		assert.True(t, dErrors.IsAuthorization(err))
		assert.EqualError(t, err, "you are not a team member")
	})

	s.T().Run("teamonly accepts admin with unchanged base claims", func(t *testing.T) {
		member := fixtureMember()
		member.Admin = true
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, []string{"teamonly"}, []string{"member"})
		require.NoError(t, err)
		assert.Equal(t, baseClaims(member), payload)
	})

	s.T().Run("teamonly accepts group manager", func(t *testing.T) {
		member := fixtureMember()
		member.ManagedGroups = 2
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, []string{"teamonly"}, []string{"member"})
		assert.NoError(t, err)
	})

	s.T().Run("uptodate rejects lapsed member", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, []string{"uptodate"}, []string{"member"})
		assert.EqualError(t, err, "you are not an up-to-date member")
	})

	s.T().Run("uptodate accepts dues-current member", func(t *testing.T) {
		member := fixtureMember()
		member.UpToDate = true
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, []string{"uptodate"}, []string{"member"})
		assert.NoError(t, err)
	})

	s.T().Run("options are matched case-insensitively", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		_, err := s.service.Assemble(context.Background(), member.ID, []string{"TeamOnly"}, []string{"member"})
		assert.EqualError(t, err, "you are not a team member")
	})
}

func (s *ServiceSuite) TestAssemblePersonalScope() {
	member := fixtureMember()
	s.expectMember(member)

	payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:personal"})
	require.NoError(s.T(), err)

	expected := baseClaims(member)
	expected["birthdate"] = "1941-12-26"
	expected["birthplace"] = "Gonzalez-sur-Meunier"
	expected["job"] = "Chef de fabrication"
	expected["gender"] = "Unspecified"
	expected["gpgid"] = ""
	assert.Equal(s.T(), expected, payload)
}

func (s *ServiceSuite) TestAssemblePhonesScope() {
	s.T().Run("landline only", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:phones"})
		require.NoError(t, err)
		assert.Equal(t, "0439153432", payload["phone"])
		assert.NotContains(t, payload, "mobile_phone")
	})

	s.T().Run("mobile only", func(t *testing.T) {
		member := fixtureMember()
		member.Phone = ""
		member.Mobile = "0612345678"
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:phones"})
		require.NoError(t, err)
		assert.Equal(t, "0612345678", payload["phone"])
		assert.NotContains(t, payload, "mobile_phone")
	})

	s.T().Run("both numbers", func(t *testing.T) {
		member := fixtureMember()
		member.Mobile = "0612345678"
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:phones"})
		require.NoError(t, err)
		assert.Equal(t, "0439153432", payload["phone"])
		assert.Equal(t, "0612345678", payload["mobile_phone"])
	})
}

func (s *ServiceSuite) TestAssembleLocalizationScopes() {
	s.T().Run("localization yields the four-field address object", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:localization"})
		require.NoError(t, err)

		address, ok := payload["address"].(*models.Address)
		require.True(t, ok)
		assert.Equal(t, &models.Address{
			Locality:   "Martel",
			Region:     "",
			PostalCode: "39 069",
			Country:    "Antarctique",
		}, address)
		assert.Nil(t, address.Formatted)
		assert.Nil(t, address.StreetAddress)
	})

	s.T().Run("precise localization adds formatted and street_address", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil,
			[]string{"member", "member:localization", "member:localization:precise"})
		require.NoError(t, err)

		address, ok := payload["address"].(*models.Address)
		require.True(t, ok)
		require.NotNil(t, address.Formatted)
		require.NotNil(t, address.StreetAddress)
		assert.Equal(t, "66, boulevard De Oliveira\r\n\r\n39 069 Martel\r\nAntarctique", *address.Formatted)
		assert.Equal(t, "66, boulevard De Oliveira", *address.StreetAddress)
	})

	s.T().Run("precise alone still carries the full address object", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil,
			[]string{"member", "member:localization:precise"})
		require.NoError(t, err)

		address, ok := payload["address"].(*models.Address)
		require.True(t, ok)
		assert.Equal(t, "Martel", address.Locality)
		assert.NotNil(t, address.Formatted)
	})

	s.T().Run("empty fields stay empty strings", func(t *testing.T) {
		member := fixtureMember()
		member.Street = ""
		member.Zip = ""
		member.Town = ""
		member.Country = ""
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil,
			[]string{"member", "member:localization:precise"})
		require.NoError(t, err)

		address := payload["address"].(*models.Address)
		assert.Equal(t, "", address.Locality)
		require.NotNil(t, address.Formatted)
		assert.Equal(t, "", *address.Formatted)
	})
}

func (s *ServiceSuite) TestAssembleSocialsScope() {
	s.T().Run("no links means no socials claim", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)
		s.mockMemberStore.EXPECT().ListSocialsForMember(gomock.Any(), member.ID).Return(nil, nil)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:socials"})
		require.NoError(t, err)
		assert.Equal(t, baseClaims(member), payload)
	})

	s.T().Run("links map type to url", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)
		s.mockMemberStore.EXPECT().ListSocialsForMember(gomock.Any(), member.ID).Return([]models.Social{
			{Type: "mastodon", URL: "https://example.org/@rene"},
			{Type: "website", URL: "https://rene.example.org"},
		}, nil)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:socials"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"mastodon": "https://example.org/@rene",
			"website":  "https://rene.example.org",
		}, payload["socials"])
	})

	s.T().Run("social lookup failure is internal", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)
		s.mockMemberStore.EXPECT().ListSocialsForMember(gomock.Any(), member.ID).Return(nil, assert.AnError)

		_, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:socials"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestAssembleGroupsScope() {
	member := fixtureMember()
	member.Admin = true
	s.expectMember(member)

	payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:groups"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"non-member", "admin"}, payload["groups"])
}

func (s *ServiceSuite) TestAssembleDueDateScope() {
	s.T().Run("nil due date serializes to null", func(t *testing.T) {
		member := fixtureMember()
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:due_date"})
		require.NoError(t, err)

		value, present := payload["due_date"]
		assert.True(t, present)
		assert.Equal(t, (*string)(nil), value)

		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"due_date":null`)
	})

	s.T().Run("set due date carried through", func(t *testing.T) {
		member := fixtureMember()
		due := "2026-12-31"
		member.DueDate = &due
		s.expectMember(member)

		payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"member", "member:due_date"})
		require.NoError(t, err)
		assert.Equal(t, &due, payload["due_date"])
	})
}

func (s *ServiceSuite) TestAssembleScopesMatchedCaseInsensitively() {
	member := fixtureMember()
	s.expectMember(member)

	payload, err := s.service.Assemble(context.Background(), member.ID, nil, []string{"MEMBER", "Member:Personal"})
	require.NoError(s.T(), err)
	assert.Contains(s.T(), payload, "birthdate")
}

func (s *ServiceSuite) TestAssembleIsIdempotent() {
	member := fixtureMember()
	scopes := []string{"member", "member:personal", "member:localization:precise", "member:groups", "member:due_date"}

	s.expectMember(member)
	first, err := s.service.Assemble(context.Background(), member.ID, nil, scopes)
	require.NoError(s.T(), err)

	s.expectMember(fixtureMember())
	second, err := s.service.Assemble(context.Background(), member.ID, nil, scopes)
	require.NoError(s.T(), err)

	firstJSON, err := json.Marshal(first)
	require.NoError(s.T(), err)
	secondJSON, err := json.Marshal(second)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), firstJSON, secondJSON)
}

func TestCanonicalLogin(t *testing.T) {
	tests := []struct {
		name   string
		family string
		given  string
		want   string
	}{
		{"plain name", "Durand", "René", "r.durand"},
		{"short first token is padded with the next", "Le Goff", "Anne", "a.legoff"},
		{"hyphenated family name splits like whitespace", "Saint-Exupéry", "Antoine", "a.saint"},
		{"comma separated", "Durand,Martin", "Paul", "p.durand"},
		{"accents stripped", "Müller", "Éloïse", "e.muller"},
		{"empty given name", "Durand", "", ".durand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := &models.Member{FamilyName: tt.family, GivenName: tt.given}
			assert.Equal(t, tt.want, CanonicalLogin(member))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("rene.durand@example.org"))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("no-at-sign"))
	assert.False(t, validEmail("two@@example.org"))
	assert.False(t, validEmail("user@nodot"))
	assert.False(t, validEmail("user name@example.org"))
}
