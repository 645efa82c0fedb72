package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	contracts "membergate/contracts/claims"
	"membergate/internal/claims/models"
	"membergate/internal/policy"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Fixture steps
	ctx.Step(`^an active member (\d+) named "([^"]*)" "([^"]*)" with email "([^"]*)"$`, tc.activeMember)
	ctx.Step(`^an inactive member (\d+) with email "([^"]*)"$`, tc.inactiveMember)
	ctx.Step(`^member (\d+) is a staff member$`, tc.memberIsStaff)
	ctx.Step(`^member (\d+) is up to date$`, tc.memberIsUpToDate)
	ctx.Step(`^member (\d+) has due date "([^"]*)"$`, tc.memberHasDueDate)
	ctx.Step(`^member (\d+) lives in "([^"]*)"$`, tc.memberLivesIn)
	ctx.Step(`^member (\d+) has a "([^"]*)" account at "([^"]*)"$`, tc.memberHasSocial)
	ctx.Step(`^client "([^"]*)" authorizes "([^"]*)" members$`, tc.clientAuthorizes)
	ctx.Step(`^client "([^"]*)" always receives scopes "([^"]*)"$`, tc.clientScopes)

	// Request steps
	ctx.Step(`^I hold a token for member (\d+) from client "([^"]*)" with scopes "([^"]*)"$`, tc.holdToken)
	ctx.Step(`^I hold the token "([^"]*)"$`, tc.holdRawToken)
	ctx.Step(`^I request the user endpoint$`, tc.requestUserEndpoint)
	ctx.Step(`^I request "([^"]*)"$`, tc.requestPath)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response message should be "([^"]*)"$`, tc.responseMessageShouldBe)
	ctx.Step(`^the claim "([^"]*)" should be "([^"]*)"$`, tc.claimShouldBe)
	ctx.Step(`^the claim "([^"]*)" should be null$`, tc.claimShouldBeNull)
	ctx.Step(`^the response should not contain "([^"]*)"$`, tc.responseShouldNotContain)
	ctx.Step(`^the address locality should be "([^"]*)"$`, tc.addressLocalityShouldBe)
	ctx.Step(`^the address should carry no street address$`, tc.addressShouldCarryNoStreet)
	ctx.Step(`^the socials should include a "([^"]*)" account at "([^"]*)"$`, tc.socialsShouldInclude)
}

func (tc *TestContext) activeMember(id int, familyName, givenName, email string) error {
	tc.AddMember(&models.Member{
		ID:          id,
		FamilyName:  familyName,
		GivenName:   givenName,
		FullName:    strings.ToUpper(familyName) + " " + givenName,
		DisplayName: givenName + " " + strings.ToUpper(familyName),
		Email:       email,
		Language:    "en_US",
		Status:      4,
		StatusLabel: "Active member",
		Active:      true,
	})
	return nil
}

func (tc *TestContext) inactiveMember(id int, email string) error {
	tc.AddMember(&models.Member{
		ID:     id,
		Email:  email,
		Active: false,
	})
	return nil
}

func (tc *TestContext) memberIsStaff(id int) error {
	return tc.updateMember(id, func(m *models.Member) { m.Staff = true })
}

func (tc *TestContext) memberIsUpToDate(id int) error {
	return tc.updateMember(id, func(m *models.Member) { m.UpToDate = true })
}

func (tc *TestContext) memberHasDueDate(id int, due string) error {
	return tc.updateMember(id, func(m *models.Member) { m.DueDate = &due })
}

func (tc *TestContext) memberLivesIn(id int, town string) error {
	return tc.updateMember(id, func(m *models.Member) { m.Town = town })
}

func (tc *TestContext) memberHasSocial(id int, socialType, url string) error {
	tc.members.PutSocials(id, []models.Social{{Type: socialType, URL: url}})
	return nil
}

func (tc *TestContext) clientAuthorizes(clientID, level string) error {
	tc.policies.Set(clientID+".authorize", level)
	return nil
}

func (tc *TestContext) clientScopes(clientID, scopes string) error {
	tc.policies.SetList(clientID+".scopes", policy.SplitList(scopes))
	return nil
}

func (tc *TestContext) holdToken(memberID int, clientID, scopes string) error {
	token, err := tc.MintToken(memberID, clientID, policy.SplitList(scopes))
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	tc.accessToken = token
	return nil
}

func (tc *TestContext) holdRawToken(token string) error {
	tc.accessToken = token
	return nil
}

func (tc *TestContext) requestUserEndpoint() error {
	return tc.GET("/api/user")
}

func (tc *TestContext) requestPath(path string) error {
	return tc.GET(path)
}

func (tc *TestContext) responseStatusShouldBe(status int) error {
	if tc.lastResponse == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.lastResponse.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body %s)",
			status, tc.lastResponse.StatusCode, tc.lastResponseBody)
	}
	return nil
}

func (tc *TestContext) responseMessageShouldBe(message string) error {
	body, err := tc.ResponseJSON()
	if err != nil {
		return err
	}
	if got, _ := body["message"].(string); got != message {
		return fmt.Errorf("expected message %q, got %q", message, got)
	}
	return nil
}

func (tc *TestContext) claimShouldBe(name, want string) error {
	body, err := tc.ResponseJSON()
	if err != nil {
		return err
	}
	got, ok := body[name]
	if !ok {
		return fmt.Errorf("claim %q not present in %s", name, tc.lastResponseBody)
	}
	if fmt.Sprint(got) != want {
		return fmt.Errorf("claim %q: expected %q, got %q", name, want, fmt.Sprint(got))
	}
	return nil
}

func (tc *TestContext) claimShouldBeNull(name string) error {
	body, err := tc.ResponseJSON()
	if err != nil {
		return err
	}
	got, ok := body[name]
	if !ok {
		return fmt.Errorf("claim %q not present in %s", name, tc.lastResponseBody)
	}
	if got != nil {
		return fmt.Errorf("claim %q: expected null, got %v", name, got)
	}
	return nil
}

func (tc *TestContext) responseShouldNotContain(name string) error {
	body, err := tc.ResponseJSON()
	if err != nil {
		return err
	}
	if _, ok := body[name]; ok {
		return fmt.Errorf("claim %q unexpectedly present in %s", name, tc.lastResponseBody)
	}
	return nil
}

func (tc *TestContext) decodeAddress() (*contracts.AddressView, error) {
	body, err := tc.ResponseJSON()
	if err != nil {
		return nil, err
	}
	raw, ok := body["address"]
	if !ok {
		return nil, fmt.Errorf("address claim not present in %s", tc.lastResponseBody)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode address claim: %w", err)
	}
	var address contracts.AddressView
	if err := json.Unmarshal(encoded, &address); err != nil {
		return nil, fmt.Errorf("decode address claim: %w", err)
	}
	return &address, nil
}

func (tc *TestContext) addressLocalityShouldBe(locality string) error {
	address, err := tc.decodeAddress()
	if err != nil {
		return err
	}
	if address.Locality != locality {
		return fmt.Errorf("expected locality %q, got %q", locality, address.Locality)
	}
	return nil
}

func (tc *TestContext) addressShouldCarryNoStreet() error {
	address, err := tc.decodeAddress()
	if err != nil {
		return err
	}
	if address.StreetAddress != nil || address.Formatted != nil {
		return fmt.Errorf("expected coarse address, got %+v", address)
	}
	return nil
}

func (tc *TestContext) socialsShouldInclude(socialType, url string) error {
	body, err := tc.ResponseJSON()
	if err != nil {
		return err
	}
	raw, ok := body["socials"]
	if !ok {
		return fmt.Errorf("socials claim not present in %s", tc.lastResponseBody)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("re-encode socials claim: %w", err)
	}
	var socials contracts.SocialsView
	if err := json.Unmarshal(encoded, &socials); err != nil {
		return fmt.Errorf("decode socials claim: %w", err)
	}
	if got, ok := socials[socialType]; !ok || got != url {
		return fmt.Errorf("no %s account at %s in %v", socialType, url, socials)
	}
	return nil
}

func (tc *TestContext) updateMember(id int, apply func(*models.Member)) error {
	member, err := tc.members.LoadByID(context.Background(), id)
	if err != nil {
		return fmt.Errorf("member %d not registered by a previous step", id)
	}
	apply(member)
	tc.AddMember(member)
	return nil
}
