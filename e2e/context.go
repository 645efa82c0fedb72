package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"membergate/internal/claims/models"
	claimsservice "membergate/internal/claims/service"
	"membergate/internal/member/store"
	"membergate/internal/platform/config"
	"membergate/internal/resourceserver"
	"membergate/internal/scope"
	httptransport "membergate/internal/transport/http"
)

const (
	signingKey = "e2e-signing-key"
	issuer     = "http://localhost:8080"
)

// TestContext holds state between test steps. Each scenario boots its own
// in-process server backed by an in-memory member store, so scenarios are
// independent and need no external deployment.
type TestContext struct {
	server   *httptest.Server
	members  *store.InMemoryStore
	policies *config.MapStore

	accessToken      string
	lastResponse     *http.Response
	lastResponseBody []byte
}

func NewTestContext() *TestContext {
	return &TestContext{}
}

// Start boots the HTTP stack for one scenario.
func (tc *TestContext) Start() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tc.members = store.NewInMemory()
	tc.policies = config.NewMapStore()

	handler := httptransport.NewHandler(
		resourceserver.NewValidator(signingKey, issuer),
		claimsservice.NewService(tc.members, claimsservice.WithLogger(logger)),
		noopSessions{},
		tc.policies,
		scope.NewCatalog(logger),
		logger,
	)
	tc.server = httptest.NewServer(httptransport.NewRouter(handler, logger, 5*time.Second))
}

// Stop tears the scenario server down.
func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.lastResponse != nil {
		tc.lastResponse = nil
		tc.lastResponseBody = nil
	}
	tc.accessToken = ""
}

// MintToken signs an access token the way the authorization server would.
func (tc *TestContext) MintToken(memberID int, clientID string, scopes []string) (string, error) {
	claims := resourceserver.AccessClaims{
		MemberID: memberID,
		ClientID: clientID,
		Scope:    scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
}

// GET performs a request against the scenario server, optionally with the
// held access token, and stores the response.
func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.server.URL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read fully below

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	tc.lastResponse = resp
	tc.lastResponseBody = body
	return nil
}

// ResponseJSON decodes the last response body.
func (tc *TestContext) ResponseJSON() (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(tc.lastResponseBody, &out); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", tc.lastResponseBody, err)
	}
	return out, nil
}

func (tc *TestContext) AddMember(member *models.Member) {
	tc.members.Put(member)
}

type noopSessions struct{}

func (noopSessions) Logout(context.Context) error { return nil }
