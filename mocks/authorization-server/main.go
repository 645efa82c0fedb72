// Mock OAuth2 authorization server for local development and e2e setups.
// It exposes a single token endpoint minting HS256 access tokens in the
// shape membergate validates: member_id, client_id, scope, iss, exp.
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort       = "8082"
	defaultSigningKey = "dev-secret-key-change-in-production"
	defaultIssuer     = "http://localhost:8080"
	defaultTTLSeconds = "900"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	signingKey = getEnv("SIGNING_KEY", defaultSigningKey)
	issuer     = getEnv("ISSUER", defaultIssuer)
	ttlSeconds = getEnvInt("TOKEN_TTL_SECONDS", defaultTTLSeconds)
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/oauth/token", handleToken)

	log.Printf("mock authorization server starting on port %s", port)
	log.Printf("issuer: %s, token ttl: %ds", issuer, ttlSeconds)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "authorization-server",
	})
}

// handleToken mints an access token for the given member_id, client_id and
// scope form values. There is no real authorization dance here; e2e setups
// skip straight to an issued token.
func handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:   "invalid_request",
			Message: "POST only",
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "malformed form body",
		})
		return
	}

	memberID, err := strconv.Atoi(r.PostFormValue("member_id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "member_id must be an integer",
		})
		return
	}
	clientID := r.PostFormValue("client_id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_client",
			Message: "client_id is required",
		})
		return
	}
	scope := r.PostFormValue("scope")
	if scope == "" {
		scope = "member"
	}

	token, err := mintToken(memberID, clientID, strings.Fields(scope))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "server_error",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   ttlSeconds,
		Scope:       scope,
	})
}

func mintToken(memberID int, clientID string, scopes []string) (string, error) {
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	claims := map[string]any{
		"member_id": memberID,
		"client_id": clientID,
		"scope":     scopes,
		"iss":       issuer,
		"exp":       time.Now().Add(time.Duration(ttlSeconds) * time.Second).Unix(),
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signing := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	mac := hmac.New(sha256.New, []byte(signingKey))
	mac.Write([]byte(signing))
	return signing + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key, fallback string) int {
	v := getEnv(key, fallback)
	n, err := strconv.Atoi(v)
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}
