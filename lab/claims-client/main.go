// Toy relying client for local experiments: mints an HS256 access token the
// way the authorization server would, calls the user endpoint and dumps the
// claims it gets back. Deliberately dependency-free and NOT for production.
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	baseURL := flag.String("url", getenv("MEMBERGATE_URL", "http://localhost:8080"), "membergate base URL")
	signingKey := flag.String("key", getenv("MEMBERGATE_SIGNING_KEY", "dev-secret-key-change-in-production"), "token signing key")
	issuer := flag.String("issuer", getenv("MEMBERGATE_ISSUER", "http://localhost:8080"), "token issuer")
	memberID := flag.Int("member-id", 1, "member id to request claims for")
	clientID := flag.String("client-id", "lab_client", "OAuth2 client id")
	scopes := flag.String("scopes", "member", "space-separated scopes")
	flag.Parse()

	token, err := mintToken(*signingKey, *issuer, *memberID, *clientID, strings.Fields(*scopes))
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, *baseURL+"/api/user", nil)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("call user endpoint: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read response: %v", err)
	}

	fmt.Printf("status: %s\n", resp.Status)
	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}

// mintToken builds an HS256 JWT by hand so the lab stays free of deps.
func mintToken(key, issuer string, memberID int, clientID string, scopes []string) (string, error) {
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	claims := map[string]any{
		"member_id": memberID,
		"client_id": clientID,
		"scope":     scopes,
		"iss":       issuer,
		"exp":       time.Now().Add(15 * time.Minute).Unix(),
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

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(signing))
	return signing + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
