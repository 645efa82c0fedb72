// Package resourceserver validates inbound bearer tokens minted by the
// external OAuth2 authorization server and extracts the grant triple the
// claims core trusts as-is: member id, client id and granted scopes.
package resourceserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	dErrors "membergate/pkg/domain-errors"
)

// AccessClaims represents the JWT claims carried by access tokens.
type AccessClaims struct {
	MemberID int      `json:"member_id"`
	ClientID string   `json:"client_id"`
	Scope    []string `json:"scope"`
	jwt.RegisteredClaims
}

// Grant is the validated token triple handed to the claims core.
type Grant struct {
	MemberID int
	ClientID string
	Scopes   []string
}

// Validator checks token signature, expiry and issuer.
type Validator struct {
	signingKey []byte
	issuer     string
}

func NewValidator(signingKey, issuer string) *Validator {
	return &Validator{
		signingKey: []byte(signingKey),
		issuer:     issuer,
	}
}

// ValidateRequest extracts and validates the Authorization bearer token.
func (v *Validator) ValidateRequest(r *http.Request) (*Grant, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "malformed authorization header")
	}
	return v.ValidateToken(token)
}

// ValidateToken verifies the token and returns its grant triple.
func (v *Validator) ValidateToken(tokenString string) (*Grant, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token issuer")
	}

	return &Grant{
		MemberID: claims.MemberID,
		ClientID: claims.ClientID,
		Scopes:   claims.Scope,
	}, nil
}
