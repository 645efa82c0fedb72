package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "membergate/pkg/domain-errors"
)

type sample struct {
	Addr            string `validate:"required"`
	TokenSigningKey string `validate:"required,notblank"`
	TokenIssuer     string `validate:"omitempty,url"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample{Addr: ":8080", TokenSigningKey: "key"}))

	err := Validate(sample{TokenSigningKey: "key"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	assert.EqualError(t, err, "addr is required")

	err = Validate(sample{Addr: ":8080", TokenSigningKey: "   "})
	assert.EqualError(t, err, "token_signing_key must not be blank")

	err = Validate(sample{Addr: ":8080", TokenSigningKey: "key", TokenIssuer: "not a url"})
	assert.EqualError(t, err, "token_issuer must be a valid url")
}
