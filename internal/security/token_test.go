package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"motorent-backend/internal/security"
)

const testSecret = "test-secret-with-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)

	raw, err := tokens.GenerateAccessToken(42, "ada@test.com", []string{"admin"})
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := tokens.ValidateToken(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@test.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)
	other := security.NewTokenManager("another-secret-with-32-characters!!")

	raw, err := tokens.GenerateAccessToken(1, "renter@test.com", []string{"renter"})
	assert.NoError(t, err)

	_, err = other.ValidateToken(raw)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)
	_, err := tokens.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
