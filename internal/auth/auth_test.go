package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCredentials(t *testing.T) {
	assert.True(t, checkCredentials("admin", "s3cret", "admin", "s3cret"))
	assert.False(t, checkCredentials("admin", "s3cret", "admin", "wrong"))
	assert.False(t, checkCredentials("admin", "s3cret", "root", "s3cret"))
}

func TestCheckCredentialsEmptyPasswordDisablesLogin(t *testing.T) {
	assert.False(t, checkCredentials("admin", "", "admin", ""))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc-123", bearerToken("Bearer abc-123"))
	assert.Equal(t, "", bearerToken("abc-123"))
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "", bearerToken("Basic abc"))
}
