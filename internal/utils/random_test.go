package utils

import (
	"strings"
	"testing"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateRandomOTP()
		require.Len(t, otp, 6)
		assert.Empty(t, strings.Trim(otp, digits))
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, []rune(password), 12)
	assert.NotEqual(t, password, GenerateRandomPassword(12))
}

func TestGenerateEmailFromName(t *testing.T) {
	email := GenerateEmailFromName("Lucía Muñoz Álvarez", "example.com")
	assert.True(t, strings.HasPrefix(email, "lucia.munoz"), email)
	assert.True(t, strings.HasSuffix(email, "@example.com"), email)
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("cambiame123", "example.com")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleReadonly, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.HasAccess())
	assert.Len(t, strings.Fields(user.FullName), 3)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("cambiame123")))
}
