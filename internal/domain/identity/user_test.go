package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := NewUser("admin@example.com", "", "Ada", "Lovelace", "", RoleAdmin, "APT123456", nil)

	t.Run("hashes and verifies", func(t *testing.T) {
		require.NoError(t, user.SetPassword("s3cret-pass"))
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong-pass"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		err := user.SetPassword("abc")
		assert.Error(t, err)
	})
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", NewUser("a@b.c", "", "Ada", "Lovelace", "", RoleAdmin, "APT1", nil).FullName())
	assert.Equal(t, "Ada", NewUser("a@b.c", "", "Ada", "", "", RoleAdmin, "APT1", nil).FullName())
}

func TestGenerateApartmentCode(t *testing.T) {
	code := GenerateApartmentCode(time.Now())

	assert.True(t, strings.HasPrefix(code, "APT"))
	assert.LessOrEqual(t, len(code), len("APT")+6)
	for _, c := range code[3:] {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleResident.IsValid())
	assert.False(t, Role("manager").IsValid())
}
