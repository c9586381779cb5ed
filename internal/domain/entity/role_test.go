package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRolesOf(t *testing.T) {
	assert.Equal(t, []Role{RoleUser}, RolesOf(&User{Username: "alice"}))
	assert.Equal(t, []Role{RoleUser, RoleAdmin}, RolesOf(&User{Username: "root", IsAdmin: true}))
}

func TestHasRole(t *testing.T) {
	admin := &User{Username: "root", IsAdmin: true}
	regular := &User{Username: "alice"}

	assert.True(t, HasRole(admin, RoleAdmin))
	assert.True(t, HasRole(admin, RoleUser))
	assert.True(t, HasRole(regular, RoleUser))
	assert.False(t, HasRole(regular, RoleAdmin))
	assert.False(t, HasRole(nil, RoleUser))
	assert.False(t, HasRole(admin, Role("superuser")))
}

func TestConsumeVerification(t *testing.T) {
	token := "tok-1"
	user := &User{Username: "alice", VerificationToken: &token}

	user.ConsumeVerification()
	assert.True(t, user.Verified)
	assert.Nil(t, user.VerificationToken)
	if assert.NotNil(t, user.ConsumedVerificationToken) {
		assert.Equal(t, "tok-1", *user.ConsumedVerificationToken)
	}

	// Repeating the consumption changes nothing.
	user.ConsumeVerification()
	assert.True(t, user.Verified)
	assert.Nil(t, user.VerificationToken)
	assert.Equal(t, "tok-1", *user.ConsumedVerificationToken)
}
