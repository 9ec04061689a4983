package auth

import (
	"testing"
	"time"

	"github.com/ghaggin/internhub/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, tokenExpired(signed(t, now.Add(-time.Second)), now))
	assert.False(t, tokenExpired(signed(t, now.Add(time.Hour)), now))

	// opaque tokens are left to the backend
	assert.False(t, tokenExpired("17|plainTextSanctumToken", now))
	assert.False(t, tokenExpired("", now))
}

func TestDashboard(t *testing.T) {
	for role, want := range map[string]string{
		"student":  PathStudentDashboard,
		"employee": PathStudentDashboard,
		"company":  PathCompanyDashboard,
		"admin":    PathAdminDashboard,
	} {
		got, ok := Dashboard(model.Role(role))
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := Dashboard("guest")
	assert.False(t, ok)
}
