package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

func TestNewUserCard(t *testing.T) {
	tests := []struct {
		status     models.VerificationStatus
		wantBadge  BadgeVariant
		wantNotice string
		wantStatus models.VerificationStatus
	}{
		{models.VerificationVerified, BadgeSuccess, "", models.VerificationVerified},
		{models.VerificationPending, BadgeWarning, "Verification in review", models.VerificationPending},
		{models.VerificationUnverified, BadgeSecondary, "Verify your account to register", models.VerificationUnverified},
		{"", BadgeSecondary, "Verify your account to register", models.VerificationUnverified},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			card := NewUserCard(models.User{ID: "u1", FullName: "Ali", Verification: tt.status})
			assert.Equal(t, tt.wantBadge, card.Badge)
			assert.Equal(t, tt.wantNotice, card.Notice)
			assert.Equal(t, tt.wantStatus, card.Verification)
			assert.NotNil(t, card.Roles)
		})
	}
}
