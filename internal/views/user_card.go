package views

import "github.com/magabrotheeeer/flagship-portal/internal/models"

// UserCard — карточка профиля с бейджем верификации.
type UserCard struct {
	ID           string                    `json:"id"`
	FullName     string                    `json:"fullName"`
	Email        string                    `json:"email"`
	Phone        string                    `json:"phone,omitempty"`
	City         string                    `json:"city,omitempty"`
	University   string                    `json:"university,omitempty"`
	Verification models.VerificationStatus `json:"verificationStatus"`
	Badge        BadgeVariant              `json:"badge"`
	Notice       string                    `json:"notice,omitempty"`
	Roles        []string                  `json:"roles"`
}

// NewUserCard строит карточку пользователя. Неизвестный статус отображается как unverified.
func NewUserCard(u models.User) UserCard {
	status := u.Verification
	if !status.Valid() {
		status = models.VerificationUnverified
	}
	card := UserCard{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		City:         u.City,
		University:   u.University,
		Verification: status,
		Roles:        append([]string{}, u.Roles...),
	}
	switch status {
	case models.VerificationVerified:
		card.Badge = BadgeSuccess
	case models.VerificationPending:
		card.Badge = BadgeWarning
		card.Notice = "Verification in review"
	default:
		card.Badge = BadgeSecondary
		card.Notice = "Verify your account to register"
	}
	return card
}
