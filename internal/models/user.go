// Package models содержит доменные структуры портала: пользователей, поездки (flagship),
// регистрации, платежи и возвраты. Записи создаются и изменяются только удалённым
// сервисом бронирования, портал хранит их копии только для чтения.
package models

import "slices"

// VerificationStatus — уровень доверия к учётной записи.
type VerificationStatus string

const (
	// VerificationUnverified — пользователь ещё не подавал документы.
	VerificationUnverified VerificationStatus = "unverified"
	// VerificationPending — документы на проверке.
	VerificationPending VerificationStatus = "pending"
	// VerificationVerified — учётная запись подтверждена.
	VerificationVerified VerificationStatus = "verified"
)

// Valid сообщает, входит ли статус в закрытый набор значений.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationUnverified, VerificationPending, VerificationVerified:
		return true
	}
	return false
}

// RoleAdmin — роль администратора, открывающая доступ к панели управления.
const RoleAdmin = "admin"

// User представляет пользователя портала в том виде, в котором его отдаёт удалённый сервис.
type User struct {
	ID           string             `json:"id"`
	FullName     string             `json:"fullName"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	City         string             `json:"city,omitempty"`
	University   string             `json:"university,omitempty"`
	Verification VerificationStatus `json:"verificationStatus"`
	Roles        []string           `json:"roles"`
}

// HasRole проверяет наличие роли у пользователя.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.Roles, role)
}

// SignupRequest используется для приёма данных регистрации из JSON-запроса.
type SignupRequest struct {
	FullName   string `json:"fullName" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Phone      string `json:"phone" validate:"omitempty,min=7,max=20"`
	City       string `json:"city" validate:"omitempty,max=100"`
	University string `json:"university" validate:"omitempty,max=150"`
}
