package models

// Credentials — учётные данные для входа по email и паролю.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FederatedProfile — профиль, полученный от внешнего провайдера идентификации.
type FederatedProfile struct {
	Provider string `json:"provider" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// AuthResult — ответ удалённого сервиса на успешную аутентификацию.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
