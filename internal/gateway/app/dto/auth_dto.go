// Package dto содержит объекты передачи данных для Gateway.
package dto

// TokenPair содержит пару токенов доступа и обновления.
// Инвариант: пара хранится и читается атомарно - либо оба токена, либо ни одного.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IsComplete проверяет, что присутствуют оба токена.
func (p TokenPair) IsComplete() bool {
	return p.Access != "" && p.Refresh != ""
}

// User содержит профиль аутентифицированного пользователя.
// Модель только для чтения, источником является удаленный API.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse содержит данные успешного входа.
type LoginResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// RefreshRequest содержит данные для обновления токена доступа.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse содержит новый токен доступа.
type RefreshResponse struct {
	Access string `json:"access"`
}

// LogoutRequest содержит данные для выхода пользователя.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// PasswordResetRequest содержит данные для запроса сброса пароля.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest содержит данные для смены пароля.
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// UpdateProfileRequest содержит изменяемые поля профиля.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// SessionResponse содержит снимок состояния сессии для HTTP слоя.
type SessionResponse struct {
	User          *User  `json:"user,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}
