// Package api определяет интерфейсы клиентов удаленного finance API.
package api

import (
	"context"

	"finledger/internal/gateway/app/dto"
)

// AuthClient определяет интерфейс для работы с auth-эндпоинтами удаленного API.
type AuthClient interface {
	// Register выполняется без сессии.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error)

	// Login выполняется без сессии и возвращает пользователя вместе с парой токенов.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Logout отзывает refresh-токен. Требует авторизованный клиент.
	Logout(ctx context.Context, refreshToken string) error

	// GetProfile возвращает профиль текущего пользователя.
	GetProfile(ctx context.Context) (*dto.User, error)

	// UpdateProfile изменяет поля профиля текущего пользователя.
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.User, error)

	// ChangePassword меняет пароль текущего пользователя.
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error

	// ResetPassword запрашивает сброс пароля. Всегда отвечает успехом,
	// чтобы не раскрывать существование аккаунта.
	ResetPassword(ctx context.Context, email string) error
}
