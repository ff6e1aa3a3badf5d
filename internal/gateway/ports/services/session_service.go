// Package services определяет интерфейсы сервисов Gateway.
package services

import (
	"context"

	"finledger/internal/gateway/app/dto"
)

// RouteClass классифицирует маршрут по требованиям к сессии.
type RouteClass int

// Классы маршрутов.
const (
	// RoutePublic - маршрут, доступный без сессии.
	RoutePublic RouteClass = iota
	// RouteAuth - публичная страница аутентификации (login, register,
	// forget-password); аутентифицированный пользователь перенаправляется
	// на dashboard.
	RouteAuth
	// RouteProtected - маршрут, требующий аутентифицированную сессию.
	RouteProtected
)

// Session содержит снимок состояния сессии.
// Пользователь присутствует только после успешного получения профиля.
type Session struct {
	User  *dto.User
	Error string
}

// IsAuthenticated сообщает, установлен ли пользователь сессии.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Navigation описывает переход, который должен выполнить HTTP слой
// после операции сервиса. Пустой Target означает отсутствие перехода.
type Navigation struct {
	Target string
}

// SessionService - единственный источник истины о текущей сессии
// и точка входа для всех изменяющих ее операций.
type SessionService interface {
	// Login выполняет вход. При успехе токены сохранены, пользователь
	// установлен, возвращается переход на dashboard. При ошибке состояние
	// ошибки установлено и ошибка возвращена вызывающему.
	Login(ctx context.Context, username, password string) (Navigation, error)

	// Register регистрирует пользователя. При успехе возвращается переход
	// на страницу входа с маркером registered=true.
	Register(ctx context.Context, req *dto.RegisterRequest) (Navigation, error)

	// Logout отзывает refresh-токен по мере возможности и безусловно
	// очищает хранилище токенов и пользователя сессии. Никогда не
	// возвращает ошибку backend.
	Logout(ctx context.Context) Navigation

	// ResolveSession восстанавливает сессию для маршрута указанного класса.
	// Возвращает снимок сессии и, при необходимости, переход.
	ResolveSession(ctx context.Context, route RouteClass) (Session, Navigation)

	// ResetPassword запрашивает сброс пароля для указанного email.
	ResetPassword(ctx context.Context, email string) error

	// UpdateProfile изменяет профиль текущего пользователя.
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.User, error)

	// ChangePassword меняет пароль текущего пользователя.
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error

	// CurrentSession возвращает снимок состояния без сетевых вызовов.
	CurrentSession() Session

	// ClearError сбрасывает состояние ошибки.
	ClearError()
}
