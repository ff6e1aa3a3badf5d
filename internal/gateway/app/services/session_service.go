// Package services содержит реализации сервисов Gateway.
package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/api"
	"finledger/internal/gateway/ports/services"
	"finledger/internal/gateway/ports/storage"
	"finledger/pkg/logger"
)

// Цели навигации после операций сессии.
const (
	NavigateDashboard  = "/dashboard"
	NavigateLogin      = "/login"
	NavigateRegistered = "/login?registered=true"
)

// Константы для логирования.
const (
	LogServiceLogin    = "session service: login"
	LogServiceRegister = "session service: register"
	LogServiceLogout   = "session service: logout"
	LogServiceResolve  = "session service: resolve session"

	ErrorLoginFailed    = "login failed"
	ErrorRegisterFailed = "registration failed"
	ErrorResolveFailed  = "failed to resolve session"
	ErrorClearTokens    = "failed to clear token store"
)

// Запасные сообщения, когда сервер не прислал деталей.
const (
	fallbackLoginError    = "unable to sign in, please try again"
	fallbackRegisterError = "unable to register, please try again"
)

// SessionServiceImpl реализует интерфейс services.SessionService.
// Единственный владелец состояния сессии: пользователь и ошибка меняются
// только внутри операций этого сервиса.
type SessionServiceImpl struct {
	authClient api.AuthClient
	store      storage.TokenStore

	mu     sync.RWMutex
	user   *dto.User
	errMsg string
}

// NewSessionService создает новый экземпляр сервиса сессии.
func NewSessionService(authClient api.AuthClient, store storage.TokenStore) *SessionServiceImpl {
	return &SessionServiceImpl{
		authClient: authClient,
		store:      store,
	}
}

// Login выполняет вход пользователя. При успехе токены сохранены,
// пользователь установлен и возвращен переход на dashboard.
func (s *SessionServiceImpl) Login(ctx context.Context, username, password string) (services.Navigation, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogin, zap.String("username", username))

	s.setError("")

	resp, err := s.authClient.Login(ctx, &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		log.Error(ctx, ErrorLoginFailed, zap.Error(err))
		s.setError(serverErrorMessage(err, fallbackLoginError))
		return services.Navigation{}, err
	}

	if err := s.store.Set(ctx, resp.Tokens); err != nil {
		log.Error(ctx, ErrorLoginFailed, zap.Error(err))
		s.setError(fallbackLoginError)
		return services.Navigation{}, err
	}

	s.setUser(&resp.User)

	return services.Navigation{Target: NavigateDashboard}, nil
}

// Register регистрирует пользователя и направляет на страницу входа
// с маркером registered=true для баннера подтверждения.
func (s *SessionServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (services.Navigation, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceRegister, zap.String("username", req.Username))

	s.setError("")

	if _, err := s.authClient.Register(ctx, req); err != nil {
		log.Error(ctx, ErrorRegisterFailed, zap.Error(err))
		s.setError(serverErrorMessage(err, fallbackRegisterError))
		return services.Navigation{}, err
	}

	return services.Navigation{Target: NavigateRegistered}, nil
}

// Logout отзывает refresh-токен по мере возможности. Очистка хранилища и
// состояния гарантированы независимо от результата вызова backend.
func (s *SessionServiceImpl) Logout(ctx context.Context) services.Navigation {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogout)

	if pair, err := s.store.Get(ctx); err == nil {
		if err := s.authClient.Logout(ctx, pair.Refresh); err != nil {
			// Отказ backend не мешает локальному завершению сессии.
			log.Warn(ctx, "backend logout failed", zap.Error(err))
		}
	}

	if err := s.store.Clear(ctx); err != nil {
		log.Error(ctx, ErrorClearTokens, zap.Error(err))
	}
	s.setUser(nil)
	s.setError("")

	return services.Navigation{Target: NavigateLogin}
}

// ResolveSession восстанавливает сессию для маршрута указанного класса.
// Неудачное восстановление никогда не показывается как ошибка -
// защищенный маршрут молча направляется на страницу входа.
func (s *SessionServiceImpl) ResolveSession(ctx context.Context, route services.RouteClass) (services.Session, services.Navigation) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogServiceResolve)

	if route == services.RoutePublic {
		return s.CurrentSession(), services.Navigation{}
	}

	if _, err := s.store.Get(ctx); err != nil {
		s.setUser(nil)
		if route == services.RouteProtected {
			return s.CurrentSession(), services.Navigation{Target: NavigateLogin}
		}
		return s.CurrentSession(), services.Navigation{}
	}

	user, err := s.authClient.GetProfile(ctx)
	if err != nil {
		// Интерцептор уже попытался обновить токен; сюда попадает
		// только невосстановимая сессия.
		log.Warn(ctx, ErrorResolveFailed, zap.Error(err))
		s.setUser(nil)
		if route == services.RouteProtected {
			// При ErrSessionExpired хранилище уже очищено интерцептором;
			// повторная очистка безвредна.
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				log.Error(ctx, ErrorClearTokens, zap.Error(clearErr))
			}
			return s.CurrentSession(), services.Navigation{Target: NavigateLogin}
		}
		return s.CurrentSession(), services.Navigation{}
	}

	s.setUser(user)

	if route == services.RouteAuth {
		return s.CurrentSession(), services.Navigation{Target: NavigateDashboard}
	}
	return s.CurrentSession(), services.Navigation{}
}

// ResetPassword запрашивает сброс пароля для указанного email.
func (s *SessionServiceImpl) ResetPassword(ctx context.Context, email string) error {
	return s.authClient.ResetPassword(ctx, email)
}

// UpdateProfile изменяет профиль текущего пользователя и обновляет состояние.
func (s *SessionServiceImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.User, error) {
	user, err := s.authClient.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// ChangePassword меняет пароль текущего пользователя.
func (s *SessionServiceImpl) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	return s.authClient.ChangePassword(ctx, req)
}

// CurrentSession возвращает снимок состояния сессии без сетевых вызовов.
func (s *SessionServiceImpl) CurrentSession() services.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := services.Session{Error: s.errMsg}
	if s.user != nil {
		userCopy := *s.user
		session.User = &userCopy
	}
	return session
}

// ClearError сбрасывает состояние ошибки.
func (s *SessionServiceImpl) ClearError() {
	s.setError("")
}

func (s *SessionServiceImpl) setUser(user *dto.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *SessionServiceImpl) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// serverErrorMessage извлекает присланное сервером сообщение об ошибке.
// Это единственная точка перевода ошибок API в строки для пользователя.
func serverErrorMessage(err error, fallback string) string {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Error()
		if apiErr.Detail != "" {
			msg = apiErr.Detail
		}
		return msg
	}
	return fallback
}
