package rest

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/ports/api"
	"finledger/pkg/logger"
)

// Эндпоинты аутентификации.
const (
	pathRegister       = "auth/register/"
	pathLogin          = "auth/login/"
	pathLogout         = "auth/logout/"
	pathProfile        = "auth/profile/"
	pathPasswordChange = "auth/password/change/"
	pathPasswordReset  = "auth/password/reset/"
)

// Константы для логирования.
const (
	LogMethodRegister       = "Register"
	LogMethodLogin          = "Login"
	LogMethodLogout         = "Logout"
	LogMethodGetProfile     = "GetProfile"
	LogMethodUpdateProfile  = "UpdateProfile"
	LogMethodChangePassword = "ChangePassword"
	LogMethodResetPassword  = "ResetPassword"

	ErrorFailedToRegister       = "failed to register user"
	ErrorFailedToLogin          = "failed to login"
	ErrorFailedToLogout         = "failed to logout"
	ErrorFailedToGetProfile     = "failed to get user profile"
	ErrorFailedToUpdateProfile  = "failed to update user profile"
	ErrorFailedToChangePassword = "failed to change password"
	ErrorFailedToResetPassword  = "failed to request password reset"
)

// AuthClientImpl реализует интерфейс api.AuthClient поверх REST эндпоинтов.
type AuthClientImpl struct {
	client *Client
}

// NewAuthClient создает новый клиент auth-эндпоинтов.
func NewAuthClient(client *Client) api.AuthClient {
	return &AuthClientImpl{client: client}
}

// Register регистрирует нового пользователя. Выполняется публичным клиентом.
func (c *AuthClientImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRegister))

	var user dto.User
	if err := c.client.doJSON(ctx, c.client.public, http.MethodPost, pathRegister, nil, req, &user); err != nil {
		log.Error(ctx, ErrorFailedToRegister, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRegister, err)
	}

	return &user, nil
}

// Login выполняет вход пользователя. Выполняется публичным клиентом.
func (c *AuthClientImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogin))

	var resp dto.LoginResponse
	if err := c.client.doJSON(ctx, c.client.public, http.MethodPost, pathLogin, nil, req, &resp); err != nil {
		log.Error(ctx, ErrorFailedToLogin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLogin, err)
	}

	return &resp, nil
}

// Logout отзывает refresh-токен на сервере.
func (c *AuthClientImpl) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogout))

	req := dto.LogoutRequest{Refresh: refreshToken}
	if err := c.client.doJSON(ctx, c.client.authorized, http.MethodPost, pathLogout, nil, req, nil); err != nil {
		log.Error(ctx, ErrorFailedToLogout, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToLogout, err)
	}

	return nil
}

// GetProfile получает профиль текущего пользователя.
func (c *AuthClientImpl) GetProfile(ctx context.Context) (*dto.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGetProfile))

	var user dto.User
	if err := c.client.doJSON(ctx, c.client.authorized, http.MethodGet, pathProfile, nil, nil, &user); err != nil {
		log.Error(ctx, ErrorFailedToGetProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGetProfile, err)
	}

	return &user, nil
}

// UpdateProfile изменяет поля профиля текущего пользователя.
func (c *AuthClientImpl) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.User, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodUpdateProfile))

	var user dto.User
	if err := c.client.doJSON(ctx, c.client.authorized, http.MethodPatch, pathProfile, nil, req, &user); err != nil {
		log.Error(ctx, ErrorFailedToUpdateProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToUpdateProfile, err)
	}

	return &user, nil
}

// ChangePassword меняет пароль текущего пользователя.
func (c *AuthClientImpl) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodChangePassword))

	if err := c.client.doJSON(ctx, c.client.authorized, http.MethodPut, pathPasswordChange, nil, req, nil); err != nil {
		log.Error(ctx, ErrorFailedToChangePassword, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToChangePassword, err)
	}

	return nil
}

// ResetPassword запрашивает сброс пароля. Выполняется публичным клиентом;
// сервер отвечает 200 независимо от существования аккаунта.
func (c *AuthClientImpl) ResetPassword(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodResetPassword))

	req := dto.PasswordResetRequest{Email: email}
	if err := c.client.doJSON(ctx, c.client.public, http.MethodPost, pathPasswordReset, nil, req, nil); err != nil {
		log.Error(ctx, ErrorFailedToResetPassword, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToResetPassword, err)
	}

	return nil
}
