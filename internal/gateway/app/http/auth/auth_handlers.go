// Package auth содержит HTTP обработчики для работы с сессией.
package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/app/http/middleware"
	"finledger/internal/gateway/ports/services"
	"finledger/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin          = "auth handler: login"
	LogHandlerRegister       = "auth handler: register"
	LogHandlerLogout         = "auth handler: logout"
	LogHandlerSession        = "auth handler: session"
	LogHandlerProfile        = "auth handler: profile"
	LogHandlerForgetPassword = "auth handler: forget password"
	LogHandlerChangePassword = "auth handler: change password"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// sendErrorResponse отправляет JSON ошибку с указанным статусом.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// statusFromError выводит HTTP статус из ошибки удаленного API.
// Сетевые отказы upstream превращаются в 502.
func statusFromError(err error) int {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	if errors.Is(err, rest.ErrSessionExpired) {
		return fiber.StatusUnauthorized
	}
	return fiber.StatusBadGateway
}

// Handler содержит HTTP обработчики сессии.
type Handler struct {
	session services.SessionService
}

// NewHandler создает новый экземпляр обработчика сессии.
func NewHandler(session services.SessionService) *Handler {
	return &Handler{session: session}
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Username == "" || req.Password == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	navigation, err := h.session.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), h.session.CurrentSession().Error)
	}

	session := h.session.CurrentSession()
	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":     session.User,
		"redirect": navigation.Target,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "username, email and password are required")
	}

	navigation, err := h.session.Register(requestCtx, &req)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), h.session.CurrentSession().Error)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"redirect": navigation.Target,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Logout обрабатывает запрос на выход пользователя.
// Выход никогда не завершается ошибкой для пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	navigation := h.session.Logout(requestCtx)

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"redirect": navigation.Target,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Session возвращает свежий снимок состояния сессии.
func (h *Handler) Session(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSession)

	session, _ := h.session.ResolveSession(requestCtx, services.RouteProtected)

	resp := dto.SessionResponse{
		User:          session.User,
		Authenticated: session.IsAuthenticated(),
		Error:         session.Error,
	}
	if err := ctx.Status(fiber.StatusOK).JSON(resp); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Profile возвращает профиль текущего пользователя.
// Маршрут защищен: guard уже восстановил сессию.
func (h *Handler) Profile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerProfile)

	session := h.session.CurrentSession()
	if !session.IsAuthenticated() {
		return sendErrorResponse(ctx, fiber.StatusUnauthorized, "no active session")
	}

	if err := ctx.Status(fiber.StatusOK).JSON(session.User); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// UpdateProfile изменяет поля профиля текущего пользователя.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerProfile)

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	user, err := h.session.UpdateProfile(requestCtx, &req)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(fiber.StatusOK).JSON(user); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ChangePassword меняет пароль текущего пользователя.
func (h *Handler) ChangePassword(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerChangePassword)

	var req dto.ChangePasswordRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.OldPassword == "" || req.NewPassword == "" || req.NewPassword2 == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "all password fields are required")
	}

	if err := h.session.ChangePassword(requestCtx, &req); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": "password changed"}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ForgetPassword обрабатывает запрос на сброс пароля.
// Отвечает 200 независимо от существования аккаунта.
func (h *Handler) ForgetPassword(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerForgetPassword)

	var req dto.PasswordResetRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" {
		return sendErrorResponse(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.session.ResetPassword(requestCtx, req.Email); err != nil {
		// Ответ не раскрывает исход, но отказ логируется.
		log.Warn(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "if the account exists, a reset email has been sent",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Dashboard возвращает данные защищенной стартовой страницы.
func (h *Handler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, "auth handler: dashboard")

	session := h.session.CurrentSession()
	if !session.IsAuthenticated() {
		return sendErrorResponse(ctx, fiber.StatusUnauthorized, "no active session")
	}

	if err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": session.User,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
