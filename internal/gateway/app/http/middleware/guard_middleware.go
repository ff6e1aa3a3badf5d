package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/gateway/ports/services"
	"finledger/pkg/logger"
)

// Константы для логирования.
const (
	LogGuardMiddleware = "route guard"

	ErrorAuthRequired = "authentication required"
)

// Классификация маршрутов Gateway.
var (
	// protectedPrefixes - маршруты, требующие аутентифицированную сессию.
	protectedPrefixes = []string{"/dashboard", "/finance", "/invest", "/settings", "/profile", "/api"}
	// authPaths - публичные страницы аутентификации; аутентифицированный
	// пользователь перенаправляется с них на dashboard.
	authPaths = []string{"/login", "/register", "/forget-password"}
)

// ClassifyRoute определяет класс маршрута по пути запроса.
func ClassifyRoute(path string) services.RouteClass {
	for _, authPath := range authPaths {
		if path == authPath {
			return services.RouteAuth
		}
	}
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return services.RouteProtected
		}
	}
	return services.RoutePublic
}

// NewGuardMiddleware создает промежуточное ПО, ограждающее маршруты по
// состоянию сессии. Защищенное содержимое не обрабатывается, пока сессия
// не восстановлена; перенаправление выполняется раньше любого обработчика.
func NewGuardMiddleware(session services.SessionService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		route := ClassifyRoute(ctx.Path())

		log := logger.Log(requestCtx).With(zap.String("middleware", "guard"))
		log.Debug(requestCtx, LogGuardMiddleware, zap.String("path", ctx.Path()))

		if route == services.RoutePublic {
			return ctx.Next()
		}

		_, navigation := session.ResolveSession(requestCtx, route)
		if navigation.Target == "" {
			return ctx.Next()
		}

		if route == services.RouteProtected && wantsJSON(ctx) {
			if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": ErrorAuthRequired,
			}); err != nil {
				return ctx.Redirect().To(navigation.Target)
			}
			return nil
		}

		return ctx.Redirect().To(navigation.Target)
	}
}

// wantsJSON сообщает, ожидает ли клиент JSON ответ вместо перенаправления.
func wantsJSON(ctx fiber.Ctx) bool {
	accept := ctx.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMEApplicationJSON) ||
		strings.HasPrefix(ctx.Path(), "/api")
}
