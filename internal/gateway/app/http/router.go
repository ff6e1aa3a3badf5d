// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"finledger/internal/gateway/app/http/auth"
	"finledger/internal/gateway/app/http/finance"
	"finledger/internal/gateway/app/http/invest"
	"finledger/internal/gateway/app/http/middleware"
	"finledger/internal/gateway/ports/api"
	"finledger/internal/gateway/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, session services.SessionService, financeClient api.FinanceClient, investClient api.InvestClient) {
	authHandler := auth.NewHandler(session)
	financeHandler := finance.NewHandler(financeClient)
	investHandler := invest.NewHandler(investClient)

	// Middleware для всех запросов. Guard идет последним: к моменту
	// обработки маршрута сессия уже восстановлена.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewGuardMiddleware(session))

	// Маршруты аутентификации (публичные).
	app.Post("/login", authHandler.Login)
	app.Post("/register", authHandler.Register)
	app.Post("/forget-password", authHandler.ForgetPassword)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Session)

	// Защищенные маршруты.
	app.Get("/dashboard", authHandler.Dashboard)
	app.Get("/profile", authHandler.Profile)
	app.Patch("/profile", authHandler.UpdateProfile)
	app.Put("/settings/password", authHandler.ChangePassword)

	// Finance-ресурсы (защищенные, JSON).
	financeRoutes := app.Group("/api/finance")
	financeRoutes.Get("/wallets", financeHandler.ListWallets)
	financeRoutes.Post("/wallets", financeHandler.CreateWallet)
	financeRoutes.Get("/wallets/:id", financeHandler.GetWallet)
	financeRoutes.Put("/wallets/:id", financeHandler.UpdateWallet)
	financeRoutes.Delete("/wallets/:id", financeHandler.DeleteWallet)
	financeRoutes.Post("/wallets/:id/recalculate", financeHandler.RecalculateWallet)

	financeRoutes.Get("/transactions", financeHandler.ListTransactions)
	financeRoutes.Post("/transactions", financeHandler.CreateTransaction)
	financeRoutes.Get("/transactions/:id", financeHandler.GetTransaction)
	financeRoutes.Put("/transactions/:id", financeHandler.UpdateTransaction)
	financeRoutes.Delete("/transactions/:id", financeHandler.DeleteTransaction)

	financeRoutes.Get("/categories", financeHandler.ListCategories)
	financeRoutes.Post("/categories", financeHandler.CreateCategory)
	financeRoutes.Put("/categories/:id", financeHandler.UpdateCategory)
	financeRoutes.Delete("/categories/:id", financeHandler.DeleteCategory)

	financeRoutes.Get("/tags", financeHandler.ListTags)
	financeRoutes.Post("/tags", financeHandler.CreateTag)
	financeRoutes.Delete("/tags/:id", financeHandler.DeleteTag)

	financeRoutes.Get("/transfers", financeHandler.ListTransfers)
	financeRoutes.Post("/transfers", financeHandler.CreateTransfer)
	financeRoutes.Delete("/transfers/:id", financeHandler.DeleteTransfer)

	// Invest-ресурсы (защищенные, JSON).
	investRoutes := app.Group("/api/invest")
	investRoutes.Get("/portfolios", investHandler.ListPortfolios)
	investRoutes.Post("/portfolios", investHandler.CreatePortfolio)
	investRoutes.Get("/portfolios/:id", investHandler.GetPortfolio)
	investRoutes.Put("/portfolios/:id", investHandler.UpdatePortfolio)
	investRoutes.Delete("/portfolios/:id", investHandler.DeletePortfolio)
	investRoutes.Get("/portfolios/:id/holdings", investHandler.ListHoldings)

	investRoutes.Get("/assets", investHandler.ListAssets)
	investRoutes.Get("/assets/:id", investHandler.GetAsset)

	investRoutes.Get("/transactions", investHandler.ListTransactions)
	investRoutes.Post("/transactions", investHandler.CreateTransaction)
	investRoutes.Delete("/transactions/:id", investHandler.DeleteTransaction)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
