// Package invest содержит HTTP обработчики invest-ресурсов.
package invest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/app/http/middleware"
	"finledger/internal/gateway/ports/api"
	"finledger/pkg/logger"
)

// Константы ошибок для логирования.
const (
	ErrMsgMissingResourceID  = "missing resource id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов invest-ресурсов.
type Handler struct {
	investClient api.InvestClient
}

// NewHandler создает новый экземпляр обработчика invest-ресурсов.
func NewHandler(investClient api.InvestClient) *Handler {
	return &Handler{investClient: investClient}
}

// handleError переводит ошибку удаленного API в HTTP ответ.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	message := err.Error()

	var apiErr *rest.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		if apiErr.Detail != "" {
			message = apiErr.Detail
		}
	case errors.Is(err, rest.ErrSessionExpired):
		status = fiber.StatusUnauthorized
		message = "session expired"
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// respondJSON отправляет успешный JSON ответ.
func respondJSON(ctx fiber.Ctx, status int, payload any) error {
	if err := ctx.Status(status).JSON(payload); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// listParams собирает параметры списочного запроса из query-строки.
func listParams(ctx fiber.Ctx) *dto.ListParams {
	return &dto.ListParams{
		Search:   ctx.Query("search"),
		Ordering: ctx.Query("ordering"),
	}
}

// ListPortfolios возвращает страницу портфелей.
func (h *Handler) ListPortfolios(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.investClient.ListPortfolios(requestCtx, listParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// GetPortfolio возвращает портфель по идентификатору.
func (h *Handler) GetPortfolio(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	portfolio, err := h.investClient.GetPortfolio(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, portfolio)
}

// CreatePortfolio создает новый портфель.
func (h *Handler) CreatePortfolio(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreatePortfolioRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	portfolio, err := h.investClient.CreatePortfolio(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, portfolio)
}

// UpdatePortfolio обновляет портфель.
func (h *Handler) UpdatePortfolio(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	var req dto.CreatePortfolioRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	portfolio, err := h.investClient.UpdatePortfolio(requestCtx, id, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, portfolio)
}

// DeletePortfolio удаляет портфель.
func (h *Handler) DeletePortfolio(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	if err := h.investClient.DeletePortfolio(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListHoldings возвращает позиции указанного портфеля.
func (h *Handler) ListHoldings(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	page, err := h.investClient.ListHoldings(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// ListAssets возвращает страницу активов.
func (h *Handler) ListAssets(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.investClient.ListAssets(requestCtx, listParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// GetAsset возвращает актив по идентификатору.
func (h *Handler) GetAsset(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	asset, err := h.investClient.GetAsset(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, asset)
}

// ListTransactions возвращает страницу сделок.
func (h *Handler) ListTransactions(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.investClient.ListInvestTransactions(requestCtx, listParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// CreateTransaction создает новую сделку.
func (h *Handler) CreateTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateInvestTransactionRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	txn, err := h.investClient.CreateInvestTransaction(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, txn)
}

// DeleteTransaction удаляет сделку.
func (h *Handler) DeleteTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id := ctx.Params("id")
	if id == "" {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgMissingResourceID})
	}

	if err := h.investClient.DeleteInvestTransaction(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
