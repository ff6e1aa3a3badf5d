// Package finance содержит HTTP обработчики finance-ресурсов.
// Обработчики - простые потребители авторизованного клиента: привязка
// данных без собственной логики.
package finance

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/gateway/adapters/rest"
	"finledger/internal/gateway/app/dto"
	"finledger/internal/gateway/app/http/middleware"
	"finledger/internal/gateway/ports/api"
	"finledger/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	ErrMsgInvalidResourceID  = "invalid resource id"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов finance-ресурсов.
type Handler struct {
	financeClient api.FinanceClient
}

// NewHandler создает новый экземпляр обработчика finance-ресурсов.
func NewHandler(financeClient api.FinanceClient) *Handler {
	return &Handler{financeClient: financeClient}
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

// pathID разбирает числовой идентификатор ресурса из пути.
func pathID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgInvalidResourceID, err)
	}
	return id, nil
}

// queryListParams собирает параметры списочного запроса из query-строки.
func queryListParams(ctx fiber.Ctx) *dto.ListParams {
	page, _ := strconv.Atoi(ctx.Query("page"))
	pageSize, _ := strconv.Atoi(ctx.Query("page_size"))

	return &dto.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   ctx.Query("search"),
		Ordering: ctx.Query("ordering"),
	}
}

// ListWallets возвращает страницу кошельков.
func (h *Handler) ListWallets(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.financeClient.ListWallets(requestCtx, queryListParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// GetWallet возвращает кошелек по идентификатору.
func (h *Handler) GetWallet(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	wallet, err := h.financeClient.GetWallet(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, wallet)
}

// CreateWallet создает новый кошелек.
func (h *Handler) CreateWallet(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateWalletRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	wallet, err := h.financeClient.CreateWallet(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, wallet)
}

// UpdateWallet обновляет кошелек.
func (h *Handler) UpdateWallet(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	var req dto.CreateWalletRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	wallet, err := h.financeClient.UpdateWallet(requestCtx, id, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, wallet)
}

// DeleteWallet удаляет кошелек.
func (h *Handler) DeleteWallet(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	if err := h.financeClient.DeleteWallet(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// RecalculateWallet пересчитывает текущий баланс кошелька.
func (h *Handler) RecalculateWallet(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	wallet, err := h.financeClient.RecalculateWallet(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, wallet)
}

// ListTransactions возвращает страницу операций.
func (h *Handler) ListTransactions(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.financeClient.ListTransactions(requestCtx, queryListParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// GetTransaction возвращает операцию по идентификатору.
func (h *Handler) GetTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	txn, err := h.financeClient.GetTransaction(requestCtx, id)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, txn)
}

// CreateTransaction создает новую операцию.
func (h *Handler) CreateTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateTransactionRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	txn, err := h.financeClient.CreateTransaction(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, txn)
}

// UpdateTransaction обновляет операцию.
func (h *Handler) UpdateTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	var req dto.CreateTransactionRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	txn, err := h.financeClient.UpdateTransaction(requestCtx, id, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, txn)
}

// DeleteTransaction удаляет операцию.
func (h *Handler) DeleteTransaction(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	if err := h.financeClient.DeleteTransaction(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListCategories возвращает страницу категорий.
func (h *Handler) ListCategories(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.financeClient.ListCategories(requestCtx, queryListParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// CreateCategory создает новую категорию.
func (h *Handler) CreateCategory(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateCategoryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	category, err := h.financeClient.CreateCategory(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, category)
}

// UpdateCategory обновляет категорию.
func (h *Handler) UpdateCategory(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	var req dto.CreateCategoryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	category, err := h.financeClient.UpdateCategory(requestCtx, id, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, category)
}

// DeleteCategory удаляет категорию.
func (h *Handler) DeleteCategory(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	if err := h.financeClient.DeleteCategory(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListTags возвращает страницу меток.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.financeClient.ListTags(requestCtx, queryListParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// CreateTag создает новую метку.
func (h *Handler) CreateTag(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateTagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	tag, err := h.financeClient.CreateTag(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, tag)
}

// DeleteTag удаляет метку.
func (h *Handler) DeleteTag(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	if err := h.financeClient.DeleteTag(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// ListTransfers возвращает страницу переводов.
func (h *Handler) ListTransfers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	page, err := h.financeClient.ListTransfers(requestCtx, queryListParams(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusOK, page)
}

// CreateTransfer создает новый перевод между кошельками.
func (h *Handler) CreateTransfer(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	var req dto.CreateTransferRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidRequestBody})
	}

	transfer, err := h.financeClient.CreateTransfer(requestCtx, &req)
	if err != nil {
		return handleError(ctx, err)
	}
	return respondJSON(ctx, fiber.StatusCreated, transfer)
}

// DeleteTransfer удаляет перевод.
func (h *Handler) DeleteTransfer(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	id, err := pathID(ctx)
	if err != nil {
		return respondJSON(ctx, fiber.StatusBadRequest, fiber.Map{"error": ErrMsgInvalidResourceID})
	}

	if err := h.financeClient.DeleteTransfer(requestCtx, id); err != nil {
		return handleError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
