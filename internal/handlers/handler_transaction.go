package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/middleware"
)

// transactionHandler handles teller operations and ledger reads.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes sets up the routes for teller transactions.
// The group is already behind the auth middleware. Gin requires every
// wildcard in the same position to share a name, so the account routes and
// the single-transaction route all use :id.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)
	staffOnly := middleware.RequireRoles(domain.RoleStaff)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/:id/credit", staffOnly, h.Credit)
		transactions.POST("/:id/debit", staffOnly, h.Debit)
		transactions.GET("/:id/transactions", h.GetHistory)
		transactions.GET("/:id", h.GetTransactionByID)
	}
}

// Credit godoc
// @Summary Credit an account
// @Description Deposits an amount into the account and records a ledger entry. Staff only.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param teller body dto.TellerRequest true "Amount"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/credit [post]
func (h *transactionHandler) Credit(c *gin.Context) {
	h.applyTellerOp(c, h.transactionService.Credit, "Account credited successfully")
}

// Debit godoc
// @Summary Debit an account
// @Description Withdraws an amount from the account and records a ledger entry. Staff only.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param teller body dto.TellerRequest true "Amount"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/debit [post]
func (h *transactionHandler) Debit(c *gin.Context) {
	h.applyTellerOp(c, h.transactionService.Debit, "Account debited successfully")
}

type tellerOp func(ctx context.Context, principal domain.Principal, accountID string, amount decimal.Decimal) (*domain.Transaction, error)

func (h *transactionHandler) applyTellerOp(c *gin.Context, op tellerOp, successMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A positive amount is required"})
		return
	}

	txn, err := op(c.Request.Context(), principal, accountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient funds"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied. Staff only."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		default:
			logger.Error("Teller operation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": successMsg,
		"data":    dto.ToTransactionResponse(txn),
	})
}

// GetHistory godoc
// @Summary List an account's transactions
// @Description Returns the account's ledger entries, most recent first. Owner only.
// @Tags transactions
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id}/transactions [get]
func (h *transactionHandler) GetHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txns, err := h.transactionService.GetHistory(c.Request.Context(), principal, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to fetch transaction history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToListTransactionResponse(txns)})
}

// GetTransactionByID godoc
// @Summary Fetch a single transaction
// @Description Returns one ledger entry. The caller must own the parent account.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) GetTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), principal, transactionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Transaction belongs to another account"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		default:
			logger.Error("Failed to fetch transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTransactionResponse(txn)})
}
