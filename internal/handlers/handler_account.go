package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/middleware"
)

// accountHandler handles bank account related requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes sets up the routes for account management.
// The group is already behind the auth middleware.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleStaff), h.ListAccounts)
		accounts.GET("/user/:userID", h.ListUserAccounts)
		accounts.PATCH("/:accountID/status", middleware.RequireRoles(domain.RoleAdmin, domain.RoleStaff), h.UpdateAccountStatus)
		accounts.DELETE("/:accountID", middleware.RequireRoles(domain.RoleAdmin), h.DeleteAccount)
	}
}

// CreateAccount godoc
// @Summary Open a new bank account
// @Description Opens an account owned by the authenticated user
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) CreateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Account type is required"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    dto.ToAccountResponse(account),
	})
}

// ListAccounts godoc
// @Summary List all bank accounts
// @Description Lists every account with owner identity. Admin and staff only.
// @Tags accounts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) ListAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied. Insufficient role."})
			return
		}
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToListAccountWithOwnerResponse(accounts)})
}

// ListUserAccounts godoc
// @Summary List accounts owned by a user
// @Description Users can list their own accounts; admin and staff can list anyone's
// @Tags accounts
// @Produce json
// @Param userID path string true "Owner user ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/user/{userID} [get]
func (h *accountHandler) ListUserAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccountsForUser(c.Request.Context(), principal, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No accounts found for this user"})
		default:
			logger.Error("Failed to list user accounts", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToListAccountWithOwnerResponse(accounts)})
}

// UpdateAccountStatus godoc
// @Summary Change the lifecycle status of an account
// @Description Sets the account status to active, dormant or closed. Admin and staff only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param status body dto.UpdateAccountStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/status [patch]
func (h *accountHandler) UpdateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Status is required"})
		return
	}

	account, err := h.accountService.UpdateAccountStatus(c.Request.Context(), principal, accountID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		default:
			logger.Error("Failed to update account status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account status updated",
		"data":    dto.ToAccountResponse(account),
	})
}

// DeleteAccount godoc
// @Summary Delete a bank account
// @Description Permanently removes an account and its ledger entries. Admin only.
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) DeleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), principal, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to delete account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
