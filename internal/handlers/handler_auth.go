package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tellerdesk/teller_backend/internal/apperrors"
	"github.com/tellerdesk/teller_backend/internal/core/domain"
	portssvc "github.com/tellerdesk/teller_backend/internal/core/ports/services"
	"github.com/tellerdesk/teller_backend/internal/dto"
	"github.com/tellerdesk/teller_backend/internal/middleware"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService portssvc.UserSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{userService: us}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User)

	// Rate limit: 5 requests per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/signup", limitMiddleware, h.Signup)
		auth.POST("/signin", limitMiddleware, h.Signin)
		auth.POST("/signup-staff",
			middleware.AuthMiddleware(services.Token),
			middleware.RequireRoles(domain.RoleAdmin),
			h.CreateStaff,
		)
		auth.POST("/password-reset/request", limitMiddleware, h.RequestPasswordReset)
		auth.POST("/password-reset/reset", h.ResetPassword)
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user account and returns it with a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) Signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, token, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.ToUserResponse(user),
		Token:   token,
	})
}

// Signin godoc
// @Summary User login
// @Description Authenticates a user and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.SigninRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *authHandler) Signin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("Failed to sign in user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.ToUserResponse(user),
		Token:   token,
	})
}

// CreateStaff godoc
// @Summary Create a staff (cashier) user
// @Description Creates a staff user. Admin only.
// @Tags auth
// @Accept json
// @Produce json
// @Param staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/signup-staff [post]
func (h *authHandler) CreateStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
		return
	}

	staff, token, err := h.userService.CreateStaff(c.Request.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Access denied. Admins only."})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
		default:
			logger.Error("Failed to create staff user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Staff account created successfully",
		User:    dto.ToUserResponse(staff),
		Token:   token,
	})
}

// RequestPasswordReset godoc
// @Summary Request a password reset token
// @Description Issues a short-lived reset token for the given email. Email delivery is simulated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Account email"
// @Success 200 {object} dto.PasswordResetResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/password-reset/request [post]
func (h *authHandler) RequestPasswordReset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is required"})
		return
	}

	token, err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to issue reset token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.PasswordResetResponse{
		Message:    "Password reset link sent to email",
		ResetToken: token,
	})
}

// ResetPassword godoc
// @Summary Reset a password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /auth/password-reset/reset [post]
func (h *authHandler) ResetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Token and new password are required"})
		return
	}

	err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
			return
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger.Error("Failed to reset password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
