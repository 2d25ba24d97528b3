package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
)

// AuthController handles registration, login and profile operations
type AuthController struct {
	authService *services.AuthService
	logService  *services.LogService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logService *services.LogService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logService:  logService,
		logger:      logger,
	}
}

// Register handles student registration
// @Summary Register a new student account
// @Description Creates a student account with the provided name, email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		c.logService.Error(ctx.Request.Context(), "auth.register", err, requestMeta(ctx))
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "auth.register", "student account created: "+req.Email, requestMeta(ctx))
	ctx.JSON(http.StatusCreated, dto.SuccessResponse(resp))
}

// RegisterAdmin handles admin registration
// @Summary Register a new admin account
// @Description Creates an admin account. The request must carry the configured admin registration code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterAdminRequest true "Admin registration payload"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 403 {object} dto.ErrorResponse "Invalid admin registration code"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register-admin [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req dto.RegisterAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid admin registration payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.RegisterAdmin(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Admin registration failed")
		c.logService.Security(ctx.Request.Context(), "auth.register_admin", "admin registration rejected for "+req.Email, requestMeta(ctx))
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "auth.register_admin", "admin account created: "+req.Email, requestMeta(ctx))
	ctx.JSON(http.StatusCreated, dto.SuccessResponse(resp))
}

// Login handles authentication
// @Summary Authenticate an account
// @Description Verifies the credentials and returns a bearer token valid for two hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login payload"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Str("email", req.Email).Msg("Login failed")
		c.logService.Security(ctx.Request.Context(), "auth.login", "failed login attempt for "+req.Email, requestMeta(ctx))
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "auth.login", "login: "+req.Email, requestMeta(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse(resp))
}

// GetProfile returns the authenticated account's own profile
// @Summary Get own profile
// @Description Returns the authenticated account's identity and enrolled course names.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.authService.GetProfile(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(resp))
}
