package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/service"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/log"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/response"
)

const (
	defaultPage  = 1
	defaultLimit = 5
	maxLimit     = 100
)

// Handler handles HTTP requests for the user service.
type Handler struct {
	userService service.UserService
}

// NewHandler creates a new HTTP handler.
func NewHandler(userService service.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/create-user", h.CreateUser)
			users.GET("/all/users", h.ListUsers)
			users.GET("/email/:email", h.GetUserByEmail)
			users.GET("/preferences/:user_id", h.GetPreferences)
			users.PUT("/:user_id/preferences", h.UpdatePreferences)
			users.PUT("/update-push-token/:user_id", h.UpdatePushToken)
			users.POST("/verify-password", h.VerifyPassword)
			users.PUT("/update-password/:user_id", h.UpdatePassword)
			users.GET("/:user_id", h.GetUser)
			users.DELETE("/:user_id", h.DeleteUser)
		}
	}
}

// respondError is the single mapping from data-access error kinds to HTTP
// statuses. Unknown errors become a generic 500; their text stays in the
// structured log only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, "User with this email already exists.")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "User not found.")
	case errors.Is(err, service.ErrPreferenceNotFound):
		response.NotFound(c, "User preference not found.")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid password.")
	case errors.Is(err, service.ErrWrongPassword):
		response.Unauthorized(c, "Current password is incorrect.")
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		response.InternalError(c, "An unexpected error occurred.")
	}
}

// CreateUser handles POST /create-user.
func (h *Handler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid create user request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.CreateUser(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, "User created successfully.", user)
}

// GetUser handles GET /:user_id.
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "User retrieved successfully.", user)
}

// GetUserByEmail handles GET /email/:email.
func (h *Handler) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "User retrieved successfully.", user)
}

// UpdatePushToken handles PUT /update-push-token/:user_id.
func (h *Handler) UpdatePushToken(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.UpdatePushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid push token request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdatePushToken(ctx, c.Param("user_id"), req.PushToken)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "Push token updated successfully.", user)
}

// GetPreferences handles GET /preferences/:user_id.
func (h *Handler) GetPreferences(c *gin.Context) {
	pref, err := h.userService.GetPreference(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "User preferences retrieved successfully.", pref)
}

// UpdatePreferences handles PUT /:user_id/preferences. Omitted flags
// default to enabled.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.PreferenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid preferences request")
		response.BadRequest(c, err.Error())
		return
	}

	pref, err := h.userService.UpdatePreference(ctx, c.Param("user_id"), req.EmailEnabled(), req.PushEnabled())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "User preferences updated successfully.", pref)
}

// VerifyPassword handles POST /verify-password.
func (h *Handler) VerifyPassword(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid verify password request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "Password verified successfully.", user)
}

// UpdatePassword handles PUT /update-password/:user_id.
func (h *Handler) UpdatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("invalid update password request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdatePassword(ctx, c.Param("user_id"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "Password updated successfully.", user)
}

// ListUsers handles GET /all/users.
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.OKWithMeta(c, "Users retrieved successfully.", domain.UserListResponse{Users: users}, meta)
}

// DeleteUser handles DELETE /:user_id.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, "User deleted successfully.", nil)
}

// Health handles GET /health: 200 when both dependencies respond, 503
// otherwise.
func (h *Handler) Health(c *gin.Context) {
	status := h.userService.Health(c.Request.Context())

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// parsePagination reads page/limit query params with their defaults and
// bounds (page >= 1, limit 1..100). On violation it writes a 400 and
// returns ok=false.
func parsePagination(c *gin.Context) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		response.BadRequest(c, "page must be an integer greater than or equal to 1")
		return 0, 0, false
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		response.BadRequest(c, "limit must be an integer between 1 and 100")
		return 0, 0, false
	}

	return page, limit, true
}
