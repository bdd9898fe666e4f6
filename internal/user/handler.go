package user

import (
	"errors"
	"net/http"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/api"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo    Repository
	service Service
}

func NewHandler(repo Repository, service Service) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
	}
}

// IssueToken godoc
// @Summary      Issue tokens
// @Description  Exchanges the shared API key and a registered Telegram name for access and refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      TokenRequest  true  "Credentials"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /auth/token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, accessToken, refreshToken, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid API key or telegram name"})
			return
		}
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if !api.BindJSON(c, &req) {
		return
	}

	accessToken, u, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRefresh):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired refresh token"})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User no longer exists"})
		default:
			api.RespondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: accessToken, User: *u})
}

// GetMe godoc
// @Summary      Get current user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	u, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   models.User
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// Get godoc
// @Summary      Get user by id
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	u, err := h.repo.GetByID(c.Request.Context(), id)
	h.respondUser(c, u, err)
}

// GetByTelegramName godoc
// @Summary      Get user by Telegram name
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        telegramName  path      string  true  "Telegram username"
// @Success      200           {object}  models.User
// @Failure      404           {object}  api.ErrorResponse
// @Router       /api/users/by-telegram/{telegramName} [get]
func (h *Handler) GetByTelegramName(c *gin.Context) {
	u, err := h.repo.GetByTelegramName(c.Request.Context(), c.Param("telegramName"))
	h.respondUser(c, u, err)
}

// GetByFullName godoc
// @Summary      Get user by full name
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        fullName  path      string  true  "Full name"
// @Success      200       {object}  models.User
// @Failure      404       {object}  api.ErrorResponse
// @Router       /api/users/by-full-name/{fullName} [get]
func (h *Handler) GetByFullName(c *gin.Context) {
	u, err := h.repo.GetByFullName(c.Request.Context(), c.Param("fullName"))
	h.respondUser(c, u, err)
}

func (h *Handler) respondUser(c *gin.Context, u *models.User, err error) {
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create godoc
// @Summary      Register user
// @Description  Creates a user. Role defaults to Client.
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateUserRequest  true  "User data"
// @Success      201      {object}  models.User
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/users [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u := &models.User{
		TelegramName: req.TelegramName,
		FullName:     req.FullName,
		Role:         models.RoleClient,
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	created, err := h.repo.Create(c.Request.Context(), u)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary      Update user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "User ID"
// @Param        request  body      UpdateUserRequest  true  "User data"
// @Success      200      {object}  models.User
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !api.BindJSON(c, &req) {
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), &models.User{
		ID:           id,
		TelegramName: req.TelegramName,
		FullName:     req.FullName,
		Role:         *req.Role,
	})
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary      Delete user
// @Description  Fails with 409 while the user still owns trainings.
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted"})
}
