package training

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/api"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// List godoc
// @Summary      List trainings
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   models.Training
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/trainings [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.GetAll(c.Request.Context())
	respondList(c, list, err)
}

// Get godoc
// @Summary      Get training by id
// @Description  Clients may only read their own trainings.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Training ID"
// @Success      200  {object}  models.Training
// @Failure      400  {object}  api.ErrorResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/trainings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Training not found"})
		return
	}
	if !canActFor(c, t.UserID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only view your own trainings"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// ListByUser godoc
// @Summary      List trainings of a user
// @Description  Clients may only list their own trainings.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {array}   models.Training
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Router       /api/trainings/by-user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := api.UUIDParam(c, "userId")
	if !ok {
		return
	}
	if !canActFor(c, userID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only view your own trainings"})
		return
	}

	list, err := h.service.UserTrainings(c.Request.Context(), userID)
	respondList(c, list, err)
}

// ListByStatus godoc
// @Summary      List trainings by status
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        status  path      string  true  "Pending, Confirmed or Declined"
// @Success      200     {array}   models.Training
// @Failure      400     {object}  api.ErrorResponse
// @Router       /api/trainings/by-status/{status} [get]
func (h *Handler) ListByStatus(c *gin.Context) {
	status, err := models.ParseStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	list, err := h.repo.GetByStatus(c.Request.Context(), status)
	respondList(c, list, err)
}

// Schedule godoc
// @Summary      Administrator schedule
// @Description  Upcoming trainings with their owners, ordered by date.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "RFC3339 lower bound, defaults to now"
// @Success      200   {array}   ScheduleEntry
// @Failure      400   {object}  api.ErrorResponse
// @Router       /api/trainings/schedule [get]
func (h *Handler) Schedule(c *gin.Context) {
	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from must be an RFC3339 timestamp"})
			return
		}
		from = parsed
	}

	entries, err := h.service.AdminSchedule(c.Request.Context(), from)
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if entries == nil {
		entries = []ScheduleEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// Create godoc
// @Summary      Request a training
// @Description  Books a pending training. Clients may only book for themselves.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainingRequest  true  "Training request"
// @Success      201      {object}  models.Training
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /api/trainings [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTrainingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	userID := uuid.MustParse(req.UserID)
	if !canActFor(c, userID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only book trainings for yourself"})
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	t, err := h.service.Request(c.Request.Context(), userID, date)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// Update godoc
// @Summary      Update training
// @Description  Moves or reassigns a training. The status cannot change here; use confirm or decline.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Training ID"
// @Param        request  body      UpdateTrainingRequest  true  "Training data"
// @Success      200      {object}  models.Training
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /api/trainings/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTrainingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t := &models.Training{
		ID:              id,
		UserID:          uuid.MustParse(req.UserID),
		Recommendations: req.Recommendations,
	}
	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.Status != nil {
		t.Status = *req.Status
	} else {
		current, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil {
			api.RespondError(c, err)
			return
		}
		if current == nil {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Training not found"})
			return
		}
		t.Status = current.Status
	}

	updated, err := h.repo.Update(c.Request.Context(), t)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Confirm godoc
// @Summary      Confirm training
// @Description  Confirms a pending training and notifies its owner.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string           true   "Training ID"
// @Param        request  body      DecisionRequest  false  "Recommendations for the client"
// @Success      200      {object}  models.Training
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /api/trainings/{id}/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	h.decide(c, h.service.Confirm)
}

// Decline godoc
// @Summary      Decline training
// @Description  Declines a pending training and notifies its owner.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string           true   "Training ID"
// @Param        request  body      DecisionRequest  false  "Reason or recommendations"
// @Success      200      {object}  models.Training
// @Failure      404      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Router       /api/trainings/{id}/decline [post]
func (h *Handler) Decline(c *gin.Context) {
	h.decide(c, h.service.Decline)
}

type decision func(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error)

func (h *Handler) decide(c *gin.Context, fn decision) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	// the body is optional
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	t, err := fn(c.Request.Context(), id, req.Recommendations)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// Delete godoc
// @Summary      Delete training
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Training ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/trainings/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Training deleted"})
}

func respondList(c *gin.Context, list []models.Training, err error) {
	if err != nil {
		api.RespondError(c, err)
		return
	}
	if list == nil {
		list = []models.Training{}
	}
	c.JSON(http.StatusOK, list)
}

// canActFor reports whether the caller may act on behalf of userID.
func canActFor(c *gin.Context, userID uuid.UUID) bool {
	if auth.GetRole(c) == models.RoleAdministrator.String() {
		return true
	}
	callerID, ok := auth.GetUserID(c)
	return ok && callerID == userID
}
