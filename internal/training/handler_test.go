package training

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/apperr"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/auth"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "training-handler-secret"

func setupRouter(repo *MockRepository, svc *MockService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(repo, svc)
	r := gin.New()
	api := r.Group("/api", auth.AuthMiddleware(testJWTSecret))
	api.GET("/trainings", h.List)
	api.GET("/trainings/schedule", h.Schedule)
	api.GET("/trainings/by-user/:userId", h.ListByUser)
	api.GET("/trainings/by-status/:status", h.ListByStatus)
	api.GET("/trainings/:id", h.Get)
	api.POST("/trainings", h.Create)
	api.PUT("/trainings/:id", h.Update)
	api.POST("/trainings/:id/confirm", h.Confirm)
	api.POST("/trainings/:id/decline", h.Decline)
	api.DELETE("/trainings/:id", h.Delete)
	return r
}

func token(t *testing.T, userID uuid.UUID, role models.Role) string {
	tok, err := auth.GenerateAccessToken(auth.Identity{
		UserID:       userID,
		TelegramName: "caller",
		Role:         role.String(),
	}, testJWTSecret)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, method, path, tok, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	clientID := uuid.New()

	t.Run("client books for self", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		date := time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC)
		svc.On("Request", mock.Anything, clientID, mock.MatchedBy(func(got time.Time) bool { return got.Equal(date) })).
			Return(&models.Training{ID: uuid.New(), UserID: clientID, Date: date, Status: models.StatusPending}, nil)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"`+clientID.String()+`","date":"2099-01-01T10:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Pending", got["status"])
		svc.AssertExpectations(t)
	})

	t.Run("date defaults when omitted", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Request", mock.Anything, clientID, time.Time{}).
			Return(&models.Training{ID: uuid.New(), UserID: clientID}, nil)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"`+clientID.String()+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("client cannot book for someone else", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"`+uuid.New().String()+`"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("administrator books for anyone", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		other := uuid.New()
		svc.On("Request", mock.Anything, other, time.Time{}).Return(&models.Training{ID: uuid.New(), UserID: other}, nil)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, uuid.New(), models.RoleAdministrator),
			`{"user_id":"`+other.String()+`"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("slot taken", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Request", mock.Anything, clientID, mock.Anything).Return(nil, apperr.Conflict("training on 01.01.2099 10:00 already exists"))

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"`+clientID.String()+`","date":"2099-01-01T10:00:00Z"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})

	t.Run("past date", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Request", mock.Anything, clientID, mock.Anything).Return(nil, apperr.Domain("training date is in the past"))

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"`+clientID.String()+`","date":"2000-01-01T00:00:00Z"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid user id", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings", token(t, clientID, models.RoleClient),
			`{"user_id":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Get(t *testing.T) {
	admin := token(t, uuid.New(), models.RoleAdministrator)

	t.Run("found", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(&models.Training{ID: id, Status: models.StatusDeclined}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/"+id.String(), admin, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Declined"`)
	})

	t.Run("not found", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/"+uuid.New().String(), admin, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/42", admin, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("client reads own training", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		clientID, id := uuid.New(), uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(&models.Training{ID: id, UserID: clientID}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/"+id.String(), token(t, clientID, models.RoleClient), "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("client cannot read another client's training", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		id := uuid.New()
		note := "private advice"
		repo.On("GetByID", mock.Anything, id).
			Return(&models.Training{ID: id, UserID: uuid.New(), Recommendations: &note}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/"+id.String(), token(t, uuid.New(), models.RoleClient), "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "private advice")
	})
}

func TestHandler_Lists(t *testing.T) {
	clientID := uuid.New()

	t.Run("empty list is an array", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("GetAll", mock.Anything).Return(nil, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings", token(t, clientID, models.RoleAdministrator), "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("own trainings", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("UserTrainings", mock.Anything, clientID).Return([]models.Training{{ID: uuid.New(), UserID: clientID}}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/by-user/"+clientID.String(), token(t, clientID, models.RoleClient), "")

		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.Training
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 1)
	})

	t.Run("someone else's trainings", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/by-user/"+uuid.New().String(), token(t, clientID, models.RoleClient), "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("by status name", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("GetByStatus", mock.Anything, models.StatusPending).Return([]models.Training{}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/by-status/Pending", token(t, clientID, models.RoleAdministrator), "")

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/by-status/Cancelled", token(t, clientID, models.RoleAdministrator), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Schedule(t *testing.T) {
	admin := token(t, uuid.New(), models.RoleAdministrator)

	t.Run("explicit lower bound", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.On("AdminSchedule", mock.Anything, mock.MatchedBy(func(got time.Time) bool { return got.Equal(from) })).
			Return([]ScheduleEntry{{FullName: "Alice A", TelegramName: "alice_tg"}}, nil)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/schedule?from=2030-01-01T00:00:00Z", admin, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice_tg")
	})

	t.Run("invalid lower bound", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "GET", "/api/trainings/schedule?from=tomorrow", admin, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	admin := token(t, uuid.New(), models.RoleAdministrator)
	id, owner := uuid.New(), uuid.New()

	t.Run("updated", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(tr *models.Training) bool {
			return tr.ID == id && tr.UserID == owner && tr.Status == models.StatusConfirmed
		})).Return(&models.Training{ID: id, UserID: owner, Status: models.StatusConfirmed}, nil)

		w := do(setupRouter(repo, svc), "PUT", "/api/trainings/"+id.String(), admin,
			`{"user_id":"`+owner.String()+`","date":"2099-01-01T10:00:00Z","status":"Confirmed"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("omitted status keeps the stored one", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("GetByID", mock.Anything, id).Return(&models.Training{ID: id, UserID: owner, Status: models.StatusDeclined}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(tr *models.Training) bool {
			return tr.ID == id && tr.Status == models.StatusDeclined
		})).Return(&models.Training{ID: id, UserID: owner, Status: models.StatusDeclined}, nil)

		w := do(setupRouter(repo, svc), "PUT", "/api/trainings/"+id.String(), admin,
			`{"user_id":"`+owner.String()+`","date":"2099-01-01T10:00:00Z"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("omitted status on a missing training", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		w := do(setupRouter(repo, svc), "PUT", "/api/trainings/"+id.String(), admin,
			`{"user_id":"`+owner.String()+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	illegal := []struct {
		name string
		body string
	}{
		{"declined to confirmed", `"status":"Confirmed"`},
		{"confirmed to pending", `"status":"Pending"`},
	}
	for _, tt := range illegal {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := new(MockRepository), new(MockService)
			repo.On("Update", mock.Anything, mock.Anything).
				Return(nil, apperr.Domain("training %s is Declined, use confirm or decline to change its status", id))

			w := do(setupRouter(repo, svc), "PUT", "/api/trainings/"+id.String(), admin,
				`{"user_id":"`+owner.String()+`",`+tt.body+`}`)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("missing", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil, apperr.NotFound("training %s does not exist", id))

		w := do(setupRouter(repo, svc), "PUT", "/api/trainings/"+id.String(), admin,
			`{"user_id":"`+owner.String()+`","status":0}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Decisions(t *testing.T) {
	admin := token(t, uuid.New(), models.RoleAdministrator)
	id := uuid.New()

	t.Run("confirm with recommendations", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Confirm", mock.Anything, id, mock.MatchedBy(func(r *string) bool {
			return r != nil && *r == "bring water"
		})).Return(&models.Training{ID: id, Status: models.StatusConfirmed}, nil)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings/"+id.String()+"/confirm", admin,
			`{"recommendations":"bring water"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Confirmed")
	})

	t.Run("decline without body", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Decline", mock.Anything, id, (*string)(nil)).Return(&models.Training{ID: id, Status: models.StatusDeclined}, nil)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings/"+id.String()+"/decline", admin, "")

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("already decided", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		svc.On("Decline", mock.Anything, id, mock.Anything).Return(nil, apperr.Domain("training %s is already Confirmed", id))

		w := do(setupRouter(repo, svc), "POST", "/api/trainings/"+id.String()+"/decline", admin, "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)

		w := do(setupRouter(repo, svc), "POST", "/api/trainings/"+id.String()+"/confirm", admin, `{"recommendations":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	admin := token(t, uuid.New(), models.RoleAdministrator)
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("Delete", mock.Anything, id).Return(nil)

		w := do(setupRouter(repo, svc), "DELETE", "/api/trainings/"+id.String(), admin, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		repo, svc := new(MockRepository), new(MockService)
		repo.On("Delete", mock.Anything, id).Return(apperr.NotFound("training %s does not exist", id))

		w := do(setupRouter(repo, svc), "DELETE", "/api/trainings/"+id.String(), admin, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
