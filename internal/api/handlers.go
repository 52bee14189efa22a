package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitlog/fitlog/internal/exercise"
	"github.com/fitlog/fitlog/internal/observability"
)

// Handlers holds the endpoint behaviors for the exercise API.
type Handlers struct {
	service exercise.LogService
	logger  *zap.Logger
}

// NewHandlers creates the handler set with its injected dependencies.
func NewHandlers(service exercise.LogService, logger *zap.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Register attaches the exercise routes. Paths are fixed for compatibility
// with existing clients.
func (h *Handlers) Register(router *gin.Engine) {
	ex := router.Group("/api/exercise")
	{
		ex.POST("/new-user", h.createUser)
		ex.GET("/users", h.listUsers)
		ex.POST("/add", h.addExercise)
		ex.GET("/log", h.fetchLog)
	}

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, routeNotFoundMessage)
	})
}

func (h *Handlers) createUser(c *gin.Context) {
	var req exercise.CreateUserRequest
	// an unparseable body leaves the fields empty and fails the
	// required-field checks below
	_ = c.ShouldBind(&req)

	created, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "create user", err)
		return
	}

	observability.RecordUserCreated()
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		c.String(http.StatusInternalServerError, listUsersFailureMessage)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handlers) addExercise(c *gin.Context) {
	var req exercise.AddExerciseRequest
	_ = c.ShouldBind(&req)

	userLog, err := h.service.AddExercise(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "add exercise", err)
		return
	}

	observability.RecordExerciseAdded()
	c.JSON(http.StatusOK, userLog)
}

func (h *Handlers) fetchLog(c *gin.Context) {
	query := exercise.LogQuery{
		UserID: c.Query("userId"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  c.Query("limit"),
	}

	result, err := h.service.FetchLog(c.Request.Context(), &query)
	if err != nil {
		h.writeError(c, "fetch log", err)
		return
	}

	observability.RecordLogFetched()
	c.JSON(http.StatusOK, result)
}

// writeError classifies err and writes the plain-text response.
func (h *Handlers) writeError(c *gin.Context, operation string, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("operation", operation),
			zap.Error(err))
	} else {
		h.logger.Warn("Request rejected",
			zap.String("operation", operation),
			zap.Int("status", status),
			zap.Error(err))
	}
	c.String(status, message)
}
