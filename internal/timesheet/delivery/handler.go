package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"carelink-backend/internal/timesheet/usecase"

	"github.com/gin-gonic/gin"
)

// TimesheetHandler handles focus-timer HTTP requests
type TimesheetHandler struct {
	timesheetUsecase usecase.TimesheetUsecase
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(timesheetUsecase usecase.TimesheetUsecase) *TimesheetHandler {
	return &TimesheetHandler{
		timesheetUsecase: timesheetUsecase,
	}
}

// StartTimerRequest represents the request body for starting the timer
type StartTimerRequest struct {
	TaskLabel string `json:"task_label"`
}

// StartTimer handles POST /api/timer/start
func (h *TimesheetHandler) StartTimer(c *gin.Context) {
	userID := c.GetString("userID")

	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.timesheetUsecase.StartTimer(userID, req.TaskLabel)
	if err != nil {
		if errors.Is(err, usecase.ErrBlankTaskLabel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// PauseTimer handles POST /api/timer/pause
func (h *TimesheetHandler) PauseTimer(c *gin.Context) {
	userID := c.GetString("userID")

	status, err := h.timesheetUsecase.PauseTimer(userID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// StopTimer handles POST /api/timer/stop
func (h *TimesheetHandler) StopTimer(c *gin.Context) {
	userID := c.GetString("userID")

	var input usecase.StopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.timesheetUsecase.StopTimer(userID, input)
	if err != nil {
		if session != nil {
			// Counted but not persisted; return it so the client can retry
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "session": session})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// TimerStatus handles GET /api/timer/status
func (h *TimesheetHandler) TimerStatus(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, h.timesheetUsecase.TimerStatus(userID))
}

// ListSessions handles GET /api/timesheet/sessions
func (h *TimesheetHandler) ListSessions(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, total, err := h.timesheetUsecase.ListSessions(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    total,
	})
}
