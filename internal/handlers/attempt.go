package handlers

import (
	"net/http"
	"strconv"

	"github.com/nazaninghn/sustindex/internal/services"
	"github.com/nazaninghn/sustindex/internal/ws"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attemptService *services.AttemptService
	reportService  *services.ReportService
	hub            *ws.Hub
}

func NewAttemptHandler(attemptService *services.AttemptService, reportService *services.ReportService, hub *ws.Hub) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService, reportService: reportService, hub: hub}
}

type CreateAttemptRequest struct {
	SurveyID *uint `json:"survey_id"`
}

// CreateAttempt godoc
// @Summary      Start a new attempt
// @Description  Subject to the membership quota; binds to an open session when one exists
// @Tags         attempts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAttemptRequest false "Optional survey"
// @Success      201 {object} QuestionnaireAttempt
// @Failure      403 {object} ErrorResponse "quota exceeded"
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts [post]
func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateAttemptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	attempt, err := h.attemptService.Create(userID, req.SurveyID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// ListAttempts godoc
// @Summary      List own attempts
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} QuestionnaireAttempt
// @Router       /api/v1/attempts [get]
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	userID := c.GetUint("user_id")

	attempts, err := h.attemptService.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// GetAttempt godoc
// @Summary      Get an attempt with its answers
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {object} QuestionnaireAttempt
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	attempt, err := h.attemptService.GetWithAnswers(uint(attemptID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// CompleteAttempt godoc
// @Summary      Complete an attempt
// @Description  Finalizes the attempt and runs the weighted ESG recompute. Completing twice is rejected.
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {object} ScoreSummary
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "already completed"
// @Router       /api/v1/attempts/{id}/complete [post]
func (h *AttemptHandler) CompleteAttempt(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	summary, err := h.attemptService.Complete(uint(attemptID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(uint(attemptID), ws.WSMessage{Type: "completed", Data: summary})
	c.JSON(http.StatusOK, summary)
}

// GetProgress godoc
// @Summary      Get attempt progress
// @Description  Completion stats over the attempt's answer rows; cannot-answer counts as progress
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {object} services.ProgressStats
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/progress [get]
func (h *AttemptHandler) GetProgress(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	stats, err := h.attemptService.Progress(uint(attemptID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetResult godoc
// @Summary      Get the result of a completed attempt
// @Description  Persisted scores, grade, recommendations and category breakdown. Never recomputes on read.
// @Tags         attempts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {object} services.AttemptResult
// @Failure      400 {object} ErrorResponse "not completed yet"
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/result [get]
func (h *AttemptHandler) GetResult(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	result, err := h.reportService.Result(uint(attemptID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecalculateAttempt godoc
// @Summary      Recalculate an attempt's scores
// @Description  Explicit idempotent recompute, staff only
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {object} ScoreSummary
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/attempts/{id}/recalculate [post]
func (h *AttemptHandler) RecalculateAttempt(c *gin.Context) {
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	summary, err := h.attemptService.Recalculate(uint(attemptID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
