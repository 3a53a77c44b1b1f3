package handlers

import (
	"net/http"
	"strconv"

	"github.com/nazaninghn/sustindex/internal/services"
	"github.com/nazaninghn/sustindex/internal/ws"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService  *services.AnswerService
	attemptService *services.AttemptService
	hub            *ws.Hub
}

func NewAnswerHandler(answerService *services.AnswerService, attemptService *services.AttemptService, hub *ws.Hub) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, attemptService: attemptService, hub: hub}
}

// SubmitAnswer godoc
// @Summary      Submit or update one answer
// @Description  Upserts the answer for (attempt, question). Set cannot_answer to record an explicit non-response.
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Param        request body services.SubmitAnswerInput true "Answer data"
// @Success      200 {object} Answer
// @Failure      400 {object} ErrorResponse "choice does not belong to question"
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "attempt already completed"
// @Router       /api/v1/attempts/{id}/answers [post]
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	var req services.SubmitAnswerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.Submit(uint(attemptID), userID, req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	if stats, err := h.attemptService.Progress(uint(attemptID), userID); err == nil {
		h.hub.Broadcast(uint(attemptID), ws.WSMessage{Type: "progress", Data: stats})
	}

	c.JSON(http.StatusOK, answer)
}

// ListAnswers godoc
// @Summary      List the attempt's answers
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Attempt ID"
// @Success      200 {array} Answer
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/answers [get]
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	userID := c.GetUint("user_id")
	attemptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid attempt id"})
		return
	}

	answers, err := h.answerService.ListForAttempt(uint(attemptID), userID)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, answers)
}
