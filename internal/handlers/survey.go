package handlers

import (
	"net/http"
	"strconv"

	"github.com/nazaninghn/sustindex/internal/services"

	"github.com/gin-gonic/gin"
)

type SurveyHandler struct {
	surveyService *services.SurveyService
}

func NewSurveyHandler(surveyService *services.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// ListSurveys godoc
// @Summary      List active surveys
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Survey
// @Router       /api/v1/surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveyService.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GetSurvey godoc
// @Summary      Get a survey
// @Description  Survey with its active questions and choices
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Success      200 {object} Survey
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid survey id"})
		return
	}

	survey, err := h.surveyService.GetByID(uint(surveyID))
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, survey)
}

// ListSessions godoc
// @Summary      List a survey's sessions
// @Description  Active sessions with their derived status (inactive, upcoming, closed, open)
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Success      200 {array} services.SessionView
// @Router       /api/v1/surveys/{id}/sessions [get]
func (h *SurveyHandler) ListSessions(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid survey id"})
		return
	}

	sessions, err := h.surveyService.Sessions(uint(surveyID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ListCategories godoc
// @Summary      List categories with their ESG weights
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Category
// @Router       /api/v1/categories [get]
func (h *SurveyHandler) ListCategories(c *gin.Context) {
	categories, err := h.surveyService.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateSurvey godoc
// @Summary      Create a survey
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.SurveyInput true "Survey data"
// @Success      201 {object} Survey
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req services.SurveyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	survey, err := h.surveyService.CreateSurvey(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// UpdateSurvey godoc
// @Summary      Update a survey
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Param        request body services.SurveyInput true "Survey data"
// @Success      200 {object} Survey
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/surveys/{id} [put]
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid survey id"})
		return
	}

	var req services.SurveyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	survey, err := h.surveyService.UpdateSurvey(uint(surveyID), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, survey)
}

// CreateSession godoc
// @Summary      Create a survey session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Param        request body services.SessionInput true "Session window"
// @Success      201 {object} models.SurveySession
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/surveys/{id}/sessions [post]
func (h *SurveyHandler) CreateSession(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid survey id"})
		return
	}

	var req services.SessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.surveyService.CreateSession(uint(surveyID), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.CategoryInput true "Category with ESG weights"
// @Success      201 {object} models.Category
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/categories [post]
func (h *SurveyHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	cat, err := h.surveyService.CreateCategory(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory godoc
// @Summary      Update a category's weights or metadata
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Category ID"
// @Param        request body services.CategoryInput true "Category data"
// @Success      200 {object} models.Category
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/categories/{id} [put]
func (h *SurveyHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category id"})
		return
	}

	var req services.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	cat, err := h.surveyService.UpdateCategory(uint(categoryID), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateQuestion godoc
// @Summary      Add a question to a survey
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Survey ID"
// @Param        request body services.QuestionInput true "Question with choices"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/surveys/{id}/questions [post]
func (h *SurveyHandler) CreateQuestion(c *gin.Context) {
	surveyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid survey id"})
		return
	}

	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.surveyService.CreateQuestion(uint(surveyID), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question and replace its choices
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      200 {object} Question
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/questions/{id} [put]
func (h *SurveyHandler) UpdateQuestion(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req services.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.surveyService.UpdateQuestion(uint(questionID), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/questions/{id} [delete]
func (h *SurveyHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.surveyService.DeleteQuestion(uint(questionID)); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}
