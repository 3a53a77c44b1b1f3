package handlers

import (
	"errors"
	"net/http"

	"github.com/nazaninghn/sustindex/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Survey = models.Survey
type Question = models.Question
type QuestionnaireAttempt = models.QuestionnaireAttempt
type Answer = models.Answer
type UserDocument = models.UserDocument
type ScoreSummary = models.ScoreSummary
type CompanyProfile = models.CompanyProfile

// statusForError maps domain errors to HTTP statuses. Foreign attempts
// surface as not-found so attempt ids cannot be probed.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, models.ErrAttemptCompleted):
		return http.StatusConflict
	case errors.Is(err, models.ErrChoiceMismatch),
		errors.Is(err, models.ErrAttemptNotCompleted),
		errors.Is(err, models.ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForeignAttempt),
		errors.Is(err, models.ErrAttemptNotFound),
		errors.Is(err, models.ErrSurveyNotFound),
		errors.Is(err, models.ErrQuestionNotFound),
		errors.Is(err, models.ErrAnswerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
