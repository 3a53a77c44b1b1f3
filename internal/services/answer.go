package services

import (
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/gorm"
)

type AnswerService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewAnswerService(db *gorm.DB, scoring *ScoringService) *AnswerService {
	return &AnswerService{db: db, scoring: scoring}
}

// SubmitAnswerInput carries one response. CannotAnswer wins over any
// choice fields; otherwise ChoiceID is read for single-choice questions
// and ChoiceIDs for multi-select ones.
type SubmitAnswerInput struct {
	QuestionID   uint   `json:"question_id" binding:"required"`
	ChoiceID     *uint  `json:"choice_id"`
	ChoiceIDs    []uint `json:"choice_ids"`
	CannotAnswer bool   `json:"cannot_answer"`
	Notes        string `json:"notes"`
}

// Submit records one answer for (attempt, question), updating in place
// when a row already exists. Submissions against a completed attempt are
// rejected; choices are validated to belong to the stated question.
// After the write, the attempt's provisional raw total is refreshed.
func (s *AnswerService) Submit(attemptID, userID uint, input SubmitAnswerInput) (*models.Answer, error) {
	var attempt models.QuestionnaireAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		return nil, models.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, models.ErrForeignAttempt
	}
	if attempt.IsCompleted {
		return nil, models.ErrAttemptCompleted
	}

	var question models.Question
	if err := s.db.Preload("Choices").First(&question, input.QuestionID).Error; err != nil {
		return nil, models.ErrQuestionNotFound
	}

	choiceIDs, err := resolveSelection(&question, input)
	if err != nil {
		return nil, err
	}

	var answer models.Answer
	err = s.db.Where("attempt_id = ? AND question_id = ?", attemptID, question.ID).
		First(&answer).Error
	if err != nil {
		answer = models.Answer{AttemptID: attemptID, QuestionID: question.ID}
	}
	answer.Notes = input.Notes
	answer.AnsweredAt = time.Now()

	tx := s.db.Begin()

	if question.AllowMultiple {
		answer.ChoiceID = nil
		answer.Choice = nil
	} else {
		if len(choiceIDs) == 1 {
			answer.ChoiceID = &choiceIDs[0]
		} else {
			answer.ChoiceID = nil
		}
		answer.Choice = nil
	}

	if answer.ID == 0 {
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		if err := tx.Select("choice_id", "notes", "answered_at").Save(&answer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	var selected []models.Choice
	if question.AllowMultiple && len(choiceIDs) > 0 {
		byID := make(map[uint]models.Choice, len(question.Choices))
		for _, c := range question.Choices {
			byID[c.ID] = c
		}
		for _, id := range choiceIDs {
			selected = append(selected, byID[id])
		}
	}
	assoc := tx.Model(&answer).Association("Choices")
	if len(selected) > 0 {
		err = assoc.Replace(selected)
	} else {
		err = assoc.Clear()
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.refreshQuickTotal(&attempt)

	err = s.db.Preload("Question").
		Preload("Choice").
		Preload("Choices").
		First(&answer, answer.ID).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// resolveSelection validates the submitted choice ids against the
// question's own choices and normalizes the selection. A reference to a
// foreign choice fails closed.
func resolveSelection(question *models.Question, input SubmitAnswerInput) ([]uint, error) {
	if input.CannotAnswer {
		return nil, nil
	}

	owned := make(map[uint]bool, len(question.Choices))
	for _, c := range question.Choices {
		owned[c.ID] = true
	}

	if question.AllowMultiple {
		ids := make([]uint, 0, len(input.ChoiceIDs))
		for _, id := range input.ChoiceIDs {
			if !owned[id] {
				return nil, models.ErrChoiceMismatch
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	if input.ChoiceID == nil {
		return nil, nil
	}
	if !owned[*input.ChoiceID] {
		return nil, models.ErrChoiceMismatch
	}
	return []uint{*input.ChoiceID}, nil
}

// refreshQuickTotal persists the legacy raw total for an open attempt so
// dashboards see a live figure between saves. The weighted recompute at
// completion overwrites it.
func (s *AnswerService) refreshQuickTotal(attempt *models.QuestionnaireAttempt) {
	var answers []models.Answer
	if err := s.db.Where("attempt_id = ?", attempt.ID).Preload("Choice").Find(&answers).Error; err != nil {
		return
	}
	total := s.scoring.SimpleTotal(answers)
	s.db.Model(attempt).Update("total_score", float64(total))
}

// ListForAttempt returns the attempt's answers with their selections.
func (s *AnswerService) ListForAttempt(attemptID, userID uint) ([]models.Answer, error) {
	var attempt models.QuestionnaireAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		return nil, models.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, models.ErrForeignAttempt
	}

	var answers []models.Answer
	err := s.db.Where("attempt_id = ?", attemptID).
		Preload("Question").
		Preload("Choice").
		Preload("Choices").
		Preload("Documents").
		Find(&answers).Error
	return answers, err
}
