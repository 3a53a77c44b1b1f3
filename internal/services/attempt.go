package services

import (
	"errors"
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/gorm"
)

type AttemptService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewAttemptService(db *gorm.DB, scoring *ScoringService) *AttemptService {
	return &AttemptService{db: db, scoring: scoring}
}

// Create starts a new attempt for the user, subject to the membership
// quota. When no survey is given, the first active survey is used (any
// survey as a fallback). The attempt binds to the survey's first currently
// open session, if one exists; a missing open session never blocks.
func (s *AttemptService) Create(userID uint, surveyID *uint) (*models.QuestionnaireAttempt, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	limit := models.CompletedAttemptLimit(user.MembershipType)
	if limit >= 0 {
		var completed int64
		err := s.db.Model(&models.QuestionnaireAttempt{}).
			Where("user_id = ? AND is_completed = ?", userID, true).
			Count(&completed).Error
		if err != nil {
			return nil, err
		}
		if completed >= int64(limit) {
			return nil, models.ErrQuotaExceeded
		}
	}

	var survey models.Survey
	if surveyID != nil {
		if err := s.db.First(&survey, *surveyID).Error; err != nil {
			return nil, models.ErrSurveyNotFound
		}
	} else {
		err := s.db.Where("is_active = ?", true).Order("id ASC").First(&survey).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = s.db.Order("id ASC").First(&survey).Error
		}
		if err != nil {
			return nil, models.ErrSurveyNotFound
		}
	}

	attempt := models.QuestionnaireAttempt{
		UserID:    userID,
		SurveyID:  &survey.ID,
		StartedAt: time.Now(),
	}

	now := time.Now()
	var sessions []models.SurveySession
	s.db.Where("survey_id = ? AND is_active = ?", survey.ID, true).
		Order("start_date ASC").
		Find(&sessions)
	for i := range sessions {
		if sessions[i].IsOpen(now) {
			attempt.SessionID = &sessions[i].ID
			break
		}
	}

	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetOwned loads an attempt and enforces ownership. A foreign attempt is
// an authorization failure, never a silent redirect.
func (s *AttemptService) GetOwned(attemptID, userID uint) (*models.QuestionnaireAttempt, error) {
	var attempt models.QuestionnaireAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		return nil, models.ErrAttemptNotFound
	}
	if attempt.UserID != userID {
		return nil, models.ErrForeignAttempt
	}
	return &attempt, nil
}

func (s *AttemptService) ListByUser(userID uint) ([]models.QuestionnaireAttempt, error) {
	var attempts []models.QuestionnaireAttempt
	err := s.db.Where("user_id = ?", userID).
		Preload("Survey").
		Preload("Session").
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// GetWithAnswers loads an owned attempt with its full answer graph.
func (s *AttemptService) GetWithAnswers(attemptID, userID uint) (*models.QuestionnaireAttempt, error) {
	attempt, err := s.GetOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	err = s.db.Preload("Survey").
		Preload("Session").
		Preload("Answers.Question").
		Preload("Answers.Choice").
		Preload("Answers.Choices").
		Preload("Answers.Documents").
		First(attempt, attempt.ID).Error
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// Complete finalizes an open attempt: records the completion time, runs
// the weighted recompute and persists all score fields together.
// Completing twice is rejected and leaves the stored scores untouched.
func (s *AttemptService) Complete(attemptID, userID uint) (*models.ScoreSummary, error) {
	attempt, err := s.GetOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, models.ErrAttemptCompleted
	}

	now := time.Now()
	attempt.IsCompleted = true
	attempt.CompletedAt = &now

	summary, err := s.recalculate(attempt)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Recalculate re-runs the weighted scoring for an attempt and persists
// the result. Idempotent: unchanged answers yield identical scores.
func (s *AttemptService) Recalculate(attemptID uint) (*models.ScoreSummary, error) {
	var attempt models.QuestionnaireAttempt
	if err := s.db.First(&attempt, attemptID).Error; err != nil {
		return nil, models.ErrAttemptNotFound
	}
	return s.recalculate(&attempt)
}

func (s *AttemptService) recalculate(attempt *models.QuestionnaireAttempt) (*models.ScoreSummary, error) {
	categories, err := s.CategoriesForAttempt(attempt)
	if err != nil {
		return nil, err
	}
	answers, err := s.loadAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	summary := s.scoring.CalculateScores(categories, answers)

	attempt.EnvironmentalScore = summary.Environmental
	attempt.SocialScore = summary.Social
	attempt.GovernanceScore = summary.Governance
	attempt.TotalScore = summary.Total
	attempt.OverallGrade = summary.Grade

	err = s.db.Model(attempt).Select(
		"environmental_score", "social_score", "governance_score",
		"total_score", "overall_grade", "is_completed", "completed_at",
	).Updates(attempt).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Progress computes completion stats for an owned attempt, independent of
// scoring. The survey's active question count rides along for display.
func (s *AttemptService) Progress(attemptID, userID uint) (*ProgressStats, error) {
	attempt, err := s.GetOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}

	answers, err := s.loadAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	stats := s.scoring.AttemptStats(answers)

	if attempt.SurveyID != nil {
		var total int64
		s.db.Model(&models.Question{}).
			Where("survey_id = ? AND is_active = ?", *attempt.SurveyID, true).
			Count(&total)
		stats.SurveyQuestionTotal = int(total)
	}
	return &stats, nil
}

// CategoriesForAttempt resolves the category set the attempt is scored
// against: the categories of the survey's active questions, with each
// category's question list scoped to that survey. Attempts without a
// survey fall back to every category and its active questions.
func (s *AttemptService) CategoriesForAttempt(attempt *models.QuestionnaireAttempt) ([]models.Category, error) {
	var categories []models.Category

	if attempt.SurveyID != nil {
		surveyID := *attempt.SurveyID
		err := s.db.
			Where("id IN (?)", s.db.Model(&models.Question{}).
				Select("DISTINCT category_id").
				Where("survey_id = ? AND is_active = ?", surveyID, true)).
			Order("order_num ASC").
			Preload("Questions", func(db *gorm.DB) *gorm.DB {
				return db.Where("survey_id = ? AND is_active = ?", surveyID, true).Order("order_num ASC")
			}).
			Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_num ASC")
			}).
			Find(&categories).Error
		return categories, err
	}

	err := s.db.Order("order_num ASC").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("order_num ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Find(&categories).Error
	return categories, err
}

func (s *AttemptService) loadAnswers(attemptID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("attempt_id = ?", attemptID).
		Preload("Question").
		Preload("Choice").
		Preload("Choices").
		Find(&answers).Error
	return answers, err
}
