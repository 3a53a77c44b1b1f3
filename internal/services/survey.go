package services

import (
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/gorm"
)

type SurveyService struct {
	db *gorm.DB
}

func NewSurveyService(db *gorm.DB) *SurveyService {
	return &SurveyService{db: db}
}

func (s *SurveyService) ListActive() ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, err
}

// GetByID loads a survey with its active questions grouped and ordered,
// choices included.
func (s *SurveyService) GetByID(surveyID uint) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("category_id ASC, order_num ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&survey, surveyID).Error
	if err != nil {
		return nil, models.ErrSurveyNotFound
	}
	return &survey, nil
}

type SessionView struct {
	models.SurveySession
	Status string `json:"status"`
}

// Sessions returns the survey's active sessions with their derived status.
func (s *SurveyService) Sessions(surveyID uint) ([]SessionView, error) {
	var sessions []models.SurveySession
	err := s.db.Where("survey_id = ? AND is_active = ?", surveyID, true).
		Order("start_date DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, SessionView{SurveySession: sess, Status: sess.Status(now)})
	}
	return views, nil
}

// Categories returns every category ordered for display.
func (s *SurveyService) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("order_num ASC, name ASC").Find(&categories).Error
	return categories, err
}

type SurveyInput struct {
	Name                   string `json:"name" binding:"required,min=1,max=200"`
	Description            string `json:"description"`
	IsActive               *bool  `json:"is_active"`
	AllowMultipleAttempts  bool   `json:"allow_multiple_attempts"`
	ShowResultsImmediately *bool  `json:"show_results_immediately"`
}

func (s *SurveyService) CreateSurvey(input SurveyInput) (*models.Survey, error) {
	survey := models.Survey{
		Name:                   input.Name,
		Description:            input.Description,
		IsActive:               true,
		AllowMultipleAttempts:  input.AllowMultipleAttempts,
		ShowResultsImmediately: true,
	}
	if input.IsActive != nil {
		survey.IsActive = *input.IsActive
	}
	if input.ShowResultsImmediately != nil {
		survey.ShowResultsImmediately = *input.ShowResultsImmediately
	}
	if err := s.db.Create(&survey).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (s *SurveyService) UpdateSurvey(surveyID uint, input SurveyInput) (*models.Survey, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, models.ErrSurveyNotFound
	}

	survey.Name = input.Name
	survey.Description = input.Description
	survey.AllowMultipleAttempts = input.AllowMultipleAttempts
	if input.IsActive != nil {
		survey.IsActive = *input.IsActive
	}
	if input.ShowResultsImmediately != nil {
		survey.ShowResultsImmediately = *input.ShowResultsImmediately
	}
	if err := s.db.Save(&survey).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

type SessionInput struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	IsActive    *bool     `json:"is_active"`
}

func (s *SurveyService) CreateSession(surveyID uint, input SessionInput) (*models.SurveySession, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, models.ErrSurveyNotFound
	}

	session := models.SurveySession{
		SurveyID:    &survey.ID,
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    true,
	}
	if input.IsActive != nil {
		session.IsActive = *input.IsActive
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

type CategoryInput struct {
	Name                string  `json:"name" binding:"required,min=1,max=200"`
	Description         string  `json:"description"`
	EnvironmentalWeight float64 `json:"environmental_weight"`
	SocialWeight        float64 `json:"social_weight"`
	GovernanceWeight    float64 `json:"governance_weight"`
	MaxScore            *int    `json:"max_score"`
}

func (s *SurveyService) CreateCategory(input CategoryInput) (*models.Category, error) {
	var maxOrder int
	s.db.Model(&models.Category{}).Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)

	cat := models.Category{
		Name:                input.Name,
		Description:         input.Description,
		OrderNum:            maxOrder + 1,
		EnvironmentalWeight: input.EnvironmentalWeight,
		SocialWeight:        input.SocialWeight,
		GovernanceWeight:    input.GovernanceWeight,
		MaxScore:            100,
	}
	if input.MaxScore != nil {
		cat.MaxScore = *input.MaxScore
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *SurveyService) UpdateCategory(categoryID uint, input CategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, categoryID).Error; err != nil {
		return nil, err
	}

	cat.Name = input.Name
	cat.Description = input.Description
	cat.EnvironmentalWeight = input.EnvironmentalWeight
	cat.SocialWeight = input.SocialWeight
	cat.GovernanceWeight = input.GovernanceWeight
	if input.MaxScore != nil {
		cat.MaxScore = *input.MaxScore
	}
	if err := s.db.Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

type ChoiceInput struct {
	Text  string `json:"text" binding:"required,min=1,max=500"`
	Score int    `json:"score"`
}

type QuestionInput struct {
	CategoryID    uint          `json:"category_id" binding:"required"`
	Text          string        `json:"text" binding:"required"`
	OrderNum      int           `json:"order_num"`
	IsActive      *bool         `json:"is_active"`
	AllowMultiple bool          `json:"allow_multiple"`
	Choices       []ChoiceInput `json:"choices" binding:"required,min=1"`
}

func (s *SurveyService) CreateQuestion(surveyID uint, input QuestionInput) (*models.Question, error) {
	var survey models.Survey
	if err := s.db.First(&survey, surveyID).Error; err != nil {
		return nil, models.ErrSurveyNotFound
	}
	var cat models.Category
	if err := s.db.First(&cat, input.CategoryID).Error; err != nil {
		return nil, err
	}

	question := models.Question{
		SurveyID:      &survey.ID,
		CategoryID:    cat.ID,
		Text:          input.Text,
		OrderNum:      input.OrderNum,
		IsActive:      true,
		AllowMultiple: input.AllowMultiple,
	}
	if input.IsActive != nil {
		question.IsActive = *input.IsActive
	}

	tx := s.db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i, c := range input.Choices {
		choice := models.Choice{
			QuestionID: question.ID,
			Text:       c.Text,
			Score:      c.Score,
			OrderNum:   i + 1,
		}
		if err := tx.Create(&choice).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	tx.Commit()

	s.db.Preload("Choices").First(&question, question.ID)
	return &question, nil
}

// UpdateQuestion replaces the question's text, flags and full choice set.
// Historic attempts keep their persisted scores; only an explicit
// recalculation sees the new configuration.
func (s *SurveyService) UpdateQuestion(questionID uint, input QuestionInput) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, models.ErrQuestionNotFound
	}

	question.CategoryID = input.CategoryID
	question.Text = input.Text
	question.OrderNum = input.OrderNum
	question.AllowMultiple = input.AllowMultiple
	if input.IsActive != nil {
		question.IsActive = *input.IsActive
	}

	tx := s.db.Begin()
	if err := tx.Save(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Where("question_id = ?", questionID).Delete(&models.Choice{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i, c := range input.Choices {
		choice := models.Choice{
			QuestionID: questionID,
			Text:       c.Text,
			Score:      c.Score,
			OrderNum:   i + 1,
		}
		if err := tx.Create(&choice).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	tx.Commit()

	s.db.Preload("Choices").First(&question, questionID)
	return &question, nil
}

func (s *SurveyService) DeleteQuestion(questionID uint) error {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return models.ErrQuestionNotFound
	}

	s.db.Where("question_id = ?", questionID).Delete(&models.Choice{})
	return s.db.Delete(&question).Error
}
