package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.CompanyProfile{},
		&models.Survey{},
		&models.SurveySession{},
		&models.Category{},
		&models.Question{},
		&models.Choice{},
		&models.QuestionnaireAttempt{},
		&models.Answer{},
		&models.UserDocument{},
		&models.Report{},
		&models.ReportSection{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, membership string) *models.User {
	t.Helper()
	user := models.User{
		Username:       username,
		PasswordHash:   "x",
		MembershipType: membership,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// seedSurvey builds one survey with an Environment category (weight 1.0)
// holding a single question with choices scored [10,7,4,0].
func seedSurvey(t *testing.T, db *gorm.DB) (*models.Survey, *models.Question) {
	t.Helper()

	survey := models.Survey{Name: "ESG Baseline", IsActive: true}
	if err := db.Create(&survey).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}

	cat := models.Category{Name: "Environment", EnvironmentalWeight: 1.0, MaxScore: 100}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	question := models.Question{
		SurveyID:   &survey.ID,
		CategoryID: cat.ID,
		Text:       "Do you have environmental certifications?",
		IsActive:   true,
	}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	scores := []int{10, 7, 4, 0}
	for i, score := range scores {
		choice := models.Choice{QuestionID: question.ID, Text: fmt.Sprintf("option %d", i+1), Score: score, OrderNum: i + 1}
		if err := db.Create(&choice).Error; err != nil {
			t.Fatalf("create choice: %v", err)
		}
	}

	if err := db.Preload("Choices").First(&question, question.ID).Error; err != nil {
		t.Fatalf("reload question: %v", err)
	}
	return &survey, &question
}

func openSession(t *testing.T, db *gorm.DB, surveyID uint) *models.SurveySession {
	t.Helper()
	now := time.Now()
	session := models.SurveySession{
		SurveyID:  &surveyID,
		Name:      "Open window",
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		IsActive:  true,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &session
}
