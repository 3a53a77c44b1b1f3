package services

import (
	"log"

	"github.com/nazaninghn/sustindex/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder bootstraps the default ESG categories, weights and a starter
// survey so a fresh deployment is usable without manual configuration.
// Safe to run on every start: existing rows are left alone.
type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

type seedChoice struct {
	text  string
	score int
}

type seedQuestion struct {
	category string
	text     string
	order    int
	choices  []seedChoice
}

var seedCategories = []models.Category{
	{Name: "Environment", OrderNum: 1, EnvironmentalWeight: 1.0, MaxScore: 100},
	{Name: "Social Responsibility", OrderNum: 2, SocialWeight: 1.0, MaxScore: 100},
	{Name: "Corporate Governance", OrderNum: 3, GovernanceWeight: 1.0, MaxScore: 100},
	{Name: "Economic Sustainability", OrderNum: 4, EnvironmentalWeight: 0.3, SocialWeight: 0.3, GovernanceWeight: 0.4, MaxScore: 100},
}

var seedQuestions = []seedQuestion{
	{"Environment", "Do you have environmental certifications (ISO 14001, etc.)?", 1, []seedChoice{
		{"Yes, multiple environmental certifications", 10},
		{"Yes, one environmental certification", 7},
		{"In process of obtaining certification", 4},
		{"No environmental certifications", 0},
	}},
	{"Environment", "Green building and sustainable facilities?", 2, []seedChoice{
		{"LEED/BREEAM certified green buildings", 10},
		{"Energy-efficient buildings with sustainable features", 7},
		{"Some green building practices", 4},
		{"No specific green building initiatives", 0},
	}},
	{"Social Responsibility", "Fair labor practices and worker rights?", 1, []seedChoice{
		{"Comprehensive fair labor policies with third-party auditing", 10},
		{"Strong labor practices and worker protection", 7},
		{"Basic worker rights protection", 4},
		{"Minimal labor practice considerations", 0},
	}},
	{"Social Responsibility", "Product safety and quality standards?", 2, []seedChoice{
		{"Rigorous quality control with international certifications", 10},
		{"Good quality assurance processes", 7},
		{"Basic quality control measures", 4},
		{"Minimal quality standards", 0},
	}},
	{"Corporate Governance", "Risk management and crisis preparedness?", 1, []seedChoice{
		{"Comprehensive risk management with regular assessments", 10},
		{"Good risk identification and mitigation processes", 7},
		{"Basic risk management procedures", 4},
		{"Limited risk management practices", 0},
	}},
	{"Corporate Governance", "Data privacy and cybersecurity measures?", 2, []seedChoice{
		{"Comprehensive data protection with certifications (ISO 27001)", 10},
		{"Strong cybersecurity and privacy policies", 7},
		{"Basic data protection measures", 4},
		{"Minimal cybersecurity considerations", 0},
	}},
}

func (s *Seeder) Run() error {
	if err := s.seedAdmin(); err != nil {
		return err
	}

	var survey models.Survey
	err := s.db.Where("name = ?", "Corporate Sustainability Assessment").First(&survey).Error
	if err == nil {
		return nil
	}

	survey = models.Survey{
		Name:                   "Corporate Sustainability Assessment",
		Description:            "Baseline ESG self-assessment",
		IsActive:               true,
		ShowResultsImmediately: true,
	}
	if err := s.db.Create(&survey).Error; err != nil {
		return err
	}

	categoryIDs := make(map[string]uint, len(seedCategories))
	for _, c := range seedCategories {
		var cat models.Category
		err := s.db.Where("name = ?", c.Name).First(&cat).Error
		if err != nil {
			cat = c
			if err := s.db.Create(&cat).Error; err != nil {
				return err
			}
		}
		categoryIDs[cat.Name] = cat.ID
	}

	for _, sq := range seedQuestions {
		question := models.Question{
			SurveyID:   &survey.ID,
			CategoryID: categoryIDs[sq.category],
			Text:       sq.text,
			OrderNum:   sq.order,
			IsActive:   true,
		}
		if err := s.db.Create(&question).Error; err != nil {
			return err
		}
		for i, sc := range sq.choices {
			choice := models.Choice{
				QuestionID: question.ID,
				Text:       sc.text,
				Score:      sc.score,
				OrderNum:   i + 1,
			}
			if err := s.db.Create(&choice).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("seeded survey %q with %d questions", survey.Name, len(seedQuestions))
	return nil
}

func (s *Seeder) seedAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("is_staff = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:       "admin",
		PasswordHash:   string(hash),
		MembershipType: models.MembershipGold,
		IsStaff:        true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("seeded default admin user (change the password)")
	return nil
}
