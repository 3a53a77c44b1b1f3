package models

import "time"

type Survey struct {
	ID                     uint            `gorm:"primaryKey" json:"id"`
	Name                   string          `gorm:"size:200;not null" json:"name"`
	Description            string          `gorm:"type:text" json:"description"`
	IsActive               bool            `gorm:"not null;default:true" json:"is_active"`
	AllowMultipleAttempts  bool            `gorm:"not null;default:false" json:"allow_multiple_attempts"`
	ShowResultsImmediately bool            `gorm:"not null;default:true" json:"show_results_immediately"`
	Sessions               []SurveySession `gorm:"foreignKey:SurveyID" json:"sessions,omitempty"`
	Questions              []Question      `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

const (
	SessionStatusInactive = "inactive"
	SessionStatusUpcoming = "upcoming"
	SessionStatusClosed   = "closed"
	SessionStatusOpen     = "open"
)

type SurveySession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SurveyID    *uint     `gorm:"index" json:"survey_id,omitempty"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status derives the session state from the clock. Inactive wins over
// everything else; otherwise the window decides.
func (s *SurveySession) Status(now time.Time) string {
	if !s.IsActive {
		return SessionStatusInactive
	}
	if now.Before(s.StartDate) {
		return SessionStatusUpcoming
	}
	if now.After(s.EndDate) {
		return SessionStatusClosed
	}
	return SessionStatusOpen
}

func (s *SurveySession) IsOpen(now time.Time) bool {
	return s.Status(now) == SessionStatusOpen
}
