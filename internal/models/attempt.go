package models

import "time"

type QuestionnaireAttempt struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SurveyID    *uint          `gorm:"index" json:"survey_id,omitempty"`
	Survey      *Survey        `gorm:"foreignKey:SurveyID" json:"survey,omitempty"`
	SessionID   *uint          `gorm:"index" json:"session_id,omitempty"`
	Session     *SurveySession `gorm:"foreignKey:SessionID;constraint:OnDelete:SET NULL" json:"session,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`

	TotalScore         float64  `gorm:"not null;default:0" json:"total_score"`
	EnvironmentalScore float64  `gorm:"not null;default:0" json:"environmental_score"`
	SocialScore        float64  `gorm:"not null;default:0" json:"social_score"`
	GovernanceScore    float64  `gorm:"not null;default:0" json:"governance_score"`
	OverallGrade       string   `gorm:"size:2" json:"overall_grade"`
	Answers            []Answer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// GradeForScore maps a total score to a letter grade. Thresholds are
// inclusive lower bounds, checked descending.
func GradeForScore(total float64) string {
	switch {
	case total >= 80:
		return "A+"
	case total >= 70:
		return "A"
	case total >= 60:
		return "B+"
	case total >= 50:
		return "B"
	case total >= 40:
		return "C+"
	case total >= 30:
		return "C"
	default:
		return "D"
	}
}

// ScoreSummary is the stable record handed to the reporting collaborator.
type ScoreSummary struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	Total         float64 `json:"total"`
	Grade         string  `json:"grade"`
}
