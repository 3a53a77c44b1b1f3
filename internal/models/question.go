package models

import "time"

type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SurveyID      *uint     `gorm:"index" json:"survey_id,omitempty"`
	CategoryID    uint      `gorm:"not null;index" json:"category_id"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	OrderNum      int       `gorm:"not null;default:0" json:"order_num"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	AllowMultiple bool      `gorm:"not null;default:false" json:"allow_multiple"`
	Choices       []Choice  `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MaxChoiceScore is the highest score any single choice of this question
// can contribute. Requires Choices to be loaded.
func (q *Question) MaxChoiceScore() int {
	max := 0
	for _, c := range q.Choices {
		if c.Score > max {
			max = c.Score
		}
	}
	return max
}
