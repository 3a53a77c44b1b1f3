package models

import (
	"strings"
	"time"
)

// Answer holds one response per (attempt, question) pair. The composite
// unique index converts a would-be duplicate insert into a rejected write;
// the service layer upserts instead. Single-choice answers use ChoiceID,
// multi-select answers use Choices, and both empty means "cannot answer" —
// a valid terminal state, not an error.
type Answer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AttemptID  uint           `gorm:"not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID uint           `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	Question   Question       `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	ChoiceID   *uint          `json:"choice_id,omitempty"`
	Choice     *Choice        `gorm:"foreignKey:ChoiceID" json:"choice,omitempty"`
	Choices    []Choice       `gorm:"many2many:answer_choices" json:"choices,omitempty"`
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`
	AnsweredAt time.Time      `json:"answered_at"`
	Documents  []UserDocument `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

// TotalScore computes this answer's contribution. Requires Question,
// Choice and Choices to be loaded.
func (a *Answer) TotalScore() int {
	if a.IsCannotAnswer() {
		return 0
	}
	if a.Question.AllowMultiple {
		total := 0
		for _, c := range a.Choices {
			total += c.Score
		}
		return total
	}
	if a.Choice != nil {
		return a.Choice.Score
	}
	return 0
}

func (a *Answer) IsCannotAnswer() bool {
	return a.ChoiceID == nil && len(a.Choices) == 0
}

func (a *Answer) SelectedChoicesDisplay() string {
	if a.IsCannotAnswer() {
		return "Cannot answer"
	}
	if a.Question.AllowMultiple {
		texts := make([]string, 0, len(a.Choices))
		for _, c := range a.Choices {
			texts = append(texts, c.Text)
		}
		return strings.Join(texts, ", ")
	}
	if a.Choice != nil {
		return a.Choice.Text
	}
	return "-"
}
