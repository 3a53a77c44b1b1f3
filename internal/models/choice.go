package models

type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	Score      int    `gorm:"not null;default:0" json:"score"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}
