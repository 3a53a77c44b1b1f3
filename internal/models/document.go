package models

import (
	"fmt"
	"time"
)

type UserDocument struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AnswerID    uint      `gorm:"not null;index" json:"answer_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FilePath    string    `gorm:"size:500;not null" json:"file_path"`
	FileSize    int64     `gorm:"not null;default:0" json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (d *UserDocument) FileSizeDisplay() string {
	switch {
	case d.FileSize < 1024:
		return fmt.Sprintf("%d B", d.FileSize)
	case d.FileSize < 1024*1024:
		return fmt.Sprintf("%d KB", d.FileSize/1024)
	default:
		return fmt.Sprintf("%d MB", d.FileSize/(1024*1024))
	}
}
