package models

import "time"

type Report struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	AttemptID   uint            `gorm:"not null;uniqueIndex" json:"attempt_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	PDFPath     string          `gorm:"size:500" json:"pdf_path,omitempty"`
	Sections    []ReportSection `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

type ReportSection struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ReportID uint   `gorm:"not null;index" json:"report_id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	OrderNum int    `gorm:"not null;default:0" json:"order_num"`
}
