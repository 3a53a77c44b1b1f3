package models

import "time"

const (
	MembershipFree   = "free"
	MembershipSilver = "silver"
	MembershipGold   = "gold"
)

// CompletedAttemptLimit returns the maximum number of completed attempts
// allowed for a membership tier, or -1 for unlimited.
func CompletedAttemptLimit(membership string) int {
	switch membership {
	case MembershipSilver:
		return 1
	default:
		return -1
	}
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	MembershipType string    `gorm:"size:10;not null;default:'free'" json:"membership_type"`
	CompanyName    string    `gorm:"size:200" json:"company_name"`
	Phone          string    `gorm:"size:20" json:"phone"`
	IsStaff        bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt      time.Time `json:"created_at"`
}

type CompanyProfile struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	UserID             uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	CompanyName        string `gorm:"size:200;not null" json:"company_name"`
	RegistrationNumber string `gorm:"size:50" json:"registration_number"`
	Address            string `gorm:"type:text" json:"address"`
	Website            string `gorm:"size:255" json:"website"`
	Industry           string `gorm:"size:100" json:"industry"`
	EmployeeCount      *int   `json:"employee_count,omitempty"`
}
