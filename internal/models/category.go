package models

type Category struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:200;not null" json:"name"`
	Description         string     `gorm:"type:text" json:"description"`
	OrderNum            int        `gorm:"not null;default:0" json:"order_num"`
	EnvironmentalWeight float64    `gorm:"not null;default:0" json:"environmental_weight"`
	SocialWeight        float64    `gorm:"not null;default:0" json:"social_weight"`
	GovernanceWeight    float64    `gorm:"not null;default:0" json:"governance_weight"`
	MaxScore            int        `gorm:"not null;default:100" json:"max_score"`
	Questions           []Question `gorm:"foreignKey:CategoryID" json:"questions,omitempty"`
}
