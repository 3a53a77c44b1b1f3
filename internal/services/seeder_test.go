package services

import (
	"testing"

	"github.com/nazaninghn/sustindex/internal/models"
)

func TestSeederIdempotent(t *testing.T) {
	db := openTestDB(t)
	seeder := NewSeeder(db)

	if err := seeder.Run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.Run(); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var surveys, categories, admins int64
	db.Model(&models.Survey{}).Count(&surveys)
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.User{}).Where("is_staff = ?", true).Count(&admins)

	if surveys != 1 {
		t.Fatalf("surveys = %d, want 1", surveys)
	}
	if categories != 4 {
		t.Fatalf("categories = %d, want 4", categories)
	}
	if admins != 1 {
		t.Fatalf("admins = %d, want 1", admins)
	}

	// Seeded weights must match the ESG pillar layout.
	var env models.Category
	if err := db.Where("name = ?", "Environment").First(&env).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}
	if env.EnvironmentalWeight != 1.0 || env.SocialWeight != 0 || env.GovernanceWeight != 0 {
		t.Fatalf("Environment weights = %+v", env)
	}
}
