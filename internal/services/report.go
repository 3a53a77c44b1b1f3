package services

import (
	"errors"
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/gorm"
)

type ReportService struct {
	db        *gorm.DB
	scoring   *ScoringService
	attempts  *AttemptService
	documents *DocumentService
}

func NewReportService(db *gorm.DB, scoring *ScoringService, attempts *AttemptService, documents *DocumentService) *ReportService {
	return &ReportService{db: db, scoring: scoring, attempts: attempts, documents: documents}
}

// AttemptResult is everything the reporting collaborator needs: the frozen
// score summary, the recommendations, the per-category breakdown and the
// evidence count. The PDF renderer must not reach into raw answers.
type AttemptResult struct {
	AttemptID       uint                  `json:"attempt_id"`
	Scores          models.ScoreSummary   `json:"scores"`
	Recommendations []Recommendation      `json:"recommendations"`
	Performance     []CategoryPerformance `json:"performance"`
	DocumentsCount  int64                 `json:"documents_count"`
	Report          *models.Report        `json:"report"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
}

// Result reads the persisted scores of a completed attempt — it never
// recomputes on read — ensures a Report row exists and assembles the
// result payload.
func (s *ReportService) Result(attemptID, userID uint) (*AttemptResult, error) {
	attempt, err := s.attempts.GetOwned(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsCompleted {
		return nil, models.ErrAttemptNotCompleted
	}

	report, err := s.getOrCreateReport(attempt.ID)
	if err != nil {
		return nil, err
	}

	summary := models.ScoreSummary{
		Environmental: attempt.EnvironmentalScore,
		Social:        attempt.SocialScore,
		Governance:    attempt.GovernanceScore,
		Total:         attempt.TotalScore,
		Grade:         attempt.OverallGrade,
	}

	categories, err := s.attempts.CategoriesForAttempt(attempt)
	if err != nil {
		return nil, err
	}
	answers, err := s.attempts.loadAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	docsCount, err := s.documents.CountForAttempt(attempt.ID)
	if err != nil {
		return nil, err
	}

	return &AttemptResult{
		AttemptID:       attempt.ID,
		Scores:          summary,
		Recommendations: s.scoring.Recommendations(summary),
		Performance:     s.scoring.Performance(categories, answers),
		DocumentsCount:  docsCount,
		Report:          report,
		CompletedAt:     attempt.CompletedAt,
	}, nil
}

func (s *ReportService) getOrCreateReport(attemptID uint) (*models.Report, error) {
	var report models.Report
	err := s.db.Where("attempt_id = ?", attemptID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		report = models.Report{AttemptID: attemptID, GeneratedAt: time.Now()}
		if err := s.db.Create(&report).Error; err != nil {
			return nil, err
		}
		return &report, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
