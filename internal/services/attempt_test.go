package services

import (
	"errors"
	"testing"
	"time"

	"github.com/nazaninghn/sustindex/internal/models"

	"gorm.io/gorm"
)

func TestCreateAttemptQuota(t *testing.T) {
	db := openTestDB(t)
	seedSurvey(t, db)
	svc := NewAttemptService(db, NewScoringService())

	silver := createUser(t, db, "silver-co", models.MembershipSilver)
	gold := createUser(t, db, "gold-co", models.MembershipGold)

	now := time.Now()
	for _, userID := range []uint{silver.ID, gold.ID} {
		done := models.QuestionnaireAttempt{UserID: userID, IsCompleted: true, StartedAt: now, CompletedAt: &now}
		if err := db.Create(&done).Error; err != nil {
			t.Fatalf("create completed attempt: %v", err)
		}
	}

	if _, err := svc.Create(silver.ID, nil); !errors.Is(err, models.ErrQuotaExceeded) {
		t.Fatalf("silver create err = %v, want ErrQuotaExceeded", err)
	}

	attempt, err := svc.Create(gold.ID, nil)
	if err != nil {
		t.Fatalf("gold create: %v", err)
	}
	if attempt.IsCompleted {
		t.Fatal("new attempt should start open")
	}
}

func TestCreateAttemptQuotaCountFailure(t *testing.T) {
	db := openTestDB(t)
	survey, _ := seedSurvey(t, db)
	svc := NewAttemptService(db, NewScoringService())
	silver := createUser(t, db, "silver-co", models.MembershipSilver)

	first, err := svc.Create(silver.ID, &survey.ID)
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if _, err := svc.Complete(first.ID, silver.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Make count queries fail, as a dropped connection would.
	countErr := errors.New("attempt count unavailable")
	failing := false
	db.Callback().Query().Before("gorm:query").Register("attempt_count_outage", func(tx *gorm.DB) {
		if failing {
			if _, ok := tx.Statement.Dest.(*int64); ok {
				tx.AddError(countErr)
			}
		}
	})

	failing = true
	_, err = svc.Create(silver.ID, &survey.ID)
	failing = false

	if !errors.Is(err, countErr) {
		t.Fatalf("create err = %v, want the count failure surfaced", err)
	}

	var total int64
	db.Model(&models.QuestionnaireAttempt{}).Where("user_id = ?", silver.ID).Count(&total)
	if total != 1 {
		t.Fatalf("attempts = %d, want the quota gate to block on count failure", total)
	}
}

func TestCreateAttemptBindsOpenSession(t *testing.T) {
	db := openTestDB(t)
	survey, _ := seedSurvey(t, db)
	svc := NewAttemptService(db, NewScoringService())
	user := createUser(t, db, "acme", models.MembershipFree)

	// An upcoming session must not bind.
	future := models.SurveySession{
		SurveyID:  &survey.ID,
		Name:      "Next quarter",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(48 * time.Hour),
		IsActive:  true,
	}
	if err := db.Create(&future).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	unbound, err := svc.Create(user.ID, &survey.ID)
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if unbound.SessionID != nil {
		t.Fatal("attempt bound to a session that is not open")
	}

	open := openSession(t, db, survey.ID)
	bound, err := svc.Create(user.ID, &survey.ID)
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if bound.SessionID == nil || *bound.SessionID != open.ID {
		t.Fatalf("attempt session = %v, want %d", bound.SessionID, open.ID)
	}
}

func TestCompleteAttempt(t *testing.T) {
	db := openTestDB(t)
	survey, question := seedSurvey(t, db)
	scoring := NewScoringService()
	attempts := NewAttemptService(db, scoring)
	answers := NewAnswerService(db, scoring)
	user := createUser(t, db, "acme", models.MembershipFree)

	attempt, err := attempts.Create(user.ID, &survey.ID)
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	// Select the 7-point choice.
	var seven models.Choice
	if err := db.Where("question_id = ? AND score = ?", question.ID, 7).First(&seven).Error; err != nil {
		t.Fatalf("load choice: %v", err)
	}
	if _, err := answers.Submit(attempt.ID, user.ID, SubmitAnswerInput{QuestionID: question.ID, ChoiceID: &seven.ID}); err != nil {
		t.Fatalf("submit answer: %v", err)
	}

	summary, err := attempts.Complete(attempt.ID, user.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if summary.Environmental != 70.0 {
		t.Fatalf("Environmental=%v, want 70.0", summary.Environmental)
	}
	if summary.Total != 23.33 || summary.Grade != "D" {
		t.Fatalf("Total=%v Grade=%q, want 23.33 D", summary.Total, summary.Grade)
	}

	var stored models.QuestionnaireAttempt
	if err := db.First(&stored, attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if !stored.IsCompleted || stored.CompletedAt == nil {
		t.Fatal("completion not persisted")
	}
	if stored.EnvironmentalScore != 70.0 || stored.OverallGrade != "D" {
		t.Fatalf("persisted scores = %+v", stored)
	}
}

func TestCompleteTwiceRejected(t *testing.T) {
	db := openTestDB(t)
	survey, question := seedSurvey(t, db)
	scoring := NewScoringService()
	attempts := NewAttemptService(db, scoring)
	answers := NewAnswerService(db, scoring)
	user := createUser(t, db, "acme", models.MembershipFree)

	attempt, _ := attempts.Create(user.ID, &survey.ID)
	var top models.Choice
	db.Where("question_id = ? AND score = ?", question.ID, 10).First(&top)
	answers.Submit(attempt.ID, user.ID, SubmitAnswerInput{QuestionID: question.ID, ChoiceID: &top.ID})

	if _, err := attempts.Complete(attempt.ID, user.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}

	var before models.QuestionnaireAttempt
	db.First(&before, attempt.ID)

	if _, err := attempts.Complete(attempt.ID, user.ID); !errors.Is(err, models.ErrAttemptCompleted) {
		t.Fatalf("second complete err = %v, want ErrAttemptCompleted", err)
	}

	var after models.QuestionnaireAttempt
	db.First(&after, attempt.ID)
	if before.TotalScore != after.TotalScore || before.OverallGrade != after.OverallGrade {
		t.Fatal("second completion mutated persisted scores")
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	db := openTestDB(t)
	survey, question := seedSurvey(t, db)
	scoring := NewScoringService()
	attempts := NewAttemptService(db, scoring)
	answers := NewAnswerService(db, scoring)
	user := createUser(t, db, "acme", models.MembershipFree)

	attempt, _ := attempts.Create(user.ID, &survey.ID)
	var mid models.Choice
	db.Where("question_id = ? AND score = ?", question.ID, 4).First(&mid)
	answers.Submit(attempt.ID, user.ID, SubmitAnswerInput{QuestionID: question.ID, ChoiceID: &mid.ID})

	first, err := attempts.Recalculate(attempt.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	second, err := attempts.Recalculate(attempt.ID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if *first != *second {
		t.Fatalf("recalculate not idempotent: %+v vs %+v", first, second)
	}
}

func TestForeignAttemptAccess(t *testing.T) {
	db := openTestDB(t)
	survey, _ := seedSurvey(t, db)
	attempts := NewAttemptService(db, NewScoringService())

	owner := createUser(t, db, "owner", models.MembershipFree)
	other := createUser(t, db, "other", models.MembershipFree)

	attempt, _ := attempts.Create(owner.ID, &survey.ID)

	if _, err := attempts.GetOwned(attempt.ID, other.ID); !errors.Is(err, models.ErrForeignAttempt) {
		t.Fatalf("foreign access err = %v, want ErrForeignAttempt", err)
	}
	if _, err := attempts.Complete(attempt.ID, other.ID); !errors.Is(err, models.ErrForeignAttempt) {
		t.Fatalf("foreign complete err = %v, want ErrForeignAttempt", err)
	}
}

func TestProgress(t *testing.T) {
	db := openTestDB(t)
	survey, question := seedSurvey(t, db)
	scoring := NewScoringService()
	attempts := NewAttemptService(db, scoring)
	answers := NewAnswerService(db, scoring)
	user := createUser(t, db, "acme", models.MembershipFree)

	attempt, _ := attempts.Create(user.ID, &survey.ID)

	stats, err := attempts.Progress(attempt.ID, user.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if stats.TotalQuestions != 0 || stats.ProgressPercent != 0 {
		t.Fatalf("fresh attempt stats = %+v, want zeros", stats)
	}
	if stats.SurveyQuestionTotal != 1 {
		t.Fatalf("SurveyQuestionTotal=%d, want 1", stats.SurveyQuestionTotal)
	}

	// Explicit cannot-answer still counts toward progress.
	if _, err := answers.Submit(attempt.ID, user.ID, SubmitAnswerInput{QuestionID: question.ID, CannotAnswer: true}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	stats, _ = attempts.Progress(attempt.ID, user.ID)
	if stats.TotalQuestions != 1 || stats.CannotAnswerCount != 1 || stats.ProgressPercent != 100 {
		t.Fatalf("stats = %+v, want 1 row, 1 cannot-answer, 100%%", stats)
	}
	if stats.AnsweredQuestions != 0 {
		t.Fatalf("cannot-answer counted as answered: %+v", stats)
	}
}
