package services

import (
	"errors"
	"testing"

	"github.com/nazaninghn/sustindex/internal/models"
)

func newReportFixture(t *testing.T) (*ReportService, *AttemptService, *AnswerService, *models.Survey, *models.Question, *models.User) {
	t.Helper()
	db := openTestDB(t)
	survey, question := seedSurvey(t, db)
	scoring := NewScoringService()
	attempts := NewAttemptService(db, scoring)
	answers := NewAnswerService(db, scoring)
	documents := NewDocumentService(db, LocalStorage{Dir: t.TempDir()})
	reports := NewReportService(db, scoring, attempts, documents)
	user := createUser(t, db, "acme", models.MembershipFree)
	return reports, attempts, answers, survey, question, user
}

func TestResultRequiresCompletion(t *testing.T) {
	reports, attempts, _, survey, _, user := newReportFixture(t)

	attempt, _ := attempts.Create(user.ID, &survey.ID)

	if _, err := reports.Result(attempt.ID, user.ID); !errors.Is(err, models.ErrAttemptNotCompleted) {
		t.Fatalf("result err = %v, want ErrAttemptNotCompleted", err)
	}
}

func TestResultReadsPersistedScores(t *testing.T) {
	reports, attempts, answers, survey, question, user := newReportFixture(t)

	attempt, _ := attempts.Create(user.ID, &survey.ID)
	var seven models.Choice
	answers.db.Where("question_id = ? AND score = ?", question.ID, 7).First(&seven)
	if _, err := answers.Submit(attempt.ID, user.ID, SubmitAnswerInput{QuestionID: question.ID, ChoiceID: &seven.ID}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := attempts.Complete(attempt.ID, user.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	result, err := reports.Result(attempt.ID, user.ID)
	if err != nil {
		t.Fatalf("result: %v", err)
	}

	if result.Scores.Environmental != 70.0 || result.Scores.Grade != "D" {
		t.Fatalf("scores = %+v", result.Scores)
	}
	// Environmental 70 is above threshold; social and governance are 0.
	if len(result.Recommendations) != 2 {
		t.Fatalf("recommendations = %+v, want social and governance entries", result.Recommendations)
	}
	if result.Report == nil || result.Report.AttemptID != attempt.ID {
		t.Fatalf("report row missing: %+v", result.Report)
	}

	// A second read reuses the same report row and the same persisted scores.
	again, err := reports.Result(attempt.ID, user.ID)
	if err != nil {
		t.Fatalf("second result: %v", err)
	}
	if again.Report.ID != result.Report.ID {
		t.Fatal("result created a second report row")
	}
	if again.Scores != result.Scores {
		t.Fatal("result drifted between reads")
	}
}
