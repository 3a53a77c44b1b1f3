package models

import "testing"

func choicePtr(c Choice) *Choice { return &c }

func uintPtr(v uint) *uint { return &v }

func TestAnswerTotalScoreSingle(t *testing.T) {
	q := Question{ID: 1, AllowMultiple: false}
	c := Choice{ID: 10, QuestionID: 1, Text: "Yes", Score: 7}

	a := Answer{QuestionID: 1, Question: q, ChoiceID: uintPtr(c.ID), Choice: choicePtr(c)}
	if got := a.TotalScore(); got != 7 {
		t.Fatalf("TotalScore()=%d, want 7", got)
	}
	if a.IsCannotAnswer() {
		t.Fatal("answer with a choice reported as cannot-answer")
	}
}

func TestAnswerTotalScoreMultiple(t *testing.T) {
	q := Question{ID: 1, AllowMultiple: true}
	a := Answer{
		QuestionID: 1,
		Question:   q,
		Choices: []Choice{
			{ID: 1, Score: 4},
			{ID: 2, Score: 3},
			{ID: 3, Score: 0},
		},
	}
	if got := a.TotalScore(); got != 7 {
		t.Fatalf("TotalScore()=%d, want 7", got)
	}
}

func TestAnswerCannotAnswer(t *testing.T) {
	a := Answer{Question: Question{ID: 1}}
	if !a.IsCannotAnswer() {
		t.Fatal("empty answer should be cannot-answer")
	}
	if got := a.TotalScore(); got != 0 {
		t.Fatalf("cannot-answer TotalScore()=%d, want 0", got)
	}
	if got := a.SelectedChoicesDisplay(); got != "Cannot answer" {
		t.Fatalf("SelectedChoicesDisplay()=%q, want %q", got, "Cannot answer")
	}
}

func TestSelectedChoicesDisplay(t *testing.T) {
	single := Answer{
		Question: Question{AllowMultiple: false},
		ChoiceID: uintPtr(1),
		Choice:   &Choice{ID: 1, Text: "Yes, one environmental certification", Score: 7},
	}
	if got := single.SelectedChoicesDisplay(); got != "Yes, one environmental certification" {
		t.Fatalf("single display = %q", got)
	}

	multi := Answer{
		Question: Question{AllowMultiple: true},
		Choices: []Choice{
			{Text: "Solar"},
			{Text: "Wind"},
		},
	}
	if got := multi.SelectedChoicesDisplay(); got != "Solar, Wind" {
		t.Fatalf("multi display = %q", got)
	}
}

func TestGradeForScore(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{100, "A+"},
		{80, "A+"},
		{79.99, "A"},
		{70, "A"},
		{69.99, "B+"},
		{60, "B+"},
		{50, "B"},
		{49.99, "C+"},
		{40, "C+"},
		{30, "C"},
		{29.99, "D"},
		{0, "D"},
	}
	for _, c := range cases {
		if got := GradeForScore(c.total); got != c.want {
			t.Fatalf("GradeForScore(%v)=%q, want %q", c.total, got, c.want)
		}
	}
}

func TestMaxChoiceScore(t *testing.T) {
	q := Question{Choices: []Choice{{Score: 10}, {Score: 7}, {Score: 4}, {Score: 0}}}
	if got := q.MaxChoiceScore(); got != 10 {
		t.Fatalf("MaxChoiceScore()=%d, want 10", got)
	}

	empty := Question{}
	if got := empty.MaxChoiceScore(); got != 0 {
		t.Fatalf("MaxChoiceScore() on empty = %d, want 0", got)
	}
}
