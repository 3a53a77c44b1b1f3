package services

import (
	"math"

	"github.com/nazaninghn/sustindex/internal/models"
)

// ScoringService holds the pure scoring rules. It never touches the
// database; callers hand it fully loaded categories (active questions with
// choices) and the attempt's answers.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// AnswersByQuestion indexes an attempt's answers for scoring lookups.
func AnswersByQuestion(answers []models.Answer) map[uint]*models.Answer {
	byQuestion := make(map[uint]*models.Answer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}
	return byQuestion
}

// CategoryScore aggregates one category's answered questions into a score
// in [0, MaxScore]. A question with no answer row contributes to neither
// the numerator nor the denominator. An all-zero denominator scores 0.
func (s *ScoringService) CategoryScore(cat *models.Category, answers map[uint]*models.Answer) float64 {
	totalScore := 0
	totalPossible := 0

	for i := range cat.Questions {
		q := &cat.Questions[i]
		if !q.IsActive {
			continue
		}
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		totalScore += answer.TotalScore()
		totalPossible += q.MaxChoiceScore()
	}

	if totalPossible == 0 {
		return 0
	}

	percentage := float64(totalScore) / float64(totalPossible) * 100
	return math.Min(percentage, float64(cat.MaxScore))
}

// CalculateScores combines category scores, weighted by each category's
// ESG weights, into the three pillar scores, a total and a grade.
// Pure and idempotent: same inputs, same summary.
func (s *ScoringService) CalculateScores(categories []models.Category, answers []models.Answer) models.ScoreSummary {
	byQuestion := AnswersByQuestion(answers)

	var env, social, gov float64
	for i := range categories {
		score := s.CategoryScore(&categories[i], byQuestion)
		env += score * categories[i].EnvironmentalWeight
		social += score * categories[i].SocialWeight
		gov += score * categories[i].GovernanceWeight
	}

	env = round2(env)
	social = round2(social)
	gov = round2(gov)
	total := round2((env + social + gov) / 3)

	return models.ScoreSummary{
		Environmental: env,
		Social:        social,
		Governance:    gov,
		Total:         total,
		Grade:         models.GradeForScore(total),
	}
}

// SimpleTotal is the quick legacy total: the sum of every answer's single
// choice score. Multi-select answers and category weights are ignored.
func (s *ScoringService) SimpleTotal(answers []models.Answer) int {
	total := 0
	for i := range answers {
		if answers[i].Choice != nil {
			total += answers[i].Choice.Score
		}
	}
	return total
}

type ProgressStats struct {
	TotalQuestions      int `json:"total_questions"`
	AnsweredQuestions   int `json:"answered_questions"`
	CannotAnswerCount   int `json:"cannot_answer_count"`
	ProgressPercent     int `json:"progress_percent"`
	SurveyQuestionTotal int `json:"survey_question_total"`
}

// AttemptStats computes completion progress over the answer rows that
// exist for the attempt. "Cannot answer" counts toward progress but not
// toward answered questions.
func (s *ScoringService) AttemptStats(answers []models.Answer) ProgressStats {
	stats := ProgressStats{TotalQuestions: len(answers)}

	for i := range answers {
		if answers[i].IsCannotAnswer() {
			stats.CannotAnswerCount++
		} else {
			stats.AnsweredQuestions++
		}
	}

	if stats.TotalQuestions > 0 {
		done := float64(stats.AnsweredQuestions + stats.CannotAnswerCount)
		stats.ProgressPercent = int(math.Round(done / float64(stats.TotalQuestions) * 100))
	}
	return stats
}

type Recommendation struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

// Recommendations derives improvement suggestions per ESG pillar. Each
// pillar below 50 emits one high-priority entry, in E, S, G order.
func (s *ScoringService) Recommendations(summary models.ScoreSummary) []Recommendation {
	recommendations := []Recommendation{}

	if summary.Environmental < 50 {
		recommendations = append(recommendations, Recommendation{
			Category:   "Environmental",
			Priority:   "High",
			Suggestion: "Focus on waste management and renewable energy adoption",
		})
	}
	if summary.Social < 50 {
		recommendations = append(recommendations, Recommendation{
			Category:   "Social",
			Priority:   "High",
			Suggestion: "Improve employee training and diversity programs",
		})
	}
	if summary.Governance < 50 {
		recommendations = append(recommendations, Recommendation{
			Category:   "Governance",
			Priority:   "High",
			Suggestion: "Strengthen board independence and transparency reporting",
		})
	}

	return recommendations
}

type CategoryPerformance struct {
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	MaxScore   int     `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

// Performance reports per-category scores for the result view.
func (s *ScoringService) Performance(categories []models.Category, answers []models.Answer) []CategoryPerformance {
	byQuestion := AnswersByQuestion(answers)

	performance := make([]CategoryPerformance, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		score := s.CategoryScore(cat, byQuestion)

		pct := 0.0
		if cat.MaxScore > 0 {
			pct = math.Round(score/float64(cat.MaxScore)*100*10) / 10
		}
		performance = append(performance, CategoryPerformance{
			Category:   cat.Name,
			Score:      score,
			MaxScore:   cat.MaxScore,
			Percentage: pct,
		})
	}
	return performance
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
