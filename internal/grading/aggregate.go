package grading

import "github.com/ULMS-DEV/exam-service/internal/model"

// SessionScore is the derived scoring state of one exam session.
type SessionScore struct {
	TotalScore float64
	Percentage float64
	IsPassed   bool
	IsGraded   bool
}

// Aggregate recomputes a session's totals from its full answer set. It is
// idempotent: the same answer set always yields the same result. IsGraded is
// true only when every answer carries a correctness verdict.
func Aggregate(exam *model.Exam, answers []model.Answer) SessionScore {
	score := SessionScore{IsGraded: true}
	for _, answer := range answers {
		score.TotalScore += answer.MarksAwarded
		if answer.IsCorrect == nil {
			score.IsGraded = false
		}
	}
	if exam.TotalMarks > 0 {
		score.Percentage = score.TotalScore / exam.TotalMarks * 100
	}
	score.IsPassed = score.TotalScore >= exam.PassingMarks
	return score
}
