package service

import (
	"encoding/json"

	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// toStudentQuestionDTO builds the redacted question view. The mapping is
// explicit rather than copier-based so that a new model field can never leak
// a grading key into a student response.
func toStudentQuestionDTO(q *model.Question) dto.QuestionStudentDTO {
	return dto.QuestionStudentDTO{
		ID:            q.ID,
		ExamID:        q.ExamID,
		Type:          string(q.Type),
		Text:          q.Text,
		Marks:         q.Marks,
		Options:       json.RawMessage(q.Options),
		CaseSensitive: q.CaseSensitive,
		PartialCredit: q.PartialCredit,
	}
}

func toStudentQuestionDTOs(questions []model.Question) []dto.QuestionStudentDTO {
	dtos := make([]dto.QuestionStudentDTO, len(questions))
	for i := range questions {
		dtos[i] = toStudentQuestionDTO(&questions[i])
	}
	return dtos
}

func toInstructorQuestionDTO(q *model.Question) dto.QuestionInstructorDTO {
	return dto.QuestionInstructorDTO{
		ID:             q.ID,
		ExamID:         q.ExamID,
		Type:           string(q.Type),
		Text:           q.Text,
		Marks:          q.Marks,
		Options:        json.RawMessage(q.Options),
		CorrectOptions: q.CorrectOptions,
		CorrectAnswer:  json.RawMessage(q.CorrectAnswer),
		Explanation:    q.Explanation,
		CaseSensitive:  q.CaseSensitive,
		PartialCredit:  q.PartialCredit,
	}
}

func toExamResponseDTO(exam *model.Exam) *dto.ExamResponseDTO {
	resp := &dto.ExamResponseDTO{
		ID:           exam.ID,
		Title:        exam.Title,
		Description:  exam.Description,
		CourseID:     exam.CourseID,
		Duration:     exam.Duration,
		TotalMarks:   exam.TotalMarks,
		PassingMarks: exam.PassingMarks,
		StartTime:    exam.StartTime,
		EndTime:      exam.EndTime,
		CreatedAt:    exam.CreatedAt,
	}
	for i := range exam.Questions {
		resp.Questions = append(resp.Questions, toInstructorQuestionDTO(&exam.Questions[i]))
	}
	return resp
}

// toStudentSessionDTO redacts the session for the owning student. While a
// completed session is still waiting on manual grading, score fields are
// reported as unknown rather than a partial value.
func toStudentSessionDTO(session *model.ExamSession) *dto.SessionResponseDTO {
	resp := &dto.SessionResponseDTO{
		ID:                 session.ID,
		ExamID:             session.ExamID,
		StudentID:          session.StudentID,
		AttemptNumber:      session.AttemptNumber,
		Status:             string(session.Status),
		ScheduledStartTime: session.ScheduledStartTime,
		ScheduledEndTime:   session.ScheduledEndTime,
		ActualStartTime:    session.ActualStartTime,
		ActualEndTime:      session.ActualEndTime,
		IsGraded:           session.IsGraded,
		Questions:          toStudentQuestionDTOs(session.Exam.Questions),
	}
	if session.Status == model.SessionCompleted && !session.IsGraded {
		return resp
	}
	resp.TotalScore = session.TotalScore
	resp.Percentage = session.Percentage
	resp.IsPassed = session.IsPassed
	return resp
}

func toAnswerDTO(answer *model.Answer) dto.AnswerResponseDTO {
	var resp dto.AnswerResponseDTO
	if err := copier.Copy(&resp, answer); err != nil {
		log.Error().Err(err).Str("answerID", answer.ID.String()).Msg("Failed to copy answer model to DTO")
	}
	resp.StructuredAnswer = json.RawMessage(answer.StructuredAnswer)
	return resp
}
