package service

import (
	"errors"
	"time"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GradingService covers the instructor side of grading: manual grades for
// answers the engine left ungraded, and the un-redacted submissions view.
type GradingService interface {
	GradeAnswer(answerID uuid.UUID, req dto.GradeAnswerDTO) (*dto.AnswerResponseDTO, error)
	GetExamSubmissions(examID uuid.UUID) ([]dto.SubmissionDTO, error)
}

type gradingService struct {
	examRepo     repository.ExamRepository
	sessionRepo  repository.SessionRepository
	answerRepo   repository.AnswerRepository
	scoreService ScoreService
	now          func() time.Time
}

func NewGradingService(
	examRepo repository.ExamRepository,
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
	scoreService ScoreService,
) GradingService {
	return &gradingService{
		examRepo:     examRepo,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		scoreService: scoreService,
		now:          time.Now,
	}
}

// GradeAnswer records a manual grade and recomputes the owning session's
// score; one grade edit can flip the session's IsGraded and IsPassed.
func (s *gradingService) GradeAnswer(answerID uuid.UUID, req dto.GradeAnswerDTO) (*dto.AnswerResponseDTO, error) {
	answer, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("answer not found")
		}
		return nil, err
	}

	gradedAt := s.now()
	if err := s.answerRepo.Grade(answerID, req.IsCorrect, req.MarksAwarded, req.Feedback, req.InstructorID, gradedAt); err != nil {
		log.Error().Err(err).Str("answerID", answerID.String()).Msg("GradeAnswer: failed to persist grade")
		return nil, err
	}

	if _, err := s.scoreService.Recompute(answer.ExamSessionID); err != nil {
		log.Error().Err(err).Str("sessionID", answer.ExamSessionID.String()).Msg("GradeAnswer: score recompute failed")
		return nil, err
	}

	graded, err := s.answerRepo.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("answerID", answerID.String()).Str("instructorID", req.InstructorID).Msg("Answer graded manually")
	resp := toAnswerDTO(graded)
	return &resp, nil
}

// GetExamSubmissions is the instructor view: every session for the exam with
// full answers, no redaction.
func (s *gradingService) GetExamSubmissions(examID uuid.UUID) ([]dto.SubmissionDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByExamWithAnswers(examID)
	if err != nil {
		log.Error().Err(err).Str("examID", examID.String()).Msg("GetExamSubmissions: repository error")
		return nil, err
	}

	dtos := make([]dto.SubmissionDTO, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]
		submission := dto.SubmissionDTO{
			ID:              session.ID,
			ExamID:          session.ExamID,
			StudentID:       session.StudentID,
			AttemptNumber:   session.AttemptNumber,
			Status:          string(session.Status),
			ActualStartTime: session.ActualStartTime,
			ActualEndTime:   session.ActualEndTime,
			TotalScore:      session.TotalScore,
			Percentage:      session.Percentage,
			IsPassed:        session.IsPassed,
			IsGraded:        session.IsGraded,
		}
		for j := range session.Answers {
			submission.Answers = append(submission.Answers, toAnswerDTO(&session.Answers[j]))
		}
		dtos = append(dtos, submission)
	}
	return dtos, nil
}
