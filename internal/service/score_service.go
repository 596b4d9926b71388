package service

import (
	"errors"
	"fmt"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/grading"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ScoreService recomputes a session's derived scoring fields from its full
// answer set. It runs after every bulk submission and after every manual
// grading edit, since a single grade change can flip IsGraded and IsPassed.
type ScoreService interface {
	Recompute(sessionID uuid.UUID) (grading.SessionScore, error)
}

type scoreService struct {
	examRepo    repository.ExamRepository
	sessionRepo repository.SessionRepository
	answerRepo  repository.AnswerRepository
}

func NewScoreService(
	examRepo repository.ExamRepository,
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
) ScoreService {
	return &scoreService{examRepo: examRepo, sessionRepo: sessionRepo, answerRepo: answerRepo}
}

func (s *scoreService) Recompute(sessionID uuid.UUID) (grading.SessionScore, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return grading.SessionScore{}, apperror.NotFound("exam session not found")
		}
		return grading.SessionScore{}, err
	}

	exam, err := s.examRepo.FindByID(session.ExamID)
	if err != nil {
		return grading.SessionScore{}, fmt.Errorf("loading exam for score recompute: %w", err)
	}

	answers, err := s.answerRepo.FindBySession(sessionID)
	if err != nil {
		return grading.SessionScore{}, fmt.Errorf("loading answers for score recompute: %w", err)
	}

	score := grading.Aggregate(exam, answers)
	if err := s.sessionRepo.UpdateScore(sessionID, score); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("Recompute: failed to persist session score")
		return grading.SessionScore{}, err
	}
	return score, nil
}
