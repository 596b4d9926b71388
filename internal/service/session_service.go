package service

import (
	"errors"
	"time"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/grading"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The service keys every lookup and creation to the student's first attempt;
// the storage schema already carries the attempt number for when retakes land.
const firstAttempt = 1

// ClientMetadata is request-origin information recorded on session creation.
type ClientMetadata struct {
	IPAddress string
	UserAgent string
}

// SessionService governs the exam session lifecycle: time-window enforcement
// at start, idempotent resume, bulk answer submission with auto-grading, and
// lazy expiry.
type SessionService interface {
	StartExamSession(examID uuid.UUID, studentID string, meta ClientMetadata) (*dto.SessionResponseDTO, error)
	GetStudentExamSession(examID uuid.UUID, studentID string) (*dto.SessionResponseDTO, error)
	SubmitExam(sessionID uuid.UUID, studentID string, answers []dto.AnswerSubmitDTO) (*dto.SubmitResultDTO, error)
	GetStudentSessions(studentID string) ([]dto.SessionSummaryDTO, error)
}

type sessionService struct {
	examRepo     repository.ExamRepository
	sessionRepo  repository.SessionRepository
	answerRepo   repository.AnswerRepository
	scoreService ScoreService
	now          func() time.Time
}

func NewSessionService(
	examRepo repository.ExamRepository,
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
	scoreService ScoreService,
) SessionService {
	return &sessionService{
		examRepo:     examRepo,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		scoreService: scoreService,
		now:          time.Now,
	}
}

// StartExamSession creates the student's session for an exam, or resumes the
// in-progress one. Creation is an atomic create-or-fetch keyed by
// (exam, student, attempt), so two concurrent starts resolve to one session.
func (s *sessionService) StartExamSession(examID uuid.UUID, studentID string, meta ClientMetadata) (*dto.SessionResponseDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}

	now := s.now()
	if now.Before(exam.StartTime) {
		return nil, apperror.PermissionDenied("exam has not started yet")
	}
	if now.After(exam.EndTime) {
		return nil, apperror.PermissionDenied("exam has ended")
	}

	session := &model.ExamSession{
		ExamID:             examID,
		StudentID:          studentID,
		AttemptNumber:      firstAttempt,
		Status:             model.SessionInProgress,
		ScheduledStartTime: exam.StartTime,
		ScheduledEndTime:   now.Add(time.Duration(exam.Duration) * time.Minute),
		ActualStartTime:    now,
		LastActivityAt:     now,
		IPAddress:          meta.IPAddress,
		UserAgent:          meta.UserAgent,
	}

	created, err := s.sessionRepo.CreateIfAbsent(session)
	if err != nil {
		log.Error().Err(err).Str("examID", examID.String()).Str("studentID", studentID).Msg("StartExamSession: create failed")
		return nil, err
	}

	if !created {
		existing, err := s.sessionRepo.FindByKey(examID, studentID, firstAttempt)
		if err != nil {
			return nil, err
		}
		switch existing.Status {
		case model.SessionCompleted:
			return nil, apperror.PermissionDenied("you have already completed this exam")
		case model.SessionExpired:
			return nil, apperror.PermissionDenied("your session for this exam has expired")
		default:
			// Idempotent resume of the in-progress session.
			log.Info().Str("sessionID", existing.ID.String()).Str("studentID", studentID).Msg("Resuming in-progress exam session")
			return toStudentSessionDTO(existing), nil
		}
	}

	log.Info().Str("sessionID", session.ID.String()).Str("examID", examID.String()).Str("studentID", studentID).Msg("Exam session started")
	session.Exam = *exam
	return toStudentSessionDTO(session), nil
}

func (s *sessionService) GetStudentExamSession(examID uuid.UUID, studentID string) (*dto.SessionResponseDTO, error) {
	session, err := s.sessionRepo.FindByKey(examID, studentID, firstAttempt)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam session not found")
		}
		return nil, err
	}
	return toStudentSessionDTO(session), nil
}

// SubmitExam validates and persists the full answer set for a session, runs
// every answer through the grading engine, completes the session and
// recomputes its score. Expiry is detected lazily here: the EXPIRED transition
// is persisted before the submission is rejected.
func (s *sessionService) SubmitExam(sessionID uuid.UUID, studentID string, answers []dto.AnswerSubmitDTO) (*dto.SubmitResultDTO, error) {
	session, err := s.sessionRepo.FindByIDWithExamQuestions(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam session not found")
		}
		return nil, err
	}

	if session.StudentID != studentID {
		return nil, apperror.PermissionDenied("this session does not belong to you")
	}
	if session.Status != model.SessionInProgress {
		return nil, apperror.PermissionDenied("this exam session is not in progress")
	}

	now := s.now()
	if now.After(session.ScheduledEndTime) {
		// The expiry transition must survive even though the call fails.
		if err := s.sessionRepo.UpdateStatus(sessionID, model.SessionExpired, nil); err != nil {
			log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("SubmitExam: failed to persist EXPIRED transition")
			return nil, err
		}
		return nil, apperror.PermissionDenied("time limit exceeded")
	}

	// Validate the whole batch before writing anything, so a partially
	// invalid submission fails atomically.
	questionByID := make(map[uuid.UUID]*model.Question, len(session.Exam.Questions))
	for i := range session.Exam.Questions {
		questionByID[session.Exam.Questions[i].ID] = &session.Exam.Questions[i]
	}
	for _, answer := range answers {
		if _, ok := questionByID[answer.QuestionID]; !ok {
			return nil, apperror.InvalidArgument("question %s not found in this exam", answer.QuestionID)
		}
	}

	records := make([]model.Answer, 0, len(answers))
	for _, submitted := range answers {
		question := questionByID[submitted.QuestionID]
		record := model.Answer{
			ExamSessionID:    sessionID,
			QuestionID:       submitted.QuestionID,
			SelectedOptions:  submitted.SelectedOptions,
			TextAnswer:       submitted.TextAnswer,
			StructuredAnswer: datatypes.JSON(submitted.StructuredAnswer),
		}
		if result := grading.Grade(question, grading.SubmittedAnswer{
			SelectedOptions:  submitted.SelectedOptions,
			TextAnswer:       submitted.TextAnswer,
			StructuredAnswer: submitted.StructuredAnswer,
		}); result != nil {
			gradedAt := now
			record.IsCorrect = &result.IsCorrect
			record.MarksAwarded = result.Marks
			record.GradedAt = &gradedAt
		}
		records = append(records, record)
	}

	if err := s.answerRepo.UpsertBatch(records); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("SubmitExam: failed to persist answers")
		return nil, err
	}

	if err := s.sessionRepo.UpdateStatus(sessionID, model.SessionCompleted, &now); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("SubmitExam: failed to complete session")
		return nil, err
	}

	if _, err := s.scoreService.Recompute(sessionID); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID.String()).Msg("SubmitExam: score recompute failed")
		return nil, err
	}

	log.Info().Str("sessionID", sessionID.String()).Int("answers", len(records)).Msg("Exam submitted")
	return &dto.SubmitResultDTO{
		Success:     true,
		Message:     "Exam submitted successfully",
		SessionID:   sessionID,
		SubmittedAt: now,
	}, nil
}

// GetStudentSessions lists a student's sessions across exams. Score fields are
// included only for completed, fully graded sessions.
func (s *sessionService) GetStudentSessions(studentID string) ([]dto.SessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Msg("GetStudentSessions: repository error")
		return nil, err
	}

	dtos := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]
		summary := dto.SessionSummaryDTO{
			ID:                 session.ID,
			ExamID:             session.ExamID,
			ExamTitle:          session.Exam.Title,
			AttemptNumber:      session.AttemptNumber,
			Status:             string(session.Status),
			ScheduledStartTime: session.ScheduledStartTime,
			ScheduledEndTime:   session.ScheduledEndTime,
			ActualStartTime:    session.ActualStartTime,
			ActualEndTime:      session.ActualEndTime,
		}
		if session.IsGraded && session.Status == model.SessionCompleted {
			summary.TotalScore = session.TotalScore
			summary.Percentage = session.Percentage
			summary.IsPassed = session.IsPassed
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}
