package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ULMS-DEV/exam-service/internal/apperror"
	"github.com/ULMS-DEV/exam-service/internal/client"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamService manages exam definitions: creation with validation, reads, and
// course/student-level listings.
type ExamService interface {
	CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	UpdateExam(examID uuid.UUID, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error)
	GetExam(examID uuid.UUID) (*dto.ExamResponseDTO, error)
	GetCourseExams(courseID string) ([]dto.ExamSummaryDTO, error)
	GetStudentExams(ctx context.Context, studentID string) ([]dto.ExamSummaryDTO, error)
}

type examService struct {
	examRepo     repository.ExamRepository
	courseClient client.CourseClient
}

func NewExamService(examRepo repository.ExamRepository, courseClient client.CourseClient) ExamService {
	return &examService{examRepo: examRepo, courseClient: courseClient}
}

func (s *examService) CreateExam(req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, apperror.InvalidArgument("start time must be before end time")
	}
	if req.PassingMarks > req.TotalMarks {
		return nil, apperror.InvalidArgument("passing marks cannot exceed total marks")
	}

	exam := model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		CourseID:     req.CourseID,
		Duration:     req.Duration,
		TotalMarks:   req.TotalMarks,
		PassingMarks: req.PassingMarks,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	for _, qDto := range req.Questions {
		exam.Questions = append(exam.Questions, model.Question{
			Type:           model.QuestionType(qDto.Type),
			Text:           qDto.Text,
			Marks:          qDto.Marks,
			Options:        datatypes.JSON(qDto.Options),
			CorrectOptions: qDto.CorrectOptions,
			CorrectAnswer:  datatypes.JSON(qDto.CorrectAnswer),
			Explanation:    qDto.Explanation,
			CaseSensitive:  qDto.CaseSensitive,
			PartialCredit:  qDto.PartialCredit,
		})
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateExam: failed to persist exam")
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}
	log.Info().Str("examID", exam.ID.String()).Int("questions", len(exam.Questions)).Msg("Exam created")
	return toExamResponseDTO(&exam), nil
}

// UpdateExam rejects any modification once a session references the exam;
// exams are immutable from the first attempt onward.
func (s *examService) UpdateExam(examID uuid.UUID, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}

	sessionCount, err := s.examRepo.CountSessions(examID)
	if err != nil {
		return nil, err
	}
	if sessionCount > 0 {
		return nil, apperror.PermissionDenied("exam cannot be modified after students have attempted it")
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, apperror.InvalidArgument("start time must be before end time")
	}
	if req.PassingMarks > req.TotalMarks {
		return nil, apperror.InvalidArgument("passing marks cannot exceed total marks")
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.Duration = req.Duration
	exam.TotalMarks = req.TotalMarks
	exam.PassingMarks = req.PassingMarks
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime

	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Str("examID", examID.String()).Msg("UpdateExam: failed to persist changes")
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}
	return toExamResponseDTO(exam), nil
}

func (s *examService) GetExam(examID uuid.UUID) (*dto.ExamResponseDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("exam not found")
		}
		return nil, err
	}
	return toExamResponseDTO(exam), nil
}

func (s *examService) GetCourseExams(courseID string) ([]dto.ExamSummaryDTO, error) {
	examsWithCounts, err := s.examRepo.FindByCoursesWithCounts([]string{courseID})
	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("GetCourseExams: repository error")
		return nil, fmt.Errorf("error fetching exams for course %s: %w", courseID, err)
	}
	return toExamSummaryDTOs(examsWithCounts), nil
}

// GetStudentExams resolves the student's enrolled courses through the course
// service, then lists the exams of those courses.
func (s *examService) GetStudentExams(ctx context.Context, studentID string) ([]dto.ExamSummaryDTO, error) {
	courseIDs, err := s.courseClient.GetEnrollmentsForStudent(ctx, studentID)
	if err != nil {
		log.Error().Err(err).Str("studentID", studentID).Msg("GetStudentExams: enrollment lookup failed")
		return nil, fmt.Errorf("resolving enrollments for student %s: %w", studentID, err)
	}
	if len(courseIDs) == 0 {
		return []dto.ExamSummaryDTO{}, nil
	}

	examsWithCounts, err := s.examRepo.FindByCoursesWithCounts(courseIDs)
	if err != nil {
		return nil, fmt.Errorf("error fetching exams for student %s: %w", studentID, err)
	}
	return toExamSummaryDTOs(examsWithCounts), nil
}

func toExamSummaryDTOs(rows []repository.ExamWithCounts) []dto.ExamSummaryDTO {
	dtos := make([]dto.ExamSummaryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, dto.ExamSummaryDTO{
			ID:            row.Exam.ID,
			Title:         row.Exam.Title,
			Description:   row.Exam.Description,
			CourseID:      row.Exam.CourseID,
			Duration:      row.Exam.Duration,
			TotalMarks:    row.Exam.TotalMarks,
			PassingMarks:  row.Exam.PassingMarks,
			StartTime:     row.Exam.StartTime,
			EndTime:       row.Exam.EndTime,
			QuestionCount: row.QuestionCount,
			SessionCount:  row.SessionCount,
		})
	}
	return dtos
}
