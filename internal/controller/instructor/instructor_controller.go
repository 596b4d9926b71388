package instructor

import (
	"net/http"

	"github.com/ULMS-DEV/exam-service/internal/controller"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type InstructorController struct {
	examService    service.ExamService
	gradingService service.GradingService
	seedService    service.SeedService
}

func NewInstructorController(
	examService service.ExamService,
	gradingService service.GradingService,
	seedService service.SeedService,
) *InstructorController {
	return &InstructorController{
		examService:    examService,
		gradingService: gradingService,
		seedService:    seedService,
	}
}

// CreateExam godoc
// @Summary (Instructor) Create an exam with its questions
// @Description Creates an exam definition. Fails if start time is not before end time or passing marks exceed total marks.
// @Tags Instructor
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam draft"
// @Success 201 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /instructor/exams [post]
func (c *InstructorController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateExam: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	exam, err := c.examService.CreateExam(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// UpdateExam godoc
// @Summary (Instructor) Update exam metadata
// @Description Updates an exam. Rejected once any student session references the exam.
// @Tags Instructor
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param exam body dto.ExamUpdateDTO true "Exam changes"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/exams/{exam_id} [put]
func (c *InstructorController) UpdateExam(ctx *gin.Context) {
	examID, err := uuid.Parse(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	var req dto.ExamUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	exam, err := c.examService.UpdateExam(examID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// GetExamSubmissions godoc
// @Summary (Instructor) List all submissions for an exam
// @Description Returns every session for the exam with full, un-redacted answers.
// @Tags Instructor
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {array} dto.SubmissionDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/exams/{exam_id}/submissions [get]
func (c *InstructorController) GetExamSubmissions(ctx *gin.Context) {
	examID, err := uuid.Parse(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	submissions, err := c.gradingService.GetExamSubmissions(examID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// GradeAnswer godoc
// @Summary (Instructor) Manually grade an answer
// @Description Records an instructor grade for one answer and recomputes the owning session's score.
// @Tags Instructor
// @Accept json
// @Produce json
// @Param answer_id path string true "Answer ID"
// @Param grade body dto.GradeAnswerDTO true "Grade"
// @Success 200 {object} dto.AnswerResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/answers/{answer_id}/grade [post]
func (c *InstructorController) GradeAnswer(ctx *gin.Context) {
	answerID, err := uuid.Parse(ctx.Param("answer_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid answer ID format"})
		return
	}

	var req dto.GradeAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	answer, err := c.gradingService.GradeAnswer(answerID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, answer)
}

// SeedExams godoc
// @Summary (Instructor) Load demo exam fixtures
// @Tags Instructor
// @Produce json
// @Success 200 {object} dto.SeedResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /instructor/seed [post]
func (c *InstructorController) SeedExams(ctx *gin.Context) {
	result, err := c.seedService.SeedExams()
	if err != nil {
		log.Error().Err(err).Msg("SeedExams: fixture load failed")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
