package student

import (
	"net/http"

	"github.com/ULMS-DEV/exam-service/internal/controller"
	"github.com/ULMS-DEV/exam-service/internal/dto"
	"github.com/ULMS-DEV/exam-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	examService    service.ExamService
	sessionService service.SessionService
}

func NewStudentController(examService service.ExamService, sessionService service.SessionService) *StudentController {
	return &StudentController{examService: examService, sessionService: sessionService}
}

// GetExam godoc
// @Summary Get an exam definition
// @Tags Student
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id} [get]
func (c *StudentController) GetExam(ctx *gin.Context) {
	examID, err := uuid.Parse(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	exam, err := c.examService.GetExam(examID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// GetCourseExams godoc
// @Summary List a course's exams with question and session counts
// @Tags Student
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.ExamSummaryDTO
// @Router /courses/{course_id}/exams [get]
func (c *StudentController) GetCourseExams(ctx *gin.Context) {
	courseID := ctx.Param("course_id")
	exams, err := c.examService.GetCourseExams(courseID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetStudentExams godoc
// @Summary List the exams of a student's enrolled courses
// @Description Resolves the student's courses through the course service, then lists their exams.
// @Tags Student
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {array} dto.ExamSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Course service unavailable"
// @Router /students/{student_id}/exams [get]
func (c *StudentController) GetStudentExams(ctx *gin.Context) {
	studentID := ctx.Param("student_id")
	exams, err := c.examService.GetStudentExams(ctx.Request.Context(), studentID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// StartExamSession godoc
// @Summary Start (or resume) an exam session
// @Description Creates the student's timed session for an exam. Starting again while in progress returns the same session; starting after completion is denied.
// @Tags Student
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param body body dto.SessionStartDTO true "Student"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Exam window closed or already completed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/sessions [post]
func (c *StudentController) StartExamSession(ctx *gin.Context) {
	examID, err := uuid.Parse(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	var req dto.SessionStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessionService.StartExamSession(examID, req.StudentID, service.ClientMetadata{
		IPAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	})
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetStudentExamSession godoc
// @Summary Get the student's session for an exam
// @Description Returns the session with answer keys stripped from questions. Scores stay hidden while manual grading is pending.
// @Tags Student
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param student_id query string true "Student ID"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/sessions/me [get]
func (c *StudentController) GetStudentExamSession(ctx *gin.Context) {
	examID, err := uuid.Parse(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	session, err := c.sessionService.GetStudentExamSession(examID, studentID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SubmitExam godoc
// @Summary Submit all answers for a session
// @Description Bulk, all-or-nothing submission. Auto-gradable answers are graded immediately; the session completes and its score is recomputed. Submitting past the scheduled end expires the session.
// @Tags Student
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param submission body dto.ExamSubmitDTO true "Answers"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown question in batch"
// @Failure 403 {object} dto.ErrorResponse "Not owner, not in progress, or time limit exceeded"
// @Failure 404 {object} dto.ErrorResponse
// @Router /sessions/{session_id}/submit [post]
func (c *StudentController) SubmitExam(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID format"})
		return
	}

	var req dto.ExamSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitExam: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.sessionService.SubmitExam(sessionID, req.StudentID, req.Answers)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetStudentSessions godoc
// @Summary List a student's sessions across exams
// @Description Scores appear only for completed, fully graded sessions.
// @Tags Student
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {array} dto.SessionSummaryDTO
// @Router /students/{student_id}/sessions [get]
func (c *StudentController) GetStudentSessions(ctx *gin.Context) {
	studentID := ctx.Param("student_id")
	sessions, err := c.sessionService.GetStudentSessions(studentID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}
