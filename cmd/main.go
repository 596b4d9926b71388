package main

import (
	"context"
	"net/http"
	"time"

	"github.com/ULMS-DEV/exam-service/config"
	"github.com/ULMS-DEV/exam-service/database"
	_ "github.com/ULMS-DEV/exam-service/docs" // Swagger docs - auto-generated
	"github.com/ULMS-DEV/exam-service/internal/client"
	instructorctrl "github.com/ULMS-DEV/exam-service/internal/controller/instructor"
	studentctrl "github.com/ULMS-DEV/exam-service/internal/controller/student"
	"github.com/ULMS-DEV/exam-service/internal/logger"
	"github.com/ULMS-DEV/exam-service/internal/model"
	"github.com/ULMS-DEV/exam-service/internal/repository"
	"github.com/ULMS-DEV/exam-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Service API
// @version 1.0
// @description Timed examinations: exam definitions, per-student sessions, answer submission and auto-grading.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			client.NewCourseClient,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewExamRepository,
			repository.NewSessionRepository,
			repository.NewAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewExamService,
			service.NewScoreService,
			service.NewSessionService,
			service.NewGradingService,
			service.NewSeedService,
		),

		// API Controllers Layer
		fx.Provide(
			instructorctrl.NewInstructorController,
			studentctrl.NewStudentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through zerolog rather than Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	instructorCtrl *instructorctrl.InstructorController,
	studentCtrl *studentctrl.StudentController,
) {
	// Instructor routes (prefixed with /api/v1/instructor)
	instructorAPIGroup := router.Group("/api/v1/instructor")
	{
		instructorAPIGroup.POST("/exams", instructorCtrl.CreateExam)
		instructorAPIGroup.PUT("/exams/:exam_id", instructorCtrl.UpdateExam)
		instructorAPIGroup.GET("/exams/:exam_id/submissions", instructorCtrl.GetExamSubmissions)
		instructorAPIGroup.POST("/answers/:answer_id/grade", instructorCtrl.GradeAnswer)
		instructorAPIGroup.POST("/seed", instructorCtrl.SeedExams)
	}

	// Student routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	{
		studentAPIGroup.GET("/exams/:exam_id", studentCtrl.GetExam)
		studentAPIGroup.GET("/courses/:course_id/exams", studentCtrl.GetCourseExams)
		studentAPIGroup.GET("/students/:student_id/exams", studentCtrl.GetStudentExams)
		studentAPIGroup.GET("/students/:student_id/sessions", studentCtrl.GetStudentSessions)

		studentAPIGroup.POST("/exams/:exam_id/sessions", studentCtrl.StartExamSession)
		studentAPIGroup.GET("/exams/:exam_id/sessions/me", studentCtrl.GetStudentExamSession)
		studentAPIGroup.POST("/sessions/:session_id/submit", studentCtrl.SubmitExam)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam service starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Exam{},
		&model.Question{},
		&model.ExamSession{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
