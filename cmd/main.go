package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tuanvo/exam-portal/config"
	"github.com/tuanvo/exam-portal/database"
	adminctrl "github.com/tuanvo/exam-portal/internal/controller/admin"
	userctrl "github.com/tuanvo/exam-portal/internal/controller/user"
	"github.com/tuanvo/exam-portal/internal/logger"
	"github.com/tuanvo/exam-portal/internal/mailer"
	"github.com/tuanvo/exam-portal/internal/model"
	"github.com/tuanvo/exam-portal/internal/questionbank"
	"github.com/tuanvo/exam-portal/internal/repository"
	"github.com/tuanvo/exam-portal/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Portal API
// @version 1.0
// @description Exam administration API: per-day eligibility, attempt recording, OTP and certificate email, admin listing and export.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewQuestionBank,
			mailer.NewSMTPMailer,
		),

		// Repositories layer
		fx.Provide(
			repository.NewParticipantRepository,
			repository.NewExamRepository,
		),

		// Services layer
		fx.Provide(
			service.NewEligibilityService,
			service.NewExamService,
			service.NewOTPService,
			service.NewCertificateService,
			service.NewExportService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewExamController,
			userctrl.NewNotificationController,
			adminctrl.NewAdminExamController,
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
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI, URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func NewQuestionBank(cfg *config.Config) (*questionbank.Bank, error) {
	return questionbank.Load(cfg.Exam.QuestionBankPath)
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	examCtrl *userctrl.ExamController,
	notifyCtrl *userctrl.NotificationController,
	adminCtrl *adminctrl.AdminExamController,
) {
	apiGroup := router.Group("/api/v1")
	{
		apiGroup.POST("/check-eligibility", examCtrl.CheckEligibility)
		apiGroup.POST("/save-exam", examCtrl.SaveExam)
		apiGroup.GET("/exams/:exam_id", examCtrl.GetExamReview)
		apiGroup.GET("/questions", examCtrl.GetExamPaper)

		apiGroup.POST("/send-otp", notifyCtrl.SendOTP)
		apiGroup.POST("/send-certificate", notifyCtrl.SendCertificate)
	}

	adminGroup := router.Group("/api/v1/admin")
	{
		adminGroup.GET("/exams", adminCtrl.ListExams)
		adminGroup.GET("/exams/export", adminCtrl.ExportExams)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal server starting on port %s", cfg.Server.Port)
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
		&model.Participant{},
		&model.Exam{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
