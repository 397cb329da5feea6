package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"trainingscheduler/config"
	"trainingscheduler/internal/adapters/auth"
	"trainingscheduler/internal/adapters/email"
	deliveryhttp "trainingscheduler/internal/delivery/http"
	"trainingscheduler/internal/delivery/http/controllers"
	"trainingscheduler/internal/delivery/http/middleware"
	"trainingscheduler/internal/repository/postgres"
	"trainingscheduler/internal/services"
)

// @title Training Scheduler API
// @version 1.0
// @description Course administration backend: schools, projects, experts, courses, and conflict-checked session scheduling.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	schoolRepo := postgres.NewSchoolRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	expertRepo := postgres.NewExpertRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry, emailService)
	schoolService := services.NewSchoolService(schoolRepo, cfg.ServiceTimeout)
	projectService := services.NewProjectService(projectRepo, schoolRepo, cfg.ServiceTimeout)
	expertService := services.NewExpertService(expertRepo, sessionRepo, cfg.ServiceTimeout)
	courseService := services.NewCourseService(courseRepo, sessionRepo, expertRepo, schoolRepo, projectRepo, emailService, cfg.ServiceTimeout)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:    controllers.NewAuthController(logger, userService),
		School:  controllers.NewSchoolController(logger, schoolService),
		Project: controllers.NewProjectController(logger, projectService),
		Expert:  controllers.NewExpertController(logger, expertService),
		Course:  controllers.NewCourseController(logger, courseService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
