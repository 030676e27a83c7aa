package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"registration-service/internal/ai/gemini"
	"registration-service/internal/config"
	"registration-service/internal/database/minio"
	"registration-service/internal/database/postgres"
	"registration-service/internal/database/redis"
	"registration-service/internal/event"
	"registration-service/internal/handlers"
	"registration-service/internal/repository"
	"registration-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/agrisa", "log", "registration_service")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		// keep logging to stderr, e.g. when running outside the container
		log.Printf("Failed to set up file logging, using stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()

	// postgres
	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	registrationRepository := repository.NewRegistrationRepository(db)
	if err := registrationRepository.EnsureSchema(); err != nil {
		log.Fatalf("Error preparing registration schema: %v", err)
	}

	// redis
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// optional collaborators: the wizard still works without them
	var archive services.SnapshotArchive
	if minioClient, err := minio.NewMinioClient(cfg.MinioCfg); err != nil {
		log.Printf("MinIO unavailable, snapshots will not be archived: %v", err)
	} else {
		archive = minioClient
	}

	var publisher services.EventPublisher
	var registrationPublisher *event.RegistrationPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, registration events will not be published: %v", err)
	} else {
		defer rabbitConn.Close()
		registrationPublisher = event.NewRegistrationPublisher(rabbitConn)
		publisher = registrationPublisher
	}

	var fallback services.FallbackAnswerer
	if len(cfg.GeminiAPICfg.APIKeys) > 0 {
		clients, err := gemini.NewGenAIClients(cfg.GeminiAPICfg.APIKeys, cfg.GeminiAPICfg.FlashName)
		if err != nil {
			log.Printf("Some Gemini clients failed to start: %v", err)
		}
		for _, client := range clients {
			defer client.Close()
		}
		if len(clients) > 0 {
			fallback = gemini.NewFarmingAdvisor(gemini.NewGeminiClientSelector(clients))
		}
	}

	// repositories
	sessionRepository := repository.NewWizardSessionRepository(
		redisClient.GetClient(), cfg.SessionCfg.TTL, cfg.SessionCfg.SubmittedTTL)

	// services
	tokenService := services.NewTokenService(cfg.AuthCfg.JWTSecret, cfg.AuthCfg.TokenTTL)
	submissionPipeline := services.NewSubmissionPipeline(registrationRepository, archive, publisher)
	registrationService := services.NewRegistrationService(
		sessionRepository, registrationRepository, submissionPipeline, tokenService)
	advisorService := services.NewAdvisorService(fallback)

	// handlers
	middleware := handlers.NewMiddleware(tokenService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, middleware)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)
	healthHandler := handlers.NewHealthHandler(healthChecks(db, redisClient, registrationPublisher)...)

	r := gin.Default()
	registrationHandler.RegisterRoutes(r)
	advisorHandler.RegisterRoutes(r)
	healthHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting registration-service on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down registration-service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func healthChecks(db *sqlx.DB, redisClient *redis.Client, publisher *event.RegistrationPublisher) []handlers.HealthCheck {
	checks := []handlers.HealthCheck{
		{Name: "postgres", Probe: db.PingContext},
		{Name: "redis", Probe: func(ctx context.Context) error {
			return redisClient.GetClient().Ping(ctx).Err()
		}},
	}
	if publisher != nil {
		checks = append(checks, handlers.HealthCheck{
			Name: "rabbitmq",
			Probe: func(context.Context) error {
				if status := publisher.HealthCheck(); !status.IsHealthy {
					return fmt.Errorf("publisher unhealthy after %d failed messages", status.MessagesFailed)
				}
				return nil
			},
			Details: func() any { return publisher.GetMetrics() },
		})
	}
	return checks
}
