package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"talentflow/internal/cache"
	"talentflow/internal/config"
	"talentflow/internal/repository"
	"talentflow/internal/service"
	"talentflow/internal/transport/rest"
	"talentflow/internal/transport/rest/middleware"
	"talentflow/internal/transport/ws"
)

// @title TalentFlow API
// @version 1.0
// @description Hiring pipeline with a conditional assessment engine
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisURI, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	assessmentRepo := repository.NewAssessmentRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	jobRepo := repository.NewJobRepo(db)
	candidateRepo := repository.NewCandidateRepo(db)
	timelineRepo := repository.NewTimelineRepo(db)

	// Initialize caches
	draftCache := cache.NewDraftCache(rdb)

	// Initialize services
	authSvc, err := service.NewAuthService(cfg.HRUsername, cfg.HRPassword, cfg.JWTSecret)
	if err != nil {
		log.Fatal("Failed to initialize auth:", err)
	}
	draftSvc := service.NewDraftService(draftCache, cfg.DraftDebounce, func(err error) {
		log.Printf("draft write failed: %v", err)
	})
	assessmentSvc := service.NewAssessmentService(assessmentRepo, submissionRepo, draftSvc)
	jobSvc := service.NewJobService(jobRepo)
	candidateSvc := service.NewCandidateService(candidateRepo, timelineRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		DraftService:      draftSvc,
		JobService:        jobSvc,
		CandidateService:  candidateSvc,
		WSHub:             wsHub,
		Chaos: middleware.ChaosConfig{
			FailRate: cfg.ChaosFailRate,
			MinDelay: cfg.ChaosMinDelay,
			MaxDelay: cfg.ChaosMaxDelay,
		},
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("HR auth: username=%s", cfg.HRUsername)
		if container.Chaos.Enabled() {
			log.Printf("Chaos enabled: failRate=%.2f delay=[%s,%s]",
				container.Chaos.FailRate, container.Chaos.MinDelay, container.Chaos.MaxDelay)
		}
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET/POST /v1/jobs")
		log.Println("  GET/POST /v1/candidates")
		log.Println("  GET/PUT /v1/assessments/{jobId}")
		log.Println("  POST /v1/assessments/{jobId}/validate")
		log.Println("  GET/PUT/DELETE /v1/assessments/{jobId}/draft/{candidateId}")
		log.Println("  POST /v1/assessments/{jobId}/submit")
		log.Println("  WS  /v1/ws/assessments/{jobId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
