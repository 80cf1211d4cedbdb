package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"talentflow/internal/service"
	"talentflow/internal/transport/rest/handler"
	"talentflow/internal/transport/rest/middleware"
	"talentflow/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	AssessmentService *service.AssessmentService
	DraftService      *service.DraftService
	JobService        *service.JobService
	CandidateService  *service.CandidateService
	WSHub             *ws.Hub
	Chaos             middleware.ChaosConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.DraftService)
	jobHandler := handler.NewJobHandler(c.JobService)
	candidateHandler := handler.NewCandidateHandler(c.CandidateService, c.AuthService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first), then optional chaos injection
	r.Use(corsMiddleware)
	r.Use(middleware.Chaos(c.Chaos))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/assessments/{jobId}", wsHandler.HandleWatch).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// HR routes (require recruiter auth)
	hrRoutes := v1.NewRoute().Subrouter()
	hrRoutes.Use(authMW.RequireRecruiter)

	hrRoutes.HandleFunc("/jobs", jobHandler.List).Methods("GET", "OPTIONS")
	hrRoutes.HandleFunc("/jobs", jobHandler.Create).Methods("POST", "OPTIONS")
	hrRoutes.HandleFunc("/jobs/reorder", jobHandler.Reorder).Methods("PATCH", "OPTIONS")
	hrRoutes.HandleFunc("/jobs/{jobId}", jobHandler.Get).Methods("GET", "OPTIONS")
	hrRoutes.HandleFunc("/jobs/{jobId}", jobHandler.Patch).Methods("PATCH", "OPTIONS")

	hrRoutes.HandleFunc("/candidates", candidateHandler.List).Methods("GET", "OPTIONS")
	hrRoutes.HandleFunc("/candidates", candidateHandler.Create).Methods("POST", "OPTIONS")
	hrRoutes.HandleFunc("/candidates/{candidateId}", candidateHandler.Patch).Methods("PATCH", "OPTIONS")
	hrRoutes.HandleFunc("/candidates/{candidateId}/timeline", candidateHandler.Timeline).Methods("GET", "OPTIONS")
	hrRoutes.HandleFunc("/candidates/{candidateId}/token", candidateHandler.IssueToken).Methods("POST", "OPTIONS")

	hrRoutes.HandleFunc("/assessments/{jobId}", assessmentHandler.Put).Methods("PUT", "OPTIONS")
	hrRoutes.HandleFunc("/assessments/{jobId}", assessmentHandler.Delete).Methods("DELETE", "OPTIONS")
	hrRoutes.HandleFunc("/assessments/{jobId}/submissions", assessmentHandler.Submissions).Methods("GET", "OPTIONS")

	// Candidate routes (candidate token or recruiter preview)
	candidateRoutes := v1.NewRoute().Subrouter()
	candidateRoutes.Use(authMW.RequireCandidate)

	candidateRoutes.HandleFunc("/assessments/{jobId}/draft/{candidateId}", assessmentHandler.GetDraft).Methods("GET", "OPTIONS")
	candidateRoutes.HandleFunc("/assessments/{jobId}/draft/{candidateId}", assessmentHandler.PutDraft).Methods("PUT", "OPTIONS")
	candidateRoutes.HandleFunc("/assessments/{jobId}/draft/{candidateId}", assessmentHandler.DeleteDraft).Methods("DELETE", "OPTIONS")
	candidateRoutes.HandleFunc("/assessments/{jobId}/submit", assessmentHandler.Submit).Methods("POST", "OPTIONS")

	// Read routes shared by builder preview and runtime: any valid token
	sharedRoutes := v1.NewRoute().Subrouter()
	sharedRoutes.Use(authMW.RequireAny)

	sharedRoutes.HandleFunc("/assessments/{jobId}", assessmentHandler.Get).Methods("GET", "OPTIONS")
	sharedRoutes.HandleFunc("/assessments/{jobId}/validate", assessmentHandler.Validate).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
