package middleware

import (
	"context"
	"net/http"
	"strings"

	"talentflow/internal/service"
)

type contextKey string

const (
	RecruiterIDKey contextKey = "recruiterId"
	CandidateIDKey contextKey = "candidateId"
	JobIDKey       contextKey = "jobId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireRecruiter validates a recruiter JWT from the Authorization header
func (m *AuthMiddleware) RequireRecruiter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateRecruiterToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), RecruiterIDKey, claims.RecruiterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCandidate validates a candidate JWT from the Authorization header
// or the token query param (for form runtimes embedded in the demo shell).
// Recruiter tokens also pass, without candidate scope, so HR can preview
// the runtime.
func (m *AuthMiddleware) RequireCandidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		if claims, err := m.authSvc.ValidateCandidateToken(token); err == nil {
			ctx := r.Context()
			ctx = context.WithValue(ctx, CandidateIDKey, claims.CandidateID)
			ctx = context.WithValue(ctx, JobIDKey, claims.JobID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		claims, err := m.authSvc.ValidateRecruiterToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), RecruiterIDKey, claims.RecruiterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAny accepts either token kind. Used for routes shared by the
// builder preview and the candidate runtime.
func (m *AuthMiddleware) RequireAny(next http.Handler) http.Handler {
	return m.RequireCandidate(next)
}

// GetRecruiterID extracts the recruiter ID from context
func GetRecruiterID(ctx context.Context) string {
	if v := ctx.Value(RecruiterIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetCandidateID extracts the candidate ID from context
func GetCandidateID(ctx context.Context) string {
	if v := ctx.Value(CandidateIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetJobID extracts the token-scoped job ID from context
func GetJobID(ctx context.Context) string {
	if v := ctx.Value(JobIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
