package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"talentflow/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles recruiter and candidate authentication
type AuthService struct {
	username     string
	passwordHash []byte
	jwtSecret    []byte
}

// NewAuthService creates a new auth service. The configured password is
// hashed once at startup; only the hash is kept in memory.
func NewAuthService(username, password, jwtSecret string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		username:     username,
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
	}, nil
}

// Login validates credentials and returns a recruiter token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	recruiterID := "hr_" + uuid.New().String()[:8]

	claims := &model.RecruiterClaims{
		RecruiterID: recruiterID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:       tokenString,
		RecruiterID: recruiterID,
	}, nil
}

// ValidateRecruiterToken validates a recruiter JWT and returns claims
func (s *AuthService) ValidateRecruiterToken(tokenString string) (*model.RecruiterClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RecruiterClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RecruiterClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// Both token kinds share a secret, so a candidate token parses here
	// too — with an empty RecruiterID. Scope is the claim, not the parse.
	if claims.RecruiterID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateCandidateToken creates a job-scoped token for a candidate run
func (s *AuthService) GenerateCandidateToken(jobID, candidateID string) (string, error) {
	claims := &model.CandidateClaims{
		JobID:       jobID,
		CandidateID: candidateID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateCandidateToken validates a candidate JWT and returns claims
func (s *AuthService) ValidateCandidateToken(tokenString string) (*model.CandidateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.CandidateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.CandidateClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.CandidateID == "" || claims.JobID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
