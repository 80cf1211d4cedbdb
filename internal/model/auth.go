package model

import "github.com/golang-jwt/jwt/v5"

// RecruiterClaims are JWT claims for HR authentication
type RecruiterClaims struct {
	RecruiterID string `json:"recruiterId"`
	jwt.RegisteredClaims
}

// CandidateClaims are JWT claims for candidate job-scoped tokens
type CandidateClaims struct {
	JobID       string `json:"jobId"`
	CandidateID string `json:"candidateId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for HR login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token       string `json:"token"`
	RecruiterID string `json:"recruiterId"`
}
