package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"talentflow/internal/model"
	"talentflow/internal/repository"
	"talentflow/internal/service"
)

// CandidateHandler handles candidate pipeline endpoints
type CandidateHandler struct {
	candidateSvc *service.CandidateService
	authSvc      *service.AuthService
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(candidateSvc *service.CandidateService, authSvc *service.AuthService) *CandidateHandler {
	return &CandidateHandler{
		candidateSvc: candidateSvc,
		authSvc:      authSvc,
	}
}

// CreateCandidateRequest is the request body for creating a candidate
type CreateCandidateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	JobID string `json:"jobId" validate:"required"`
	City  string `json:"city"`
}

// StagePatchRequest moves a candidate to a new pipeline stage
type StagePatchRequest struct {
	Stage model.Stage `json:"stage"`
}

// List handles GET /v1/candidates?search=&stage=&jobId=&page=&pageSize=
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := repository.CandidateListOptions{
		Search:   q.Get("search"),
		Stage:    model.Stage(q.Get("stage")),
		JobID:    q.Get("jobId"),
		Page:     intQuery(q.Get("page"), 1),
		PageSize: intQuery(q.Get("pageSize"), 50),
	}

	page, err := h.candidateSvc.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /v1/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name, email and jobId are required")
		return
	}

	created, err := h.candidateSvc.Create(r.Context(), &model.Candidate{
		Name:  req.Name,
		Email: req.Email,
		JobID: req.JobID,
		City:  req.City,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Patch handles PATCH /v1/candidates/{candidateId} (stage transitions)
func (h *CandidateHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req StagePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStage(req.Stage) {
		writeError(w, http.StatusBadRequest, "unknown stage")
		return
	}

	c, err := h.candidateSvc.ChangeStage(r.Context(), mux.Vars(r)["candidateId"], req.Stage)
	if err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Timeline handles GET /v1/candidates/{candidateId}/timeline
func (h *CandidateHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	events, err := h.candidateSvc.Timeline(r.Context(), mux.Vars(r)["candidateId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// IssueToken handles POST /v1/candidates/{candidateId}/token. HR mints a
// job-scoped token the candidate uses for the assessment runtime.
func (h *CandidateHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	candidateID := mux.Vars(r)["candidateId"]

	c, err := h.candidateSvc.Get(r.Context(), candidateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}

	token, err := h.authSvc.GenerateCandidateToken(c.JobID, c.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":       token,
		"jobId":       c.JobID,
		"candidateId": c.ID,
	})
}

func validStage(s model.Stage) bool {
	for _, known := range model.Stages {
		if s == known {
			return true
		}
	}
	return false
}
