package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"talentflow/internal/assessment"
	"talentflow/internal/service"
	"talentflow/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment builder and runtime endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
	draftSvc      *service.DraftService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService, draftSvc *service.DraftService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentSvc: assessmentSvc,
		draftSvc:      draftSvc,
	}
}

// AnswersRequest wraps a candidate answer map
type AnswersRequest struct {
	Answers assessment.Answers `json:"answers"`
}

// Get handles GET /v1/assessments/{jobId}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	a, err := h.assessmentSvc.Get(r.Context(), jobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// Put handles PUT /v1/assessments/{jobId}
func (h *AssessmentHandler) Put(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var schema assessment.Schema
	if err := json.NewDecoder(r.Body).Decode(&schema); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.assessmentSvc.Save(r.Context(), jobID, schema)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// Validate handles POST /v1/assessments/{jobId}/validate.
// It runs the same visibility-aware checks a submit would, without
// persisting anything.
func (h *AssessmentHandler) Validate(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var req AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.assessmentSvc.Validate(r.Context(), jobID, req.Answers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetDraft handles GET /v1/assessments/{jobId}/draft/{candidateId}
func (h *AssessmentHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, candidateID := vars["jobId"], vars["candidateId"]
	if !h.draftScopeOK(r, jobID, candidateID) {
		writeError(w, http.StatusForbidden, "token not valid for this draft")
		return
	}

	answers, err := h.draftSvc.Load(r.Context(), jobID, candidateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnswersRequest{Answers: answers})
}

// PutDraft handles PUT /v1/assessments/{jobId}/draft/{candidateId}.
// Writes are coalesced server-side, so a burst of keystrokes lands in
// the store as a single save.
func (h *AssessmentHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, candidateID := vars["jobId"], vars["candidateId"]
	if !h.draftScopeOK(r, jobID, candidateID) {
		writeError(w, http.StatusForbidden, "token not valid for this draft")
		return
	}

	var req AnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Answers == nil {
		req.Answers = assessment.Answers{}
	}

	h.draftSvc.Save(jobID, candidateID, req.Answers)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// DeleteDraft handles DELETE /v1/assessments/{jobId}/draft/{candidateId}
func (h *AssessmentHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, candidateID := vars["jobId"], vars["candidateId"]
	if !h.draftScopeOK(r, jobID, candidateID) {
		writeError(w, http.StatusForbidden, "token not valid for this draft")
		return
	}

	if err := h.draftSvc.Clear(r.Context(), jobID, candidateID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// SubmitRequest is the request body for a final submission
type SubmitRequest struct {
	CandidateID string             `json:"candidateId"`
	Answers     assessment.Answers `json:"answers"`
}

// Submit handles POST /v1/assessments/{jobId}/submit
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidateID := middleware.GetCandidateID(r.Context())
	if candidateID == "" {
		candidateID = req.CandidateID
	}
	if candidateID == "" {
		writeError(w, http.StatusBadRequest, "candidateId is required")
		return
	}
	if !h.draftScopeOK(r, jobID, candidateID) {
		writeError(w, http.StatusForbidden, "token not valid for this job")
		return
	}

	sub, err := h.assessmentSvc.Submit(r.Context(), jobID, candidateID, req.Answers)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, assessment.Result{
				Valid:  false,
				Issues: verr.Issues,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Delete handles DELETE /v1/assessments/{jobId}
func (h *AssessmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	if err := h.assessmentSvc.Delete(r.Context(), jobID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Submissions handles GET /v1/assessments/{jobId}/submissions, optionally
// narrowed with ?candidateId=
func (h *AssessmentHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]
	candidateID := r.URL.Query().Get("candidateId")

	subs, err := h.assessmentSvc.Submissions(r.Context(), jobID, candidateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

// draftScopeOK checks that a candidate token only touches its own draft.
// Recruiter tokens carry no candidate scope and may touch any.
func (h *AssessmentHandler) draftScopeOK(r *http.Request, jobID, candidateID string) bool {
	tokenCandidate := middleware.GetCandidateID(r.Context())
	if tokenCandidate == "" {
		return true
	}
	return tokenCandidate == candidateID && middleware.GetJobID(r.Context()) == jobID
}
