package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"talentflow/internal/model"
	"talentflow/internal/repository"
	"talentflow/internal/service"
)

// JobHandler handles job board endpoints
type JobHandler struct {
	jobSvc *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobSvc *service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// CreateJobRequest is the request body for creating a job
type CreateJobRequest struct {
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
	Tags  []string `json:"tags"`
}

// ReorderRequest moves the job occupying fromOrder to toOrder
type ReorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

// List handles GET /v1/jobs?search=&status=&sort=&page=&pageSize=
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := repository.JobListOptions{
		Search:   q.Get("search"),
		Status:   model.JobStatus(q.Get("status")),
		Sort:     q.Get("sort"),
		Page:     intQuery(q.Get("page"), 1),
		PageSize: intQuery(q.Get("pageSize"), 10),
	}

	page, err := h.jobSvc.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create handles POST /v1/jobs
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.jobSvc.Create(r.Context(), req.Title, req.Slug, req.Tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlugTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// Get handles GET /v1/jobs/{jobId}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobSvc.Get(r.Context(), mux.Vars(r)["jobId"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Patch handles PATCH /v1/jobs/{jobId}
func (h *JobHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch service.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.jobSvc.Update(r.Context(), mux.Vars(r)["jobId"], patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTitleRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// Reorder handles PATCH /v1/jobs/reorder
func (h *JobHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.jobSvc.Reorder(r.Context(), req.FromOrder, req.ToOrder); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
