package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"talentflow/internal/model"
	"talentflow/internal/repository"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateService handles the candidate pipeline: listing, intake and
// stage transitions with their timeline trail.
type CandidateService struct {
	candidates repository.CandidateRepo
	timelines  repository.TimelineRepo
}

// NewCandidateService creates a new candidate service
func NewCandidateService(candidates repository.CandidateRepo, timelines repository.TimelineRepo) *CandidateService {
	return &CandidateService{
		candidates: candidates,
		timelines:  timelines,
	}
}

// List returns a filtered page of candidates
func (s *CandidateService) List(ctx context.Context, opts repository.CandidateListOptions) (*model.Page[*model.Candidate], error) {
	candidates, total, err := s.candidates.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	page, pageSize := opts.Page, opts.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if candidates == nil {
		candidates = []*model.Candidate{}
	}
	return &model.Page[*model.Candidate]{Items: candidates, Total: int(total), Page: page, PageSize: pageSize}, nil
}

// Create registers a new applicant, starting at the applied stage unless
// the caller says otherwise.
func (s *CandidateService) Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	if c.Stage == "" {
		c.Stage = model.StageApplied
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retrieves a candidate by id
func (s *CandidateService) Get(ctx context.Context, id string) (*model.Candidate, error) {
	return s.candidates.GetByID(ctx, id)
}

// ChangeStage moves a candidate to a new pipeline stage and appends the
// transition to their timeline.
func (s *CandidateService) ChangeStage(ctx context.Context, id string, stage model.Stage) (*model.Candidate, error) {
	updated, err := s.candidates.Patch(ctx, id, bson.M{"stage": stage})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCandidateNotFound
	}

	err = s.timelines.Append(ctx, &model.TimelineEvent{
		CandidateID: id,
		Type:        "stage",
		Payload:     map[string]any{"stage": string(stage)},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Timeline lists a candidate's events, newest first
func (s *CandidateService) Timeline(ctx context.Context, id string) ([]*model.TimelineEvent, error) {
	return s.timelines.ListByCandidate(ctx, id)
}
