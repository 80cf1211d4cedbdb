package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"talentflow/internal/model"
	"talentflow/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title required")
	ErrSlugTaken     = errors.New("slug must be unique")
	ErrJobNotFound   = errors.New("job not found")
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// JobService handles job posting CRUD and board ordering
type JobService struct {
	jobs repository.JobRepo
}

// NewJobService creates a new job service
func NewJobService(jobs repository.JobRepo) *JobService {
	return &JobService{jobs: jobs}
}

// Slugify derives a url-safe slug from a title.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// Create adds a job at the end of the board. The slug defaults to a
// slugified title and must be unique.
func (s *JobService) Create(ctx context.Context, title, slug string, tags []string) (*model.Job, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if slug == "" {
		slug = Slugify(title)
	}

	existing, err := s.jobs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	order, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}

	job := &model.Job{
		Title:  title,
		Slug:   slug,
		Status: model.JobActive,
		Tags:   tags,
		Order:  int(order),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get retrieves a job by id
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// List returns a filtered page of jobs
func (s *JobService) List(ctx context.Context, opts repository.JobListOptions) (*model.Page[*model.Job], error) {
	jobs, total, err := s.jobs.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	page, pageSize := opts.Page, opts.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}
	return &model.Page[*model.Job]{Items: jobs, Total: int(total), Page: page, PageSize: pageSize}, nil
}

// JobPatch carries partial job updates.
type JobPatch struct {
	Title  *string          `json:"title,omitempty"`
	Status *model.JobStatus `json:"status,omitempty"`
	Tags   *[]string        `json:"tags,omitempty"`
}

// Update applies a partial patch to a job
func (s *JobService) Update(ctx context.Context, id string, patch JobPatch) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Tags != nil {
		job.Tags = *patch.Tags
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Reorder moves the job at fromOrder to toOrder and recomputes the order
// of everything else, mirroring a board drag.
func (s *JobService) Reorder(ctx context.Context, fromOrder, toOrder int) error {
	all, err := s.jobs.ListOrdered(ctx)
	if err != nil {
		return err
	}

	var moved *model.Job
	for _, j := range all {
		if j.Order == fromOrder {
			moved = j
			break
		}
	}
	if moved == nil {
		return ErrJobNotFound
	}

	without := make([]*model.Job, 0, len(all))
	for _, j := range all {
		if j.ID != moved.ID {
			without = append(without, j)
		}
	}
	if toOrder < 0 {
		toOrder = 0
	}
	if toOrder > len(without) {
		toOrder = len(without)
	}
	reordered := make([]*model.Job, 0, len(all))
	reordered = append(reordered, without[:toOrder]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, without[toOrder:]...)

	for i, j := range reordered {
		if j.Order == i {
			continue
		}
		if err := s.jobs.SetOrder(ctx, j.ID, i); err != nil {
			return err
		}
	}
	return nil
}
