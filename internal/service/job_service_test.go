package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/model"
	"talentflow/internal/repository"
)

type stubJobRepo struct {
	jobs map[string]*model.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*model.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.ID == "" {
		job.ID = "job-" + job.Slug
	}
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *stubJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (r *stubJobRepo) GetBySlug(_ context.Context, slug string) (*model.Job, error) {
	for _, j := range r.jobs {
		if j.Slug == slug {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubJobRepo) List(_ context.Context, _ repository.JobListOptions) ([]*model.Job, int64, error) {
	all, _ := r.ListOrdered(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubJobRepo) ListOrdered(_ context.Context) ([]*model.Job, error) {
	out := make([]*model.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Order < out[k].Order })
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *model.Job) error {
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *stubJobRepo) SetOrder(_ context.Context, id string, order int) error {
	r.jobs[id].Order = order
	return nil
}

func (r *stubJobRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.jobs)), nil
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "senior-go-engineer", Slugify("Senior Go Engineer"))
	assert.Equal(t, "c-c-developer", Slugify("C/C++ Developer!"))
	assert.Equal(t, "ml-platform", Slugify("  ML  Platform  "))
}

func TestCreateJobAssignsOrderAndSlug(t *testing.T) {
	svc := NewJobService(newStubJobRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, "Backend Engineer", "", []string{"remote"})
	require.NoError(t, err)
	assert.Equal(t, "backend-engineer", first.Slug)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, model.JobActive, first.Status)

	second, err := svc.Create(ctx, "Frontend Engineer", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
}

func TestCreateJobRejectsDuplicateSlug(t *testing.T) {
	svc := NewJobService(newStubJobRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Backend Engineer", "", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Backend  Engineer", "backend-engineer", nil)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateJobRequiresTitle(t *testing.T) {
	svc := NewJobService(newStubJobRepo())
	_, err := svc.Create(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestUpdateJobPatch(t *testing.T) {
	svc := NewJobService(newStubJobRepo())
	ctx := context.Background()
	job, err := svc.Create(ctx, "Backend Engineer", "", nil)
	require.NoError(t, err)

	archived := model.JobArchived
	updated, err := svc.Update(ctx, job.ID, JobPatch{Status: &archived})
	require.NoError(t, err)
	assert.Equal(t, model.JobArchived, updated.Status)
	assert.Equal(t, "Backend Engineer", updated.Title, "untouched fields survive")

	_, err = svc.Update(ctx, "missing", JobPatch{Status: &archived})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestReorderRecomputesOrders(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D"} {
		_, err := svc.Create(ctx, title, "", nil)
		require.NoError(t, err)
	}

	// move the job at position 0 to position 2
	require.NoError(t, svc.Reorder(ctx, 0, 2))

	ordered, err := repo.ListOrdered(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(ordered))
	for _, j := range ordered {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"B", "C", "A", "D"}, titles)
	for i, j := range ordered {
		assert.Equal(t, i, j.Order, "orders are contiguous after reorder")
	}
}

func TestReorderUnknownSourceFails(t *testing.T) {
	svc := NewJobService(newStubJobRepo())
	err := svc.Reorder(context.Background(), 5, 0)
	assert.ErrorIs(t, err, ErrJobNotFound)
}
