package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/assessment"
	"talentflow/internal/model"
)

type stubAssessmentRepo struct {
	stored map[string]*model.Assessment
	getErr error
}

func newStubAssessmentRepo() *stubAssessmentRepo {
	return &stubAssessmentRepo{stored: make(map[string]*model.Assessment)}
}

func (r *stubAssessmentRepo) Get(_ context.Context, jobID string) (*model.Assessment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	a, ok := r.stored[jobID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *stubAssessmentRepo) Put(_ context.Context, a *model.Assessment) error {
	cp := *a
	r.stored[a.JobID] = &cp
	return nil
}

func (r *stubAssessmentRepo) Delete(_ context.Context, jobID string) error {
	delete(r.stored, jobID)
	return nil
}

type stubSubmissionRepo struct {
	created   []*model.Submission
	createErr error
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *model.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *s
	r.created = append(r.created, &cp)
	return nil
}

func (r *stubSubmissionRepo) GetByJobID(_ context.Context, jobID string) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range r.created {
		if s.JobID == jobID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) GetByCandidate(_ context.Context, jobID, candidateID string) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range r.created {
		if s.JobID == jobID && s.CandidateID == candidateID {
			out = append(out, s)
		}
	}
	return out, nil
}

type recordingBroadcaster struct {
	jobIDs []string
}

func (b *recordingBroadcaster) AssessmentSaved(jobID string, _ assessment.Schema) {
	b.jobIDs = append(b.jobIDs, jobID)
}

func gatedSchema() assessment.Schema {
	maxFive := 5
	return assessment.Schema{
		Title: "Screening",
		Sections: []assessment.Section{{
			ID: "s1",
			Questions: []assessment.Question{
				{ID: "q1", Kind: assessment.KindSingle, Required: true, Options: []string{"Yes", "No"}},
				{ID: "q2", Kind: assessment.KindShort, Required: true, MaxLength: &maxFive,
					ShowIf: &assessment.Condition{QuestionID: "q1", Value: "Yes"}},
			},
		}},
	}
}

func newTestAssessmentService() (*AssessmentService, *stubAssessmentRepo, *stubSubmissionRepo, *stubDraftCache) {
	assessments := newStubAssessmentRepo()
	submissions := &stubSubmissionRepo{}
	draftCache := newStubDraftCache()
	drafts := NewDraftService(draftCache, 0, nil)
	return NewAssessmentService(assessments, submissions, drafts), assessments, submissions, draftCache
}

func TestGetReturnsDefaultEmptySchema(t *testing.T) {
	svc, _, _, _ := newTestAssessmentService()

	a, err := svc.Get(context.Background(), "job1")
	require.NoError(t, err)
	assert.Equal(t, "job1", a.JobID)
	assert.Equal(t, "New Assessment", a.Schema.Title)
	assert.Empty(t, a.Schema.Sections)
}

func TestSaveUpsertsAndBroadcasts(t *testing.T) {
	svc, assessments, _, _ := newTestAssessmentService()
	b := &recordingBroadcaster{}
	svc.SetBroadcaster(b)
	ctx := context.Background()

	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	stored, err := svc.Get(ctx, "job1")
	require.NoError(t, err)
	assert.Equal(t, "Screening", stored.Schema.Title)
	assert.Equal(t, []string{"job1"}, b.jobIDs)

	// re-save replaces the whole schema
	_, err = svc.Save(ctx, "job1", assessment.NewSchema("Replaced"))
	require.NoError(t, err)
	assert.Equal(t, "Replaced", assessments.stored["job1"].Schema.Title)
}

func TestValidateUsesPrunedAnswers(t *testing.T) {
	svc, _, _, _ := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	// q2's stale answer is pruned before validation, so its max-length
	// violation is invisible once q1 flips to No
	res, err := svc.Validate(ctx, "job1", assessment.Answers{"q1": "No", "q2": "way too long"})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = svc.Validate(ctx, "job1", assessment.Answers{"q1": "Yes"})
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "q2", res.Issues[0].QuestionID)
}

func TestSubmitRejectsInvalidAnswers(t *testing.T) {
	svc, _, submissions, draftCache := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	// seed a draft that must survive the failed submit
	svc.drafts.Save("job1", "cand1", assessment.Answers{"q1": "Yes"})

	_, err = svc.Submit(ctx, "job1", "cand1", assessment.Answers{"q1": "Yes"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "q2", verr.Issues[0].QuestionID)
	assert.Equal(t, "Required", verr.Issues[0].Message)

	assert.Empty(t, submissions.created)
	draft, err := svc.drafts.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.NotEmpty(t, draft, "draft untouched by validation failure")
	_ = draftCache
}

func TestSubmitStoresPrunedAnswersAndClearsDraft(t *testing.T) {
	svc, _, submissions, _ := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	svc.drafts.Save("job1", "cand1", assessment.Answers{"q1": "No"})

	sub, err := svc.Submit(ctx, "job1", "cand1", assessment.Answers{"q1": "No", "q2": "stale"})
	require.NoError(t, err)
	assert.Equal(t, assessment.Answers{"q1": "No"}, sub.Answers, "hidden answer pruned")

	require.Len(t, submissions.created, 1)
	draft, err := svc.drafts.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.Empty(t, draft, "draft cleared after successful submission")
}

func TestSubmitSurfacesStorageFailure(t *testing.T) {
	svc, _, submissions, _ := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)
	submissions.createErr = errors.New("mongo down")

	svc.drafts.Save("job1", "cand1", assessment.Answers{"q1": "No"})

	_, err = svc.Submit(ctx, "job1", "cand1", assessment.Answers{"q1": "No"})
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "transient I/O failure is not a validation failure")

	draft, err := svc.drafts.Load(ctx, "job1", "cand1")
	require.NoError(t, err)
	assert.NotEmpty(t, draft, "draft preserved on transient failure")
}

func TestSubmissionsListedByJob(t *testing.T) {
	svc, _, _, _ := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "job1", "cand1", assessment.Answers{"q1": "No"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "job1", "cand2", assessment.Answers{"q1": "Yes", "q2": "abc"})
	require.NoError(t, err)

	subs, err := svc.Submissions(ctx, "job1", "")
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	subs, err = svc.Submissions(ctx, "job1", "cand2")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "cand2", subs[0].CandidateID)
}

func TestDeleteAssessmentFallsBackToDefault(t *testing.T) {
	svc, _, _, _ := newTestAssessmentService()
	ctx := context.Background()
	_, err := svc.Save(ctx, "job1", gatedSchema())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "job1"))

	a, err := svc.Get(ctx, "job1")
	require.NoError(t, err)
	assert.Equal(t, "New Assessment", a.Schema.Title)
	assert.Empty(t, a.Schema.Sections)
}
