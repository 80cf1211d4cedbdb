package service

import (
	"context"
	"fmt"

	"talentflow/internal/assessment"
	"talentflow/internal/model"
	"talentflow/internal/repository"
)

// ValidationError carries the ordered issue list for a failed submission.
// It is a user-facing outcome, not a transport failure: the caller's draft
// is left untouched.
type ValidationError struct {
	Issues []assessment.Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s — %s", e.Issues[0].QuestionID, e.Issues[0].Message)
}

// AssessmentService handles schema load/save, answer validation and
// submission. Builder preview, candidate runtime and the submit path all
// go through the same evaluator and validator in internal/assessment.
type AssessmentService struct {
	assessments repository.AssessmentRepo
	submissions repository.SubmissionRepo
	drafts      *DraftService
	broadcaster Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	assessments repository.AssessmentRepo,
	submissions repository.SubmissionRepo,
	drafts *DraftService,
) *AssessmentService {
	return &AssessmentService{
		assessments: assessments,
		submissions: submissions,
		drafts:      drafts,
	}
}

// SetBroadcaster sets the broadcaster for builder preview events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Get returns the assessment for a job, or a default empty schema when
// none has been saved yet. A missing assessment is not an error.
func (s *AssessmentService) Get(ctx context.Context, jobID string) (*model.Assessment, error) {
	a, err := s.assessments.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return &model.Assessment{
			JobID:  jobID,
			Schema: assessment.NewSchema("New Assessment"),
		}, nil
	}
	return a, nil
}

// Save upserts the whole schema for a job and notifies connected preview
// clients.
func (s *AssessmentService) Save(ctx context.Context, jobID string, schema assessment.Schema) (*model.Assessment, error) {
	a := &model.Assessment{JobID: jobID, Schema: schema}
	if err := s.assessments.Put(ctx, a); err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.AssessmentSaved(jobID, schema)
	}
	return a, nil
}

// Validate checks answers against the job's current schema without
// persisting anything. Used by the builder preview and by the runtime
// pre-flight before submit.
func (s *AssessmentService) Validate(ctx context.Context, jobID string, answers assessment.Answers) (assessment.Result, error) {
	a, err := s.Get(ctx, jobID)
	if err != nil {
		return assessment.Result{}, err
	}
	pruned := assessment.PruneHidden(a.Schema, answers)
	return assessment.Compile(a.Schema).Check(pruned), nil
}

// Submit validates and records one completed run. Hidden answers are
// pruned before validation, so an invisible required question can never
// block submission and a stale hidden value is never stored. On success
// the pair's draft is cleared, after cancelling any pending autosave.
func (s *AssessmentService) Submit(ctx context.Context, jobID, candidateID string, answers assessment.Answers) (*model.Submission, error) {
	a, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	pruned := assessment.PruneHidden(a.Schema, answers)
	if res := assessment.Compile(a.Schema).Check(pruned); !res.Valid {
		return nil, &ValidationError{Issues: res.Issues}
	}

	sub := &model.Submission{
		JobID:       jobID,
		CandidateID: candidateID,
		Answers:     pruned,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.drafts.Clear(ctx, jobID, candidateID); err != nil {
		// the submission is already recorded; a leftover draft expires on
		// its own TTL
		return sub, nil
	}
	return sub, nil
}

// Submissions lists the recorded runs for a job, newest first. A
// non-empty candidateID narrows the listing to that candidate's runs.
func (s *AssessmentService) Submissions(ctx context.Context, jobID, candidateID string) ([]*model.Submission, error) {
	if candidateID != "" {
		return s.submissions.GetByCandidate(ctx, jobID, candidateID)
	}
	return s.submissions.GetByJobID(ctx, jobID)
}

// Delete removes a job's assessment. Reads after this fall back to the
// default empty schema.
func (s *AssessmentService) Delete(ctx context.Context, jobID string) error {
	return s.assessments.Delete(ctx, jobID)
}
