package model

import (
	"fmt"
	"time"

	"talentflow/internal/assessment"
)

// Assessment binds one schema to one job. One assessment per job; saving
// replaces the whole schema (upsert semantics).
type Assessment struct {
	JobID     string            `json:"jobId" bson:"_id"`
	Schema    assessment.Schema `json:"schema" bson:"schema"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Draft is an unsubmitted, auto-saved answer set for one candidate on one
// job's assessment. One draft per (job, candidate) pair, fully overwritten
// on every save and deleted after a successful submission.
type Draft struct {
	Key         string             `json:"key"`
	JobID       string             `json:"jobId"`
	CandidateID string             `json:"candidateId"`
	Answers     assessment.Answers `json:"answers"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DraftKey is the composite identity of a draft.
func DraftKey(jobID, candidateID string) string {
	return fmt.Sprintf("%s:%s", jobID, candidateID)
}

// Submission is the authoritative record of one completed assessment run.
// Append-only, created once per attempt that passes validation.
type Submission struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	JobID       string             `json:"jobId" bson:"jobId"`
	CandidateID string             `json:"candidateId" bson:"candidateId"`
	SubmittedAt time.Time          `json:"submittedAt" bson:"submittedAt"`
	Answers     assessment.Answers `json:"answers" bson:"answers"`
}
