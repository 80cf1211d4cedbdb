package model

import "time"

// Stage is a candidate's position in the pipeline
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists the pipeline in board order.
var Stages = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// Candidate is one applicant attached to a job.
type Candidate struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Stage     Stage     `json:"stage" bson:"stage"`
	JobID     string    `json:"jobId" bson:"jobId"`
	City      string    `json:"city,omitempty" bson:"city,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// TimelineEvent records one change on a candidate, newest first when listed.
type TimelineEvent struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	CandidateID string         `json:"candidateId" bson:"candidateId"`
	At          time.Time      `json:"at" bson:"at"`
	Type        string         `json:"type" bson:"type"`
	Payload     map[string]any `json:"payload" bson:"payload"`
}
