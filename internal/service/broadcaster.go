package service

import "talentflow/internal/assessment"

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	AssessmentSaved(jobID string, schema assessment.Schema)
}
