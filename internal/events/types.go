// Package events publishes record mutation events to Redis Streams so other
// tooling (analytics, sync jobs) can follow pipeline activity.
package events

import (
	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/models"
)

// StreamName is the Redis stream mutation events land on.
const StreamName = "hirepipe-events"

// EventType represents a record mutation.
type EventType string

const (
	JobCreated     EventType = "JOB_CREATED"
	JobUpdated     EventType = "JOB_UPDATED"
	JobsReordered  EventType = "JOBS_REORDERED"
	CandidateNew   EventType = "CANDIDATE_CREATED"
	CandidateMoved EventType = "CANDIDATE_UPDATED"
	AssessmentSave EventType = "ASSESSMENT_SAVED"
	Submission     EventType = "ASSESSMENT_SUBMITTED"
	StoreReseeded  EventType = "STORE_RESEEDED"
)

// Event is the envelope for all mutation events.
type Event struct {
	EventID   uuid.UUID     `json:"event_id"`
	EventType EventType     `json:"event_type"`
	RecordID  string        `json:"record_id,omitempty"`
	Timestamp models.Millis `json:"timestamp"`
	Payload   any           `json:"payload,omitempty"`
}

// ReorderPayload accompanies JOBS_REORDERED events.
type ReorderPayload struct {
	JobID     string `json:"job_id"`
	FromOrder int    `json:"from_order"`
	ToOrder   int    `json:"to_order"`
}

// StageChangePayload accompanies CANDIDATE_UPDATED events that move the
// candidate between stages.
type StageChangePayload struct {
	FromStage models.Stage `json:"from_stage,omitempty"`
	ToStage   models.Stage `json:"to_stage"`
}
