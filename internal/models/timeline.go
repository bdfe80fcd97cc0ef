package models

import (
	"encoding/json"
	"fmt"
)

// EventType classifies timeline events.
type EventType string

const (
	EventStageChange         EventType = "stage_change"
	EventNoteAdded           EventType = "note_added"
	EventAssessmentCompleted EventType = "assessment_completed"
	EventInterviewScheduled  EventType = "interview_scheduled"
)

// EventMetadata is the typed payload of a timeline event. Each event type
// carries its own metadata shape; all of them serialize to the same flat
// JSON object the tracker's clients have always consumed.
type EventMetadata interface {
	// ResultingStage returns the stage the event lands the candidate in,
	// or "" when the event does not move the candidate.
	ResultingStage() Stage
}

// StageChangeMeta accompanies stage_change events.
type StageChangeMeta struct {
	FromStage    *Stage `json:"fromStage"`
	ToStage      Stage  `json:"toStage"`
	StatusNumber int    `json:"statusNumber"`
}

func (m StageChangeMeta) ResultingStage() Stage { return m.ToStage }

// NewStageChangeMeta builds stage_change metadata with the statusNumber
// derived from the destination stage's canonical position.
func NewStageChangeMeta(from *Stage, to Stage) StageChangeMeta {
	return StageChangeMeta{
		FromStage:    from,
		ToStage:      to,
		StatusNumber: StatusNumber(to),
	}
}

// InterviewScheduledMeta accompanies interview_scheduled events.
type InterviewScheduledMeta struct {
	Interviewer  string `json:"interviewer"`
	StatusNumber int    `json:"statusNumber"`
}

func (m InterviewScheduledMeta) ResultingStage() Stage { return "" }

// NewInterviewScheduledMeta builds interview_scheduled metadata. Scheduling
// an interview does not itself move the candidate, so the statusNumber is
// the unset marker.
func NewInterviewScheduledMeta(interviewer string) InterviewScheduledMeta {
	return InterviewScheduledMeta{
		Interviewer:  interviewer,
		StatusNumber: StatusNumber(""),
	}
}

// AssessmentCompletedMeta accompanies assessment_completed events.
type AssessmentCompletedMeta struct {
	Score        int   `json:"score"`
	ToStage      Stage `json:"toStage,omitempty"`
	StatusNumber int   `json:"statusNumber"`
}

func (m AssessmentCompletedMeta) ResultingStage() Stage { return m.ToStage }

// NewAssessmentCompletedMeta builds assessment_completed metadata.
func NewAssessmentCompletedMeta(score int, to Stage) AssessmentCompletedMeta {
	return AssessmentCompletedMeta{
		Score:        score,
		ToStage:      to,
		StatusNumber: StatusNumber(to),
	}
}

// NoteAddedMeta accompanies note_added events.
type NoteAddedMeta struct {
	NoteID       string `json:"noteId,omitempty"`
	StatusNumber int    `json:"statusNumber"`
}

func (m NoteAddedMeta) ResultingStage() Stage { return "" }

// TimelineEvent is an append-only record of something happening to a
// candidate. Events are never mutated or deleted, and within a candidate
// they are always read back sorted ascending by timestamp.
type TimelineEvent struct {
	ID          string        `json:"id"`
	CandidateID string        `json:"candidateId"`
	Type        EventType     `json:"type"`
	Description string        `json:"description"`
	Timestamp   Millis        `json:"timestamp"`
	Metadata    EventMetadata `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes the metadata into the typed shape selected by the
// event type.
func (e *TimelineEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		CandidateID string          `json:"candidateId"`
		Type        EventType       `json:"type"`
		Description string          `json:"description"`
		Timestamp   Millis          `json:"timestamp"`
		Metadata    json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.ID = raw.ID
	e.CandidateID = raw.CandidateID
	e.Type = raw.Type
	e.Description = raw.Description
	e.Timestamp = raw.Timestamp

	meta, err := DecodeEventMetadata(raw.Type, raw.Metadata)
	if err != nil {
		return err
	}
	e.Metadata = meta
	return nil
}

// DecodeEventMetadata unmarshals a metadata payload into the typed shape
// for the given event type. Empty payloads yield nil metadata.
func DecodeEventMetadata(t EventType, data []byte) (EventMetadata, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	switch t {
	case EventStageChange:
		var m StageChangeMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode stage_change metadata: %w", err)
		}
		return m, nil
	case EventInterviewScheduled:
		var m InterviewScheduledMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode interview_scheduled metadata: %w", err)
		}
		return m, nil
	case EventAssessmentCompleted:
		var m AssessmentCompletedMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode assessment_completed metadata: %w", err)
		}
		return m, nil
	case EventNoteAdded:
		var m NoteAddedMeta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode note_added metadata: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", t)
	}
}
