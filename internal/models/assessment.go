package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionType enumerates the answerable controls an assessment may use.
type QuestionType string

const (
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file-upload"
)

// QuestionOption is a selectable answer for choice questions. Option values
// should be unique within a question for response matching; the store does
// not enforce it.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ValidationRule constrains an answer.
type ValidationRule struct {
	Required  bool `json:"required,omitempty"`
	MinLength int  `json:"minLength,omitempty"`
	MaxLength int  `json:"maxLength,omitempty"`
	Min       *int `json:"min,omitempty"`
	Max       *int `json:"max,omitempty"`
}

// ConditionalLogic shows a question only when another question's answer
// matches. The referenced question should come earlier in the section;
// only the builder UI enforces that.
type ConditionalLogic struct {
	DependsOn string `json:"dependsOn"`
	Operator  string `json:"operator"` // equals, not-equals, contains
	Value     any    `json:"value"`
}

// Question is a single prompt inside an assessment section.
type Question struct {
	ID          string            `json:"id"`
	Type        QuestionType      `json:"type"`
	Label       string            `json:"label"`
	HelpText    string            `json:"helpText,omitempty"`
	Options     []QuestionOption  `json:"options,omitempty"`
	Validation  *ValidationRule   `json:"validation,omitempty"`
	Conditional *ConditionalLogic `json:"conditional,omitempty"`
	Order       int               `json:"order"`
}

// AssessmentSection groups questions under a heading.
type AssessmentSection struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	Order       int        `json:"order"`
}

// SectionList is the ordered section document stored as a JSON column.
type SectionList []AssessmentSection

// Value implements driver.Valuer for database storage.
func (s SectionList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval.
func (s *SectionList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("scan sections: unsupported type %T", value)
	}
}

// Assessment is the per-job questionnaire. Storage permits several rows per
// job but the read path only ever serves the first.
type Assessment struct {
	ID          string      `json:"id"`
	JobID       string      `json:"jobId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Sections    SectionList `json:"sections"`
	CreatedAt   Millis      `json:"createdAt"`
	UpdatedAt   Millis      `json:"updatedAt"`
}

// ResponseMap holds submitted answers. The original clients send either a
// map keyed by question id or an array of answer objects; both are kept
// verbatim as a JSON document.
type ResponseMap = json.RawMessage

// Submission is a completed (or in-progress) assessment response.
type Submission struct {
	ID           string      `json:"id"`
	AssessmentID string      `json:"assessmentId"`
	CandidateID  string      `json:"candidateId,omitempty"`
	Responses    ResponseMap `json:"responses"`
	SubmittedAt  *Millis     `json:"submittedAt,omitempty"`
	CompletedAt  *Millis     `json:"completedAt,omitempty"`
	CreatedAt    Millis      `json:"createdAt"`
}
