package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/hirepipe/hirepipe/internal/models"
)

// GetAssessment fetches the assessment attached to a job. A job without one
// returns (nil, nil): the server answers those with a 200 null body.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	var assessment *models.Assessment
	if err := c.get(ctx, "/api/assessments/"+url.PathEscape(jobID), nil, &assessment); err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return assessment, nil
}

// AssessmentDraft is the upsert payload for SaveAssessment.
type AssessmentDraft struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Sections    models.SectionList `json:"sections,omitempty"`
}

// SaveAssessment upserts the assessment for a job and returns the stored
// record.
func (c *Client) SaveAssessment(ctx context.Context, jobID string, draft AssessmentDraft) (*models.Assessment, error) {
	var saved models.Assessment
	if err := c.send(ctx, "PUT", "/api/assessments/"+url.PathEscape(jobID), draft, &saved); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return &saved, nil
}

// SubmitAssessment records a candidate's answers against a job's
// assessment. responses must marshal to a JSON array.
func (c *Client) SubmitAssessment(ctx context.Context, jobID, candidateID string, responses any) (*models.Submission, error) {
	encoded, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("submit assessment: marshal responses: %w", err)
	}

	body := map[string]any{
		"candidateId": candidateID,
		"responses":   json.RawMessage(encoded),
	}

	var submission models.Submission
	if err := c.send(ctx, "POST", "/api/assessments/"+url.PathEscape(jobID)+"/submit", body, &submission); err != nil {
		return nil, fmt.Errorf("submit assessment: %w", err)
	}
	return &submission, nil
}
