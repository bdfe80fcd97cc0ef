package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/models"
)

// listAllPageSize fetches the whole collection in one page when the caller
// does not paginate, matching what the board UI has always requested.
const listAllPageSize = 1000

// CandidateView is the wire shape of a listed candidate: the stored record
// plus the currentStage alias.
type CandidateView struct {
	models.Candidate
	CurrentStage models.Stage `json:"currentStage"`
}

// CandidateFilters narrows ListCandidates. A stage of "all" is treated as
// unset.
type CandidateFilters struct {
	Search  string
	Stage   string
	JobID   string
	Company string
}

// CandidatePage is one page of candidates.
type CandidatePage struct {
	Candidates []CandidateView `json:"candidates"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
}

// ListCandidates fetches candidates. page and pageSize of 0 fetch the whole
// collection in one request.
func (c *Client) ListCandidates(ctx context.Context, filters CandidateFilters, page, pageSize int) (*CandidatePage, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Stage != "" && filters.Stage != "all" {
		query.Set("stage", filters.Stage)
	}
	if filters.JobID != "" {
		query.Set("jobId", filters.JobID)
	}
	if filters.Company != "" {
		query.Set("company", filters.Company)
	}
	if page <= 0 {
		page = 1
		pageSize = listAllPageSize
	}
	query.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var result CandidatePage
	if err := c.get(ctx, "/api/candidates", query, &result); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return &result, nil
}

// NewCandidate is the creation payload. The server assigns the id and the
// application timestamp.
type NewCandidate struct {
	Name     string       `json:"name"`
	Stage    models.Stage `json:"stage"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Company  string       `json:"company,omitempty"`
	JobTitle string       `json:"jobTitle,omitempty"`
	JobID    string       `json:"jobId,omitempty"`
}

// CreateCandidate posts a new candidate.
func (c *Client) CreateCandidate(ctx context.Context, candidate NewCandidate) (*CandidateView, error) {
	var created CandidateView
	if err := c.send(ctx, "POST", "/api/candidates", candidate, &created); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return &created, nil
}

// StatusHistoryEntry is one pipeline step in a candidate detail.
type StatusHistoryEntry struct {
	ID           string        `json:"id"`
	Stage        models.Stage  `json:"stage"`
	Timestamp    models.Millis `json:"timestamp"`
	Note         string        `json:"note,omitempty"`
	StatusNumber *int          `json:"statusNumber,omitempty"`
}

// CandidateDetail is the full candidate view: the record, its notes, and
// the pipeline history projected from timeline events.
type CandidateDetail struct {
	CandidateView
	Notes         []models.Note        `json:"notes"`
	StatusHistory []StatusHistoryEntry `json:"statusHistory"`
}

// GetCandidate fetches a candidate's detail view. An unknown id returns
// (nil, nil).
func (c *Client) GetCandidate(ctx context.Context, id string) (*CandidateDetail, error) {
	var detail CandidateDetail
	if err := c.get(ctx, "/api/candidates/"+url.PathEscape(id), nil, &detail); err != nil {
		if filtered := notFoundAsNil(err); filtered == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return &detail, nil
}

// CandidateUpdate carries the fields to merge; nil fields are left
// untouched.
type CandidateUpdate struct {
	Name     *string       `json:"name,omitempty"`
	Email    *string       `json:"email,omitempty"`
	Phone    *string       `json:"phone,omitempty"`
	Company  *string       `json:"company,omitempty"`
	JobTitle *string       `json:"jobTitle,omitempty"`
	Stage    *models.Stage `json:"stage,omitempty"`
	JobID    *string       `json:"jobId,omitempty"`
	Notes    []models.Note `json:"notes,omitempty"`
}

// UpdateCandidate patches a candidate and returns the merged view.
func (c *Client) UpdateCandidate(ctx context.Context, id string, update CandidateUpdate) (*CandidateView, error) {
	var updated CandidateView
	if err := c.send(ctx, "PATCH", "/api/candidates/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, fmt.Errorf("update candidate: %w", err)
	}
	return &updated, nil
}

// MoveCandidate is the board drag operation: a stage-only patch.
func (c *Client) MoveCandidate(ctx context.Context, id string, stage models.Stage) (*CandidateView, error) {
	return c.UpdateCandidate(ctx, id, CandidateUpdate{Stage: &stage})
}

// AddNote appends a note to a candidate. The id and timestamp are assigned
// here and @handle mentions are extracted from the content, then the note
// rides a candidate patch the same way the UI has always submitted them.
func (c *Client) AddNote(ctx context.Context, candidateID, content, createdBy string) (*models.Note, error) {
	detail, err := c.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("add note: candidate %s not found", candidateID)
	}

	note := models.Note{
		ID:          uuid.New().String(),
		CandidateID: candidateID,
		Content:     content,
		Mentions:    models.ExtractMentions(content),
		CreatedAt:   models.NowMillis(),
		CreatedBy:   createdBy,
	}

	notes := append(detail.Notes, note)
	if _, err := c.UpdateCandidate(ctx, candidateID, CandidateUpdate{Notes: notes}); err != nil {
		return nil, fmt.Errorf("add note: %w", err)
	}
	return &note, nil
}

// TimelineEntry is one activity feed row.
type TimelineEntry struct {
	ID        string         `json:"id"`
	Stage     *string        `json:"stage"`
	Timestamp models.Millis  `json:"timestamp"`
	Note      string         `json:"note,omitempty"`
	Metadata  map[string]any `json:"metadata"`
}

// Timeline fetches a candidate's activity feed. A candidate with no events
// comes back with a single synthetic application entry.
func (c *Client) Timeline(ctx context.Context, id string) ([]TimelineEntry, error) {
	var resp struct {
		CandidateID string          `json:"candidateId"`
		Timeline    []TimelineEntry `json:"timeline"`
	}
	if err := c.get(ctx, "/api/candidates/"+url.PathEscape(id)+"/timeline", nil, &resp); err != nil {
		return nil, fmt.Errorf("get timeline: %w", err)
	}
	return resp.Timeline, nil
}
