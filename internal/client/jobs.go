package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hirepipe/hirepipe/internal/models"
)

// JobFilters narrows ListJobs. Zero values are omitted from the query; a
// status of "all" is treated as unset.
type JobFilters struct {
	Search string
	Status string
	Tags   []string
	Sort   string
}

// JobPage is one page of the jobs board.
type JobPage struct {
	Jobs     []models.Job `json:"jobs"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
}

// ListJobs fetches a page of jobs. page and pageSize of 0 take the server
// defaults.
func (c *Client) ListJobs(ctx context.Context, filters JobFilters, page, pageSize int) (*JobPage, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Status != "" && filters.Status != "all" {
		query.Set("status", filters.Status)
	}
	if len(filters.Tags) > 0 {
		query.Set("tags", strings.Join(filters.Tags, ","))
	}
	if filters.Sort != "" {
		query.Set("sort", filters.Sort)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	var result JobPage
	if err := c.get(ctx, "/api/jobs", query, &result); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return &result, nil
}

// GetJob fetches a job by id. An unknown id returns (nil, nil).
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.get(ctx, "/api/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		if filtered := notFoundAsNil(err); filtered == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// GetJobBySlug resolves a job through the slug filter on the list endpoint.
// An unknown slug returns (nil, nil).
func (c *Client) GetJobBySlug(ctx context.Context, slug string) (*models.Job, error) {
	query := url.Values{}
	query.Set("slug", slug)
	query.Set("pageSize", "1")

	var result JobPage
	if err := c.get(ctx, "/api/jobs", query, &result); err != nil {
		return nil, fmt.Errorf("get job by slug: %w", err)
	}
	if len(result.Jobs) == 0 {
		return nil, nil
	}
	return &result.Jobs[0], nil
}

// NewJob is the creation payload. The server assigns id and timestamps.
type NewJob struct {
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Company     string             `json:"company"`
	Status      models.JobStatus   `json:"status"`
	Tags        models.StringArray `json:"tags"`
	Order       int                `json:"order"`
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, job NewJob) (*models.Job, error) {
	var created models.Job
	if err := c.send(ctx, "POST", "/api/jobs", job, &created); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return &created, nil
}

// JobUpdate carries the fields to merge; nil fields are left untouched.
type JobUpdate struct {
	Title       *string             `json:"title,omitempty"`
	Slug        *string             `json:"slug,omitempty"`
	Description *string             `json:"description,omitempty"`
	Company     *string             `json:"company,omitempty"`
	Status      *models.JobStatus   `json:"status,omitempty"`
	Tags        *models.StringArray `json:"tags,omitempty"`
}

// UpdateJob patches a job and returns the merged record.
func (c *Client) UpdateJob(ctx context.Context, id string, update JobUpdate) (*models.Job, error) {
	var updated models.Job
	if err := c.send(ctx, "PATCH", "/api/jobs/"+url.PathEscape(id), update, &updated); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return &updated, nil
}

// ReorderJob moves a job between board positions.
func (c *Client) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) error {
	body := map[string]int{"fromOrder": fromOrder, "toOrder": toOrder}
	if err := c.send(ctx, "PATCH", "/api/jobs/"+url.PathEscape(id)+"/reorder", body, nil); err != nil {
		return fmt.Errorf("reorder job: %w", err)
	}
	return nil
}

// DeleteJob archives a job. Jobs are never hard deleted.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	status := models.JobStatusArchived
	if _, err := c.UpdateJob(ctx, id, JobUpdate{Status: &status}); err != nil {
		return fmt.Errorf("archive job: %w", err)
	}
	return nil
}
