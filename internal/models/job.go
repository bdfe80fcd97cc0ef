package models

import (
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"strings"
)

// JobStatus is the lifecycle state of a job posting. Jobs are never hard
// deleted; archiving is the delete operation.
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

// Job represents a job posting in the pipeline.
type Job struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Company     string      `json:"company,omitempty"`
	Status      JobStatus   `json:"status"`
	Tags        StringArray `json:"tags"`
	Order       int         `json:"order"`
	CreatedAt   Millis      `json:"createdAt"`
	UpdatedAt   Millis      `json:"updatedAt"`
}

// StringArray is a string slice stored as a JSON column.
type StringArray []string

// Value implements driver.Valuer for database storage.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval.
func (a *StringArray) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		*a = nil
		return nil
	}
}

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugWhitespace  = regexp.MustCompile(`\s+`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts free text into a URL-safe slug: lowercase, alphanumerics
// and hyphens only, runs of whitespace and hyphens collapsed.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
