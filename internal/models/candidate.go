package models

import "regexp"

// Candidate represents an applicant moving through the pipeline.
//
// The stored record carries the stage under the single canonical `stage`
// field; the `currentStage` alias the UI consumes is computed at the API
// and client boundary, never stored.
type Candidate struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
	Stage     Stage  `json:"stage"`
	JobID     string `json:"jobId,omitempty"`
	AppliedAt Millis `json:"appliedAt"`
}

// Note is free-text commentary attached to a candidate. Notes are owned by
// exactly one candidate and have no standalone delete path.
type Note struct {
	ID          string      `json:"id"`
	CandidateID string      `json:"candidateId,omitempty"`
	Content     string      `json:"content"`
	Mentions    StringArray `json:"mentions"`
	CreatedAt   Millis      `json:"createdAt"`
	CreatedBy   string      `json:"createdBy"`
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions scans note content for @handle tokens. Extraction is the
// caller's responsibility; the store persists whatever it is given.
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]struct{}, len(matches))
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		mentions = append(mentions, m[1])
	}
	return mentions
}
