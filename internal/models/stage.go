package models

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageApplied    Stage = "applied"
	StageScreening  Stage = "screening"
	StageInterview  Stage = "interview"
	StageAssessment Stage = "assessment"
	StageOffer      Stage = "offer"
	StageHired      Stage = "hired"
	StageRejected   Stage = "rejected"
)

// StageOrder is the canonical pipeline ordering. A stage's index here is the
// statusNumber carried in timeline event metadata.
var StageOrder = []Stage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageAssessment,
	StageOffer,
	StageHired,
	StageRejected,
}

// Valid reports whether s is one of the seven pipeline stages.
func (s Stage) Valid() bool {
	for _, stage := range StageOrder {
		if s == stage {
			return true
		}
	}
	return false
}

// StatusNumber returns the position of a stage in the canonical ordering.
// Empty stages map to -1; unrecognized non-empty values map to the
// penultimate position, matching the historical behavior of the tracker.
func StatusNumber(s Stage) int {
	if s == "" {
		return -1
	}
	for i, stage := range StageOrder {
		if s == stage {
			return i
		}
	}
	return len(StageOrder) - 2
}
