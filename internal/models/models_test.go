package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senior Backend Engineer", "senior-backend-engineer"},
		{"C++ Developer (Remote!)", "c-developer-remote"},
		{"  spaced   out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"Data Scientist - Acme - 3", "data-scientist-acme-3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestStatusNumber(t *testing.T) {
	assert.Equal(t, 0, StatusNumber(StageApplied))
	assert.Equal(t, 4, StatusNumber(StageOffer))
	assert.Equal(t, 6, StatusNumber(StageRejected))
	// Empty means "no stage movement".
	assert.Equal(t, -1, StatusNumber(""))
	// Unknown stages map to the second-to-last slot.
	assert.Equal(t, len(StageOrder)-2, StatusNumber(Stage("mystery")))
}

func TestMillisJSON(t *testing.T) {
	at := Millis(time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC))

	data, err := json.Marshal(at)
	require.NoError(t, err)
	assert.Equal(t, "1772712000000", string(data))

	var back Millis
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, at.Time().Equal(back.Time()))
}

func TestExtractMentions(t *testing.T) {
	mentions := ExtractMentions("ping @jane and @alex, then @jane again")
	assert.Equal(t, []string{"jane", "alex"}, mentions)

	assert.Empty(t, ExtractMentions("no handles here"))
}

func TestDecodeEventMetadata(t *testing.T) {
	from := StageApplied
	meta := NewStageChangeMeta(&from, StageInterview)

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	decoded, err := DecodeEventMetadata(EventStageChange, data)
	require.NoError(t, err)

	sc, ok := decoded.(StageChangeMeta)
	require.True(t, ok)
	require.NotNil(t, sc.FromStage)
	assert.Equal(t, StageApplied, *sc.FromStage)
	assert.Equal(t, StageInterview, sc.ToStage)
	assert.Equal(t, 2, sc.StatusNumber)
	assert.Equal(t, StageInterview, sc.ResultingStage())
}

func TestDecodeEventMetadata_Null(t *testing.T) {
	decoded, err := DecodeEventMetadata(EventStageChange, []byte("null"))
	require.NoError(t, err)
	assert.Nil(t, decoded)

	decoded, err = DecodeEventMetadata(EventNoteAdded, nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = DecodeEventMetadata(EventType("bogus"), []byte("{}"))
	assert.Error(t, err)
}

func TestTimelineEventJSONRoundTrip(t *testing.T) {
	event := TimelineEvent{
		ID:          "e1",
		CandidateID: "c1",
		Type:        EventAssessmentCompleted,
		Description: "Completed technical assessment",
		Timestamp:   NowMillis(),
		Metadata:    NewAssessmentCompletedMeta(85, StageOffer),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var back TimelineEvent
	require.NoError(t, json.Unmarshal(data, &back))

	meta, ok := back.Metadata.(AssessmentCompletedMeta)
	require.True(t, ok)
	assert.Equal(t, 85, meta.Score)
	assert.Equal(t, StageOffer, meta.ToStage)
}
