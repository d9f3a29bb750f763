package record_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/record"
)

func floatPtr(f float64) *float64 { return &f }

func TestAccessorDefaultsWithoutMeta(t *testing.T) {
	r := &record.Record{ID: "c1"}

	assert.Equal(t, "unknown", r.Domain())
	assert.Equal(t, "other", r.SubDomain())
	assert.Equal(t, "unknown", r.ConversationType())
	assert.Equal(t, "unknown", r.Flow())
	assert.Equal(t, "neutral", r.Mood())
	assert.Equal(t, "casual", r.Tone())
	assert.Equal(t, "unknown", r.Outcome())
	assert.Equal(t, "user_learning", r.Direction())
	assert.Equal(t, "unknown", r.PrimaryModel())
	assert.Equal(t, 0, r.TotalMessages())

	_, ok := r.Score("urgency_score")
	assert.False(t, ok, "absent score must be excluded, not zero")
}

func TestScoreLookupByFieldName(t *testing.T) {
	score := 87
	r := &record.Record{LLMMeta: &record.LLMMeta{ComplexityScore: &score}}

	got, ok := r.Score("complexity_score")
	require.True(t, ok)
	assert.Equal(t, 87, got)

	_, ok = r.Score("information_density")
	assert.False(t, ok)
}

func TestCreatedTimeFallsBackToNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := &record.Record{}
	assert.Equal(t, now, r.CreatedTime(now))

	r = &record.Record{Timestamps: record.Timestamps{CreatedAt: "not-a-date"}}
	assert.Equal(t, now, r.CreatedTime(now))

	r = &record.Record{Timestamps: record.Timestamps{CreatedAt: "2025-03-04T05:06:07Z"}}
	assert.Equal(t, time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), r.CreatedTime(now))

	// Naive timestamps (no zone suffix) are what the unroll stage writes.
	r = &record.Record{Timestamps: record.Timestamps{CreatedAt: "2025-03-04T05:06:07.123456"}}
	assert.Equal(t, 2025, r.CreatedTime(now).Year())
	assert.Equal(t, 5, r.CreatedTime(now).Hour())
}

func TestUserMessagesOrderedByTime(t *testing.T) {
	r := &record.Record{
		Mapping: map[string]record.Node{
			"n2": {Message: &record.Message{
				Author:     record.Author{Role: "user"},
				CreateTime: floatPtr(200),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("second message here")}},
			}},
			"n1": {Message: &record.Message{
				Author:     record.Author{Role: "user"},
				CreateTime: floatPtr(100),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("first prompt")}},
			}},
			"n3": {Message: &record.Message{
				Author:     record.Author{Role: "assistant"},
				CreateTime: floatPtr(150),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("a reply with four words")}},
			}},
			"n4": {Message: &record.Message{
				Author:     record.Author{Role: "user"},
				CreateTime: floatPtr(300),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("   ")}},
			}},
		},
	}

	users := r.UserMessages()
	require.Len(t, users, 2, "blank parts are skipped")
	assert.Equal(t, "first prompt", users[0].Text)
	assert.Equal(t, 2, users[0].WordCount)
	assert.Equal(t, "second message here", users[1].Text)

	assistants := r.AssistantMessages()
	require.Len(t, assistants, 1)
	assert.Equal(t, 5, assistants[0].WordCount)
	assert.Equal(t, 5, record.TotalWords(assistants))
}

func TestPartDecodesStringsAndObjects(t *testing.T) {
	var content record.Content
	raw := `{"content_type":"text","parts":["hello there",{"content_type":"audio_transcription","text":"spoken words"},null]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &content))

	require.Len(t, content.Parts, 3)
	assert.True(t, content.Parts[0].IsText())
	assert.Equal(t, "hello there", content.Parts[0].Text)
	assert.False(t, content.Parts[1].IsText())
	assert.Equal(t, "audio_transcription", content.Parts[1].ContentType)
	assert.Equal(t, "spoken words", content.Parts[1].Text)
}

func TestRecordRoundTripKeepsScorePointers(t *testing.T) {
	raw := `{
		"id": "abc",
		"title": "Sorting out a build failure",
		"timestamps": {"created_at": "2025-02-03T10:00:00Z"},
		"meta": {"total_messages": 6, "messages_by_role": {"user": 3, "assistant": 3},
			"total_tokens": 900, "user_tokens": 300, "assistant_tokens": 600,
			"duration_seconds": null, "duration_human": null,
			"word_count": 640, "has_images": false, "has_audio": false,
			"image_count": 0, "audio_count": 0, "is_voice_conversation": false,
			"primary_model": "gpt-4o"},
		"llm_meta": {"domain": "problem_solving", "urgency_score": 0},
		"mapping": {}
	}`

	var r record.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "gpt-4o", r.PrimaryModel())
	assert.Equal(t, "problem_solving", r.Domain())

	// An explicit zero score is a real sample.
	got, ok := r.Score("urgency_score")
	require.True(t, ok)
	assert.Equal(t, 0, got)
}
