package unroll_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/logging"
	"chatwrapped/internal/record"
	"chatwrapped/internal/unroll"
)

// March 15 2025, 10:30 UTC
const fixtureCreateTime = 1742034600

func exportFixture(t *testing.T, conversations string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte(conversations), 0o644))
	return path
}

func TestRunSplitsIntoMonthFolders(t *testing.T) {
	input := exportFixture(t, `[
		{
			"id": "conv-1",
			"title": "Fixing a flaky test",
			"create_time": 1742034600,
			"update_time": 1742034900,
			"default_model_slug": "gpt-4o",
			"mapping": {
				"n1": {"message": {"author": {"role": "user"}, "create_time": 1742034600,
					"content": {"content_type": "text", "parts": ["why does this test fail sometimes"]}}},
				"n2": {"message": {"author": {"role": "assistant"}, "create_time": 1742034660,
					"content": {"content_type": "text", "parts": ["because of shared state between runs"]},
					"metadata": {"model_slug": "gpt-4o"}}},
				"n3": {"message": {"author": {"role": "system"},
					"content": {"content_type": "text", "parts": ["hidden prelude"]},
					"metadata": {"is_visually_hidden_from_conversation": true}}}
			}
		},
		{"id": "undated", "title": "no timestamp", "mapping": {}}
	]`)
	out := t.TempDir()

	result, err := unroll.Run(input, out, logging.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, map[string]int{"03-2025": 1}, result.PerMonth)

	data, err := os.ReadFile(filepath.Join(out, "03-2025", "conv-1.json"))
	require.NoError(t, err)

	var rec record.Record
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.Equal(t, "conv-1", rec.ID)
	assert.Equal(t, 2, rec.Meta.TotalMessages, "hidden messages do not count")
	assert.Equal(t, map[string]int{"user": 1, "assistant": 1}, rec.Meta.MessagesByRole)
	assert.Equal(t, 12, rec.Meta.WordCount)
	// 33 chars / 4 and 36 chars / 4.
	assert.Equal(t, 8, rec.Meta.UserTokens)
	assert.Equal(t, 9, rec.Meta.AssistantTokens)
	assert.Equal(t, []string{"gpt-4o"}, rec.Meta.ModelsUsed)
	assert.Equal(t, "gpt-4o", rec.Meta.PrimaryModel)
	require.NotNil(t, rec.Meta.DurationSeconds)
	assert.Equal(t, 60.0, *rec.Meta.DurationSeconds)
	require.NotNil(t, rec.Meta.DurationHuman)
	assert.Equal(t, "1m 0s", *rec.Meta.DurationHuman)
	assert.Equal(t, "2025-03-15T10:30:00", rec.Timestamps.CreatedAt)

	// The mapping round-trips: hidden node is still present in the file.
	assert.Len(t, rec.Mapping, 3)
}

func TestRunSuffixesDuplicateIDs(t *testing.T) {
	input := exportFixture(t, `[
		{"id": "dup", "create_time": 1742034600, "mapping": {}},
		{"id": "dup", "create_time": 1742034700, "mapping": {}}
	]`)
	out := t.TempDir()

	result, err := unroll.Run(input, out, logging.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)

	assert.FileExists(t, filepath.Join(out, "03-2025", "dup.json"))
	assert.FileExists(t, filepath.Join(out, "03-2025", "dup_1.json"))
}

func TestRunCountsMediaParts(t *testing.T) {
	input := exportFixture(t, `[
		{
			"id": "media", "create_time": 1742034600, "voice": "cove",
			"mapping": {
				"n1": {"message": {"author": {"role": "user"}, "create_time": 1742034600,
					"content": {"content_type": "multimodal_text", "parts": [
						{"content_type": "image_asset_pointer"},
						{"content_type": "audio_transcription", "text": "spoken question"}
					]}}}
			}
		}
	]`)
	out := t.TempDir()

	_, err := unroll.Run(input, out, logging.NewTestLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "03-2025", "media.json"))
	require.NoError(t, err)
	var rec record.Record
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.True(t, rec.Meta.HasImages)
	assert.Equal(t, 1, rec.Meta.ImageCount)
	assert.True(t, rec.Meta.HasAudio)
	assert.Equal(t, 1, rec.Meta.AudioCount)
	assert.True(t, rec.Meta.IsVoiceConversation)
	require.NotNil(t, rec.Meta.VoiceName)
	assert.Equal(t, "cove", *rec.Meta.VoiceName)
	assert.Equal(t, 2, rec.Meta.WordCount, "transcribed audio counts as words")
}

func TestRunRejectsNonArrayExport(t *testing.T) {
	input := exportFixture(t, `{"not": "an array"}`)
	_, err := unroll.Run(input, t.TempDir(), logging.NewTestLogger())
	assert.Error(t, err)
}
