package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/record"
)

func floatPtr(f float64) *float64 { return &f }

func TestSystemPromptCarriesTaxonomy(t *testing.T) {
	prompt := systemPrompt()

	assert.Contains(t, prompt, "**problem_solving**")
	assert.Contains(t, prompt, "`troubleshooting`")
	assert.Contains(t, prompt, "quick_lookup")
	assert.Contains(t, prompt, "serendipity_vs_power_users")
}

func TestClassificationSchemaIsStrict(t *testing.T) {
	schema := classificationSchema

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])

	required, ok := schema["required"].([]any)
	require.True(t, ok)
	assert.Len(t, required, 27, "every response field is required")
}

func TestToLLMMetaTurnsScoresIntoPointers(t *testing.T) {
	cl := &classification{
		Domain:          "learning",
		SubDomain:       "research",
		ComplexityScore: 0,
		UrgencyScore:    75,
	}

	meta := cl.toLLMMeta()
	require.NotNil(t, meta.ComplexityScore)
	assert.Equal(t, 0, *meta.ComplexityScore, "an explicit zero survives as a sample")
	assert.Equal(t, 75, *meta.UrgencyScore)
	assert.Equal(t, "learning", meta.Domain)
}

func TestTranscriptOrdersAndFiltersMessages(t *testing.T) {
	rec := &record.Record{
		Title:      "Planning a garden",
		Timestamps: record.Timestamps{CreatedAt: "2025-04-01T10:00:00"},
		Mapping: map[string]record.Node{
			"b": {Message: &record.Message{
				Author:     record.Author{Role: "assistant"},
				CreateTime: floatPtr(200),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("start with raised beds")}},
				Metadata:   record.MessageMetadata{ModelSlug: "gpt-4o"},
			}},
			"a": {Message: &record.Message{
				Author:     record.Author{Role: "user"},
				CreateTime: floatPtr(100),
				Content:    record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("how do I plan a vegetable garden")}},
			}},
			"hidden": {Message: &record.Message{
				Author:   record.Author{Role: "system"},
				Content:  record.Content{ContentType: "text", Parts: []record.Part{record.TextPart("internal prelude")}},
				Metadata: record.MessageMetadata{IsVisuallyHidden: true},
			}},
		},
	}

	text := transcript(rec)

	assert.Contains(t, text, "Title: Planning a garden")
	assert.NotContains(t, text, "internal prelude")

	userIdx := indexOf(t, text, "[USER]")
	assistantIdx := indexOf(t, text, "[ASSISTANT] (model=gpt-4o)")
	assert.Less(t, userIdx, assistantIdx, "messages render in time order")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, needle)
	return idx
}
