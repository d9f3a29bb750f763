package stats_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/record"
	"chatwrapped/internal/stats"
)

func TestScoreAnalysisHighlights(t *testing.T) {
	var convs []*record.Record
	scores := []int{95, 85, 82, 70, 40, 10}
	for i, s := range scores {
		c := fixtureConv(fmt.Sprintf("c%d", i), "2025-04-01T09:00:00Z", "question")
		c.LLMMeta.ComplexityScore = intPtr(s)
		convs = append(convs, c)
	}
	// One conversation without the score stays out of the sample entirely.
	convs = append(convs, fixtureConv("unscored", "2025-04-02T09:00:00Z", "question"))

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	cs, ok := report.ScoreAnalysis["complexity_score"]
	require.True(t, ok)

	assert.Equal(t, "Technical depth required. Higher = more complex.", cs.Methodology)
	assert.Equal(t, 3, cs.HighScoreCount, "threshold is 80")
	require.Len(t, cs.TopConversations, 3)
	assert.Equal(t, 95, cs.TopConversations[0].Score, "highlights sort by score descending")
	assert.Equal(t, 10, cs.Min)
	assert.Equal(t, 95, cs.Max)
	assert.Equal(t, 63.7, cs.Average)

	require.Len(t, cs.Trend, 1)
	assert.Equal(t, "2025-04", cs.Trend[0].Month)
	assert.Equal(t, 6, cs.Trend[0].Count)
}

func TestModelScoresRequireTenSamples(t *testing.T) {
	var convs []*record.Record
	for i := 0; i < 12; i++ {
		c := fixtureConv(fmt.Sprintf("m%d", i), "2025-04-01T09:00:00Z", "question")
		c.LLMMeta.UrgencyScore = intPtr(50)
		if i < 9 {
			// Too few complexity samples for this model to publish.
			c.LLMMeta.ComplexityScore = intPtr(60)
		}
		convs = append(convs, c)
	}

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	byField, ok := report.ModelScores["gpt-4o"]
	require.True(t, ok)

	urgency, ok := byField["urgency_score"]
	require.True(t, ok)
	assert.Equal(t, 12, urgency.Count)
	assert.Equal(t, 50.0, urgency.Average)

	_, ok = byField["complexity_score"]
	assert.False(t, ok, "nine samples is below the publication floor")
}
