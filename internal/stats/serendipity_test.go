package stats_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/record"
	"chatwrapped/internal/stats"
)

func TestSerendipityThresholdAndRanking(t *testing.T) {
	// Ten scored conversations: the 5% cutoff index is 0, so only the top
	// public score qualifies on that axis.
	var convs []*record.Record
	publics := []int{90, 80, 70, 60, 50, 40, 30, 20, 10, 5}
	for i, sp := range publics {
		c := fixtureConv(fmt.Sprintf("s%d", i), "2025-07-01T09:00:00Z", "question")
		c.LLMMeta.SerendipityPublic = intPtr(sp)
		c.LLMMeta.SerendipityPower = intPtr(1)
		c.LLMMeta.OneLineSummary = fmt.Sprintf("summary %d", i)
		convs = append(convs, c)
	}
	// Power axis outlier qualifies through the other threshold.
	convs[5].LLMMeta.SerendipityPower = intPtr(99)

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	s := report.Serendipity
	require.Len(t, s.TopSerendipitous, 2)
	assert.Equal(t, "s5", s.TopSerendipitous[0].ID, "40+99 outranks 90+1")
	assert.Equal(t, "s0", s.TopSerendipitous[1].ID)
	assert.Equal(t, "summary 5", s.TopSerendipitous[0].Summary)

	assert.Equal(t, 45.5, s.VsGeneralPublic.Average)
	assert.Equal(t, 45.0, s.VsGeneralPublic.Median)
	require.Len(t, s.VsGeneralPublic.Trend, 1)
	assert.Equal(t, "2025-07", s.VsGeneralPublic.Trend[0].Month)
}

func TestSerendipityWithoutScores(t *testing.T) {
	// No scores at all: both thresholds collapse to zero and everything
	// qualifies, capped at the detail limit.
	var convs []*record.Record
	for i := 0; i < 25; i++ {
		convs = append(convs, fixtureConv(fmt.Sprintf("n%d", i), "2025-07-01T09:00:00Z", "question"))
	}

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	s := report.Serendipity
	assert.Len(t, s.TopSerendipitous, 20)
	assert.Equal(t, 0.0, s.VsGeneralPublic.Average)
	assert.Empty(t, s.VsGeneralPublic.Distribution)
}
