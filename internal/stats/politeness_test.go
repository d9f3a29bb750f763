package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolitenessMatcherBoundaries(t *testing.T) {
	m := getPolitenessMatcher()

	into := m.emptyBreakdown()
	total := m.countPhrases("Please, PLEASE fix this. I'm pleased otherwise.", into)
	assert.Equal(t, 2, total, "matching is case-insensitive and word-bounded")
	assert.Equal(t, 2, into["please"])

	into = m.emptyBreakdown()
	total = m.countPhrases("thanks! thank you so much", into)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, into["thanks"])
	assert.Equal(t, 1, into["thank_you"])
}

func TestPolitenessGreetingAlternatives(t *testing.T) {
	m := getPolitenessMatcher()

	for _, greeting := range []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"} {
		into := m.emptyBreakdown()
		m.countPhrases(greeting+" there", into)
		assert.Equal(t, 1, into["hello"], greeting)
	}

	into := m.emptyBreakdown()
	m.countPhrases("this is history", into)
	assert.Equal(t, 0, into["hello"], "hi inside a word must not match")
}

func TestAlignmentScoreScaling(t *testing.T) {
	assert.Equal(t, 0, alignmentScore(0))
	assert.Equal(t, 50, alignmentScore(0.4))
	assert.Equal(t, 100, alignmentScore(0.8))
	assert.Equal(t, 100, alignmentScore(3.5), "score caps at 100")
}

func TestPolitenessDatabaseLoads(t *testing.T) {
	m := getPolitenessMatcher()
	require.Len(t, m.compiled, 9)
}
