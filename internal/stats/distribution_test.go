package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionCountsEveryValue(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := distribution(values, 5)

	require.Len(t, bins, 5)
	total := 0
	pctSum := 0.0
	for _, b := range bins {
		total += b.Count
		pctSum += b.Percentage
	}
	assert.Equal(t, len(values), total, "no value may fall between bins")
	assert.InDelta(t, 100.0, pctSum, 0.5)
}

func TestDistributionLastBinIncludesMax(t *testing.T) {
	bins := distribution([]float64{0, 50, 100}, 10)
	require.Len(t, bins, 10)
	assert.Equal(t, 1, bins[len(bins)-1].Count, "the max value lands in the last bin")
}

func TestDistributionDegenerateSample(t *testing.T) {
	bins := distribution([]float64{7, 7, 7}, 15)
	require.Len(t, bins, 1)
	assert.Equal(t, 7.0, bins[0].BinStart)
	assert.Equal(t, 7.0, bins[0].BinEnd)
	assert.Equal(t, 3, bins[0].Count)
	assert.Equal(t, 100.0, bins[0].Percentage)
}

func TestDistributionEmpty(t *testing.T) {
	assert.Empty(t, distribution(nil, 10))
}

func TestMedianAveragesMiddlePair(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{1, 3, 5}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 0.0, median(nil))
}

func TestStdevIsPopulationForm(t *testing.T) {
	// Population stdev of this sample is exactly 2.
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.0, stdev(values), 1e-9)
	assert.Equal(t, 0.0, stdev([]float64{42}), "single sample has no spread")
}
