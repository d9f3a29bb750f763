package stats

import (
	"math"
	"sort"
)

// Bin is one bucket of a histogram rendered as a bell curve.
type Bin struct {
	BinStart   float64 `json:"bin_start"`
	BinEnd     float64 `json:"bin_end"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// distribution buckets values into equal-width bins between the observed min
// and max. The last bin is inclusive of the max so no value is dropped. A
// degenerate sample (min == max) collapses to a single full-width bin.
func distribution(values []float64, bins int) []Bin {
	if len(values) == 0 {
		return []Bin{}
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	if minVal == maxVal {
		return []Bin{{
			BinStart:   round2(minVal),
			BinEnd:     round2(maxVal),
			Count:      len(values),
			Percentage: 100.0,
		}}
	}

	width := (maxVal - minVal) / float64(bins)
	out := make([]Bin, 0, bins)
	for i := 0; i < bins; i++ {
		start := minVal + float64(i)*width
		end := minVal + float64(i+1)*width
		last := i == bins-1

		count := 0
		for _, v := range values {
			if v >= start && (v < end || (last && v <= end)) {
				count++
			}
		}
		out = append(out, Bin{
			BinStart:   round2(start),
			BinEnd:     round2(end),
			Count:      count,
			Percentage: round1(float64(count) / float64(len(values)) * 100),
		})
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median averages the two middle values for even-sized samples.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdev is the population standard deviation; 0 for fewer than two samples.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
