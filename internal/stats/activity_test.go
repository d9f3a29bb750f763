package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxStreak(t *testing.T) {
	days := func(dates ...string) []DailyActivity {
		out := make([]DailyActivity, len(dates))
		for i, d := range dates {
			out[i] = DailyActivity{Date: d}
		}
		return out
	}

	assert.Equal(t, 0, maxStreak(nil))
	assert.Equal(t, 1, maxStreak(days("2025-01-01")))
	assert.Equal(t, 3, maxStreak(days("2025-01-01", "2025-01-02", "2025-01-03", "2025-01-10")))
	assert.Equal(t, 2, maxStreak(days("2025-01-01", "2025-01-05", "2025-01-06")))
	// Month boundary still counts as consecutive.
	assert.Equal(t, 2, maxStreak(days("2025-01-31", "2025-02-01")))
}

func TestPeakPrefersFirstSeenOnTies(t *testing.T) {
	var o orderedCounts
	assert.Equal(t, 12, o.peak(12), "empty buckets fall back")

	o.add(14)
	o.add(9)
	assert.Equal(t, 14, o.peak(12), "a tie keeps the earlier bucket")

	o.add(9)
	assert.Equal(t, 9, o.peak(12))

	o.add(20)
	assert.Equal(t, 9, o.peak(12), "later buckets never win on lower counts")
}

func TestWeekdayIndexing(t *testing.T) {
	assert.Equal(t, "Monday", weekdayNames[0])
	assert.Equal(t, "Sunday", weekdayNames[6])
}
