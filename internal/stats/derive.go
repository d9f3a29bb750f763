package stats

import (
	"sort"
	"time"

	"chatwrapped/internal/record"
)

// conv caches the per-record features that several report blocks share, so
// the message tree is walked exactly once per conversation.
type conv struct {
	rec     *record.Record
	created time.Time
	month   string // YYYY-MM
	date    string // YYYY-MM-DD
	hour    int
	weekday int // Monday = 0

	userMsgs       []record.MessageText
	assistantMsgs  []record.MessageText
	userWords      int
	assistantWords int
}

// Undated records land on the neutral midday Monday slot so they never skew
// the night-owl or weekday profiles.
const (
	fallbackHour    = 12
	fallbackWeekday = 0
)

func deriveAll(records []*record.Record, now time.Time) []*conv {
	convs := make([]*conv, len(records))
	for i, r := range records {
		c := &conv{rec: r}

		if t, ok := r.ParsedCreatedTime(); ok {
			c.created = t
			c.hour = t.Hour()
			c.weekday = (int(t.Weekday()) + 6) % 7
		} else {
			c.created = now
			c.hour = fallbackHour
			c.weekday = fallbackWeekday
		}
		c.month = c.created.Format("2006-01")
		c.date = c.created.Format("2006-01-02")

		c.userMsgs = r.UserMessages()
		c.assistantMsgs = r.AssistantMessages()
		c.userWords = record.TotalWords(c.userMsgs)
		c.assistantWords = record.TotalWords(c.assistantMsgs)

		convs[i] = c
	}
	return convs
}

// sortedMonths returns the map's month keys in ascending order.
func sortedMonths[V any](byMonth map[string]V) []string {
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// monthlyAverages turns per-month samples into a sorted trend line.
func monthlyAverages(byMonth map[string][]float64) []MonthAverage {
	trend := make([]MonthAverage, 0, len(byMonth))
	for _, m := range sortedMonths(byMonth) {
		trend = append(trend, MonthAverage{Month: m, Average: round1(mean(byMonth[m]))})
	}
	return trend
}
