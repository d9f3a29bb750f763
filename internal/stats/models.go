package stats

import "chatwrapped/internal/pkg/counter"

// ModelTimelinePoint is one month of model usage.
type ModelTimelinePoint struct {
	Month  string         `json:"month"`
	Models map[string]int `json:"models"`
}

func buildModels(convs []*conv) []NamedShare {
	models := counter.New()
	for _, c := range convs {
		models.Add(c.rec.PrimaryModel())
	}
	return namedShares(models, len(convs))
}

func buildModelTimeline(convs []*conv) []ModelTimelinePoint {
	monthly := map[string]*counter.Counter{}
	for _, c := range convs {
		m, ok := monthly[c.month]
		if !ok {
			m = counter.New()
			monthly[c.month] = m
		}
		m.Add(c.rec.PrimaryModel())
	}

	timeline := make([]ModelTimelinePoint, 0, len(monthly))
	for _, month := range sortedMonths(monthly) {
		timeline = append(timeline, ModelTimelinePoint{
			Month:  month,
			Models: monthly[month].TopMap(0),
		})
	}
	return timeline
}
