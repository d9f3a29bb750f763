package stats

import "chatwrapped/internal/pkg/counter"

// DynamicsFacet is one dynamics dimension: the overall ranking plus the top
// entries per month.
type DynamicsFacet struct {
	Overall []NamedShare              `json:"overall"`
	Monthly map[string]map[string]int `json:"monthly"`
}

// ConversationDynamics describes how conversations felt: their flow, the
// user's mood, and the overall tone.
type ConversationDynamics struct {
	Flow DynamicsFacet `json:"flow"`
	Mood DynamicsFacet `json:"mood"`
	Tone DynamicsFacet `json:"tone"`
}

// Outcomes describes how conversations ended and which way information
// flowed.
type Outcomes struct {
	OutcomeType          []NamedShare `json:"outcome_type"`
	InformationDirection []NamedShare `json:"information_direction"`
}

func buildDynamics(convs []*conv) (ConversationDynamics, map[string]int, map[string]int) {
	total := len(convs)
	flows := counter.New()
	moods := counter.New()
	tones := counter.New()

	type monthFacets struct{ flow, mood, tone *counter.Counter }
	monthly := map[string]*monthFacets{}

	for _, c := range convs {
		flow, mood, tone := c.rec.Flow(), c.rec.Mood(), c.rec.Tone()
		flows.Add(flow)
		moods.Add(mood)
		tones.Add(tone)

		m, ok := monthly[c.month]
		if !ok {
			m = &monthFacets{flow: counter.New(), mood: counter.New(), tone: counter.New()}
			monthly[c.month] = m
		}
		m.flow.Add(flow)
		m.mood.Add(mood)
		m.tone.Add(tone)
	}

	monthlyTop := func(pick func(*monthFacets) *counter.Counter) map[string]map[string]int {
		out := make(map[string]map[string]int, len(monthly))
		for month, facets := range monthly {
			out[month] = pick(facets).TopMap(5)
		}
		return out
	}

	dynamics := ConversationDynamics{
		Flow: DynamicsFacet{
			Overall: namedShares(flows, total),
			Monthly: monthlyTop(func(f *monthFacets) *counter.Counter { return f.flow }),
		},
		Mood: DynamicsFacet{
			Overall: namedShares(moods, total),
			Monthly: monthlyTop(func(f *monthFacets) *counter.Counter { return f.mood }),
		},
		Tone: DynamicsFacet{
			Overall: namedShares(tones, total),
			Monthly: monthlyTop(func(f *monthFacets) *counter.Counter { return f.tone }),
		},
	}
	return dynamics, moods.TopMap(0), tones.TopMap(0)
}

func buildOutcomes(convs []*conv) (Outcomes, map[string]int, map[string]int) {
	total := len(convs)
	outcomes := counter.New()
	directions := counter.New()

	for _, c := range convs {
		outcomes.Add(c.rec.Outcome())
		directions.Add(c.rec.Direction())
	}

	result := Outcomes{
		OutcomeType:          namedShares(outcomes, total),
		InformationDirection: namedShares(directions, total),
	}
	return result, outcomes.TopMap(0), directions.TopMap(0)
}
