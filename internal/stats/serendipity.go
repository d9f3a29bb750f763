package stats

import (
	"sort"

	"chatwrapped/internal/pkg/counter"
)

// SerendipitySide is the analysis of one serendipity axis.
type SerendipitySide struct {
	Average      float64        `json:"average"`
	Median       float64        `json:"median"`
	Distribution []Bin          `json:"distribution"`
	Trend        []MonthAverage `json:"trend"`
}

// SerendipitousConv is one unusually original conversation.
type SerendipitousConv struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	ScorePublic    int      `json:"score_public"`
	ScorePower     int      `json:"score_power"`
	Domain         string   `json:"domain"`
	SubDomain      string   `json:"sub_domain"`
	Keywords       []string `json:"keywords"`
	Summary        string   `json:"summary"`
	Date           string   `json:"date"`
	Messages       int      `json:"messages"`
	UserWords      int      `json:"user_words"`
	AssistantWords int      `json:"assistant_words"`
}

// Serendipity is the how-unusual-were-your-chats block.
type Serendipity struct {
	VsGeneralPublic       SerendipitySide     `json:"vs_general_public"`
	VsPowerUsers          SerendipitySide     `json:"vs_power_users"`
	TopSerendipitous      []SerendipitousConv `json:"top_serendipitous"`
	SerendipitousDomains  []counter.Entry     `json:"serendipitous_domains"`
	SerendipitousKeywords []counter.Entry     `json:"serendipitous_keywords"`
}

func buildSerendipity(convs []*conv) Serendipity {
	var public, power []float64
	monthlyPublic := map[string][]float64{}
	monthlyPower := map[string][]float64{}

	for _, c := range convs {
		if sp, ok := c.rec.SerendipityPublic(); ok {
			public = append(public, float64(sp))
			monthlyPublic[c.month] = append(monthlyPublic[c.month], float64(sp))
		}
		if su, ok := c.rec.SerendipityPower(); ok {
			power = append(power, float64(su))
			monthlyPower[c.month] = append(monthlyPower[c.month], float64(su))
		}
	}

	thresholdPublic := percentileThreshold(public)
	thresholdPower := percentileThreshold(power)

	// A conversation qualifies when either axis clears its threshold;
	// missing scores count as zero here, only for qualification.
	var top []SerendipitousConv
	for _, c := range convs {
		sp, _ := c.rec.SerendipityPublic()
		su, _ := c.rec.SerendipityPower()
		if float64(sp) < thresholdPublic && float64(su) < thresholdPower {
			continue
		}
		top = append(top, SerendipitousConv{
			ID:             c.rec.ID,
			Title:          c.rec.Title,
			ScorePublic:    sp,
			ScorePower:     su,
			Domain:         c.rec.Domain(),
			SubDomain:      c.rec.SubDomain(),
			Keywords:       c.rec.KeywordsCapped(7),
			Summary:        c.rec.Summary(),
			Date:           c.date,
			Messages:       c.rec.TotalMessages(),
			UserWords:      c.userWords,
			AssistantWords: c.assistantWords,
		})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ScorePublic+top[i].ScorePower > top[j].ScorePublic+top[j].ScorePower
	})

	domains := counter.New()
	keywords := counter.New()
	driverPool := top
	if len(driverPool) > 50 {
		driverPool = driverPool[:50]
	}
	for _, t := range driverPool {
		domains.Add(t.Domain)
		for _, kw := range t.Keywords {
			keywords.Add(kw)
		}
	}

	detail := top
	if len(detail) > 20 {
		detail = detail[:20]
	}

	return Serendipity{
		VsGeneralPublic: SerendipitySide{
			Average:      round1(mean(public)),
			Median:       round1(median(public)),
			Distribution: distribution(public, 10),
			Trend:        monthlyAverages(monthlyPublic),
		},
		VsPowerUsers: SerendipitySide{
			Average:      round1(mean(power)),
			Median:       round1(median(power)),
			Distribution: distribution(power, 10),
			Trend:        monthlyAverages(monthlyPower),
		},
		TopSerendipitous:      detail,
		SerendipitousDomains:  domains.MostCommon(0),
		SerendipitousKeywords: keywords.MostCommon(20),
	}
}

// percentileThreshold returns the value sitting at the top 5% boundary of
// the sample, or 0 when there is no sample.
func percentileThreshold(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	idx := int(float64(len(sorted)) * 0.05)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
