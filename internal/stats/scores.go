package stats

import (
	"sort"

	"chatwrapped/internal/pkg/counter"
)

// highScoreThreshold marks a conversation as a highlight for a score field.
const highScoreThreshold = 80

// minModelSamples is the sample floor below which a per-model score average
// is too noisy to publish.
const minModelSamples = 10

// scoreField pairs a published score with the one-line explanation shown
// next to its chart.
type scoreField struct {
	name        string
	methodology string
}

var scoreFields = []scoreField{
	{"inferred_future_relevance_score", "How useful for future reference? Higher = more likely to revisit."},
	{"urgency_score", "How time-sensitive was the query? Higher = more urgent/stressful."},
	{"complexity_score", "Technical depth required. Higher = more complex."},
	{"information_density", "Signal vs noise ratio. Higher = more dense/valuable."},
	{"depth_of_engagement", "User effort/investment. Higher = deeper engagement."},
	{"user_satisfaction_inferred", "Did user seem satisfied? Higher = happier."},
	{"user_request_quality_inferred", "How clear was the ask? Higher = better prompts."},
	{"ai_response_quality_score", "How good were AI responses? Higher = better responses."},
}

// ScoreTrendPoint is one month of a score's trend line.
type ScoreTrendPoint struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ConversationRef is a high-scoring conversation highlight.
type ConversationRef struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Score          int      `json:"score"`
	Domain         string   `json:"domain"`
	SubDomain      string   `json:"sub_domain"`
	Keywords       []string `json:"keywords"`
	Date           string   `json:"date"`
	Messages       int      `json:"messages"`
	UserWords      int      `json:"user_words"`
	AssistantWords int      `json:"assistant_words"`
}

// ScoreStats is the full analysis of one score field.
type ScoreStats struct {
	Methodology string  `json:"methodology"`
	Average     float64 `json:"average"`
	Median      float64 `json:"median"`
	Stdev       float64 `json:"stdev"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`

	Trend        []ScoreTrendPoint `json:"trend"`
	Distribution []Bin             `json:"distribution"`

	HighScoreCount         int               `json:"high_score_count"`
	HighScoreTopDomains    []counter.Entry   `json:"high_score_top_domains"`
	HighScoreTopSubdomains []counter.Entry   `json:"high_score_top_subdomains"`
	HighScoreTopKeywords   []counter.Entry   `json:"high_score_top_keywords"`
	TopConversations       []ConversationRef `json:"top_conversations"`
}

// ModelScore is a per-model score average with its sample size.
type ModelScore struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func buildScoreAnalysis(convs []*conv) map[string]ScoreStats {
	analysis := make(map[string]ScoreStats, len(scoreFields))

	for _, field := range scoreFields {
		var values []float64
		monthly := map[string][]float64{}
		var highs []ConversationRef

		for _, c := range convs {
			score, ok := c.rec.Score(field.name)
			if !ok {
				continue
			}
			values = append(values, float64(score))
			monthly[c.month] = append(monthly[c.month], float64(score))

			if score >= highScoreThreshold {
				highs = append(highs, ConversationRef{
					ID:             c.rec.ID,
					Title:          c.rec.Title,
					Score:          score,
					Domain:         c.rec.Domain(),
					SubDomain:      c.rec.SubDomain(),
					Keywords:       c.rec.KeywordsCapped(5),
					Date:           c.date,
					Messages:       c.rec.TotalMessages(),
					UserWords:      c.userWords,
					AssistantWords: c.assistantWords,
				})
			}
		}

		trend := make([]ScoreTrendPoint, 0, len(monthly))
		for _, month := range sortedMonths(monthly) {
			trend = append(trend, ScoreTrendPoint{
				Month:   month,
				Average: round1(mean(monthly[month])),
				Count:   len(monthly[month]),
			})
		}

		sort.SliceStable(highs, func(i, j int) bool { return highs[i].Score > highs[j].Score })

		highDomains := counter.New()
		highSubdomains := counter.New()
		highKeywords := counter.New()
		for _, h := range highs {
			highDomains.Add(h.Domain)
			highSubdomains.Add(h.SubDomain)
			for _, kw := range h.Keywords {
				highKeywords.Add(kw)
			}
		}

		stats := ScoreStats{
			Methodology:  field.methodology,
			Average:      round1(mean(values)),
			Median:       round1(median(values)),
			Stdev:        round1(stdev(values)),
			Trend:        trend,
			Distribution: distribution(values, 20),

			HighScoreCount:         len(highs),
			HighScoreTopDomains:    highDomains.MostCommon(5),
			HighScoreTopSubdomains: highSubdomains.MostCommon(5),
			HighScoreTopKeywords:   highKeywords.MostCommon(10),
		}
		if len(values) > 0 {
			minV, maxV := values[0], values[0]
			for _, v := range values[1:] {
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
			}
			stats.Min, stats.Max = int(minV), int(maxV)
		}
		if len(highs) > 3 {
			highs = highs[:3]
		}
		stats.TopConversations = highs

		analysis[field.name] = stats
	}
	return analysis
}

func buildModelScores(convs []*conv) map[string]map[string]ModelScore {
	samples := map[string]map[string][]float64{}
	for _, c := range convs {
		model := c.rec.PrimaryModel()
		for _, field := range scoreFields {
			score, ok := c.rec.Score(field.name)
			if !ok {
				continue
			}
			byField, ok := samples[model]
			if !ok {
				byField = map[string][]float64{}
				samples[model] = byField
			}
			byField[field.name] = append(byField[field.name], float64(score))
		}
	}

	out := make(map[string]map[string]ModelScore, len(samples))
	for model, byField := range samples {
		scores := map[string]ModelScore{}
		for field, vals := range byField {
			if len(vals) < minModelSamples {
				continue
			}
			scores[field] = ModelScore{Average: round1(mean(vals)), Count: len(vals)}
		}
		out[model] = scores
	}
	return out
}
