// Package stats computes the yearly usage report from a corpus of enriched
// conversation records. Aggregate is the single entry point: it derives
// per-conversation features once, then builds each report block from them.
//
// The report is a stable contract. Field names, list caps, rounding and
// ordering rules all feed a frontend that renders the final "wrapped"
// experience, so every builder keeps its output deterministic: equal inputs
// produce equal reports regardless of map iteration order.
package stats

import (
	"errors"
	"time"

	"chatwrapped/internal/record"
)

// ErrEmptyCorpus is returned when Aggregate receives no records.
var ErrEmptyCorpus = errors.New("stats: no conversations to process")

// NamedShare is a name with its count and share of some total.
type NamedShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MonthAverage is one point of a monthly trend line.
type MonthAverage struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
}

// Report is the full statistics document written to stats.json.
type Report struct {
	HeroStats      HeroStats      `json:"hero_stats"`
	PromptAnalysis PromptAnalysis `json:"prompt_analysis"`
	Activity       Activity       `json:"activity"`
	Media          Media          `json:"media"`

	Domains             []DomainStat              `json:"domains"`
	ConversationTypes   []NamedShare              `json:"conversation_types"`
	DomainTypeSynthesis map[string]map[string]int `json:"domain_type_synthesis"`
	RequestTypes        []RequestTypeStat         `json:"request_types"`
	TopCombinations     []Combination             `json:"top_combinations"`
	MonthlyBreakdown    []MonthEntities           `json:"monthly_breakdown"`
	AllTimeTops         AllTimeTops               `json:"all_time_tops"`
	GeographicData      []GeographicEntry         `json:"geographic_data"`

	ScoreAnalysis map[string]ScoreStats            `json:"score_analysis"`
	ModelScores   map[string]map[string]ModelScore `json:"model_scores"`

	Serendipity Serendipity `json:"serendipity"`

	TopByMessages []VolumeConv `json:"top_by_messages"`
	TopByWords    []VolumeConv `json:"top_by_words"`

	ConversationDynamics ConversationDynamics `json:"conversation_dynamics"`
	Outcomes             Outcomes             `json:"outcomes"`

	RokosBasilisk Basilisk `json:"rokos_basilisk"`

	Models        []NamedShare         `json:"models"`
	ModelTimeline []ModelTimelinePoint `json:"model_timeline"`

	Insights map[string]string `json:"insights"`

	GeneratedAt string `json:"generated_at"`
	Year        int    `json:"year"`
}

// Aggregate builds the full report. Records are expected in chronological
// order, oldest first; now anchors undated records and the generated_at stamp.
func Aggregate(records []*record.Record, now time.Time) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	convs := deriveAll(records, now)

	activity, activityTotals := buildActivity(convs)
	domains, convTypes, typeCounts := buildDomains(convs)
	dynamics, moodCounts, toneCounts := buildDynamics(convs)
	outcomes, outcomeCounts, directionCounts := buildOutcomes(convs)

	report := &Report{
		HeroStats:      buildHero(convs, activityTotals),
		PromptAnalysis: buildPromptAnalysis(convs),
		Activity:       activity,
		Media:          buildMedia(convs),

		Domains:             domains,
		ConversationTypes:   convTypes,
		DomainTypeSynthesis: buildDomainTypeSynthesis(convs),
		RequestTypes:        buildRequestTypes(convs),
		TopCombinations:     buildTopCombinations(convs),
		MonthlyBreakdown:    buildMonthlyBreakdown(convs),
		AllTimeTops:         buildAllTimeTops(convs),
		GeographicData:      buildGeographic(convs),

		ScoreAnalysis: buildScoreAnalysis(convs),
		ModelScores:   buildModelScores(convs),

		Serendipity: buildSerendipity(convs),

		TopByMessages: topByMessages(convs),
		TopByWords:    topByWords(convs),

		ConversationDynamics: dynamics,
		Outcomes:             outcomes,

		RokosBasilisk: buildBasilisk(convs),

		Models:        buildModels(convs),
		ModelTimeline: buildModelTimeline(convs),

		GeneratedAt: now.Format(time.RFC3339),
		Year:        convs[len(convs)-1].created.Year(),
	}

	report.Insights = buildInsights(report, insightInputs{
		typeCounts:      typeCounts,
		moodCounts:      moodCounts,
		toneCounts:      toneCounts,
		outcomeCounts:   outcomeCounts,
		directionCounts: directionCounts,
	})

	return report, nil
}
