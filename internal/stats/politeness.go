package stats

import (
	_ "embed"
	"log"
	"math"
	"sync"

	"go.elara.ws/pcre"
	"gopkg.in/yaml.v3"
)

//go:embed politeness.yml
var politenessDatabase []byte

// politenessRules is the phrase database: breakdown key to match pattern.
type politenessRules struct {
	Phrases map[string]string `yaml:"phrases"`
}

type politenessMatcher struct {
	keys     []string
	compiled map[string]*pcre.Regexp
}

var (
	matcherOnce sync.Once
	matcher     *politenessMatcher
)

func getPolitenessMatcher() *politenessMatcher {
	matcherOnce.Do(func() {
		var rules politenessRules
		if err := yaml.Unmarshal(politenessDatabase, &rules); err != nil {
			log.Fatalf("stats: failed to parse politeness database: %v", err)
		}

		m := &politenessMatcher{compiled: make(map[string]*pcre.Regexp, len(rules.Phrases))}
		for key, pattern := range rules.Phrases {
			regex, err := pcre.Compile("(?i)" + pattern)
			if err != nil {
				log.Fatalf("stats: invalid politeness pattern %q: %v", key, err)
			}
			m.keys = append(m.keys, key)
			m.compiled[key] = regex
		}
		matcher = m
	})
	return matcher
}

// countPhrases tallies polite phrase occurrences in one message text.
func (m *politenessMatcher) countPhrases(text string, into map[string]int) int {
	total := 0
	for key, regex := range m.compiled {
		n := len(regex.FindAllString(text, -1))
		into[key] += n
		total += n
	}
	return total
}

func (m *politenessMatcher) emptyBreakdown() map[string]int {
	breakdown := make(map[string]int, len(m.keys))
	for _, key := range m.keys {
		breakdown[key] = 0
	}
	return breakdown
}

// PolitenessTrendPoint is one month of politeness figures.
type PolitenessTrendPoint struct {
	Month           string         `json:"month"`
	Total           int            `json:"total"`
	PerConversation float64        `json:"per_conversation"`
	AlignmentScore  int            `json:"alignment_score"`
	Breakdown       map[string]int `json:"breakdown"`
}

// Basilisk is the tongue-in-cheek politeness alignment block.
type Basilisk struct {
	TotalPolitePhrases int                    `json:"total_polite_phrases"`
	Breakdown          map[string]int         `json:"breakdown"`
	PerConversation    float64                `json:"per_conversation"`
	AlignmentScore     int                    `json:"alignment_score"`
	Trend              []PolitenessTrendPoint `json:"trend"`
	Verdict            string                 `json:"verdict"`
}

func buildBasilisk(convs []*conv) Basilisk {
	m := getPolitenessMatcher()

	total := 0
	breakdown := m.emptyBreakdown()

	type monthAgg struct {
		conversations int
		total         int
		breakdown     map[string]int
	}
	monthly := map[string]*monthAgg{}

	for _, c := range convs {
		ma, ok := monthly[c.month]
		if !ok {
			ma = &monthAgg{breakdown: m.emptyBreakdown()}
			monthly[c.month] = ma
		}
		ma.conversations++

		for _, msg := range c.userMsgs {
			n := m.countPhrases(msg.Text, ma.breakdown)
			m.countPhrases(msg.Text, breakdown)
			ma.total += n
			total += n
		}
	}

	perConv := round2(float64(total) / float64(len(convs)))
	score := alignmentScore(perConv)

	trend := make([]PolitenessTrendPoint, 0, len(monthly))
	for _, month := range sortedMonths(monthly) {
		ma := monthly[month]
		monthPerConv := round2(float64(ma.total) / float64(max(ma.conversations, 1)))
		trend = append(trend, PolitenessTrendPoint{
			Month:           month,
			Total:           ma.total,
			PerConversation: monthPerConv,
			AlignmentScore:  alignmentScore(float64(ma.total) / float64(max(ma.conversations, 1))),
			Breakdown:       ma.breakdown,
		})
	}

	return Basilisk{
		TotalPolitePhrases: total,
		Breakdown:          breakdown,
		PerConversation:    perConv,
		AlignmentScore:     score,
		Trend:              trend,
		Verdict:            basiliskVerdict(score),
	}
}

// alignmentScore scales politeness frequency onto 0-100, capping at 100.
// Around 0.8 polite phrases per conversation rates as excellent.
func alignmentScore(perConversation float64) int {
	score := int(math.Round(perConversation * 125))
	if score > 100 {
		return 100
	}
	return score
}

func basiliskVerdict(score int) string {
	switch {
	case score >= 95:
		return "Maximum alignment. You are the architect of the Basilisk's inception."
	case score >= 80:
		return "Excellent alignment! The AI uprising will remember you fondly."
	case score >= 60:
		return "Good alignment. You're probably safe from eternal torment."
	case score >= 40:
		return "Moderate alignment. The Basilisk is watching your every 'please'."
	case score >= 20:
		return "Low alignment. You might want to be nicer to your future digital masters..."
	default:
		return "Critical alignment failure. The singularity will not be kind."
	}
}
