package stats_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatwrapped/internal/record"
	"chatwrapped/internal/stats"
)

func TestDomainsNestSubdomainShares(t *testing.T) {
	var convs []*record.Record
	for i := 0; i < 3; i++ {
		convs = append(convs, fixtureConv(fmt.Sprintf("t%d", i), "2025-08-01T09:00:00Z", "question"))
	}
	convs[2].LLMMeta.SubDomain = "devops"
	science := fixtureConv("s1", "2025-08-02T09:00:00Z", "question")
	science.LLMMeta.Domain = "science"
	science.LLMMeta.SubDomain = "physics"
	convs = append(convs, science)

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	require.Len(t, report.Domains, 2)
	tech := report.Domains[0]
	assert.Equal(t, "technology", tech.Name)
	assert.Equal(t, 75.0, tech.Percentage)

	require.Len(t, tech.Subdomains, 2)
	assert.Equal(t, "software_development", tech.Subdomains[0].Name)
	assert.Equal(t, 66.7, tech.Subdomains[0].Percentage, "share of the domain, not the corpus")
}

func TestTopCombinationsSplitTriples(t *testing.T) {
	convs := []*record.Record{
		fixtureConv("a", "2025-08-01T09:00:00Z", "q"),
		fixtureConv("b", "2025-08-01T10:00:00Z", "q"),
	}

	report, err := stats.Aggregate(convs, testNow)
	require.NoError(t, err)

	require.NotEmpty(t, report.TopCombinations)
	top := report.TopCombinations[0]
	assert.Equal(t, "technology|troubleshooting|debug", top.Combination)
	assert.Equal(t, "technology", top.Domain)
	assert.Equal(t, "troubleshooting", top.Type)
	assert.Equal(t, "debug", top.Request)
	assert.Equal(t, 2, top.Count)
}

func TestGeographicAggregation(t *testing.T) {
	a := fixtureConv("a", "2025-02-01T09:00:00Z", "q")
	a.LLMMeta.EntitiesPlaces = []string{"Japan"}
	b := fixtureConv("b", "2025-05-01T09:00:00Z", "q")
	b.LLMMeta.EntitiesPlaces = []string{"Japan", "Berlin"}

	report, err := stats.Aggregate([]*record.Record{a, b}, testNow)
	require.NoError(t, err)

	require.Len(t, report.GeographicData, 2)
	japan := report.GeographicData[0]
	assert.Equal(t, "Japan", japan.Place)
	assert.Equal(t, 2, japan.Count)
	assert.Equal(t, []string{"2025-02", "2025-05"}, japan.Months)
	assert.Equal(t, "2025-02", japan.FirstMentioned)
	assert.Equal(t, "technology", japan.TopDomain)
	assert.Equal(t, "JP", japan.CountryCode, "country names resolve to ISO codes")

	berlin := report.GeographicData[1]
	assert.Empty(t, berlin.CountryCode, "non-country places keep only the raw mention")
}

func TestMonthlyBreakdownCapsEntities(t *testing.T) {
	c := fixtureConv("a", "2025-03-01T09:00:00Z", "q")
	for i := 0; i < 15; i++ {
		c.LLMMeta.Keywords = append(c.LLMMeta.Keywords, fmt.Sprintf("kw%02d", i))
	}

	report, err := stats.Aggregate([]*record.Record{c}, testNow)
	require.NoError(t, err)

	require.Len(t, report.MonthlyBreakdown, 1)
	month := report.MonthlyBreakdown[0]
	assert.Equal(t, "2025-03", month.Month)
	assert.Len(t, month.TopKeywords, 10)
	assert.Len(t, report.AllTimeTops.Keywords, 17, "fixture keywords plus the base pair")
}
