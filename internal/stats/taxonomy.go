package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chatwrapped/internal/pkg/counter"
)

// DomainStat is one domain with its nested sub-domain breakdown.
type DomainStat struct {
	Name       string       `json:"name"`
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"`
	Subdomains []NamedShare `json:"subdomains"`
}

// RequestTypeStat is one request type with the domains it shows up in.
type RequestTypeStat struct {
	Name       string         `json:"name"`
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
	TopDomains map[string]int `json:"top_domains"`
}

// Combination is one domain|type|request triple.
type Combination struct {
	Combination string `json:"combination"`
	Domain      string `json:"domain"`
	Type        string `json:"type"`
	Request     string `json:"request"`
	Count       int    `json:"count"`
}

// MonthEntities is one month's volume plus its top entities.
type MonthEntities struct {
	Month           string          `json:"month"`
	Conversations   int             `json:"conversations"`
	Messages        int             `json:"messages"`
	Words           int             `json:"words"`
	TopKeywords     []counter.Entry `json:"top_keywords"`
	TopPeople       []counter.Entry `json:"top_people"`
	TopCompanies    []counter.Entry `json:"top_companies"`
	TopProducts     []counter.Entry `json:"top_products"`
	TopPlaces       []counter.Entry `json:"top_places"`
	TopTechnologies []counter.Entry `json:"top_technologies"`
	TopConcepts     []counter.Entry `json:"top_concepts"`
}

// AllTimeTops is the year-wide entity leaderboard.
type AllTimeTops struct {
	Keywords     []counter.Entry `json:"keywords"`
	People       []counter.Entry `json:"people"`
	Companies    []counter.Entry `json:"companies"`
	Products     []counter.Entry `json:"products"`
	Places       []counter.Entry `json:"places"`
	Technologies []counter.Entry `json:"technologies"`
	Concepts     []counter.Entry `json:"concepts"`
}

// GeographicEntry is one mentioned place with its mention context. Display
// name and country code are best-effort lookups; places that do not resolve
// to a country keep only the raw mention.
type GeographicEntry struct {
	Place          string   `json:"place"`
	Count          int      `json:"count"`
	Months         []string `json:"months"`
	FirstMentioned string   `json:"first_mentioned"`
	TopDomain      string   `json:"top_domain"`
	DisplayName    string   `json:"display_name,omitempty"`
	CountryCode    string   `json:"country_code,omitempty"`
}

// Entity list caps per month and for the all-time leaderboard.
var (
	monthlyEntityCaps = map[string]int{
		"keywords": 10, "people": 5, "companies": 5, "products": 5,
		"places": 5, "technologies": 8, "concepts": 8,
	}
	allTimeEntityCaps = map[string]int{
		"keywords": 50, "people": 30, "companies": 30, "products": 30,
		"places": 30, "technologies": 50, "concepts": 30,
	}
	entityKinds = []string{
		"keywords", "people", "companies", "products", "places",
		"technologies", "concepts",
	}
)

func buildDomains(convs []*conv) ([]DomainStat, []NamedShare, map[string]int) {
	total := len(convs)
	domainCounts := counter.New()
	subCounts := map[string]*counter.Counter{}
	typeCounts := counter.New()

	for _, c := range convs {
		domain := c.rec.Domain()
		domainCounts.Add(domain)
		sub, ok := subCounts[domain]
		if !ok {
			sub = counter.New()
			subCounts[domain] = sub
		}
		sub.Add(c.rec.SubDomain())
		typeCounts.Add(c.rec.ConversationType())
	}

	domains := make([]DomainStat, 0, domainCounts.Len())
	for _, d := range domainCounts.MostCommon(0) {
		subs := make([]NamedShare, 0, 10)
		for _, s := range subCounts[d.Name].MostCommon(10) {
			subs = append(subs, NamedShare{
				Name:       s.Name,
				Count:      s.Count,
				Percentage: round1(float64(s.Count) / float64(d.Count) * 100),
			})
		}
		domains = append(domains, DomainStat{
			Name:       d.Name,
			Count:      d.Count,
			Percentage: round1(float64(d.Count) / float64(total) * 100),
			Subdomains: subs,
		})
	}

	types := namedShares(typeCounts, total)
	return domains, types, typeCounts.TopMap(0)
}

// namedShares renders a counter as name/count/percentage rows over total.
func namedShares(c *counter.Counter, total int) []NamedShare {
	entries := c.MostCommon(0)
	out := make([]NamedShare, len(entries))
	for i, e := range entries {
		out[i] = NamedShare{
			Name:       e.Name,
			Count:      e.Count,
			Percentage: round1(float64(e.Count) / float64(total) * 100),
		}
	}
	return out
}

func buildDomainTypeSynthesis(convs []*conv) map[string]map[string]int {
	matrix := map[string]*counter.Counter{}
	for _, c := range convs {
		domain := c.rec.Domain()
		types, ok := matrix[domain]
		if !ok {
			types = counter.New()
			matrix[domain] = types
		}
		types.Add(c.rec.ConversationType())
	}

	synthesis := make(map[string]map[string]int, len(matrix))
	for domain, types := range matrix {
		synthesis[domain] = types.TopMap(5)
	}
	return synthesis
}

func buildRequestTypes(convs []*conv) []RequestTypeStat {
	total := len(convs)
	requestCounts := counter.New()
	domainMatrix := map[string]*counter.Counter{}

	for _, c := range convs {
		domain := c.rec.Domain()
		for _, rt := range c.rec.RequestTypes() {
			requestCounts.Add(rt)
			domains, ok := domainMatrix[rt]
			if !ok {
				domains = counter.New()
				domainMatrix[rt] = domains
			}
			domains.Add(domain)
		}
	}

	out := make([]RequestTypeStat, 0, requestCounts.Len())
	for _, e := range requestCounts.MostCommon(0) {
		out = append(out, RequestTypeStat{
			Name:       e.Name,
			Count:      e.Count,
			Percentage: round1(float64(e.Count) / float64(total) * 100),
			TopDomains: domainMatrix[e.Name].TopMap(3),
		})
	}
	return out
}

func buildTopCombinations(convs []*conv) []Combination {
	triples := counter.New()
	for _, c := range convs {
		domain := c.rec.Domain()
		convType := c.rec.ConversationType()
		for _, rt := range c.rec.RequestTypes() {
			triples.Add(fmt.Sprintf("%s|%s|%s", domain, convType, rt))
		}
	}

	entries := triples.MostCommon(20)
	out := make([]Combination, len(entries))
	for i, e := range entries {
		parts := strings.SplitN(e.Name, "|", 3)
		out[i] = Combination{
			Combination: e.Name,
			Domain:      parts[0],
			Type:        parts[1],
			Request:     parts[2],
			Count:       e.Count,
		}
	}
	return out
}

func buildMonthlyBreakdown(convs []*conv) []MonthEntities {
	type monthAgg struct {
		conversations, messages, words int
		entities                       map[string]*counter.Counter
	}
	monthly := map[string]*monthAgg{}

	for _, c := range convs {
		m, ok := monthly[c.month]
		if !ok {
			m = &monthAgg{entities: map[string]*counter.Counter{}}
			for _, kind := range entityKinds {
				m.entities[kind] = counter.New()
			}
			monthly[c.month] = m
		}
		m.conversations++
		m.messages += c.rec.TotalMessages()
		m.words += c.rec.WordCount()
		for _, kind := range entityKinds {
			for _, e := range c.rec.Entities(kind) {
				m.entities[kind].Add(e)
			}
		}
	}

	out := make([]MonthEntities, 0, len(monthly))
	for _, month := range sortedMonths(monthly) {
		m := monthly[month]
		top := func(kind string) []counter.Entry {
			return m.entities[kind].MostCommon(monthlyEntityCaps[kind])
		}
		out = append(out, MonthEntities{
			Month:           month,
			Conversations:   m.conversations,
			Messages:        m.messages,
			Words:           m.words,
			TopKeywords:     top("keywords"),
			TopPeople:       top("people"),
			TopCompanies:    top("companies"),
			TopProducts:     top("products"),
			TopPlaces:       top("places"),
			TopTechnologies: top("technologies"),
			TopConcepts:     top("concepts"),
		})
	}
	return out
}

func buildAllTimeTops(convs []*conv) AllTimeTops {
	counters := map[string]*counter.Counter{}
	for _, kind := range entityKinds {
		counters[kind] = counter.New()
	}
	for _, c := range convs {
		for _, kind := range entityKinds {
			for _, e := range c.rec.Entities(kind) {
				counters[kind].Add(e)
			}
		}
	}

	top := func(kind string) []counter.Entry {
		return counters[kind].MostCommon(allTimeEntityCaps[kind])
	}
	return AllTimeTops{
		Keywords:     top("keywords"),
		People:       top("people"),
		Companies:    top("companies"),
		Products:     top("products"),
		Places:       top("places"),
		Technologies: top("technologies"),
		Concepts:     top("concepts"),
	}
}

func buildGeographic(convs []*conv) []GeographicEntry {
	type placeAgg struct {
		count   int
		months  map[string]bool
		domains *counter.Counter
	}
	places := map[string]*placeAgg{}
	order := []string{}

	for _, c := range convs {
		// Domain here is the raw classification; unclassified mentions
		// stay blank instead of inheriting the "unknown" default.
		domain := ""
		if c.rec.LLMMeta != nil {
			domain = c.rec.LLMMeta.Domain
		}
		for _, place := range c.rec.Entities("places") {
			agg, ok := places[place]
			if !ok {
				agg = &placeAgg{months: map[string]bool{}, domains: counter.New()}
				places[place] = agg
				order = append(order, place)
			}
			agg.count++
			agg.months[c.month] = true
			agg.domains.Add(domain)
		}
	}

	countries := gountries.New()
	titler := cases.Title(language.English)

	out := make([]GeographicEntry, 0, len(places))
	for _, place := range order {
		agg := places[place]
		months := sortedMonths(agg.months)

		entry := GeographicEntry{
			Place:          place,
			Count:          agg.count,
			Months:         months,
			FirstMentioned: months[0],
		}
		if top := agg.domains.MostCommon(1); len(top) > 0 {
			entry.TopDomain = top[0].Name
		}
		if country, err := countries.FindCountryByName(strings.ToLower(place)); err == nil {
			entry.CountryCode = country.Alpha2
			entry.DisplayName = titler.String(country.Name.Common)
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}
