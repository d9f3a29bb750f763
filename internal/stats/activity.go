package stats

import (
	"sort"
	"time"
)

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Hours counted as night-owl vs early-bird territory.
var (
	nightHours   = []int{22, 23, 0, 1, 2, 3, 4}
	morningHours = []int{5, 6, 7, 8, 9, 10}
)

// DailyActivity is one cell of the activity heatmap.
type DailyActivity struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Tokens   int    `json:"tokens"`
	Messages int    `json:"messages"`
}

// HourActivity is the profile of one hour of the day across the year.
type HourActivity struct {
	Hour          int     `json:"hour"`
	Conversations int     `json:"conversations"`
	Messages      int     `json:"messages"`
	WeightedScore float64 `json:"weighted_score"`
}

// WeekdayActivity is the profile of one day of the week across the year.
type WeekdayActivity struct {
	Day           string  `json:"day"`
	DayIndex      int     `json:"day_index"`
	Conversations int     `json:"conversations"`
	Messages      int     `json:"messages"`
	WeightedScore float64 `json:"weighted_score"`
}

// MonthlyTrend is one month of activity with its peak hour and weekday.
type MonthlyTrend struct {
	Month            string         `json:"month"`
	Conversations    int            `json:"conversations"`
	Tokens           int            `json:"tokens"`
	Messages         int            `json:"messages"`
	PeakHour         int            `json:"peak_hour"`
	PeakWeekday      string         `json:"peak_weekday"`
	HourlyBreakdown  map[int]int    `json:"hourly_breakdown"`
	WeekdayBreakdown map[string]int `json:"weekday_breakdown"`
}

// Activity is the when-did-you-chat block.
type Activity struct {
	Daily          []DailyActivity   `json:"daily"`
	Hourly         []HourActivity    `json:"hourly"`
	Weekday        []WeekdayActivity `json:"weekday"`
	NightOwlScore  float64           `json:"night_owl_score"`
	EarlyBirdScore float64           `json:"early_bird_score"`
	MonthlyTrends  []MonthlyTrend    `json:"monthly_trends"`
}

// activityTotals carries the activity figures the hero and insight blocks
// reuse.
type activityTotals struct {
	activeDays int
	maxStreak  int
}

func buildActivity(convs []*conv) (Activity, activityTotals) {
	daily := map[string]*DailyActivity{}
	hourly := make([]HourActivity, 24)
	weekday := make([]WeekdayActivity, 7)
	for h := range hourly {
		hourly[h].Hour = h
	}
	for d := range weekday {
		weekday[d].Day = weekdayNames[d]
		weekday[d].DayIndex = d
	}

	type monthAgg struct {
		conversations, tokens, messages int
		hourly                          orderedCounts
		weekday                         orderedCounts
	}
	monthly := map[string]*monthAgg{}

	for _, c := range convs {
		day, ok := daily[c.date]
		if !ok {
			day = &DailyActivity{Date: c.date}
			daily[c.date] = day
		}
		day.Count++
		day.Tokens += c.rec.TotalTokens()
		day.Messages += c.rec.TotalMessages()

		// Weighted score blends message count with verbosity so a single
		// long session outweighs a drive-by question.
		userMsgs := c.rec.RoleMessageCount("user")
		weighted := float64(userMsgs) + float64(c.rec.WordCount())/100

		hourly[c.hour].Conversations++
		hourly[c.hour].Messages += userMsgs
		hourly[c.hour].WeightedScore += weighted

		weekday[c.weekday].Conversations++
		weekday[c.weekday].Messages += userMsgs
		weekday[c.weekday].WeightedScore += weighted

		m, ok := monthly[c.month]
		if !ok {
			m = &monthAgg{}
			monthly[c.month] = m
		}
		m.conversations++
		m.tokens += c.rec.TotalTokens()
		m.messages += c.rec.TotalMessages()
		m.hourly.add(c.hour)
		m.weekday.add(c.weekday)
	}

	dailyList := make([]DailyActivity, 0, len(daily))
	for _, d := range daily {
		dailyList = append(dailyList, *d)
	}
	sort.Slice(dailyList, func(i, j int) bool { return dailyList[i].Date < dailyList[j].Date })

	nightScore, morningScore := 0.0, 0.0
	totalWeighted := 0.0
	for _, h := range hourly {
		totalWeighted += h.WeightedScore
	}
	for _, h := range nightHours {
		nightScore += hourly[h].WeightedScore
	}
	for _, h := range morningHours {
		morningScore += hourly[h].WeightedScore
	}
	denom := totalWeighted
	if denom < 1 {
		denom = 1
	}

	trends := make([]MonthlyTrend, 0, len(monthly))
	for _, month := range sortedMonths(monthly) {
		m := monthly[month]
		trends = append(trends, MonthlyTrend{
			Month:            month,
			Conversations:    m.conversations,
			Tokens:           m.tokens,
			Messages:         m.messages,
			PeakHour:         m.hourly.peak(fallbackHour),
			PeakWeekday:      weekdayNames[m.weekday.peak(fallbackWeekday)],
			HourlyBreakdown:  m.hourly.counts,
			WeekdayBreakdown: namedWeekdays(m.weekday.counts),
		})
	}

	activity := Activity{
		Daily:          dailyList,
		Hourly:         hourly,
		Weekday:        weekday,
		NightOwlScore:  round1(nightScore / denom * 100),
		EarlyBirdScore: round1(morningScore / denom * 100),
		MonthlyTrends:  trends,
	}
	totals := activityTotals{
		activeDays: len(daily),
		maxStreak:  maxStreak(dailyList),
	}
	return activity, totals
}

// orderedCounts counts bucket hits while remembering the order buckets were
// first seen. A tie on the maximum resolves to the bucket of the
// chronologically first conversation, matching the published stats contract.
type orderedCounts struct {
	counts map[int]int
	order  []int
}

func (o *orderedCounts) add(k int) {
	if o.counts == nil {
		o.counts = map[int]int{}
	}
	if _, seen := o.counts[k]; !seen {
		o.order = append(o.order, k)
	}
	o.counts[k]++
}

// peak returns the first-seen key holding the maximum count.
func (o *orderedCounts) peak(fallback int) int {
	best, bestCount := fallback, 0
	for _, k := range o.order {
		if o.counts[k] > bestCount {
			best, bestCount = k, o.counts[k]
		}
	}
	return best
}

func namedWeekdays(counts map[int]int) map[string]int {
	named := make(map[string]int, len(counts))
	for d, c := range counts {
		named[weekdayNames[d]] = c
	}
	return named
}

// maxStreak is the longest run of consecutive active dates. Input must be
// sorted ascending by date.
func maxStreak(daily []DailyActivity) int {
	if len(daily) == 0 {
		return 0
	}
	longest, current := 1, 1
	prev, _ := time.Parse("2006-01-02", daily[0].Date)
	for _, d := range daily[1:] {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		if day.Sub(prev) == 24*time.Hour {
			current++
		} else {
			if current > longest {
				longest = current
			}
			current = 1
		}
		prev = day
	}
	if current > longest {
		longest = current
	}
	return longest
}

// Media is the multimodal usage block.
type Media struct {
	ImageCount         int    `json:"image_count"`
	AudioCount         int    `json:"audio_count"`
	VoiceConversations int    `json:"voice_conversations"`
	MostVisualMonth    string `json:"most_visual_month"`
}

func buildMedia(convs []*conv) Media {
	media := Media{}
	monthlyImages := map[string]int{}
	for _, c := range convs {
		media.ImageCount += c.rec.ImageCount()
		media.AudioCount += c.rec.AudioCount()
		if c.rec.IsVoice() {
			media.VoiceConversations++
		}
		monthlyImages[c.month] += c.rec.ImageCount()
	}

	best := -1
	for _, month := range sortedMonths(monthlyImages) {
		if monthlyImages[month] > best {
			best = monthlyImages[month]
			media.MostVisualMonth = month
		}
	}
	return media
}
