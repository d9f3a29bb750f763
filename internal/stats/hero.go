package stats

// wordsPerBook is the average book length used for the "books written"
// equivalence in the hero block.
const wordsPerBook = 50000

// HeroStats is the headline numbers block.
type HeroStats struct {
	TotalConversations int     `json:"total_conversations"`
	TotalMessages      int     `json:"total_messages"`
	UserMessages       int     `json:"user_messages"`
	AssistantMessages  int     `json:"assistant_messages"`
	TotalTokens        int     `json:"total_tokens"`
	UserTokens         int     `json:"user_tokens"`
	AssistantTokens    int     `json:"assistant_tokens"`
	UserWords          int     `json:"user_words"`
	AssistantWords     int     `json:"assistant_words"`
	UserBooks          float64 `json:"user_books"`
	AssistantBooks     float64 `json:"assistant_books"`
	ActiveDays         int     `json:"active_days"`
	MaxStreak          int     `json:"max_streak"`
	UserAITokenRatio   float64 `json:"user_ai_token_ratio"`
}

func buildHero(convs []*conv, totals activityTotals) HeroStats {
	hero := HeroStats{
		TotalConversations: len(convs),
		ActiveDays:         totals.activeDays,
		MaxStreak:          totals.maxStreak,
	}

	for _, c := range convs {
		hero.TotalMessages += c.rec.TotalMessages()
		hero.TotalTokens += c.rec.TotalTokens()
		hero.UserTokens += c.rec.UserTokens()
		hero.AssistantTokens += c.rec.AssistantTokens()
		hero.UserMessages += c.rec.RoleMessageCount("user")
		hero.AssistantMessages += c.rec.RoleMessageCount("assistant")
		hero.UserWords += c.userWords
		hero.AssistantWords += c.assistantWords
	}

	hero.UserBooks = round1(float64(hero.UserWords) / wordsPerBook)
	hero.AssistantBooks = round1(float64(hero.AssistantWords) / wordsPerBook)
	hero.UserAITokenRatio = round2(float64(hero.UserTokens) / float64(max(hero.AssistantTokens, 1)))

	return hero
}
