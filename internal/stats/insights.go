package stats

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// insightInputs carries the raw tallies the insight lines quote directly.
type insightInputs struct {
	typeCounts      map[string]int
	moodCounts      map[string]int
	toneCounts      map[string]int
	outcomeCounts   map[string]int
	directionCounts map[string]int
}

// buildInsights renders the one-line commentary shown under each block. The
// lines quote already-published report figures, so it runs last.
func buildInsights(r *Report, in insightInputs) map[string]string {
	hero := r.HeroStats
	total := hero.TotalConversations

	topDomain, topDomainPct := "unknown", 0.0
	if len(r.Domains) > 0 {
		topDomain = r.Domains[0].Name
		topDomainPct = r.Domains[0].Percentage
	}

	tokenRatioVerdict := "quite verbose in your prompts!"
	if hero.UserAITokenRatio < 0.3 {
		tokenRatioVerdict = "concise and efficient!"
	} else if hero.UserAITokenRatio < 0.6 {
		tokenRatioVerdict = "balanced in your exchanges."
	}

	timing := "You have a balanced schedule across day and night."
	if r.Activity.NightOwlScore > r.Activity.EarlyBirdScore+10 {
		timing = fmt.Sprintf("You're a night owl with %.1f%% of activity at night.", r.Activity.NightOwlScore)
	} else if r.Activity.EarlyBirdScore > r.Activity.NightOwlScore+10 {
		timing = fmt.Sprintf("You're an early bird with %.1f%% of activity in the morning.", r.Activity.EarlyBirdScore)
	}

	commonMood := NamedShare{Name: "neutral"}
	if len(r.ConversationDynamics.Mood.Overall) > 0 {
		commonMood = r.ConversationDynamics.Mood.Overall[0]
	}
	signatureTone := NamedShare{Name: "casual"}
	if len(r.ConversationDynamics.Tone.Overall) > 0 {
		signatureTone = r.ConversationDynamics.Tone.Overall[0]
	}

	return map[string]string{
		"hero": fmt.Sprintf("You had %s conversations with AI, sending %s messages (%s words).",
			humanize.Comma(int64(total)), humanize.Comma(int64(hero.UserMessages)), humanize.Comma(int64(hero.UserWords))),
		"books": fmt.Sprintf("That's equivalent to %.1f books written by you, and %.1f books of AI responses!",
			hero.UserBooks, hero.AssistantBooks),
		"active_days": fmt.Sprintf("You were active on %d days with a maximum streak of %d consecutive days.",
			hero.ActiveDays, hero.MaxStreak),
		"token_ratio": fmt.Sprintf("Your user:AI token ratio is %.2f — you're %s",
			hero.UserAITokenRatio, tokenRatioVerdict),
		"timing":     timing,
		"top_domain": fmt.Sprintf("Your top domain: %s (%.1f%%)", topDomain, topDomainPct),
		"brainstorming": fmt.Sprintf("You brainstormed %d times this year",
			in.typeCounts["brainstorming"]),
		"troubleshooting": fmt.Sprintf("%d troubleshooting sessions — you fixed a lot of bugs!",
			in.typeCounts["troubleshooting"]),
		"frustrated_count": fmt.Sprintf("You were frustrated %d times — we've all been there",
			in.moodCounts["frustrated"]),
		"common_mood": fmt.Sprintf("Your most common mood: %s (%.1f%%)",
			commonMood.Name, commonMood.Percentage),
		"signature_tone": fmt.Sprintf("Your signature tone: %s (%.1f%%)",
			signatureTone.Name, signatureTone.Percentage),
		"tasks_completed": fmt.Sprintf("You completed %d tasks with AI help",
			in.outcomeCounts["task_completed"]),
		"learning_focused": fmt.Sprintf("%.1f%% of conversations were learning-focused",
			round1(float64(in.directionCounts["user_learning"])/float64(total)*100)),
		"collaborative": fmt.Sprintf("You collaborated on %d conversations — true partnership!",
			in.directionCounts["collaborative"]),
		"taught_ai": fmt.Sprintf("You taught the AI something %d times",
			in.directionCounts["user_teaching"]),
	}
}
