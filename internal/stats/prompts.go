package stats

// PromptAnalysis describes how prompts and responses are sized: first prompt
// vs follow-ups vs assistant replies, with distributions and monthly trends.
type PromptAnalysis struct {
	AvgFirstPromptWords float64 `json:"avg_first_prompt_words"`
	AvgFollowupWords    float64 `json:"avg_followup_words"`
	AvgAssistantWords   float64 `json:"avg_assistant_words"`
	AvgMessagesPerConv  float64 `json:"avg_messages_per_conv"`

	FirstPromptDistribution       []Bin `json:"first_prompt_distribution"`
	FollowupDistribution          []Bin `json:"followup_distribution"`
	AssistantResponseDistribution []Bin `json:"assistant_response_distribution"`
	MessagesPerConvDistribution   []Bin `json:"messages_per_conv_distribution"`

	FirstPromptTrend []MonthAverage `json:"first_prompt_trend"`
	FollowupTrend    []MonthAverage `json:"followup_trend"`
	AssistantTrend   []MonthAverage `json:"assistant_trend"`
	MessagesTrend    []MonthAverage `json:"messages_trend"`
}

func buildPromptAnalysis(convs []*conv) PromptAnalysis {
	var firstPrompt, followup, assistant, perConv []float64
	monthlyFirst := map[string][]float64{}
	monthlyFollowup := map[string][]float64{}
	monthlyAssistant := map[string][]float64{}
	monthlyPerConv := map[string][]float64{}

	for _, c := range convs {
		if len(c.userMsgs) > 0 {
			fp := float64(c.userMsgs[0].WordCount)
			firstPrompt = append(firstPrompt, fp)
			monthlyFirst[c.month] = append(monthlyFirst[c.month], fp)
			for _, m := range c.userMsgs[1:] {
				fu := float64(m.WordCount)
				followup = append(followup, fu)
				monthlyFollowup[c.month] = append(monthlyFollowup[c.month], fu)
			}
		}
		for _, m := range c.assistantMsgs {
			aw := float64(m.WordCount)
			assistant = append(assistant, aw)
			monthlyAssistant[c.month] = append(monthlyAssistant[c.month], aw)
		}
		mpc := float64(len(c.userMsgs) + len(c.assistantMsgs))
		perConv = append(perConv, mpc)
		monthlyPerConv[c.month] = append(monthlyPerConv[c.month], mpc)
	}

	return PromptAnalysis{
		AvgFirstPromptWords: round1(mean(firstPrompt)),
		AvgFollowupWords:    round1(mean(followup)),
		AvgAssistantWords:   round1(mean(assistant)),
		AvgMessagesPerConv:  round1(mean(perConv)),

		FirstPromptDistribution:       distribution(firstPrompt, 15),
		FollowupDistribution:          distribution(followup, 15),
		AssistantResponseDistribution: distribution(assistant, 15),
		MessagesPerConvDistribution:   distribution(perConv, 12),

		FirstPromptTrend: monthlyAverages(monthlyFirst),
		FollowupTrend:    monthlyAverages(monthlyFollowup),
		AssistantTrend:   monthlyAverages(monthlyAssistant),
		MessagesTrend:    monthlyAverages(monthlyPerConv),
	}
}
