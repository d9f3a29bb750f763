package stats

import "sort"

// VolumeConv is one conversation ranked by raw volume.
type VolumeConv struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Domain         string   `json:"domain"`
	SubDomain      string   `json:"sub_domain"`
	Keywords       []string `json:"keywords"`
	Date           string   `json:"date"`
	Messages       int      `json:"messages"`
	UserWords      int      `json:"user_words"`
	AssistantWords int      `json:"assistant_words"`
	TotalWords     int      `json:"total_words"`
}

func volumeStats(convs []*conv) []VolumeConv {
	out := make([]VolumeConv, len(convs))
	for i, c := range convs {
		out[i] = VolumeConv{
			ID:             c.rec.ID,
			Title:          c.rec.Title,
			Domain:         c.rec.Domain(),
			SubDomain:      c.rec.SubDomain(),
			Keywords:       c.rec.KeywordsCapped(5),
			Date:           c.date,
			Messages:       c.rec.TotalMessages(),
			UserWords:      c.userWords,
			AssistantWords: c.assistantWords,
			TotalWords:     c.userWords + c.assistantWords,
		}
	}
	return out
}

func topByMessages(convs []*conv) []VolumeConv {
	stats := volumeStats(convs)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Messages > stats[j].Messages })
	if len(stats) > 3 {
		stats = stats[:3]
	}
	return stats
}

func topByWords(convs []*conv) []VolumeConv {
	stats := volumeStats(convs)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].TotalWords > stats[j].TotalWords })
	if len(stats) > 3 {
		stats = stats[:3]
	}
	return stats
}
