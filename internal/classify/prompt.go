package classify

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"chatwrapped/internal/record"
	"chatwrapped/internal/taxonomy"
)

const promptTemplate = `You are a conversation metadata extractor. Given one full conversation
between a user and an AI assistant, extract a single JSON object of metadata.

## Taxonomy

Classify the conversation into exactly one domain and one of its sub-domains.
Use the sub-domain "other" when nothing fits.

%s

## Categorical fields

- conversation_type: one of %s
- request_types: one or more of %s
- conversation_flow: one of %s
- user_mood: one of %s
- conversation_tone: one of %s
- outcome_type: one of %s
- information_direction: one of %s

## Scores

All scores are integers from 0 to 100.

- inferred_future_relevance_score: how useful for future reference
- urgency_score: how time-sensitive the query was
- complexity_score: technical depth required
- information_density: signal vs noise ratio
- depth_of_engagement: user effort and investment
- user_satisfaction_inferred: how satisfied the user seemed
- user_request_quality_inferred: how clear the ask was
- ai_response_quality_score: how good the AI responses were
- serendipity_vs_general_public: how unusual this conversation is compared
  to what the general public asks an AI
- serendipity_vs_power_users: how unusual compared to heavy AI users

## Entities

- one_line_summary: one sentence, no trailing period
- keywords: 5-10 short topical keywords, most important first
- entities_people, entities_companies, entities_products, entities_places:
  proper nouns actually discussed; empty lists when none
- technologies: languages, frameworks, tools, protocols
- concepts: abstract ideas and techniques discussed`

var (
	promptOnce   sync.Once
	promptCached string
)

// systemPrompt renders the extraction instructions with the full taxonomy.
func systemPrompt() string {
	promptOnce.Do(func() {
		var b strings.Builder
		for _, domain := range taxonomy.Domains {
			fmt.Fprintf(&b, "**%s**\n", domain)
			for _, sub := range taxonomy.SubDomainsFor(domain) {
				fmt.Fprintf(&b, "  - `%s`\n", sub)
			}
			b.WriteString("\n")
		}

		list := func(values []string) string { return strings.Join(values, ", ") }
		promptCached = fmt.Sprintf(promptTemplate,
			strings.TrimRight(b.String(), "\n"),
			list(taxonomy.ConversationTypes),
			list(taxonomy.RequestTypes),
			list(taxonomy.ConversationFlows),
			list(taxonomy.UserMoods),
			list(taxonomy.ConversationTones),
			list(taxonomy.OutcomeTypes),
			list(taxonomy.InformationDirections),
		)
	})
	return promptCached
}

// userPrompt wraps the rendered transcript for one conversation.
func userPrompt(rec *record.Record) string {
	return fmt.Sprintf(`Analyze this conversation and extract metadata:

---
%s
---

Return ONLY the JSON object with extracted metadata. No markdown formatting.`, transcript(rec))
}

// transcript renders the conversation as readable text: a metadata header
// followed by the messages in time order. Hidden messages are dropped and
// non-text parts are replaced with bracketed markers.
func transcript(rec *record.Record) string {
	var lines []string
	divider := strings.Repeat("=", 60)

	lines = append(lines, divider, "CONVERSATION METADATA", divider)
	title := rec.Title
	if title == "" {
		title = "Untitled"
	}
	lines = append(lines, "Title: "+title)
	if rec.Timestamps.CreatedAt != "" {
		lines = append(lines, "Created: "+rec.Timestamps.CreatedAt)
	}
	if rec.Timestamps.UpdatedAt != "" {
		lines = append(lines, "Updated: "+rec.Timestamps.UpdatedAt)
	}
	if rec.Meta != nil {
		if rec.Meta.PrimaryModel != "" {
			lines = append(lines, "Default Model: "+rec.Meta.PrimaryModel)
		}
		if rec.Meta.IsVoiceConversation && rec.Meta.VoiceName != nil {
			lines = append(lines, "Voice Mode: "+*rec.Meta.VoiceName)
		}
	}
	if rec.IsArchived {
		lines = append(lines, "Status: ARCHIVED")
	}
	lines = append(lines, "", divider, "MESSAGES", divider, "")

	type rendered struct {
		header string
		text   string
		at     float64
		key    string
	}
	var messages []rendered
	for key, node := range rec.Mapping {
		msg := node.Message
		if msg == nil || msg.Metadata.IsVisuallyHidden {
			continue
		}
		text := renderParts(msg.Content.Parts)
		if text == "" {
			continue
		}

		role := msg.Author.Role
		if role == "" {
			role = "unknown"
		}
		header := "[" + strings.ToUpper(role) + "]"
		if msg.Metadata.ModelSlug != "" {
			header += " (model=" + msg.Metadata.ModelSlug + ")"
		}

		at := 0.0
		if msg.CreateTime != nil {
			at = *msg.CreateTime
		}
		messages = append(messages, rendered{header: header, text: text, at: at, key: key})
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].at != messages[j].at {
			return messages[i].at < messages[j].at
		}
		return messages[i].key < messages[j].key
	})

	for _, m := range messages {
		lines = append(lines, m.header, m.text, "")
	}

	out := strings.Join(lines, "\n")
	if len(out) > maxTranscriptChars {
		out = out[:maxTranscriptChars] + "\n\n[CONVERSATION TRUNCATED]"
	}
	return out
}

func renderParts(parts []record.Part) string {
	var texts []string
	for _, part := range parts {
		switch {
		case part.IsText():
			texts = append(texts, part.Text)
		case part.ContentType == "audio_transcription":
			texts = append(texts, "[AUDIO TRANSCRIPTION]\n"+part.Text)
		case part.ContentType == "image_asset_pointer":
			texts = append(texts, "[IMAGE]")
		case part.Text != "":
			texts = append(texts, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}
