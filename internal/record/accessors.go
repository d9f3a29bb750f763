package record

import "time"

// Default tokens published in percentage tables when a classification field
// is absent. These are part of the output contract.
const (
	DefaultDomain    = "unknown"
	DefaultSubDomain = "other"
	DefaultType      = "unknown"
	DefaultFlow      = "unknown"
	DefaultMood      = "neutral"
	DefaultTone      = "casual"
	DefaultOutcome   = "unknown"
	DefaultDirection = "user_learning"
	DefaultModel     = "unknown"
)

const timestampLayout = "2006-01-02T15:04:05.999999999"

// ParsedCreatedTime parses the record's creation timestamp. The second return
// is false when the timestamp is missing or unparseable.
func (r *Record) ParsedCreatedTime() (time.Time, bool) {
	raw := r.Timestamps.CreatedAt
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(timestampLayout, raw, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreatedTime resolves the creation timestamp, falling back to now so that
// undated records still land in a date bucket.
func (r *Record) CreatedTime(now time.Time) time.Time {
	if t, ok := r.ParsedCreatedTime(); ok {
		return t
	}
	return now
}

// SortKey is the raw creation timestamp string; lexicographic order on the
// ISO format is chronological, and records missing a timestamp sort first.
func (r *Record) SortKey() string {
	return r.Timestamps.CreatedAt
}

// --- meta accessors ---

// TotalMessages returns the message count, zero when meta is absent.
func (r *Record) TotalMessages() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.TotalMessages
}

// TotalTokens returns the combined token estimate.
func (r *Record) TotalTokens() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.TotalTokens
}

// UserTokens returns the user-authored token estimate.
func (r *Record) UserTokens() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.UserTokens
}

// AssistantTokens returns the assistant-authored token estimate.
func (r *Record) AssistantTokens() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.AssistantTokens
}

// WordCount returns the conversation word count.
func (r *Record) WordCount() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.WordCount
}

// RoleMessageCount returns the message count for one role.
func (r *Record) RoleMessageCount(role string) int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.MessagesByRole[role]
}

// ImageCount returns the number of image attachments.
func (r *Record) ImageCount() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.ImageCount
}

// AudioCount returns the number of audio attachments.
func (r *Record) AudioCount() int {
	if r.Meta == nil {
		return 0
	}
	return r.Meta.AudioCount
}

// IsVoice reports whether the conversation happened in voice mode.
func (r *Record) IsVoice() bool {
	return r.Meta != nil && r.Meta.IsVoiceConversation
}

// PrimaryModel returns the conversation's model slug, or "unknown".
func (r *Record) PrimaryModel() string {
	if r.Meta == nil || r.Meta.PrimaryModel == "" {
		return DefaultModel
	}
	return r.Meta.PrimaryModel
}

// --- llm_meta accessors ---

// Domain returns the classified domain, or "unknown".
func (r *Record) Domain() string {
	if r.LLMMeta == nil || r.LLMMeta.Domain == "" {
		return DefaultDomain
	}
	return r.LLMMeta.Domain
}

// SubDomain returns the classified sub-domain, or "other".
func (r *Record) SubDomain() string {
	if r.LLMMeta == nil || r.LLMMeta.SubDomain == "" {
		return DefaultSubDomain
	}
	return r.LLMMeta.SubDomain
}

// ConversationType returns the classified type, or "unknown".
func (r *Record) ConversationType() string {
	if r.LLMMeta == nil || r.LLMMeta.ConversationType == "" {
		return DefaultType
	}
	return r.LLMMeta.ConversationType
}

// RequestTypes returns the classified request types; may be empty.
func (r *Record) RequestTypes() []string {
	if r.LLMMeta == nil {
		return nil
	}
	return r.LLMMeta.RequestTypes
}

// Flow returns the conversation flow, or "unknown".
func (r *Record) Flow() string {
	if r.LLMMeta == nil || r.LLMMeta.ConversationFlow == "" {
		return DefaultFlow
	}
	return r.LLMMeta.ConversationFlow
}

// Mood returns the user mood, or "neutral".
func (r *Record) Mood() string {
	if r.LLMMeta == nil || r.LLMMeta.UserMood == "" {
		return DefaultMood
	}
	return r.LLMMeta.UserMood
}

// Tone returns the conversation tone, or "casual".
func (r *Record) Tone() string {
	if r.LLMMeta == nil || r.LLMMeta.ConversationTone == "" {
		return DefaultTone
	}
	return r.LLMMeta.ConversationTone
}

// Outcome returns the outcome type, or "unknown".
func (r *Record) Outcome() string {
	if r.LLMMeta == nil || r.LLMMeta.OutcomeType == "" {
		return DefaultOutcome
	}
	return r.LLMMeta.OutcomeType
}

// Direction returns the information direction, or "user_learning".
func (r *Record) Direction() string {
	if r.LLMMeta == nil || r.LLMMeta.InformationDirection == "" {
		return DefaultDirection
	}
	return r.LLMMeta.InformationDirection
}

// Summary returns the one-line summary; may be empty.
func (r *Record) Summary() string {
	if r.LLMMeta == nil {
		return ""
	}
	return r.LLMMeta.OneLineSummary
}

// KeywordsCapped returns at most n keywords.
func (r *Record) KeywordsCapped(n int) []string {
	if r.LLMMeta == nil {
		return nil
	}
	kw := r.LLMMeta.Keywords
	if len(kw) > n {
		kw = kw[:n]
	}
	return kw
}

// Score returns a quality score by its published field name. The second
// return is false when the score is absent; absent scores are excluded from
// samples, never treated as zero.
func (r *Record) Score(field string) (int, bool) {
	if r.LLMMeta == nil {
		return 0, false
	}
	var p *int
	switch field {
	case "inferred_future_relevance_score":
		p = r.LLMMeta.RelevanceScore
	case "urgency_score":
		p = r.LLMMeta.UrgencyScore
	case "complexity_score":
		p = r.LLMMeta.ComplexityScore
	case "information_density":
		p = r.LLMMeta.InformationDensity
	case "depth_of_engagement":
		p = r.LLMMeta.DepthOfEngagement
	case "user_satisfaction_inferred":
		p = r.LLMMeta.UserSatisfaction
	case "user_request_quality_inferred":
		p = r.LLMMeta.RequestQuality
	case "ai_response_quality_score":
		p = r.LLMMeta.ResponseQuality
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SerendipityPublic returns the vs-general-public score.
func (r *Record) SerendipityPublic() (int, bool) {
	if r.LLMMeta == nil || r.LLMMeta.SerendipityPublic == nil {
		return 0, false
	}
	return *r.LLMMeta.SerendipityPublic, true
}

// SerendipityPower returns the vs-power-users score.
func (r *Record) SerendipityPower() (int, bool) {
	if r.LLMMeta == nil || r.LLMMeta.SerendipityPower == nil {
		return 0, false
	}
	return *r.LLMMeta.SerendipityPower, true
}

// Entities returns a named entity list from the classification block.
func (r *Record) Entities(kind string) []string {
	if r.LLMMeta == nil {
		return nil
	}
	switch kind {
	case "keywords":
		return r.LLMMeta.Keywords
	case "people":
		return r.LLMMeta.EntitiesPeople
	case "companies":
		return r.LLMMeta.EntitiesCompanies
	case "products":
		return r.LLMMeta.EntitiesProducts
	case "places":
		return r.LLMMeta.EntitiesPlaces
	case "technologies":
		return r.LLMMeta.Technologies
	case "concepts":
		return r.LLMMeta.Concepts
	}
	return nil
}
