// Package record defines the enriched conversation record: the unit of data
// flowing through the pipeline. A record combines the raw message tree from
// the export with the computed meta block (message, token and media stats)
// and the llm_meta block produced by the classifier.
//
// Records are immutable once loaded. Every lookup into meta or llm_meta goes
// through the accessor layer in accessors.go, which turns missing fields into
// documented defaults instead of scattering fallbacks through the statistics
// engine.
package record

// Record is one enriched conversation.
type Record struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Timestamps Timestamps `json:"timestamps"`
	Meta       *Meta      `json:"meta,omitempty"`
	LLMMeta    *LLMMeta   `json:"llm_meta,omitempty"`
	IsArchived bool       `json:"is_archived"`
	IsStarred  *bool      `json:"is_starred,omitempty"`

	// Mapping is the raw per-message tree. The aggregator only uses it to
	// re-derive individual message texts and word counts.
	Mapping map[string]Node `json:"mapping"`

	SafeURLs []string `json:"safe_urls,omitempty"`
	GizmoID  *string  `json:"gizmo_id,omitempty"`
}

// Timestamps carries both human-readable and unix forms of the conversation
// creation and update times. CreatedAt is the authoritative ordering key.
type Timestamps struct {
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	CreatedUnix *float64 `json:"created_unix,omitempty"`
	UpdatedUnix *float64 `json:"updated_unix,omitempty"`
}

// Meta holds conversation-level statistics computed by the unroll stage.
type Meta struct {
	TotalMessages       int            `json:"total_messages"`
	MessagesByRole      map[string]int `json:"messages_by_role"`
	TotalTokens         int            `json:"total_tokens"`
	UserTokens          int            `json:"user_tokens"`
	AssistantTokens     int            `json:"assistant_tokens"`
	TokensByRole        map[string]int `json:"tokens_by_role,omitempty"`
	ModelsUsed          []string       `json:"models_used,omitempty"`
	PrimaryModel        string         `json:"primary_model,omitempty"`
	DurationSeconds     *float64       `json:"duration_seconds"`
	DurationHuman       *string        `json:"duration_human"`
	WordCount           int            `json:"word_count"`
	HasImages           bool           `json:"has_images"`
	HasAudio            bool           `json:"has_audio"`
	ImageCount          int            `json:"image_count"`
	AudioCount          int            `json:"audio_count"`
	IsVoiceConversation bool           `json:"is_voice_conversation"`
	VoiceName           *string        `json:"voice_name,omitempty"`
}

// LLMMeta holds the classification output. Score fields are pointers: absent
// scores are excluded from statistics, never coerced to zero.
type LLMMeta struct {
	Domain           string   `json:"domain,omitempty"`
	SubDomain        string   `json:"sub_domain,omitempty"`
	ConversationType string   `json:"conversation_type,omitempty"`
	RequestTypes     []string `json:"request_types,omitempty"`

	RelevanceScore     *int `json:"inferred_future_relevance_score,omitempty"`
	UrgencyScore       *int `json:"urgency_score,omitempty"`
	ComplexityScore    *int `json:"complexity_score,omitempty"`
	InformationDensity *int `json:"information_density,omitempty"`
	DepthOfEngagement  *int `json:"depth_of_engagement,omitempty"`
	UserSatisfaction   *int `json:"user_satisfaction_inferred,omitempty"`
	RequestQuality     *int `json:"user_request_quality_inferred,omitempty"`
	ResponseQuality    *int `json:"ai_response_quality_score,omitempty"`

	SerendipityPublic *int `json:"serendipity_vs_general_public,omitempty"`
	SerendipityPower  *int `json:"serendipity_vs_power_users,omitempty"`

	ConversationFlow     string `json:"conversation_flow,omitempty"`
	UserMood             string `json:"user_mood,omitempty"`
	ConversationTone     string `json:"conversation_tone,omitempty"`
	OutcomeType          string `json:"outcome_type,omitempty"`
	InformationDirection string `json:"information_direction,omitempty"`
	OneLineSummary       string `json:"one_line_summary,omitempty"`

	Keywords          []string `json:"keywords,omitempty"`
	EntitiesPeople    []string `json:"entities_people,omitempty"`
	EntitiesCompanies []string `json:"entities_companies,omitempty"`
	EntitiesProducts  []string `json:"entities_products,omitempty"`
	EntitiesPlaces    []string `json:"entities_places,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
	Concepts          []string `json:"concepts,omitempty"`
}
