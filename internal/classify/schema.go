package classify

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"chatwrapped/internal/record"
)

// classification is the structured output contract for the model. Every
// field is required so strict schema mode can validate the response.
type classification struct {
	Domain           string   `json:"domain" jsonschema:"required"`
	SubDomain        string   `json:"sub_domain" jsonschema:"required"`
	ConversationType string   `json:"conversation_type" jsonschema:"required"`
	RequestTypes     []string `json:"request_types" jsonschema:"required"`

	RelevanceScore     int `json:"inferred_future_relevance_score" jsonschema:"required"`
	UrgencyScore       int `json:"urgency_score" jsonschema:"required"`
	ComplexityScore    int `json:"complexity_score" jsonschema:"required"`
	InformationDensity int `json:"information_density" jsonschema:"required"`
	DepthOfEngagement  int `json:"depth_of_engagement" jsonschema:"required"`
	UserSatisfaction   int `json:"user_satisfaction_inferred" jsonschema:"required"`
	RequestQuality     int `json:"user_request_quality_inferred" jsonschema:"required"`
	ResponseQuality    int `json:"ai_response_quality_score" jsonschema:"required"`

	SerendipityPublic int `json:"serendipity_vs_general_public" jsonschema:"required"`
	SerendipityPower  int `json:"serendipity_vs_power_users" jsonschema:"required"`

	ConversationFlow     string `json:"conversation_flow" jsonschema:"required"`
	UserMood             string `json:"user_mood" jsonschema:"required"`
	ConversationTone     string `json:"conversation_tone" jsonschema:"required"`
	OutcomeType          string `json:"outcome_type" jsonschema:"required"`
	InformationDirection string `json:"information_direction" jsonschema:"required"`
	OneLineSummary       string `json:"one_line_summary" jsonschema:"required"`

	Keywords          []string `json:"keywords" jsonschema:"required"`
	EntitiesPeople    []string `json:"entities_people" jsonschema:"required"`
	EntitiesCompanies []string `json:"entities_companies" jsonschema:"required"`
	EntitiesProducts  []string `json:"entities_products" jsonschema:"required"`
	EntitiesPlaces    []string `json:"entities_places" jsonschema:"required"`
	Technologies      []string `json:"technologies" jsonschema:"required"`
	Concepts          []string `json:"concepts" jsonschema:"required"`
}

var classificationSchema = generateSchema[classification]()

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	raw, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

// toLLMMeta converts the model response into the stored block. Scores become
// pointers: a stored block always carries them, but older or hand-edited
// files may not, and the aggregation layer treats absent as excluded.
func (cl *classification) toLLMMeta() *record.LLMMeta {
	return &record.LLMMeta{
		Domain:           cl.Domain,
		SubDomain:        cl.SubDomain,
		ConversationType: cl.ConversationType,
		RequestTypes:     cl.RequestTypes,

		RelevanceScore:     intPtr(cl.RelevanceScore),
		UrgencyScore:       intPtr(cl.UrgencyScore),
		ComplexityScore:    intPtr(cl.ComplexityScore),
		InformationDensity: intPtr(cl.InformationDensity),
		DepthOfEngagement:  intPtr(cl.DepthOfEngagement),
		UserSatisfaction:   intPtr(cl.UserSatisfaction),
		RequestQuality:     intPtr(cl.RequestQuality),
		ResponseQuality:    intPtr(cl.ResponseQuality),

		SerendipityPublic: intPtr(cl.SerendipityPublic),
		SerendipityPower:  intPtr(cl.SerendipityPower),

		ConversationFlow:     cl.ConversationFlow,
		UserMood:             cl.UserMood,
		ConversationTone:     cl.ConversationTone,
		OutcomeType:          cl.OutcomeType,
		InformationDirection: cl.InformationDirection,
		OneLineSummary:       cl.OneLineSummary,

		Keywords:          cl.Keywords,
		EntitiesPeople:    cl.EntitiesPeople,
		EntitiesCompanies: cl.EntitiesCompanies,
		EntitiesProducts:  cl.EntitiesProducts,
		EntitiesPlaces:    cl.EntitiesPlaces,
		Technologies:      cl.Technologies,
		Concepts:          cl.Concepts,
	}
}

func intPtr(v int) *int { return &v }
