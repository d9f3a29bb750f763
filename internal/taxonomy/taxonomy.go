// Package taxonomy defines the fixed classification vocabulary used by the
// LLM classifier and consumed by the statistics engine. The taxonomy follows
// MECE principles: each domain carries its own sub-domains plus an "other"
// catch-all, and all scores share a 0-100 scale.
package taxonomy

// Domain names, in taxonomy order.
var Domains = []string{
	"problem_solving",
	"creation",
	"learning",
	"work",
	"life_admin",
	"entertainment",
	"personal_growth",
	"technical_deep",
	"creative_projects",
	"commerce",
}

// SubDomains maps each domain to its sub-domains.
var SubDomains = map[string][]string{
	"problem_solving": {
		"technical", "analytical", "troubleshooting", "decision_support",
		"optimization", "debugging", "other",
	},
	"creation": {
		"writing", "coding", "design", "planning", "ideation",
		"prototyping", "editing", "other",
	},
	"learning": {
		"understanding", "skill_building", "research", "fact_checking",
		"exploration", "comparison", "synthesis", "other",
	},
	"work": {
		"career", "business_ops", "communication", "analysis", "management",
		"strategy", "sales_marketing", "hiring", "other",
	},
	"life_admin": {
		"health", "finance", "travel", "home", "legal", "shopping",
		"bureaucracy", "other",
	},
	"entertainment": {
		"media", "hobbies", "social", "curiosity", "gaming", "sports", "other",
	},
	"personal_growth": {
		"reflection", "productivity", "habits", "mental_models",
		"goal_setting", "self_improvement", "other",
	},
	"technical_deep": {
		"ai_ml", "infrastructure", "data_engineering", "security",
		"architecture", "apis", "blockchain", "other",
	},
	"creative_projects": {
		"storytelling", "visual_art", "music_audio", "content_creation",
		"branding", "worldbuilding", "other",
	},
	"commerce": {
		"product_development", "pricing", "market_research", "fundraising",
		"partnerships", "customer_support", "other",
	},
}

// ConversationTypes classifies the overall shape of a conversation.
var ConversationTypes = []string{
	"quick_lookup", "troubleshooting", "brainstorming", "research",
	"decision_making", "learning", "creative", "coding", "analysis",
	"planning",
}

// RequestTypes classifies what the user asked for. A conversation may carry
// several.
var RequestTypes = []string{
	"question", "task", "review", "comparison", "explanation",
	"recommendation", "validation", "translation", "summarization",
	"generation",
}

// OutcomeTypes describes how a conversation resolved.
var OutcomeTypes = []string{
	"answer_found", "options_generated", "decision_made",
	"understanding_gained", "nothing_concrete", "task_completed", "ongoing",
}

// InformationDirections describes which way knowledge flowed.
var InformationDirections = []string{
	"user_learning", "user_validating", "collaborative", "user_teaching",
}

// UserMoods describes the user's apparent emotional state.
var UserMoods = []string{
	"curious", "frustrated", "excited", "neutral", "confused", "focused",
	"anxious", "playful", "impatient", "skeptical", "overwhelmed", "satisfied",
}

// ConversationTones describes the register of the exchange.
var ConversationTones = []string{
	"formal", "casual", "technical", "playful", "urgent", "educational",
	"collaborative", "inquisitive", "direct", "creative", "analytical",
}

// ConversationFlows describes how the conversation progressed.
var ConversationFlows = []string{
	"smooth", "iterative", "confused", "exploratory", "focused", "branching",
	"deepening", "scattered", "circular", "escalating",
}

// SubDomainsFor returns the sub-domains for a domain, or the catch-all when
// the domain is not part of the taxonomy.
func SubDomainsFor(domain string) []string {
	if subs, ok := SubDomains[domain]; ok {
		return subs
	}
	return []string{"other"}
}
