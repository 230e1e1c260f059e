// Package assistant implements the message-to-action pipeline behind the
// ordering chatbot: deterministic intent classification, direct menu
// filtering, LLM prompt construction, response sanitization, and the
// suggested-action dispatcher.
package assistant

import (
	"regexp"
)

// Intent is a classified category of user text that can be satisfied by a
// deterministic menu filter, without a generative call.
type Intent string

const (
	IntentAllergy         Intent = "allergy"
	IntentVeganVegetarian Intent = "vegan_vegetarian"
	IntentGlutenFree      Intent = "gluten_free"
	IntentNoFish          Intent = "no_fish"
	IntentFish            Intent = "fish"
	IntentPopular         Intent = "popular"
	IntentNone            Intent = ""
)

// intentRule binds an intent to its pattern. Rules are evaluated in slice
// order; the first match wins, which is how precedence is encoded: allergy
// safety outranks every dietary match, and the "no fish" negation must be
// tested before the plain "fish" rule.
type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

var intentRules = []intentRule{
	{IntentAllergy, regexp.MustCompile(`(?i)\b(allerg(y|ies|ic)|peanut|nut|shellfish|dairy|egg|soy|wheat|gluten|sesame|fish)\b`)},
	{IntentVeganVegetarian, regexp.MustCompile(`(?i)\b(vegan|vegetarian)\b`)},
	{IntentGlutenFree, regexp.MustCompile(`(?i)\bgluten[- ]?free\b`)},
	{IntentNoFish, regexp.MustCompile(`(?i)\b(no fish|without fish|no seafood)\b`)},
	{IntentFish, regexp.MustCompile(`(?i)\b(fish|seafood|salmon|tuna)\b`)},
	{IntentPopular, regexp.MustCompile(`(?i)\b(popular|best|recommend|featured|top)\b`)},
}

// Classify maps raw user text to an intent, or IntentNone when no rule
// matches and the turn should fall through to the generative pathway.
func Classify(text string) Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return IntentNone
}
