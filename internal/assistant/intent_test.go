package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"explicit allergy", "I'm allergic to peanuts", IntentAllergy},
		{"allergy noun", "do you have allergy info?", IntentAllergy},
		{"allergen keyword", "does the gyoza contain soy?", IntentAllergy},
		{"vegan", "show me vegan dishes", IntentVeganVegetarian},
		{"vegetarian uppercase", "ANY VEGETARIAN OPTIONS?", IntentVeganVegetarian},
		{"popular", "what's your most popular dish", IntentPopular},
		{"recommend", "what do you recommend?", IntentPopular},
		{"salmon", "got any salmon?", IntentFish},
		{"seafood", "I'd love some seafood", IntentFish},
		{"no seafood", "something with no seafood please", IntentNoFish},
		{"no match", "tell me about your restaurant", IntentNone},
		{"empty", "", IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

// The allergy rule's keyword set includes individual allergens, so several
// dietary phrasings route to the safety notice instead of the matching
// filter. First match wins and allergy is first.
func TestClassifyAllergyPrecedence(t *testing.T) {
	assert.Equal(t, IntentAllergy, Classify("gluten free options?"))
	assert.Equal(t, IntentAllergy, Classify("no fish for me"))
	assert.Equal(t, IntentAllergy, Classify("is the tuna roll dairy free?"))
	assert.Equal(t, IntentAllergy, Classify("I'm vegan and allergic to nuts"))
	assert.Equal(t, IntentAllergy, Classify("any fish dishes?"))
}

// "seafood" is not an allergy keyword, so the negated form is the one query
// shape that still reaches the no-fish filter.
func TestClassifyNoFishReachableOnlyViaSeafood(t *testing.T) {
	assert.Equal(t, IntentNoFish, Classify("no seafood today"))
	assert.Equal(t, IntentAllergy, Classify("without fish please"))
}
