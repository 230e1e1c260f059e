package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// directFilterLimit bounds direct-filter results. Some fallback paths use
// smaller limits on purpose; those constants live at their call sites.
const directFilterLimit = 12

// seafoodPattern is the keyword set shared by the fish and no-fish filters,
// matched against item name + description.
var seafoodPattern = regexp.MustCompile(`(?i)fish|salmon|tuna|shrimp|crab|lobster|seafood|sashimi|nigiri|eel`)

var (
	veganTagPattern  = regexp.MustCompile(`(?i)vegan|vegetarian`)
	glutenTagPattern = regexp.MustCompile(`(?i)gluten`)
)

func anyTagMatches(tags []string, pattern *regexp.Regexp) bool {
	for _, tag := range tags {
		if pattern.MatchString(tag) {
			return true
		}
	}
	return false
}

func mentionsSeafood(item model.MenuItem) bool {
	return seafoodPattern.MatchString(item.Name + " " + item.Description)
}

// DirectFilter deterministically resolves an intent against the catalog:
// same snapshot and same intent always yield the same ordered item list.
// Returns the fixed intro sentence and up to 12 matches in catalog order.
// An empty result means the caller should fall through to the generative
// pathway. IntentAllergy never reaches here; it short-circuits the turn
// before filtering (see AllergyNotice).
func DirectFilter(intent Intent, snap *catalog.Snapshot) (string, []model.MenuItem) {
	available := snap.Available()

	var intro string
	var matched []model.MenuItem

	switch intent {
	case IntentVeganVegetarian:
		intro = "Here are our vegan and vegetarian options:"
		for _, item := range available {
			if anyTagMatches(item.DietaryTags, veganTagPattern) {
				matched = append(matched, item)
			}
		}
	case IntentGlutenFree:
		intro = "Here are our gluten-free options:"
		for _, item := range available {
			if anyTagMatches(item.DietaryTags, glutenTagPattern) {
				matched = append(matched, item)
			}
		}
	case IntentNoFish:
		intro = "Here are our dishes without fish:"
		for _, item := range available {
			if !mentionsSeafood(item) {
				matched = append(matched, item)
			}
		}
	case IntentFish:
		intro = "Here are our fish options:"
		for _, item := range available {
			if mentionsSeafood(item) {
				matched = append(matched, item)
			}
		}
	case IntentPopular:
		intro = "Here are our most popular dishes:"
		for _, item := range available {
			if item.IsFeatured {
				matched = append(matched, item)
			}
		}
	default:
		return "", nil
	}

	return intro, catalog.Truncate(matched, directFilterLimit)
}

// AllergyNotice is the mandatory allergy-safety script, emitted verbatim with
// the restaurant phone substituted whenever the allergy intent fires. The
// generative pathway carries its own copy of this instruction as a fallback
// for queries the classifier misses; the classified path never paraphrases.
func AllergyNotice(phone string) string {
	if strings.TrimSpace(phone) == "" {
		phone = "the restaurant"
	}
	return fmt.Sprintf("⚠️ IMPORTANT ALLERGY NOTICE\n\n"+
		"I understand you have allergy concerns. For your safety, please contact us directly at %s to speak with our staff about:\n\n"+
		"• Specific allergen information\n"+
		"• Cross-contamination risks\n"+
		"• Ingredient details\n"+
		"• Kitchen preparation methods\n\n"+
		"While I can show you our menu items, **I cannot guarantee** any dish is completely safe for severe allergies. "+
		"We recommend calling us before placing your order so our team can guide you on safe options and ensure proper kitchen precautions.\n\n"+
		"Would you like to see our menu while you discuss safe options with our team?", phone)
}
