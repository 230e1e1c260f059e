package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateworks/storefront/internal/model"
)

func TestNewSessionSeedsGreeting(t *testing.T) {
	sess := newTestSession("")

	transcript := sess.Transcript()
	require.Len(t, transcript, 1)
	greeting := transcript[0]
	assert.Equal(t, model.RoleAssistant, greeting.Role)
	assert.Contains(t, greeting.Content, "Hi! Welcome to Sakura Sushi House! 👋")
	assert.Contains(t, greeting.Content, "Japanese dishes")

	require.Len(t, greeting.SuggestedActions, 3)
	assert.Equal(t, model.ActionShowFeatured, greeting.SuggestedActions[0].Action)
	assert.Equal(t, model.ActionShowMenu, greeting.SuggestedActions[1].Action)
	assert.Equal(t, model.ActionGetRecommendation, greeting.SuggestedActions[2].Action)
}

func TestSessionResetKeepsCart(t *testing.T) {
	sess := newTestSession("user-1")
	sess.Append(sess.NewUserMessage("hello"))
	sess.Cart.Add(model.CartLine{MenuItemID: "item-veggie", Name: "Veggie Roll", Price: 8.50, Quantity: 1})

	sess.Reset()
	require.Len(t, sess.Transcript(), 1)
	assert.Equal(t, 1, sess.Cart.ItemCount())
}

func TestPendingItemMessage(t *testing.T) {
	sess := newTestSession("")
	item := sess.Catalog.ItemByID("item-veggie")
	require.NotNil(t, item)

	msg := sess.PendingItemMessage(*item)
	assert.Contains(t, msg.Content, "You've selected Veggie Roll.")
	require.Len(t, msg.MenuItems, 1)
	require.Len(t, msg.SuggestedActions, 3)
	assert.Equal(t, model.ActionAddItem, msg.SuggestedActions[0].Action)
	assert.Equal(t, model.ActionShowCategory, msg.SuggestedActions[1].Action)
}

func TestTranscriptReturnsCopy(t *testing.T) {
	sess := newTestSession("")
	first := sess.Transcript()
	first[0].Content = "mutated"
	assert.NotEqual(t, "mutated", sess.Transcript()[0].Content)
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess := newTestSession("")
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}
