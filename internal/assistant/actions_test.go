package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateworks/storefront/internal/model"
)

func rawString(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

func TestDispatchAddItemRequiresAuth(t *testing.T) {
	sess := newTestSession("")

	result := Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Please sign in to add items to your cart and place orders.", result.Messages[0].Content)
	assert.True(t, sess.Cart.IsEmpty())

	actions := result.Messages[0].SuggestedActions
	require.Len(t, actions, 2)
	assert.Equal(t, model.ActionShowAuth, actions[0].Action)
	assert.Equal(t, model.ActionShowMenu, actions[1].Action)
}

func TestDispatchAddItemEchoesUserAndConfirms(t *testing.T) {
	sess := newTestSession("user-1")

	result := Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))
	require.Len(t, result.Messages, 2)

	assert.Equal(t, model.RoleUser, result.Messages[0].Role)
	assert.Equal(t, "Add Veggie Roll to my cart", result.Messages[0].Content)

	confirm := result.Messages[1]
	assert.Equal(t, model.RoleAssistant, confirm.Role)
	assert.Contains(t, confirm.Content, "Perfect! I've added Veggie Roll ($8.50) to your cart.")
	assert.Contains(t, confirm.Content, "You now have 1 item totaling $8.50.")

	assert.Equal(t, 1, sess.Cart.ItemCount())
	assert.True(t, sess.Cart.Contains("item-veggie"))
}

func TestDispatchAddItemWithQuantity(t *testing.T) {
	sess := newTestSession("user-1")

	payload, _ := json.Marshal(model.ItemQuantityPayload{ItemID: "item-gyoza", Quantity: 3})
	result := Dispatch(sess, model.ActionAddItemWithQty, payload)
	require.Len(t, result.Messages, 2)

	assert.Equal(t, "Add 3 Gyozas to my cart", result.Messages[0].Content)
	assert.Contains(t, result.Messages[1].Content, "I've added 3 Gyozas ($23.85)")
	assert.Equal(t, 3, sess.Cart.ItemCount())
}

func TestDispatchAddItemUnknownIDIsNoOp(t *testing.T) {
	sess := newTestSession("user-1")

	result := Dispatch(sess, model.ActionAddItem, rawString("item-nope"))
	assert.Empty(t, result.Messages)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestUpsellSuggestsMissingCategories(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))

	upsells := UpsellItems(sess)
	// Two beverages, then the featured appetizer; the dessert falls off the
	// three item cap.
	assert.Equal(t, []string{"Green Tea", "Ramune Soda", "Gyoza"}, itemNames(upsells))
}

func TestUpsellSkipsCoveredCategories(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-tea"))

	upsells := UpsellItems(sess)
	// Beverage already in cart; only the featured appetizer and dessert left.
	assert.Equal(t, []string{"Gyoza", "Mochi Ice Cream"}, itemNames(upsells))
}

func TestUpsellEmptyCart(t *testing.T) {
	sess := newTestSession("user-1")
	assert.Empty(t, UpsellItems(sess))
}

func TestDispatchPlaceOrderRequiresAuth(t *testing.T) {
	sess := newTestSession("")

	result := Dispatch(sess, model.ActionPlaceOrder, nil)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Please sign in to place your order.", result.Messages[0].Content)
	require.Len(t, result.Messages[0].SuggestedActions, 1)
	assert.Equal(t, model.ActionShowAuth, result.Messages[0].SuggestedActions[0].Action)
	assert.Nil(t, result.Order)
}

func TestDispatchPlaceOrderEmptyCart(t *testing.T) {
	sess := newTestSession("user-1")

	result := Dispatch(sess, model.ActionPlaceOrder, nil)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Your cart is empty. Let me help you find something delicious!", result.Messages[0].Content)
	assert.Nil(t, result.Order)
}

func TestDispatchPlaceOrderOffersUpsellsBeforeFinalizing(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))

	result := Dispatch(sess, model.ActionPlaceOrder, nil)
	require.Len(t, result.Messages, 2)
	assert.Nil(t, result.Order)

	offer := result.Messages[1]
	assert.Contains(t, offer.Content, "Before you check out")
	assert.NotEmpty(t, offer.MenuItems)
	require.Len(t, offer.SuggestedActions, 2)
	assert.Equal(t, "No Thanks, Place Order", offer.SuggestedActions[0].Label)
	assert.Equal(t, model.ActionConfirmOrder, offer.SuggestedActions[0].Action)

	// Cart untouched until the customer confirms.
	assert.Equal(t, 1, sess.Cart.ItemCount())
}

func TestDispatchConfirmOrderFinalizes(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))

	result := Dispatch(sess, model.ActionConfirmOrder, nil)
	require.NotNil(t, result.Order)
	assert.Equal(t, "rest-1", result.Order.RestaurantID)
	assert.Equal(t, "user-1", result.Order.CustomerID)
	assert.Equal(t, 2, result.Order.ItemCount)
	assert.InDelta(t, 17.00, result.Order.Total, 0.001)
	assert.Equal(t, model.OrderReceived, result.Order.Status)
	require.Len(t, result.Order.Lines, 1)
	assert.Equal(t, 2, result.Order.Lines[0].Quantity)

	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0].Content, "Your order of 2 items totaling $17.00 has been received.")
	assert.Contains(t, result.Messages[0].Content, "Estimated preparation time: 20-30 minutes")

	assert.True(t, sess.Cart.IsEmpty())
	assert.Zero(t, sess.Cart.Total())
}

func TestDispatchPlaceOrderFinalizesDirectlyWithoutUpsells(t *testing.T) {
	sess := newTestSession("user-1")
	// Cover beverage, appetizer and dessert categories so no category upsell
	// fires; Spicy Tuna Roll is over the small ticket price cap and Veggie
	// Roll is the one cheap keyword match left.
	Dispatch(sess, model.ActionAddItem, rawString("item-tea"))
	Dispatch(sess, model.ActionAddItem, rawString("item-gyoza"))
	Dispatch(sess, model.ActionAddItem, rawString("item-mochi"))
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))

	result := Dispatch(sess, model.ActionPlaceOrder, nil)
	require.NotNil(t, result.Order)
	assert.Equal(t, 4, result.Order.ItemCount)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestSmallTicketCheckoutOffer(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-tea"))
	Dispatch(sess, model.ActionAddItem, rawString("item-gyoza"))
	Dispatch(sess, model.ActionAddItem, rawString("item-mochi"))

	result := Dispatch(sess, model.ActionPlaceOrder, nil)
	require.Len(t, result.Messages, 2)
	assert.Nil(t, result.Order)

	// Category upsells are exhausted; the cheap keyword items carry the
	// offer. The unavailable roll never appears.
	assert.Equal(t, []string{"Veggie Roll"}, itemNames(result.Messages[1].MenuItems))
}

func TestDispatchClearCart(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))

	result := Dispatch(sess, model.ActionClearCart, nil)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Clear my cart", result.Messages[0].Content)
	assert.Contains(t, result.Messages[1].Content, "Your cart has been cleared.")
	assert.True(t, sess.Cart.IsEmpty())
}

func TestDispatchClearCartAlreadyEmpty(t *testing.T) {
	sess := newTestSession("user-1")

	result := Dispatch(sess, model.ActionClearCart, nil)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Your cart is already empty.", result.Messages[0].Content)
}

func TestDispatchShowCartListsLinesAndTotal(t *testing.T) {
	sess := newTestSession("user-1")
	Dispatch(sess, model.ActionAddItem, rawString("item-veggie"))
	payload, _ := json.Marshal(model.ItemQuantityPayload{ItemID: "item-gyoza", Quantity: 2})
	Dispatch(sess, model.ActionAddItemWithQty, payload)

	result := Dispatch(sess, model.ActionShowCart, nil)
	require.Len(t, result.Messages, 1)
	content := result.Messages[0].Content
	assert.Contains(t, content, "1. Veggie Roll")
	assert.Contains(t, content, "2. Gyoza")
	assert.Contains(t, content, "Qty: 2 × $7.95 = $15.90")
	assert.Contains(t, content, "Total: $24.40")
	assert.Contains(t, content, "Ready to place your order?")
}

func TestDispatchShowCartEmpty(t *testing.T) {
	sess := newTestSession("user-1")

	result := Dispatch(sess, model.ActionShowCart, nil)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Your cart is empty. Let me help you find something delicious!", result.Messages[0].Content)
}

func TestDispatchBrowseActions(t *testing.T) {
	sess := newTestSession("")

	result := Dispatch(sess, model.ActionShowFeatured, nil)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, []string{"Gyoza", "Spicy Tuna Roll", "Salmon Nigiri", "Mochi Ice Cream"}, itemNames(result.Messages[0].MenuItems))

	result = Dispatch(sess, model.ActionShowAllItems, nil)
	require.Len(t, result.Messages, 1)
	assert.Len(t, result.Messages[0].MenuItems, len(sess.Catalog.Items))

	result = Dispatch(sess, model.ActionShowCategory, rawString("cat-bev"))
	require.Len(t, result.Messages, 1)
	assert.Equal(t, []string{"Green Tea", "Ramune Soda"}, itemNames(result.Messages[0].MenuItems))
}

func TestDispatchGetRecommendationReplaysCannedPrompt(t *testing.T) {
	sess := newTestSession("")

	result := Dispatch(sess, model.ActionGetRecommendation, nil)
	assert.Empty(t, result.Messages)
	assert.Equal(t, "Surprise me with something delicious! What do you recommend?", result.RunText)
}

func TestDispatchShowAuth(t *testing.T) {
	sess := newTestSession("")

	result := Dispatch(sess, model.ActionShowAuth, nil)
	assert.True(t, result.AuthPrompt)
	assert.Empty(t, result.Messages)
}
