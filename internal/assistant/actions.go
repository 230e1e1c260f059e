package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// Suggested-action button flow: a state machine over the session's cart and
// catalog, independent of text classification. Cart-mutating and
// order-placing actions are gated on authentication; unauthenticated clicks
// short-circuit into a sign-in prompt instead of mutating state.

const (
	showMenuLimit     = 6
	showAllItemsLimit = 12
	showCategoryLimit = 6

	upsellLimit          = 3
	upsellBeverageLimit  = 2
	smallTicketLimit     = 2
	smallTicketMaxPrice  = 10.0
	emptyCartMessage     = "Your cart is empty. Let me help you find something delicious!"
	recommendationPrompt = "Surprise me with something delicious! What do you recommend?"
)

// smallTicketKeywords is the name heuristic for cheap add-on items offered at
// checkout.
var smallTicketKeywords = []string{"fries", "side", "appetizer", "bite", "roll", "snack", "small"}

// DispatchResult is the outcome of one action click.
type DispatchResult struct {
	// Messages appended to the transcript during the action, in order.
	Messages []model.ChatMessage
	// Order is set when the action finalized an order; the cart has already
	// been cleared.
	Order *model.Order
	// RunText, when non-empty, asks the caller to replay this text through
	// the text pipeline (get_recommendation).
	RunText string
	// AuthPrompt signals the external auth collaborator to present sign-in
	// (show_auth).
	AuthPrompt bool
}

// Dispatch runs one suggested-action click against the session. The caller
// holds the session lock and is responsible for appending the returned
// messages to the transcript.
func Dispatch(sess *Session, kind model.ActionKind, data json.RawMessage) DispatchResult {
	switch kind {
	case model.ActionShowFeatured:
		return showFeatured(sess)
	case model.ActionShowMenu:
		return showMenu(sess)
	case model.ActionShowAllItems:
		return showAllItems(sess)
	case model.ActionShowCategory:
		return showCategory(sess, decodeString(data))
	case model.ActionShowCart:
		return showCart(sess)
	case model.ActionGetRecommendation:
		return DispatchResult{RunText: recommendationPrompt}
	case model.ActionAddItem:
		return addItem(sess, decodeString(data), 1)
	case model.ActionAddItemWithQty:
		payload := decodeItemQuantity(data)
		return addItem(sess, payload.ItemID, payload.Quantity)
	case model.ActionPlaceOrder:
		return placeOrder(sess)
	case model.ActionConfirmOrder:
		return confirmOrder(sess)
	case model.ActionClearCart:
		return clearCart(sess)
	case model.ActionNewOrder:
		return newOrder(sess)
	case model.ActionShowAuth:
		return DispatchResult{AuthPrompt: true}
	}
	return DispatchResult{}
}

func decodeString(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return s
}

func decodeItemQuantity(data json.RawMessage) model.ItemQuantityPayload {
	var p model.ItemQuantityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return model.ItemQuantityPayload{}
	}
	return p
}

func action(label string, kind model.ActionKind) model.SuggestedAction {
	return model.SuggestedAction{Label: label, Action: kind}
}

func actionWithData(label string, kind model.ActionKind, v any) model.SuggestedAction {
	data, _ := json.Marshal(v)
	return model.SuggestedAction{Label: label, Action: kind, Data: data}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func browseActions() []model.SuggestedAction {
	return []model.SuggestedAction{
		action("View Popular Items", model.ActionShowFeatured),
		action("Browse Menu", model.ActionShowMenu),
	}
}

func showFeatured(sess *Session) DispatchResult {
	msg := sess.NewAssistantMessage(
		"Here are our most popular dishes that customers love. Click any item to add it to your order:",
		sess.Catalog.Featured(),
		[]model.SuggestedAction{action("Browse Full Menu", model.ActionShowMenu)},
	)
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func showMenu(sess *Session) DispatchResult {
	popular := catalog.Truncate(sess.Catalog.Featured(), showMenuLimit)

	items := popular
	content := "Here are our most popular items. Click any item to add it to your order!"
	if len(popular) == 0 {
		items = catalog.Truncate(sess.Catalog.Items, showMenuLimit)
		content = "Here's what we have available. Click any item to add it to your order!"
	}

	msg := sess.NewAssistantMessage(content, items, []model.SuggestedAction{
		action("Show More", model.ActionShowAllItems),
		action("View Order", model.ActionShowCart),
	})
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func showAllItems(sess *Session) DispatchResult {
	msg := sess.NewAssistantMessage(
		"Here's our full menu. Click any item to add it to your order!",
		catalog.Truncate(sess.Catalog.Items, showAllItemsLimit),
		[]model.SuggestedAction{action("View Order", model.ActionShowCart)},
	)
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func showCategory(sess *Session, categoryID string) DispatchResult {
	msg := sess.NewAssistantMessage(
		"Here are some similar items you might like. Click any item to add it to your order:",
		catalog.Truncate(sess.Catalog.InCategory(categoryID), showCategoryLimit),
		[]model.SuggestedAction{action("Keep Browsing", model.ActionShowMenu)},
	)
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func showCart(sess *Session) DispatchResult {
	itemCount := sess.Cart.ItemCount()
	if itemCount == 0 {
		msg := sess.NewAssistantMessage(emptyCartMessage, nil, browseActions())
		return DispatchResult{Messages: []model.ChatMessage{msg}}
	}

	var b strings.Builder
	b.WriteString("Here's your order:\n\n")
	for i, line := range sess.Cart.Lines() {
		fmt.Fprintf(&b, "%d. %s\n   Qty: %d × $%.2f = $%.2f", i+1, line.Name, line.Quantity, line.Price, line.LineTotal())
		if len(line.Customizations) > 0 {
			names := make([]string, len(line.Customizations))
			for j, c := range line.Customizations {
				names[j] = c.Name
			}
			fmt.Fprintf(&b, "\n   (%s)", strings.Join(names, ", "))
		}
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "━━━━━━━━━━━━━━━━━━━\nTotal: $%.2f\n\nReady to place your order?", sess.Cart.Total())

	msg := sess.NewAssistantMessage(b.String(), nil, []model.SuggestedAction{
		action("Place Order", model.ActionPlaceOrder),
		action("Add More Items", model.ActionShowMenu),
		action("Clear Cart", model.ActionClearCart),
	})
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func signInPrompt(sess *Session, content string, keepBrowsing bool) DispatchResult {
	actions := []model.SuggestedAction{action("Sign In", model.ActionShowAuth)}
	if keepBrowsing {
		actions = append(actions, action("Keep Browsing", model.ActionShowMenu))
	}
	msg := sess.NewAssistantMessage(content, nil, actions)
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}

func addItem(sess *Session, itemID string, quantity int) DispatchResult {
	if !sess.Authenticated() {
		return signInPrompt(sess, "Please sign in to add items to your cart and place orders.", true)
	}
	item := sess.Catalog.ItemByID(itemID)
	if item == nil || quantity <= 0 {
		return DispatchResult{}
	}

	userMsg := sess.NewUserMessage(fmt.Sprintf("Add %s to my cart", item.Name))
	if quantity > 1 {
		userMsg = sess.NewUserMessage(fmt.Sprintf("Add %d %ss to my cart", quantity, item.Name))
	}

	sess.Cart.Add(model.CartLine{
		MenuItemID:     item.ID,
		Name:           item.Name,
		Price:          item.Price,
		Quantity:       quantity,
		Customizations: []model.SelectedCustomization{},
		ImageURL:       item.ImageURL,
	})

	addedTotal := item.Price * float64(quantity)
	newTotal := sess.Cart.Total()
	newCount := sess.Cart.ItemCount()

	upsells := UpsellItems(sess)

	var content string
	if quantity > 1 {
		content = fmt.Sprintf("Perfect! I've added %d %s%s ($%.2f) to your cart. You now have %d item%s totaling $%.2f.",
			quantity, item.Name, plural(quantity), addedTotal, newCount, plural(newCount), newTotal)
	} else {
		content = fmt.Sprintf("Perfect! I've added %s ($%.2f) to your cart. You now have %d item%s totaling $%.2f.",
			item.Name, item.Price, newCount, plural(newCount), newTotal)
	}
	if len(upsells) > 0 {
		content += "\n\nMight I suggest adding one of these to complete your meal?"
	}

	actions := []model.SuggestedAction{
		action("Place Order", model.ActionPlaceOrder),
		action("View Cart", model.ActionShowCart),
		action("Keep Browsing", model.ActionShowMenu),
	}
	if quantity > 1 {
		actions = append(actions, action("Clear Cart", model.ActionClearCart))
	}

	confirm := sess.NewAssistantMessage(content, upsells, actions)
	return DispatchResult{Messages: []model.ChatMessage{userMsg, confirm}}
}

// UpsellItems computes cross-sell candidates from category gaps in the cart:
// categories whose names contain "beverage", "appetizer" or "dessert" and
// that are not yet represented get up to 2 non-cart beverages and 1 featured
// non-cart appetizer and dessert each, capped at 3 total. A heuristic, not an
// optimizer.
func UpsellItems(sess *Session) []model.MenuItem {
	if sess.Cart.IsEmpty() {
		return nil
	}

	cartItemIDs := sess.Cart.ItemIDs()
	cartCategoryIDs := make(map[string]bool)
	for id := range cartItemIDs {
		if item := sess.Catalog.ItemByID(id); item != nil {
			cartCategoryIDs[item.CategoryID] = true
		}
	}

	var upsells []model.MenuItem

	if cat := sess.Catalog.CategoryByKeyword("beverage"); cat != nil && !cartCategoryIDs[cat.ID] {
		count := 0
		for _, item := range sess.Catalog.InCategory(cat.ID) {
			if !cartItemIDs[item.ID] && count < upsellBeverageLimit {
				upsells = append(upsells, item)
				count++
			}
		}
	}

	for _, keyword := range []string{"appetizer", "dessert"} {
		cat := sess.Catalog.CategoryByKeyword(keyword)
		if cat == nil || cartCategoryIDs[cat.ID] {
			continue
		}
		for _, item := range sess.Catalog.InCategory(cat.ID) {
			if item.IsFeatured && !cartItemIDs[item.ID] {
				upsells = append(upsells, item)
				break
			}
		}
	}

	return catalog.Truncate(upsells, upsellLimit)
}

// smallTicketItems finds cheap available add-ons by name keyword, excluding
// items already in the cart.
func smallTicketItems(sess *Session) []model.MenuItem {
	cartItemIDs := sess.Cart.ItemIDs()
	var out []model.MenuItem
	for _, item := range sess.Catalog.Items {
		if len(out) == smallTicketLimit {
			break
		}
		if item.Price >= smallTicketMaxPrice || cartItemIDs[item.ID] || !item.IsAvailable {
			continue
		}
		name := strings.ToLower(item.Name)
		for _, keyword := range smallTicketKeywords {
			if strings.Contains(name, keyword) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func placeOrder(sess *Session) DispatchResult {
	if !sess.Authenticated() {
		return signInPrompt(sess, "Please sign in to place your order.", false)
	}
	if sess.Cart.ItemCount() == 0 {
		msg := sess.NewAssistantMessage(emptyCartMessage, nil, browseActions())
		return DispatchResult{Messages: []model.ChatMessage{msg}}
	}

	userMsg := sess.NewUserMessage("Place my order")

	allUpsells := catalog.Truncate(append(UpsellItems(sess), smallTicketItems(sess)...), upsellLimit)
	if len(allUpsells) > 0 {
		offer := sess.NewAssistantMessage(
			"Before you check out, would you like to add any of these to complete your meal? 🍟",
			allUpsells,
			[]model.SuggestedAction{
				action("No Thanks, Place Order", model.ActionConfirmOrder),
				action("Keep Browsing", model.ActionShowMenu),
			},
		)
		return DispatchResult{Messages: []model.ChatMessage{userMsg, offer}}
	}

	confirm, order := finalizeOrder(sess)
	return DispatchResult{Messages: []model.ChatMessage{userMsg, confirm}, Order: order}
}

// confirmOrder finalizes after a declined upsell offer. It does not re-check
// authentication or cart contents; place_order's direct branch does. Known
// asymmetry, kept as-is.
func confirmOrder(sess *Session) DispatchResult {
	confirm, order := finalizeOrder(sess)
	return DispatchResult{Messages: []model.ChatMessage{confirm}, Order: order}
}

func finalizeOrder(sess *Session) (model.ChatMessage, *model.Order) {
	itemCount := sess.Cart.ItemCount()
	total := sess.Cart.Total()

	order := &model.Order{
		ID:           uuid.Must(uuid.NewV7()).String(),
		RestaurantID: sess.RestaurantID,
		SessionID:    sess.ID,
		CustomerID:   sess.UserID,
		Lines:        sess.Cart.Lines(),
		ItemCount:    itemCount,
		Total:        total,
		Status:       model.OrderReceived,
		CreatedAt:    time.Now(),
	}
	sess.Cart.Clear()

	content := fmt.Sprintf("Thank you for your order! Your order of %d item%s totaling $%.2f has been received.\n\n"+
		"Estimated preparation time: 20-30 minutes. You'll receive a confirmation shortly with tracking details.",
		itemCount, plural(itemCount), total)

	confirm := sess.NewAssistantMessage(content, nil, []model.SuggestedAction{
		action("Start New Order", model.ActionNewOrder),
	})
	return confirm, order
}

func clearCart(sess *Session) DispatchResult {
	if sess.Cart.ItemCount() == 0 {
		msg := sess.NewAssistantMessage("Your cart is already empty.", nil, browseActions())
		return DispatchResult{Messages: []model.ChatMessage{msg}}
	}

	userMsg := sess.NewUserMessage("Clear my cart")
	sess.Cart.Clear()
	confirm := sess.NewAssistantMessage(
		"Your cart has been cleared. Would you like to start a new order?",
		nil,
		browseActions(),
	)
	return DispatchResult{Messages: []model.ChatMessage{userMsg, confirm}}
}

func newOrder(sess *Session) DispatchResult {
	msg := sess.NewAssistantMessage(
		"Ready for another order? What can I get started for you today?",
		nil,
		browseActions(),
	)
	return DispatchResult{Messages: []model.ChatMessage{msg}}
}
