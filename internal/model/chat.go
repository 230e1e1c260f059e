package model

import (
	"encoding/json"
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ActionKind enumerates the closed set of suggested-action kinds.
type ActionKind string

const (
	ActionShowFeatured      ActionKind = "show_featured"
	ActionShowMenu          ActionKind = "show_menu"
	ActionShowAllItems      ActionKind = "show_all_items"
	ActionShowCategory      ActionKind = "show_category"
	ActionShowCart          ActionKind = "show_cart"
	ActionGetRecommendation ActionKind = "get_recommendation"
	ActionAddItem           ActionKind = "add_item"
	ActionAddItemWithQty    ActionKind = "add_item_with_quantity"
	ActionPlaceOrder        ActionKind = "place_order"
	ActionConfirmOrder      ActionKind = "confirm_order"
	ActionClearCart         ActionKind = "clear_cart"
	ActionNewOrder          ActionKind = "new_order"
	ActionShowAuth          ActionKind = "show_auth"
)

// ValidActionKind reports whether kind belongs to the closed action set.
func ValidActionKind(kind ActionKind) bool {
	switch kind {
	case ActionShowFeatured, ActionShowMenu, ActionShowAllItems,
		ActionShowCategory, ActionShowCart, ActionGetRecommendation,
		ActionAddItem, ActionAddItemWithQty, ActionPlaceOrder,
		ActionConfirmOrder, ActionClearCart, ActionNewOrder, ActionShowAuth:
		return true
	}
	return false
}

// SuggestedAction is a clickable button attached to an assistant message.
// Data is an opaque payload whose shape depends on the kind: an item id, a
// category id, an {item_id, quantity} pair, or nothing.
type SuggestedAction struct {
	Label  string          `json:"label"`
	Action ActionKind      `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// ItemQuantityPayload is the payload for add_item_with_quantity.
type ItemQuantityPayload struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ChatMessage is one entry in a session transcript. Append-only; never
// mutated after creation.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// MenuItems are attached for card rendering; SuggestedActions drive the
	// button flow. Both optional.
	MenuItems        []MenuItem        `json:"menu_items,omitempty"`
	SuggestedActions []SuggestedAction `json:"suggested_actions,omitempty"`

	// LLM metadata, set only on gateway-produced assistant messages.
	Model     *string `json:"model,omitempty"`
	TokensIn  *int    `json:"tokens_in,omitempty"`
	TokensOut *int    `json:"tokens_out,omitempty"`
	LatencyMs *int64  `json:"latency_ms,omitempty"`
}

// SendMessageRequest is the request body for a text turn.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ActionRequest is the request body for a suggested-action click.
type ActionRequest struct {
	Action ActionKind      `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// TurnResponse is the response for a text or action turn: the messages
// appended during the turn, newest last. AuthRequired signals the client to
// present sign-in instead of rendering messages.
type TurnResponse struct {
	Messages     []ChatMessage `json:"messages"`
	AuthRequired bool          `json:"auth_required,omitempty"`
}

// ListMessagesResponse is the response for reading a session transcript.
type ListMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}
