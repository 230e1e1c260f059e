package assistant

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plateworks/storefront/internal/cart"
	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// Session is one browsing visit's worth of chat state: the catalog snapshot,
// the cart, and the append-only transcript. It is single-writer: callers
// serialize turns through Lock/Unlock, so one user action produces exactly
// one pipeline run before the next is accepted.
type Session struct {
	sync.Mutex

	ID           string
	RestaurantID string
	UserID       string // empty when unauthenticated
	Catalog      *catalog.Snapshot
	Cart         *cart.Cart
	CreatedAt    time.Time
	UpdatedAt    time.Time

	transcript []model.ChatMessage
}

// NewSession opens a session against a catalog snapshot and seeds the
// transcript with the greeting message.
func NewSession(snap *catalog.Snapshot, userID string) *Session {
	now := time.Now()
	s := &Session{
		ID:           uuid.Must(uuid.NewV7()).String(),
		RestaurantID: snap.Restaurant.ID,
		UserID:       userID,
		Catalog:      snap,
		Cart:         cart.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.transcript = append(s.transcript, s.Greeting())
	return s
}

// Greeting is the opening assistant message for this restaurant.
func (s *Session) Greeting() model.ChatMessage {
	r := s.Catalog.Restaurant
	content := fmt.Sprintf("Hi! Welcome to %s! 👋\n\n"+
		"I'm your AI ordering assistant. I can help you discover delicious %s dishes, "+
		"answer questions about our menu, and make personalized recommendations.\n\n"+
		"What sounds good to you today?", r.Name, r.CuisineType)
	return s.NewAssistantMessage(content, nil, []model.SuggestedAction{
		action("Show Me Popular Dishes", model.ActionShowFeatured),
		action("Browse Full Menu", model.ActionShowMenu),
		action("Surprise Me!", model.ActionGetRecommendation),
	})
}

// PendingItemMessage is appended when the customer picked an item in the menu
// UI before opening the chat.
func (s *Session) PendingItemMessage(item model.MenuItem) model.ChatMessage {
	content := fmt.Sprintf("Great choice! You've selected %s. Would you like to add this to your order?", item.Name)
	return s.NewAssistantMessage(content, []model.MenuItem{item}, []model.SuggestedAction{
		actionWithData("Add to Order", model.ActionAddItem, item.ID),
		actionWithData("View Similar Items", model.ActionShowCategory, item.CategoryID),
		action("Keep Browsing", model.ActionShowMenu),
	})
}

// Append adds messages to the transcript. Messages are never mutated after
// this point.
func (s *Session) Append(msgs ...model.ChatMessage) {
	s.transcript = append(s.transcript, msgs...)
	s.UpdatedAt = time.Now()
}

// Transcript returns a copy of the ordered message sequence.
func (s *Session) Transcript() []model.ChatMessage {
	out := make([]model.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Reset drops the transcript back to the greeting, leaving the cart alone.
func (s *Session) Reset() {
	s.transcript = []model.ChatMessage{s.Greeting()}
	s.UpdatedAt = time.Now()
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// NewUserMessage builds a user-role transcript message.
func (s *Session) NewUserMessage(content string) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.Must(uuid.NewV7()).String(),
		SessionID: s.ID,
		Role:      model.RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewAssistantMessage builds an assistant-role transcript message with
// optional item cards and suggested actions.
func (s *Session) NewAssistantMessage(content string, items []model.MenuItem, actions []model.SuggestedAction) model.ChatMessage {
	return model.ChatMessage{
		ID:               uuid.Must(uuid.NewV7()).String(),
		SessionID:        s.ID,
		Role:             model.RoleAssistant,
		Content:          content,
		CreatedAt:        time.Now(),
		MenuItems:        items,
		SuggestedActions: actions,
	}
}
