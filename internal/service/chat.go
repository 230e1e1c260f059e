package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plateworks/storefront/internal/assistant"
	"github.com/plateworks/storefront/internal/llm"
	"github.com/plateworks/storefront/internal/model"
	"github.com/plateworks/storefront/pkg/logger"
	"github.com/plateworks/storefront/pkg/metrics"
)

// gatewayFallback is the user-visible message for any gateway transport
// failure or timeout. It surfaces once; the session stays usable and no
// retry is attempted.
const gatewayFallback = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment."

// OrderStore persists finalized orders.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) error
}

// EventPublisher tees transcript messages and order events to the durable
// stream. A nil publisher disables the tap.
type EventPublisher interface {
	PublishChatMessage(ctx context.Context, restaurantID string, msg *model.ChatMessage) (uint64, error)
	PublishOrderPlaced(ctx context.Context, order *model.Order) (uint64, error)
}

// ChatService runs the message-to-action pipeline: one user action (text
// submission or button click) produces exactly one pipeline run. The session
// lock enforces the single-writer discipline over cart and transcript.
type ChatService struct {
	gateway        llm.Client
	orders         OrderStore
	events         EventPublisher
	logger         *logger.Logger
	gatewayTimeout time.Duration
	gatewayModel   string
}

// NewChatService creates a new chat service. gateway may be nil when no
// provider is configured; generative turns then answer with the fallback.
func NewChatService(gateway llm.Client, orders OrderStore, events EventPublisher, log *logger.Logger, gatewayTimeout time.Duration, gatewayModel string) *ChatService {
	return &ChatService{
		gateway:        gateway,
		orders:         orders,
		events:         events,
		logger:         log,
		gatewayTimeout: gatewayTimeout,
		gatewayModel:   gatewayModel,
	}
}

// HandleText runs one text turn: deterministic classification first, then the
// direct filter, then the generative pathway with sanitization. Returns the
// messages appended to the transcript during the turn.
func (s *ChatService) HandleText(ctx context.Context, sess *assistant.Session, content string) []model.ChatMessage {
	sess.Lock()
	defer sess.Unlock()
	return s.handleTextLocked(ctx, sess, content)
}

func (s *ChatService) handleTextLocked(ctx context.Context, sess *assistant.Session, content string) []model.ChatMessage {
	userMsg := sess.NewUserMessage(content)
	sess.Append(userMsg)
	s.publish(ctx, sess.RestaurantID, userMsg)

	intent := assistant.Classify(content)

	// Allergy safety short-circuits the whole pipeline: fixed script, no
	// item cards, no generative call.
	if intent == assistant.IntentAllergy {
		reply := sess.NewAssistantMessage(
			assistant.AllergyNotice(sess.Catalog.Restaurant.Phone),
			nil,
			[]model.SuggestedAction{
				{Label: "View Full Menu", Action: model.ActionShowMenu},
				{Label: "Show Popular Dishes", Action: model.ActionShowFeatured},
			},
		)
		sess.Append(reply)
		s.publish(ctx, sess.RestaurantID, reply)
		metrics.ChatTurnsTotal.WithLabelValues(sess.RestaurantID, "allergy").Inc()
		return []model.ChatMessage{userMsg, reply}
	}

	// Direct filter: deterministic, identical catalog + intent always yields
	// identical output, and the gateway is skipped. Empty results fall
	// through to the generative pathway.
	if intent != assistant.IntentNone {
		intro, items := assistant.DirectFilter(intent, sess.Catalog)
		if len(items) > 0 {
			reply := sess.NewAssistantMessage(intro, items, nil)
			sess.Append(reply)
			s.publish(ctx, sess.RestaurantID, reply)
			metrics.ChatTurnsTotal.WithLabelValues(sess.RestaurantID, "direct").Inc()
			return []model.ChatMessage{userMsg, reply}
		}
	}

	reply := s.generativeTurn(ctx, sess, content)
	sess.Append(reply)
	s.publish(ctx, sess.RestaurantID, reply)
	return []model.ChatMessage{userMsg, reply}
}

// generativeTurn calls the assistant gateway with the session transcript and
// sanitizes the response. Any error maps to the generic fallback message.
func (s *ChatService) generativeTurn(ctx context.Context, sess *assistant.Session, userQuery string) model.ChatMessage {
	if s.gateway == nil {
		metrics.ChatTurnsTotal.WithLabelValues(sess.RestaurantID, "llm_unavailable").Inc()
		return sess.NewAssistantMessage(gatewayFallback, nil, nil)
	}

	transcript := sess.Transcript()
	chatMessages := make([]llm.ChatMessage, len(transcript))
	for i, msg := range transcript {
		chatMessages[i] = llm.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	resp, err := s.gateway.Complete(callCtx, &llm.CompletionRequest{
		Model:     s.gatewayModel,
		System:    assistant.BuildSystemPrompt(sess.Catalog),
		Messages:  chatMessages,
		MaxTokens: 1024,
	})
	if err != nil {
		s.logger.Warn("assistant gateway call failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		metrics.RecordGatewayCall(s.gatewayModel, "error", s.gatewayTimeout.Seconds(), 0, 0)
		metrics.ChatTurnsTotal.WithLabelValues(sess.RestaurantID, "llm_error").Inc()
		return sess.NewAssistantMessage(gatewayFallback, nil, nil)
	}

	metrics.RecordGatewayCall(resp.Model, "success", float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)
	metrics.ChatTurnsTotal.WithLabelValues(sess.RestaurantID, "llm").Inc()

	result := assistant.Sanitize(resp.Content, userQuery, sess.Catalog)

	reply := sess.NewAssistantMessage(result.Content, result.Items, nil)
	reply.Model = &resp.Model
	reply.TokensIn = &resp.TokensIn
	reply.TokensOut = &resp.TokensOut
	reply.LatencyMs = &resp.LatencyMs
	return reply
}

// HandleAction runs one suggested-action turn against the session.
func (s *ChatService) HandleAction(ctx context.Context, sess *assistant.Session, req *model.ActionRequest) *model.TurnResponse {
	sess.Lock()
	defer sess.Unlock()

	metrics.ActionsTotal.WithLabelValues(sess.RestaurantID, string(req.Action)).Inc()

	if req.Action == model.ActionNewOrder {
		sess.Reset()
	}

	result := assistant.Dispatch(sess, req.Action, req.Data)

	// get_recommendation replays a canned prompt through the text pipeline.
	if result.RunText != "" {
		return &model.TurnResponse{Messages: s.handleTextLocked(ctx, sess, result.RunText)}
	}

	if result.AuthPrompt {
		return &model.TurnResponse{AuthRequired: true}
	}

	sess.Append(result.Messages...)
	for i := range result.Messages {
		s.publish(ctx, sess.RestaurantID, result.Messages[i])
	}

	if result.Order != nil && len(result.Order.Lines) > 0 {
		if err := s.orders.Create(ctx, result.Order); err != nil {
			// The confirmation has already been shown; receipt loss is
			// logged, not surfaced.
			s.logger.Error("failed to persist order",
				zap.String("order_id", result.Order.ID),
				zap.Error(err),
			)
		}
		if s.events != nil {
			if _, err := s.events.PublishOrderPlaced(ctx, result.Order); err != nil {
				s.logger.Warn("failed to publish order event", zap.Error(err))
			}
		}
		metrics.OrdersTotal.WithLabelValues(sess.RestaurantID).Inc()
	}

	if req.Action == model.ActionPlaceOrder && result.Order == nil && len(result.Messages) > 0 {
		last := result.Messages[len(result.Messages)-1]
		if len(last.MenuItems) > 0 {
			metrics.UpsellOffersTotal.WithLabelValues(sess.RestaurantID).Inc()
		}
	}

	return &model.TurnResponse{Messages: result.Messages}
}

// Transcript returns the session's ordered message sequence.
func (s *ChatService) Transcript(sess *assistant.Session) []model.ChatMessage {
	sess.Lock()
	defer sess.Unlock()
	return sess.Transcript()
}

// CartView returns the session's cart snapshot with derived totals.
func (s *ChatService) CartView(sess *assistant.Session) model.CartView {
	sess.Lock()
	defer sess.Unlock()
	return sess.Cart.View()
}

func (s *ChatService) publish(ctx context.Context, restaurantID string, msg model.ChatMessage) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishChatMessage(ctx, restaurantID, &msg); err != nil {
		s.logger.Warn("failed to publish chat message",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
	}
}
