package order

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/events"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/ledger"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
)

type WebhookService interface {
	// HandleEvent verifies and applies one provider notification.
	// Signature failures wrap payment.ErrInvalidSignature.
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type webhookService struct {
	repo      Repository
	gateway   payment.Gateway
	ledger    ledger.Ledger
	publisher events.Publisher
}

func NewWebhookService(repo Repository, gateway payment.Gateway, l ledger.Ledger, publisher events.Publisher) WebhookService {
	return &webhookService{
		repo:      repo,
		gateway:   gateway,
		ledger:    l,
		publisher: publisher,
	}
}

type orderPaidEvent struct {
	OrderID    uuid.UUID   `json:"orderId"`
	ProductIDs []uuid.UUID `json:"productIds"`
	EventID    string      `json:"eventId"`
}

func (s *webhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	evt, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	if evt.Type != payment.EventCheckoutSessionCompleted || evt.Session == nil {
		log.Debug().Str("event_id", evt.ID).Str("event_type", evt.Type).Msg("Ignoring webhook event")
		return nil
	}

	seen, err := s.ledger.Seen(ctx, evt.ID)
	if err != nil {
		log.Warn().Err(err).Str("event_id", evt.ID).Msg("Event ledger lookup failed, processing anyway")
	}
	if seen {
		log.Info().Str("event_id", evt.ID).Msg("Webhook event already processed")
		return nil
	}

	rawOrderID := evt.Session.Metadata[payment.MetadataOrderID]
	orderID, err := uuid.FromString(rawOrderID)
	if err != nil {
		return fmt.Errorf("%w: session %s carries order id %q", ErrOrderNotFound, evt.Session.ID, rawOrderID)
	}

	details := ShippingDetails{
		Address: evt.Session.Address.String(),
		Phone:   evt.Session.Phone,
	}
	productIDs, err := s.repo.MarkPaid(ctx, orderID, details)
	if err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
	}

	unique := dedupe(productIDs)
	if err := s.repo.ArchiveProducts(ctx, unique); err != nil {
		log.Error().Err(err).Stringer("order_id", orderID).Msg("Failed to archive products of paid order")
	}

	if err := s.ledger.Record(ctx, evt.ID); err != nil {
		log.Warn().Err(err).Str("event_id", evt.ID).Msg("Failed to record webhook event")
	}

	log.Info().Stringer("order_id", orderID).Int("products", len(unique)).Msg("Order marked paid")

	paid := orderPaidEvent{OrderID: orderID, ProductIDs: unique, EventID: evt.ID}
	if err := s.publisher.Publish(ctx, events.PatternOrderPaid, paid); err != nil {
		log.Warn().Err(err).Stringer("order_id", orderID).Msg("Failed to publish order.paid")
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
