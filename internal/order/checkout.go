package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/events"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
)

var (
	ErrEmptyProductList = errors.New("product ids are required")
	ErrNoProductsFound  = errors.New("no products found")
	// ErrGateway wraps every failure reported by the payment provider.
	ErrGateway = errors.New("payment gateway error")
)

type CheckoutConfig struct {
	FrontendStoreURL string
	Currency         string
}

func (c CheckoutConfig) successURL() string {
	return strings.TrimRight(c.FrontendStoreURL, "/") + "/cart?success=1"
}

func (c CheckoutConfig) cancelURL() string {
	return strings.TrimRight(c.FrontendStoreURL, "/") + "/cart?canceled=1"
}

type CheckoutService interface {
	// Checkout records an unpaid order for productIDs and returns the hosted payment page URL.
	Checkout(ctx context.Context, storeID uuid.UUID, productIDs []string) (string, error)
}

type checkoutService struct {
	repo      Repository
	gateway   payment.Gateway
	publisher events.Publisher
	cfg       CheckoutConfig
}

func NewCheckoutService(repo Repository, gateway payment.Gateway, publisher events.Publisher, cfg CheckoutConfig) CheckoutService {
	return &checkoutService{
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
		cfg:       cfg,
	}
}

type orderCreatedEvent struct {
	OrderID    uuid.UUID `json:"orderId"`
	StoreID    uuid.UUID `json:"storeId"`
	ItemCount  int       `json:"itemCount"`
	TotalMinor int64     `json:"totalMinor"`
	SessionID  string    `json:"sessionId"`
}

func (s *checkoutService) Checkout(ctx context.Context, storeID uuid.UUID, productIDs []string) (string, error) {
	if len(productIDs) == 0 {
		return "", ErrEmptyProductList
	}

	requested := make([]uuid.UUID, 0, len(productIDs))
	unique := make([]uuid.UUID, 0, len(productIDs))
	seen := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, raw := range productIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			log.Warn().Str("product_id", raw).Msg("Skipping malformed product id in checkout")
			continue
		}
		requested = append(requested, id)
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	var products []Product
	if len(unique) > 0 {
		var err error
		products, err = s.repo.FindProducts(ctx, storeID, unique)
		if err != nil {
			return "", fmt.Errorf("failed to load products: %w", err)
		}
	}
	if len(products) == 0 {
		return "", ErrNoProductsFound
	}

	byID := make(map[uuid.UUID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	o := &Order{StoreID: storeID, Items: make([]OrderItem, 0, len(requested))}
	lineItems := make([]payment.LineItem, 0, len(requested))
	for _, id := range requested {
		p, ok := byID[id]
		if !ok {
			log.Warn().Stringer("product_id", id).Stringer("store_id", storeID).Msg("Skipping unknown product in checkout")
			continue
		}
		product := p
		o.Items = append(o.Items, OrderItem{ProductID: id, Product: &product})
		lineItems = append(lineItems, payment.LineItem{
			Name:       p.Name,
			UnitAmount: p.Price.MinorUnits(),
			Quantity:   1,
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return "", fmt.Errorf("failed to save order: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutSessionRequest{
		LineItems:  lineItems,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.successURL(),
		CancelURL:  s.cfg.cancelURL(),
		Metadata:   map[string]string{payment.MetadataOrderID: o.ID.String()},
	})
	if err != nil {
		// The order stays unpaid; nothing reconciles it without a completed session.
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}

	total := o.Total()
	log.Info().
		Stringer("order_id", o.ID).
		Stringer("store_id", storeID).
		Int("items", len(o.Items)).
		Str("total", total.String()).
		Msg("Checkout session created")

	evt := orderCreatedEvent{
		OrderID:    o.ID,
		StoreID:    storeID,
		ItemCount:  len(o.Items),
		TotalMinor: total.MinorUnits(),
		SessionID:  session.ID,
	}
	if err := s.publisher.Publish(ctx, events.PatternOrderCreated, evt); err != nil {
		log.Warn().Err(err).Stringer("order_id", o.ID).Msg("Failed to publish order.created")
	}

	return session.URL, nil
}
