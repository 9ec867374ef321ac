package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type stripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(apiKey, webhookSecret string) Gateway {
	return &stripeGateway{
		api:           client.New(apiKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
		})
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment: create checkout session: %w", err)
	}

	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventCheckoutSessionCompleted {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("payment: decode checkout session: %w", err)
	}

	session := &CompletedSession{ID: cs.ID, Metadata: cs.Metadata}
	if cs.CustomerDetails != nil {
		session.Phone = cs.CustomerDetails.Phone
		if addr := cs.CustomerDetails.Address; addr != nil {
			session.Address = Address{
				Line1:      addr.Line1,
				Line2:      addr.Line2,
				City:       addr.City,
				State:      addr.State,
				PostalCode: addr.PostalCode,
				Country:    addr.Country,
			}
		}
	}
	out.Session = session

	return out, nil
}
