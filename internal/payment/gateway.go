// Package payment talks to the hosted-checkout payment provider.
package payment

import (
	"context"
	"errors"
	"strings"
)

// EventCheckoutSessionCompleted is the only webhook event the store reacts to.
const EventCheckoutSessionCompleted = "checkout.session.completed"

// MetadataOrderID is the session metadata key carrying the order ID.
const MetadataOrderID = "orderId"

var ErrInvalidSignature = errors.New("payment: invalid webhook signature")

// Gateway is implemented by every payment provider adapter.
type Gateway interface {
	// CreateCheckoutSession asks the provider for a hosted checkout page.
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	// ParseWebhook verifies the signature of payload before decoding it.
	// Verification failures wrap ErrInvalidSignature.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

type LineItem struct {
	Name       string
	UnitAmount int64 // minor units
	Quantity   int64
}

type CheckoutSessionRequest struct {
	LineItems  []LineItem
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// String joins the non-empty address parts with ", ".
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type CompletedSession struct {
	ID       string
	Metadata map[string]string
	Address  Address
	Phone    string
}

type Event struct {
	ID   string
	Type string
	// Session is set only for EventCheckoutSessionCompleted.
	Session *CompletedSession
}
