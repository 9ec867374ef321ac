package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
)

// maxWebhookBody caps webhook payloads; provider events are far smaller.
const maxWebhookBody = 1 << 16

const signatureHeader = "Stripe-Signature"

type CheckoutRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// OrderResponse is one row of the dashboard orders table.
type OrderResponse struct {
	ID         uuid.UUID    `json:"id"`
	Phone      string       `json:"phone"`
	Address    string       `json:"address"`
	Products   string       `json:"products"`
	TotalPrice money.Amount `json:"totalPrice"`
	IsPaid     bool         `json:"isPaid"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func toOrderResponse(o order.Order) OrderResponse {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Product != nil {
			names = append(names, item.Product.Name)
		}
	}
	return OrderResponse{
		ID:         o.ID,
		Phone:      o.Phone,
		Address:    o.Address,
		Products:   strings.Join(names, ", "),
		TotalPrice: o.Total(),
		IsPaid:     o.IsPaid,
		CreatedAt:  o.CreatedAt,
	}
}

type OrderHandler struct {
	checkout order.CheckoutService
	webhook  order.WebhookService
	revenue  order.RevenueService
	validate *validator.Validate
}

func NewOrderHandler(checkout order.CheckoutService, webhook order.WebhookService, revenue order.RevenueService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		webhook:  webhook,
		revenue:  revenue,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterWebhookRoutes(router chi.Router) {
	router.Post("/webhook", h.handleWebhook)
}

// RegisterRoutes mounts checkout (public) and the dashboard reads behind requireOwner.
func (h *OrderHandler) RegisterRoutes(router chi.Router, requireOwner func(http.Handler) http.Handler) {
	router.Post("/checkout", h.handleCheckout)

	router.Group(func(r chi.Router) {
		r.Use(requireOwner)
		r.Get("/dashboard", h.handleOverview)
		r.Get("/revenue", h.handleGraphRevenue)
		r.Get("/orders", h.handleListOrders)
	})
}

func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "checkout.create"
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	var req CheckoutRequest
	if !decodeAndValidate(w, r, h.validate, op, &req) {
		return
	}

	url, err := h.checkout.Checkout(r.Context(), storeID, req.ProductIDs)
	if err != nil {
		handleError(w, op, err, "Failed to create checkout session")
		return
	}
	respondWithJSON(w, http.StatusOK, CheckoutResponse{URL: url})
}

func (h *OrderHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	const op = "webhook.handle"
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		log.Warn().Err(err).Str("op", op).Msg("Failed to read webhook body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.webhook.HandleEvent(r.Context(), payload, r.Header.Get(signatureHeader)); err != nil {
		handleError(w, op, err, "Failed to process webhook")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *OrderHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	overview, err := h.revenue.Overview(r.Context(), storeID)
	if err != nil {
		handleError(w, "dashboard.overview", err, "Failed to load dashboard")
		return
	}
	respondWithJSON(w, http.StatusOK, overview)
}

func (h *OrderHandler) handleGraphRevenue(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	graph, err := h.revenue.GraphRevenue(r.Context(), storeID)
	if err != nil {
		handleError(w, "revenue.graph", err, "Failed to load revenue")
		return
	}
	respondWithJSON(w, http.StatusOK, graph)
}

func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	storeID, ok := uuidParam(w, r, "storeId")
	if !ok {
		return
	}

	orders, err := h.revenue.ListOrders(r.Context(), storeID)
	if err != nil {
		handleError(w, "orders.list", err, "Failed to list orders")
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	respondWithJSON(w, http.StatusOK, response)
}
