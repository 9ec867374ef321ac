package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	handler "github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/handler/http"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/mocks"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
)

type orderFixture struct {
	checkout *mocks.MockCheckoutService
	webhook  *mocks.MockWebhookService
	revenue  *mocks.MockRevenueService
	router   *chi.Mux
}

func passThrough(next http.Handler) http.Handler { return next }

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		checkout: new(mocks.MockCheckoutService),
		webhook:  new(mocks.MockWebhookService),
		revenue:  new(mocks.MockRevenueService),
	}
	h := handler.NewOrderHandler(f.checkout, f.webhook, f.revenue)

	f.router = chi.NewRouter()
	f.router.Route("/api", func(r chi.Router) {
		h.RegisterWebhookRoutes(r)
		r.Route("/{storeId}", func(r chi.Router) {
			h.RegisterRoutes(r, passThrough)
		})
	})
	return f
}

func (f *orderFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestOrderHandler_Checkout_Success(t *testing.T) {
	f := newOrderFixture()
	storeID := uuid.Must(uuid.NewV4())
	ids := []string{uuid.Must(uuid.NewV4()).String(), uuid.Must(uuid.NewV4()).String()}

	f.checkout.On("Checkout", mock.Anything, storeID, ids).Return("https://pay.example.com/cs_1", nil).Once()

	body, err := json.Marshal(handler.CheckoutRequest{ProductIDs: ids})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/"+storeID.String()+"/checkout", bytes.NewReader(body))
	rr := f.do(req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp handler.CheckoutResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "https://pay.example.com/cs_1", resp.URL)
	f.checkout.AssertExpectations(t)
}

func TestOrderHandler_Checkout_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty_list", err: order.ErrEmptyProductList, wantStatus: http.StatusBadRequest},
		{name: "no_products", err: order.ErrNoProductsFound, wantStatus: http.StatusNotFound},
		{name: "gateway", err: fmt.Errorf("%w: %w", order.ErrGateway, errors.New("timeout")), wantStatus: http.StatusInternalServerError},
		{name: "storage", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			storeID := uuid.Must(uuid.NewV4())
			f.checkout.On("Checkout", mock.Anything, storeID, mock.Anything).Return("", tt.err).Once()

			body := `{"productIds":["` + uuid.Must(uuid.NewV4()).String() + `"]}`
			req := httptest.NewRequest(http.MethodPost, "/api/"+storeID.String()+"/checkout", bytes.NewBufferString(body))
			rr := f.do(req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.NotContains(t, rr.Body.String(), "connection reset")
			assert.NotContains(t, rr.Body.String(), "timeout")
		})
	}
}

func TestOrderHandler_Checkout_MalformedBody(t *testing.T) {
	f := newOrderFixture()
	storeID := uuid.Must(uuid.NewV4())

	req := httptest.NewRequest(http.MethodPost, "/api/"+storeID.String()+"/checkout", bytes.NewBufferString(`{"productIds":`))
	rr := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.checkout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_Checkout_EmptyProductList(t *testing.T) {
	for _, body := range []string{`{"productIds":[]}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			f := newOrderFixture()
			storeID := uuid.Must(uuid.NewV4())

			req := httptest.NewRequest(http.MethodPost, "/api/"+storeID.String()+"/checkout", bytes.NewBufferString(body))
			rr := f.do(req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var resp handler.ValidationErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "Validation failed", resp.Error)
			assert.Contains(t, resp.Details, "ProductIDs")
			f.checkout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderHandler_Checkout_UnknownField(t *testing.T) {
	f := newOrderFixture()
	storeID := uuid.Must(uuid.NewV4())

	req := httptest.NewRequest(http.MethodPost, "/api/"+storeID.String()+"/checkout", bytes.NewBufferString(`{"productIds":["a"],"coupon":"X"}`))
	rr := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	f.checkout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_Webhook(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "processed", wantStatus: http.StatusOK},
		{name: "bad_signature", err: fmt.Errorf("%w: mismatch", payment.ErrInvalidSignature), wantStatus: http.StatusBadRequest},
		{name: "order_missing", err: fmt.Errorf("failed to mark order paid: %w", order.ErrOrderNotFound), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
			f.webhook.On("HandleEvent", mock.Anything, payload, "t=1,v1=abc").Return(tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewReader(payload))
			req.Header.Set("Stripe-Signature", "t=1,v1=abc")
			rr := f.do(req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			f.webhook.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	f := newOrderFixture()
	storeID := uuid.Must(uuid.NewV4())

	orders := []order.Order{{
		ID:      uuid.Must(uuid.NewV4()),
		StoreID: storeID,
		IsPaid:  true,
		Address: "1 Main St",
		Phone:   "+15550100",
		Items: []order.OrderItem{
			{Product: &order.Product{Name: "Shirt", Price: 1000}},
			{Product: &order.Product{Name: "Jacket", Price: 2550}},
		},
	}}
	f.revenue.On("ListOrders", mock.Anything, storeID).Return(orders, nil).Once()

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/"+storeID.String()+"/orders", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Shirt, Jacket", resp[0]["products"])
	assert.Equal(t, 35.5, resp[0]["totalPrice"])
	assert.Equal(t, true, resp[0]["isPaid"])
}

func TestOrderHandler_Overview(t *testing.T) {
	f := newOrderFixture()
	storeID := uuid.Must(uuid.NewV4())

	f.revenue.On("Overview", mock.Anything, storeID).Return(&order.Overview{
		TotalRevenue: 3550,
		SalesCount:   1,
		StockCount:   4,
		GraphRevenue: order.MonthlyTotals(nil),
	}, nil).Once()

	rr := f.do(httptest.NewRequest(http.MethodGet, "/api/"+storeID.String()+"/dashboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		TotalRevenue float64 `json:"totalRevenue"`
		SalesCount   int     `json:"salesCount"`
		StockCount   int     `json:"stockCount"`
		GraphRevenue []struct {
			Name  string  `json:"name"`
			Total float64 `json:"total"`
		} `json:"graphRevenue"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 35.5, resp.TotalRevenue)
	assert.Equal(t, 1, resp.SalesCount)
	assert.Equal(t, 4, resp.StockCount)
	require.Len(t, resp.GraphRevenue, 12)
	assert.Equal(t, "Jan", resp.GraphRevenue[0].Name)
}
