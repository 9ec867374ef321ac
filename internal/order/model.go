package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

// Product is the slice of a catalog product the order flow needs.
type Product struct {
	ID      uuid.UUID    `json:"id"`
	StoreID uuid.UUID    `json:"storeId"`
	Name    string       `json:"name"`
	Price   money.Amount `json:"price"`
}

// OrderItem links an order to one unit of a product. Repeated products produce repeated items.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
}

type Order struct {
	ID        uuid.UUID   `json:"id"`
	StoreID   uuid.UUID   `json:"storeId"`
	IsPaid    bool        `json:"isPaid"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	Items     []OrderItem `json:"orderItems"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Total sums the prices of the loaded item products.
func (o *Order) Total() money.Amount {
	var total money.Amount
	for _, item := range o.Items {
		if item.Product != nil {
			total += item.Product.Price
		}
	}
	return total
}

// ShippingDetails is what the payment provider collected from the buyer.
type ShippingDetails struct {
	Address string
	Phone   string
}

// RevenueLine is one sold item of a paid order.
type RevenueLine struct {
	OrderCreatedAt time.Time
	Price          money.Amount
}

type MonthlyRevenue struct {
	Name  string       `json:"name"`
	Total money.Amount `json:"total"`
}

type Overview struct {
	TotalRevenue money.Amount     `json:"totalRevenue"`
	SalesCount   int              `json:"salesCount"`
	StockCount   int              `json:"stockCount"`
	GraphRevenue []MonthlyRevenue `json:"graphRevenue"`
}
