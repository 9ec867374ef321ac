package catalog

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

// Store is the tenant boundary; everything else in the catalog belongs to one.
type Store struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Billboard struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"storeId"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"storeId"`
	BillboardID uuid.UUID  `json:"billboardId"`
	Name        string     `json:"name"`
	Billboard   *Billboard `json:"billboard,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AttributeKind selects between the two name/value product attributes.
type AttributeKind string

const (
	KindSize  AttributeKind = "sizes"
	KindColor AttributeKind = "colors"
)

func (k AttributeKind) Valid() bool {
	return k == KindSize || k == KindColor
}

// Attribute is a size or a color: a display name plus a value such as "XL" or "#000000".
type Attribute struct {
	ID        uuid.UUID     `json:"id"`
	StoreID   uuid.UUID     `json:"storeId"`
	Kind      AttributeKind `json:"-"`
	Name      string        `json:"name"`
	Value     string        `json:"value"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type Image struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type Product struct {
	ID         uuid.UUID    `json:"id"`
	StoreID    uuid.UUID    `json:"storeId"`
	CategoryID uuid.UUID    `json:"categoryId"`
	SizeID     uuid.UUID    `json:"sizeId"`
	ColorID    uuid.UUID    `json:"colorId"`
	Name       string       `json:"name"`
	Price      money.Amount `json:"price"`
	IsFeatured bool         `json:"isFeatured"`
	IsArchived bool         `json:"isArchived"`
	Images     []Image      `json:"images"`
	Category   *Category    `json:"category,omitempty"`
	Size       *Attribute   `json:"size,omitempty"`
	Color      *Attribute   `json:"color,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ProductFilter narrows product listings. Zero values mean "any".
type ProductFilter struct {
	StoreID         uuid.UUID
	CategoryID      uuid.UUID
	SizeID          uuid.UUID
	ColorID         uuid.UUID
	FeaturedOnly    bool
	IncludeArchived bool
}
