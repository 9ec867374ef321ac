package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

// ErrForbidden is returned when the caller does not own the store being written to.
var ErrForbidden = errors.New("catalog: store does not belong to user")

type Service interface {
	// Authorize reports ErrForbidden unless userID owns storeID.
	Authorize(ctx context.Context, userID string, storeID uuid.UUID) error

	CreateStore(ctx context.Context, userID, name string) (*Store, error)
	GetStore(ctx context.Context, storeID uuid.UUID) (*Store, error)
	ListStores(ctx context.Context, userID string) ([]Store, error)
	UpdateStore(ctx context.Context, userID string, s *Store) error
	DeleteStore(ctx context.Context, userID string, storeID uuid.UUID) error

	CreateBillboard(ctx context.Context, userID string, b *Billboard) error
	GetBillboard(ctx context.Context, storeID, id uuid.UUID) (*Billboard, error)
	ListBillboards(ctx context.Context, storeID uuid.UUID) ([]Billboard, error)
	UpdateBillboard(ctx context.Context, userID string, b *Billboard) error
	DeleteBillboard(ctx context.Context, userID string, storeID, id uuid.UUID) error

	CreateCategory(ctx context.Context, userID string, c *Category) error
	GetCategory(ctx context.Context, storeID, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, storeID uuid.UUID) ([]Category, error)
	UpdateCategory(ctx context.Context, userID string, c *Category) error
	DeleteCategory(ctx context.Context, userID string, storeID, id uuid.UUID) error

	CreateAttribute(ctx context.Context, userID string, a *Attribute) error
	GetAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) (*Attribute, error)
	ListAttributes(ctx context.Context, kind AttributeKind, storeID uuid.UUID) ([]Attribute, error)
	UpdateAttribute(ctx context.Context, userID string, a *Attribute) error
	DeleteAttribute(ctx context.Context, userID string, kind AttributeKind, storeID, id uuid.UUID) error

	CreateProduct(ctx context.Context, userID string, p *Product) error
	GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx context.Context, userID string, p *Product) error
	DeleteProduct(ctx context.Context, userID string, storeID, id uuid.UUID) error
}

type service struct {
	repos Repositories
}

func NewService(repos Repositories) Service {
	return &service{repos: repos}
}

func (s *service) Authorize(ctx context.Context, userID string, storeID uuid.UUID) error {
	if userID == "" {
		return ErrForbidden
	}

	store, err := s.repos.Stores.GetStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to load store %s: %w", storeID, err)
	}

	if store.UserID != userID {
		log.Warn().Str("user_id", userID).Str("store_id", storeID.String()).Msg("Store ownership check failed")
		return ErrForbidden
	}
	return nil
}

// ---- stores ----

func (s *service) CreateStore(ctx context.Context, userID, name string) (*Store, error) {
	if userID == "" {
		return nil, ErrForbidden
	}

	store := &Store{UserID: userID, Name: name}
	if err := s.repos.Stores.CreateStore(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, nil
}

func (s *service) GetStore(ctx context.Context, storeID uuid.UUID) (*Store, error) {
	return s.repos.Stores.GetStore(ctx, storeID)
}

func (s *service) ListStores(ctx context.Context, userID string) ([]Store, error) {
	return s.repos.Stores.ListStoresByUser(ctx, userID)
}

func (s *service) UpdateStore(ctx context.Context, userID string, store *Store) error {
	if err := s.Authorize(ctx, userID, store.ID); err != nil {
		return err
	}
	store.UserID = userID
	return s.repos.Stores.UpdateStore(ctx, store)
}

func (s *service) DeleteStore(ctx context.Context, userID string, storeID uuid.UUID) error {
	if err := s.Authorize(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repos.Stores.DeleteStore(ctx, storeID)
}

// ---- billboards ----

func (s *service) CreateBillboard(ctx context.Context, userID string, b *Billboard) error {
	if err := s.Authorize(ctx, userID, b.StoreID); err != nil {
		return err
	}
	return s.repos.Billboards.CreateBillboard(ctx, b)
}

func (s *service) GetBillboard(ctx context.Context, storeID, id uuid.UUID) (*Billboard, error) {
	return s.repos.Billboards.GetBillboard(ctx, storeID, id)
}

func (s *service) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]Billboard, error) {
	return s.repos.Billboards.ListBillboards(ctx, storeID)
}

func (s *service) UpdateBillboard(ctx context.Context, userID string, b *Billboard) error {
	if err := s.Authorize(ctx, userID, b.StoreID); err != nil {
		return err
	}
	return s.repos.Billboards.UpdateBillboard(ctx, b)
}

func (s *service) DeleteBillboard(ctx context.Context, userID string, storeID, id uuid.UUID) error {
	if err := s.Authorize(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repos.Billboards.DeleteBillboard(ctx, storeID, id)
}

// ---- categories ----

func (s *service) CreateCategory(ctx context.Context, userID string, c *Category) error {
	if err := s.Authorize(ctx, userID, c.StoreID); err != nil {
		return err
	}
	return s.repos.Categories.CreateCategory(ctx, c)
}

func (s *service) GetCategory(ctx context.Context, storeID, id uuid.UUID) (*Category, error) {
	return s.repos.Categories.GetCategory(ctx, storeID, id)
}

func (s *service) ListCategories(ctx context.Context, storeID uuid.UUID) ([]Category, error) {
	return s.repos.Categories.ListCategories(ctx, storeID)
}

func (s *service) UpdateCategory(ctx context.Context, userID string, c *Category) error {
	if err := s.Authorize(ctx, userID, c.StoreID); err != nil {
		return err
	}
	return s.repos.Categories.UpdateCategory(ctx, c)
}

func (s *service) DeleteCategory(ctx context.Context, userID string, storeID, id uuid.UUID) error {
	if err := s.Authorize(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repos.Categories.DeleteCategory(ctx, storeID, id)
}

// ---- sizes and colors ----

func (s *service) CreateAttribute(ctx context.Context, userID string, a *Attribute) error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown attribute kind %q", a.Kind)
	}
	if err := s.Authorize(ctx, userID, a.StoreID); err != nil {
		return err
	}
	return s.repos.Attributes.CreateAttribute(ctx, a)
}

func (s *service) GetAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) (*Attribute, error) {
	return s.repos.Attributes.GetAttribute(ctx, kind, storeID, id)
}

func (s *service) ListAttributes(ctx context.Context, kind AttributeKind, storeID uuid.UUID) ([]Attribute, error) {
	return s.repos.Attributes.ListAttributes(ctx, kind, storeID)
}

func (s *service) UpdateAttribute(ctx context.Context, userID string, a *Attribute) error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown attribute kind %q", a.Kind)
	}
	if err := s.Authorize(ctx, userID, a.StoreID); err != nil {
		return err
	}
	return s.repos.Attributes.UpdateAttribute(ctx, a)
}

func (s *service) DeleteAttribute(ctx context.Context, userID string, kind AttributeKind, storeID, id uuid.UUID) error {
	if err := s.Authorize(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repos.Attributes.DeleteAttribute(ctx, kind, storeID, id)
}

// ---- products ----

func (s *service) CreateProduct(ctx context.Context, userID string, p *Product) error {
	if err := s.Authorize(ctx, userID, p.StoreID); err != nil {
		return err
	}
	return s.repos.Products.CreateProduct(ctx, p)
}

func (s *service) GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error) {
	return s.repos.Products.GetProduct(ctx, storeID, id)
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	return s.repos.Products.ListProducts(ctx, filter)
}

func (s *service) UpdateProduct(ctx context.Context, userID string, p *Product) error {
	if err := s.Authorize(ctx, userID, p.StoreID); err != nil {
		return err
	}
	return s.repos.Products.UpdateProduct(ctx, p)
}

func (s *service) DeleteProduct(ctx context.Context, userID string, storeID, id uuid.UUID) error {
	if err := s.Authorize(ctx, userID, storeID); err != nil {
		return err
	}
	return s.repos.Products.DeleteProduct(ctx, storeID, id)
}
