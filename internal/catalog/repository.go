package catalog

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound = errors.New("catalog: not found")
	// ErrInvalidReference is returned when a write points at a missing billboard, category, size or color.
	ErrInvalidReference = errors.New("catalog: referenced entity does not exist")
	// ErrInUse is returned when deleting a row that other rows still reference.
	ErrInUse = errors.New("catalog: entity is still in use")
)

type StoreRepository interface {
	CreateStore(ctx context.Context, s *Store) error
	GetStore(ctx context.Context, id uuid.UUID) (*Store, error)
	ListStoresByUser(ctx context.Context, userID string) ([]Store, error)
	UpdateStore(ctx context.Context, s *Store) error
	DeleteStore(ctx context.Context, id uuid.UUID) error
}

type BillboardRepository interface {
	CreateBillboard(ctx context.Context, b *Billboard) error
	GetBillboard(ctx context.Context, storeID, id uuid.UUID) (*Billboard, error)
	ListBillboards(ctx context.Context, storeID uuid.UUID) ([]Billboard, error)
	UpdateBillboard(ctx context.Context, b *Billboard) error
	DeleteBillboard(ctx context.Context, storeID, id uuid.UUID) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, storeID, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, storeID uuid.UUID) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error
}

type AttributeRepository interface {
	CreateAttribute(ctx context.Context, a *Attribute) error
	GetAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) (*Attribute, error)
	ListAttributes(ctx context.Context, kind AttributeKind, storeID uuid.UUID) ([]Attribute, error)
	UpdateAttribute(ctx context.Context, a *Attribute) error
	DeleteAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) error
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	// UpdateProduct rewrites the product row and replaces its image set.
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error
}

// Repositories groups the catalog data access dependencies of the service.
type Repositories struct {
	Stores     StoreRepository
	Billboards BillboardRepository
	Categories CategoryRepository
	Attributes AttributeRepository
	Products   ProductRepository
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// translateWriteError maps constraint violations onto catalog errors.
// fkErr is what a foreign key violation means for this particular statement.
func translateWriteError(err error, fkErr error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return fkErr
		case pgerrcode.InvalidTextRepresentation:
			return ErrInvalidReference
		}
	}
	return err
}
