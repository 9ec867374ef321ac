package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

type postgresRepository struct {
	db DB
}

// NewPostgresRepositories returns every catalog repository backed by one pool.
func NewPostgresRepositories(db DB) Repositories {
	r := &postgresRepository{db: db}
	return Repositories{
		Stores:     r,
		Billboards: r,
		Categories: r,
		Attributes: r,
		Products:   r,
	}
}

func newID(current uuid.UUID) (uuid.UUID, error) {
	if current != uuid.Nil {
		return current, nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, fmt.Errorf("repository: failed to generate id: %w", err)
	}
	return id, nil
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

// ---- stores ----

func (r *postgresRepository) CreateStore(ctx context.Context, s *Store) error {
	id, err := newID(s.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	_, err = r.db.Exec(ctx, `
		INSERT INTO stores (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		id, s.UserID, s.Name, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert store: %w", err)
	}

	s.ID, s.CreatedAt, s.UpdatedAt = id, now, now
	return nil
}

func (r *postgresRepository) GetStore(ctx context.Context, id uuid.UUID) (*Store, error) {
	var s Store
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM stores WHERE id = $1`, id).
		Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select store %s: %w", id, err)
	}
	return &s, nil
}

func (r *postgresRepository) ListStoresByUser(ctx context.Context, userID string) ([]Store, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM stores WHERE user_id = $1
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query stores for user %s: %w", userID, err)
	}
	defer rows.Close()

	stores := make([]Store, 0)
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating stores: %w", err)
	}
	return stores, nil
}

func (r *postgresRepository) UpdateStore(ctx context.Context, s *Store) error {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, `UPDATE stores SET name = $1, updated_at = $2 WHERE id = $3`, s.Name, now, s.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update store %s: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	s.UpdatedAt = now
	return nil
}

func (r *postgresRepository) DeleteStore(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete store %s: %w", id, translateWriteError(err, ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- billboards ----

func (r *postgresRepository) CreateBillboard(ctx context.Context, b *Billboard) error {
	id, err := newID(b.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	_, err = r.db.Exec(ctx, `
		INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, b.StoreID, b.Label, b.ImageURL, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert billboard: %w", translateWriteError(err, ErrInvalidReference))
	}

	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	return nil
}

func (r *postgresRepository) GetBillboard(ctx context.Context, storeID, id uuid.UUID) (*Billboard, error) {
	var b Billboard
	err := r.db.QueryRow(ctx, `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards WHERE store_id = $1 AND id = $2`, storeID, id).
		Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select billboard %s: %w", id, err)
	}
	return &b, nil
}

func (r *postgresRepository) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]Billboard, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards WHERE store_id = $1
		ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query billboards for store %s: %w", storeID, err)
	}
	defer rows.Close()

	billboards := make([]Billboard, 0)
	for rows.Next() {
		var b Billboard
		if err := rows.Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan billboard: %w", err)
		}
		billboards = append(billboards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating billboards: %w", err)
	}
	return billboards, nil
}

func (r *postgresRepository) UpdateBillboard(ctx context.Context, b *Billboard) error {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
		UPDATE billboards SET label = $1, image_url = $2, updated_at = $3
		WHERE store_id = $4 AND id = $5`,
		b.Label, b.ImageURL, now, b.StoreID, b.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update billboard %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	b.UpdatedAt = now
	return nil
}

func (r *postgresRepository) DeleteBillboard(ctx context.Context, storeID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM billboards WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete billboard %s: %w", id, translateWriteError(err, ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- categories ----

const selectCategory = `
	SELECT c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
	       b.id, b.store_id, b.label, b.image_url, b.created_at, b.updated_at
	FROM categories c
	JOIN billboards b ON b.id = c.billboard_id`

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	var b Billboard
	err := row.Scan(&c.ID, &c.StoreID, &c.BillboardID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
		&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Billboard = &b
	return &c, nil
}

func (r *postgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	id, err := newID(c.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	// The billboard must belong to the same store.
	tag, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at)
		SELECT $1, $2, b.id, $4, $5, $6 FROM billboards b WHERE b.id = $3 AND b.store_id = $2`,
		id, c.StoreID, c.BillboardID, c.Name, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert category: %w", translateWriteError(err, ErrInvalidReference))
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidReference
	}

	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	return nil
}

func (r *postgresRepository) GetCategory(ctx context.Context, storeID, id uuid.UUID) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, selectCategory+` WHERE c.store_id = $1 AND c.id = $2`, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select category %s: %w", id, err)
	}
	return c, nil
}

func (r *postgresRepository) ListCategories(ctx context.Context, storeID uuid.UUID) ([]Category, error) {
	rows, err := r.db.Query(ctx, selectCategory+` WHERE c.store_id = $1 ORDER BY c.created_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query categories for store %s: %w", storeID, err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating categories: %w", err)
	}
	return categories, nil
}

func (r *postgresRepository) UpdateCategory(ctx context.Context, c *Category) error {
	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $1, billboard_id = $2, updated_at = $3
		WHERE store_id = $4 AND id = $5
		  AND EXISTS (SELECT 1 FROM billboards b WHERE b.id = $2 AND b.store_id = $4)`,
		c.Name, c.BillboardID, now, c.StoreID, c.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update category %s: %w", c.ID, translateWriteError(err, ErrInvalidReference))
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetCategory(ctx, c.StoreID, c.ID); err != nil {
			return err
		}
		return ErrInvalidReference
	}
	c.UpdatedAt = now
	return nil
}

func (r *postgresRepository) DeleteCategory(ctx context.Context, storeID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete category %s: %w", id, translateWriteError(err, ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- sizes and colors ----

// attributeTable maps a kind to its table; kinds are never interpolated from user input directly.
func attributeTable(kind AttributeKind) (string, error) {
	switch kind {
	case KindSize:
		return "sizes", nil
	case KindColor:
		return "colors", nil
	default:
		return "", fmt.Errorf("repository: unknown attribute kind %q", kind)
	}
}

func (r *postgresRepository) CreateAttribute(ctx context.Context, a *Attribute) error {
	table, err := attributeTable(a.Kind)
	if err != nil {
		return err
	}
	id, err := newID(a.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	_, err = r.db.Exec(ctx, `
		INSERT INTO `+table+` (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, a.StoreID, a.Name, a.Value, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert into %s: %w", table, translateWriteError(err, ErrInvalidReference))
	}

	a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	return nil
}

func (r *postgresRepository) GetAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) (*Attribute, error) {
	table, err := attributeTable(kind)
	if err != nil {
		return nil, err
	}

	a := Attribute{Kind: kind}
	err = r.db.QueryRow(ctx, `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM `+table+` WHERE store_id = $1 AND id = $2`, storeID, id).
		Scan(&a.ID, &a.StoreID, &a.Name, &a.Value, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select from %s %s: %w", table, id, err)
	}
	return &a, nil
}

func (r *postgresRepository) ListAttributes(ctx context.Context, kind AttributeKind, storeID uuid.UUID) ([]Attribute, error) {
	table, err := attributeTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM `+table+` WHERE store_id = $1
		ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query %s for store %s: %w", table, storeID, err)
	}
	defer rows.Close()

	attrs := make([]Attribute, 0)
	for rows.Next() {
		a := Attribute{Kind: kind}
		if err := rows.Scan(&a.ID, &a.StoreID, &a.Name, &a.Value, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan %s row: %w", table, err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating %s: %w", table, err)
	}
	return attrs, nil
}

func (r *postgresRepository) UpdateAttribute(ctx context.Context, a *Attribute) error {
	table, err := attributeTable(a.Kind)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	tag, err := r.db.Exec(ctx, `
		UPDATE `+table+` SET name = $1, value = $2, updated_at = $3
		WHERE store_id = $4 AND id = $5`,
		a.Name, a.Value, now, a.StoreID, a.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to update %s %s: %w", table, a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	a.UpdatedAt = now
	return nil
}

func (r *postgresRepository) DeleteAttribute(ctx context.Context, kind AttributeKind, storeID, id uuid.UUID) error {
	table, err := attributeTable(kind)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete from %s %s: %w", table, id, translateWriteError(err, ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- products ----

const selectProduct = `
	SELECT p.id, p.store_id, p.category_id, p.size_id, p.color_id, p.name, p.price::text,
	       p.is_featured, p.is_archived, p.created_at, p.updated_at,
	       c.name, s.name, s.value, co.name, co.value
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN sizes s ON s.id = p.size_id
	JOIN colors co ON co.id = p.color_id`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p     Product
		price string
		c     Category
		size  = Attribute{Kind: KindSize}
		color = Attribute{Kind: KindColor}
	)
	err := row.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name, &price,
		&p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
		&c.Name, &size.Name, &size.Value, &color.Name, &color.Value)
	if err != nil {
		return nil, err
	}

	p.Price, err = money.Parse(price)
	if err != nil {
		return nil, err
	}

	c.ID, c.StoreID = p.CategoryID, p.StoreID
	size.ID, size.StoreID = p.SizeID, p.StoreID
	color.ID, color.StoreID = p.ColorID, p.StoreID
	p.Category, p.Size, p.Color = &c, &size, &color
	p.Images = make([]Image, 0)
	return &p, nil
}

// checkProductReferences makes sure category, size and color belong to the product's store.
func checkProductReferences(ctx context.Context, tx pgx.Tx, p *Product) error {
	var ok bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $2 AND store_id = $1)
		   AND EXISTS (SELECT 1 FROM sizes WHERE id = $3 AND store_id = $1)
		   AND EXISTS (SELECT 1 FROM colors WHERE id = $4 AND store_id = $1)`,
		p.StoreID, p.CategoryID, p.SizeID, p.ColorID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("repository: failed to check product references: %w", err)
	}
	if !ok {
		return ErrInvalidReference
	}
	return nil
}

func insertImages(ctx context.Context, tx pgx.Tx, p *Product, now time.Time) error {
	for i := range p.Images {
		img := &p.Images[i]
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("repository: failed to generate image id: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO images (id, product_id, url, position, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			id, p.ID, img.URL, i, now)
		if err != nil {
			return fmt.Errorf("repository: failed to insert image for product %s: %w", p.ID, err)
		}
		img.ID = id
	}
	return nil
}

// withTx runs fn in a transaction, committing on success and rolling back otherwise.
func (r *postgresRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("Failed to rollback transaction")
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(tx)
}

func (r *postgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	id, err := newID(p.ID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	err = r.withTx(ctx, func(tx pgx.Tx) error {
		if err := checkProductReferences(ctx, tx, p); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price,
			                      is_featured, is_archived, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9, $10, $11)`,
			id, p.StoreID, p.CategoryID, p.SizeID, p.ColorID, p.Name, p.Price.String(),
			p.IsFeatured, p.IsArchived, now, now)
		if err != nil {
			return fmt.Errorf("repository: failed to insert product: %w", translateWriteError(err, ErrInvalidReference))
		}

		p.ID = id
		return insertImages(ctx, tx, p, now)
	})
	if err != nil {
		p.ID = uuid.Nil
		return err
	}

	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

func (r *postgresRepository) GetProduct(ctx context.Context, storeID, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, selectProduct+` WHERE p.store_id = $1 AND p.id = $2`, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product %s: %w", id, err)
	}

	if err := r.attachImages(ctx, map[uuid.UUID]*Product{p.ID: p}, []uuid.UUID{p.ID}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	rows, err := r.db.Query(ctx, selectProduct+`
		WHERE p.store_id = $1
		  AND ($2::uuid IS NULL OR p.category_id = $2)
		  AND ($3::uuid IS NULL OR p.size_id = $3)
		  AND ($4::uuid IS NULL OR p.color_id = $4)
		  AND (NOT $5::bool OR p.is_featured)
		  AND ($6::bool OR NOT p.is_archived)
		ORDER BY p.created_at DESC`,
		filter.StoreID,
		nullableUUID(filter.CategoryID),
		nullableUUID(filter.SizeID),
		nullableUUID(filter.ColorID),
		filter.FeaturedOnly,
		filter.IncludeArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products for store %s: %w", filter.StoreID, err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*Product)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating products: %w", err)
	}

	if len(ids) == 0 {
		return []Product{}, nil
	}

	if err := r.attachImages(ctx, byID, ids); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, *byID[id])
	}
	return products, nil
}

func (r *postgresRepository) attachImages(ctx context.Context, byID map[uuid.UUID]*Product, ids []uuid.UUID) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, url FROM images
		WHERE product_id = ANY($1)
		ORDER BY product_id, position`, ids)
	if err != nil {
		return fmt.Errorf("repository: failed to query product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		var productID uuid.UUID
		if err := rows.Scan(&img.ID, &productID, &img.URL); err != nil {
			return fmt.Errorf("repository: failed to scan product image: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("repository: failed iterating product images: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateProduct(ctx context.Context, p *Product) error {
	now := time.Now().UTC()

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if err := checkProductReferences(ctx, tx, p); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET name = $1, price = $2::text::numeric, category_id = $3, size_id = $4, color_id = $5,
			    is_featured = $6, is_archived = $7, updated_at = $8
			WHERE store_id = $9 AND id = $10`,
			p.Name, p.Price.String(), p.CategoryID, p.SizeID, p.ColorID,
			p.IsFeatured, p.IsArchived, now, p.StoreID, p.ID)
		if err != nil {
			return fmt.Errorf("repository: failed to update product %s: %w", p.ID, translateWriteError(err, ErrInvalidReference))
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM images WHERE product_id = $1`, p.ID); err != nil {
			return fmt.Errorf("repository: failed to clear images for product %s: %w", p.ID, err)
		}
		return insertImages(ctx, tx, p, now)
	})
	if err != nil {
		return err
	}

	p.UpdatedAt = now
	return nil
}

func (r *postgresRepository) DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE store_id = $1 AND id = $2`, storeID, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %s: %w", id, translateWriteError(err, ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
