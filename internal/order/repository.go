package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	// FindProducts returns the non-archived products of storeID among ids, each once.
	FindProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	// CreateOrder persists an unpaid order with its items in one transaction.
	CreateOrder(ctx context.Context, o *Order) error
	// MarkPaid sets the paid flag and shipping details, returning the product IDs of the order.
	MarkPaid(ctx context.Context, orderID uuid.UUID, details ShippingDetails) ([]uuid.UUID, error)
	ArchiveProducts(ctx context.Context, productIDs []uuid.UUID) error
	ListOrders(ctx context.Context, storeID uuid.UUID) ([]Order, error)
	ListPaidLines(ctx context.Context, storeID uuid.UUID) ([]RevenueLine, error)
	CountPaidOrders(ctx context.Context, storeID uuid.UUID) (int, error)
	CountStockProducts(ctx context.Context, storeID uuid.UUID) (int, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) FindProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, price::text
		FROM products
		WHERE store_id = $1 AND id = ANY($2) AND NOT is_archived`, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products for store %s: %w", storeID, err)
	}
	defer rows.Close()

	products := make([]Product, 0, len(ids))
	for rows.Next() {
		var p Product
		var price string
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		if p.Price, err = money.Parse(price); err != nil {
			return nil, fmt.Errorf("repository: product %s has invalid price %q: %w", p.ID, price, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresRepository) CreateOrder(ctx context.Context, o *Order) (err error) {
	orderID := o.ID
	if orderID == uuid.Nil {
		if orderID, err = uuid.NewV4(); err != nil {
			return fmt.Errorf("repository: failed to generate order ID: %w", err)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Stringer("order_id", orderID).Msg("Panic recovered during CreateOrder, rolling back")
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Stringer("order_id", orderID).Msg("Transaction for CreateOrder failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("order_id", orderID).Msg("Failed to rollback transaction")
			}
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
		}
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, store_id, is_paid, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		orderID, o.StoreID, o.IsPaid, o.Address, o.Phone, now, now)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		itemID, genErr := uuid.NewV4()
		if genErr != nil {
			return fmt.Errorf("repository: failed to generate order item ID: %w", genErr)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, position, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			itemID, orderID, item.ProductID, i, now)
		if err != nil {
			return fmt.Errorf("repository: failed to insert order item for order %s: %w", orderID, err)
		}
		item.ID, item.OrderID = itemID, orderID
	}

	o.ID, o.CreatedAt, o.UpdatedAt = orderID, now, now
	return nil
}

func (r *postgresRepository) MarkPaid(ctx context.Context, orderID uuid.UUID, details ShippingDetails) ([]uuid.UUID, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET is_paid = true, address = $1, phone = $2, updated_at = $3
		WHERE id = $4`,
		details.Address, details.Phone, time.Now().UTC(), orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to mark order %s paid: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrOrderNotFound
	}

	rows, err := r.db.Query(ctx, `SELECT product_id FROM order_items WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query items of order %s: %w", orderID, err)
	}
	defer rows.Close()

	productIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item of order %s: %w", orderID, err)
		}
		productIDs = append(productIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating items of order %s: %w", orderID, err)
	}
	return productIDs, nil
}

func (r *postgresRepository) ArchiveProducts(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		UPDATE products SET is_archived = true, updated_at = $1
		WHERE id = ANY($2)`, time.Now().UTC(), productIDs)
	if err != nil {
		return fmt.Errorf("repository: failed to archive products: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListOrders(ctx context.Context, storeID uuid.UUID) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, is_paid, address, phone, created_at, updated_at
		FROM orders WHERE store_id = $1
		ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for store %s: %w", storeID, err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	index := make(map[uuid.UUID]int)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.StoreID, &o.IsPaid, &o.Address, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		o.Items = make([]OrderItem, 0)
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.order_id, p.id, p.store_id, p.name, p.price::text
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.position`, ids)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for store %s: %w", storeID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		var p Product
		var price string
		if err := itemRows.Scan(&item.ID, &item.OrderID, &p.ID, &p.StoreID, &p.Name, &price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		if p.Price, err = money.Parse(price); err != nil {
			return nil, fmt.Errorf("repository: product %s has invalid price %q: %w", p.ID, price, err)
		}
		item.ProductID, item.Product = p.ID, &p
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}
	return orders, nil
}

func (r *postgresRepository) ListPaidLines(ctx context.Context, storeID uuid.UUID) ([]RevenueLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.created_at, p.price::text
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.store_id = $1 AND o.is_paid`, storeID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query paid items for store %s: %w", storeID, err)
	}
	defer rows.Close()

	lines := make([]RevenueLine, 0)
	for rows.Next() {
		var line RevenueLine
		var price string
		if err := rows.Scan(&line.OrderCreatedAt, &price); err != nil {
			return nil, fmt.Errorf("repository: failed to scan paid item: %w", err)
		}
		if line.Price, err = money.Parse(price); err != nil {
			return nil, fmt.Errorf("repository: invalid price %q: %w", price, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating paid items: %w", err)
	}
	return lines, nil
}

func (r *postgresRepository) CountPaidOrders(ctx context.Context, storeID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE store_id = $1 AND is_paid`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count paid orders for store %s: %w", storeID, err)
	}
	return n, nil
}

func (r *postgresRepository) CountStockProducts(ctx context.Context, storeID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM products WHERE store_id = $1 AND NOT is_archived`, storeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count products for store %s: %w", storeID, err)
	}
	return n, nil
}
