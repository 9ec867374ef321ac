package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/config"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/db"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openTestDB connects to the database named by the DB_*_TEST variables and applies migrations.
func openTestDB(t *testing.T) *db.Postgres {
	t.Helper()

	host := os.Getenv("DB_HOST_TEST")
	if host == "" {
		t.Skip("DB_HOST_TEST not set, skipping postgres integration tests")
	}

	cfg := config.PostgresConfig{
		Host:            host,
		Port:            envOr("DB_PORT_TEST", "5432"),
		User:            envOr("DB_USER_TEST", "postgres"),
		Password:        envOr("DB_PASSWORD_TEST", "123456"),
		DBName:          envOr("DB_NAME_TEST", "store_admin_test"),
		SSLMode:         envOr("DB_SSLMODE_TEST", "disable"),
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
		MigrationsPath:  "../../migrations",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := db.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	require.NoError(t, pg.MigrateUp())
	return pg
}

type seeded struct {
	store    *catalog.Store
	category *catalog.Category
	size     *catalog.Attribute
	color    *catalog.Attribute
}

func seedCatalog(t *testing.T, ctx context.Context, repos catalog.Repositories) seeded {
	t.Helper()

	store := &catalog.Store{UserID: "user_" + uuid.Must(uuid.NewV4()).String(), Name: "Integration"}
	require.NoError(t, repos.Stores.CreateStore(ctx, store))

	billboard := &catalog.Billboard{StoreID: store.ID, Label: "Hero", ImageURL: "https://img/hero.png"}
	require.NoError(t, repos.Billboards.CreateBillboard(ctx, billboard))

	category := &catalog.Category{StoreID: store.ID, BillboardID: billboard.ID, Name: "Shirts"}
	require.NoError(t, repos.Categories.CreateCategory(ctx, category))

	size := &catalog.Attribute{Kind: catalog.KindSize, StoreID: store.ID, Name: "Large", Value: "L"}
	require.NoError(t, repos.Attributes.CreateAttribute(ctx, size))

	color := &catalog.Attribute{Kind: catalog.KindColor, StoreID: store.ID, Name: "Black", Value: "#000000"}
	require.NoError(t, repos.Attributes.CreateAttribute(ctx, color))

	return seeded{store: store, category: category, size: size, color: color}
}

func newProduct(s seeded, name string, price money.Amount) *catalog.Product {
	return &catalog.Product{
		StoreID:    s.store.ID,
		CategoryID: s.category.ID,
		SizeID:     s.size.ID,
		ColorID:    s.color.ID,
		Name:       name,
		Price:      price,
		Images:     []catalog.Image{{URL: "https://img/" + name + "-1.png"}, {URL: "https://img/" + name + "-2.png"}},
	}
}

func TestPostgres_CatalogRepositories(t *testing.T) {
	pg := openTestDB(t)
	ctx := context.Background()
	repos := catalog.NewPostgresRepositories(pg.Pool)
	s := seedCatalog(t, ctx, repos)

	shirt := newProduct(s, "shirt", 1000)
	shirt.IsFeatured = true
	require.NoError(t, repos.Products.CreateProduct(ctx, shirt))

	jacket := newProduct(s, "jacket", 2550)
	jacket.IsArchived = true
	require.NoError(t, repos.Products.CreateProduct(ctx, jacket))

	got, err := repos.Products.GetProduct(ctx, s.store.ID, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1000), got.Price)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://img/shirt-1.png", got.Images[0].URL)
	assert.Equal(t, "Shirts", got.Category.Name)

	public, err := repos.Products.ListProducts(ctx, catalog.ProductFilter{StoreID: s.store.ID})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, shirt.ID, public[0].ID)

	all, err := repos.Products.ListProducts(ctx, catalog.ProductFilter{StoreID: s.store.ID, IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	featured, err := repos.Products.ListProducts(ctx, catalog.ProductFilter{StoreID: s.store.ID, FeaturedOnly: true, ColorID: s.color.ID})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	shirt.Images = []catalog.Image{{URL: "https://img/shirt-new.png"}}
	shirt.Price = 1299
	require.NoError(t, repos.Products.UpdateProduct(ctx, shirt))
	got, err = repos.Products.GetProduct(ctx, s.store.ID, shirt.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.99", got.Price.String())
	require.Len(t, got.Images, 1)
	assert.Equal(t, "https://img/shirt-new.png", got.Images[0].URL)

	bad := newProduct(s, "ghost", 100)
	bad.CategoryID = uuid.Must(uuid.NewV4())
	assert.ErrorIs(t, repos.Products.CreateProduct(ctx, bad), catalog.ErrInvalidReference)

	assert.ErrorIs(t, repos.Billboards.DeleteBillboard(ctx, s.store.ID, s.category.BillboardID), catalog.ErrInUse)
	assert.ErrorIs(t, repos.Billboards.DeleteBillboard(ctx, s.store.ID, uuid.Must(uuid.NewV4())), catalog.ErrNotFound)
}

func TestPostgres_OrderLifecycle(t *testing.T) {
	pg := openTestDB(t)
	ctx := context.Background()
	repos := catalog.NewPostgresRepositories(pg.Pool)
	orders := order.NewRepository(pg.Pool)
	s := seedCatalog(t, ctx, repos)

	p1 := newProduct(s, "p1", 1000)
	p2 := newProduct(s, "p2", 2550)
	require.NoError(t, repos.Products.CreateProduct(ctx, p1))
	require.NoError(t, repos.Products.CreateProduct(ctx, p2))

	found, err := orders.FindProducts(ctx, s.store.ID, []uuid.UUID{p1.ID, p2.ID, uuid.Must(uuid.NewV4())})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	o := &order.Order{StoreID: s.store.ID, Items: []order.OrderItem{{ProductID: p1.ID}, {ProductID: p2.ID}, {ProductID: p1.ID}}}
	require.NoError(t, orders.CreateOrder(ctx, o))

	lines, err := orders.ListPaidLines(ctx, s.store.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	details := order.ShippingDetails{Address: "1 Main St, Springfield", Phone: "+15550100"}
	productIDs, err := orders.MarkPaid(ctx, o.ID, details)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p1.ID, p2.ID, p1.ID}, productIDs)
	require.NoError(t, orders.ArchiveProducts(ctx, []uuid.UUID{p1.ID, p2.ID}))

	// Second delivery leaves the same state.
	_, err = orders.MarkPaid(ctx, o.ID, details)
	require.NoError(t, err)

	listed, err := orders.ListOrders(ctx, s.store.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsPaid)
	assert.Equal(t, details.Address, listed[0].Address)
	assert.Equal(t, money.Amount(4550), listed[0].Total())

	lines, err = orders.ListPaidLines(ctx, s.store.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	sales, err := orders.CountPaidOrders(ctx, s.store.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sales)

	stock, err := orders.CountStockProducts(ctx, s.store.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = orders.MarkPaid(ctx, uuid.Must(uuid.NewV4()), details)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
