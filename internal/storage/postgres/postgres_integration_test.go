//go:build integration

package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/order"
	"github.com/xenking/kart-pricing/internal/domain/product"
	"github.com/xenking/kart-pricing/internal/domain/sale"
	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "kart",
				"POSTGRES_PASSWORD": "kart",
				"POSTGRES_DB":       "kart",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("start postgres: %v", err)
	}
	defer func() { _ = ctr.Terminate(context.Background()) }()

	host, err := ctr.Host(ctx)
	if err != nil {
		log.Fatalf("host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://kart:kart@%s:%s/kart?sslmode=disable", host, port.Port())
	testPool, err = NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("pool: %v", err)
	}
	defer testPool.Close()

	if err := RunMigrations(ctx, testPool); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	return m.Run()
}

func seedCatalog(t *testing.T, products ...product.Product) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, UpsertProducts(ctx, testPool, products))
	require.NoError(t, NewShippingRepository(testPool).UpsertShippingMethod(ctx, shipping.Method{
		ID: "standard", Name: "Standard", Price: decimal.RequireFromString("20"),
	}))
}

func TestUnitOfWork_CommitsOrderAndOutbox(t *testing.T) {
	ctx := context.Background()
	seedCatalog(t, product.Product{
		ID: "it-laptop", Name: "Laptop", Price: decimal.RequireFromString("100"),
		Quantity: 3, CategoryIDs: []string{"electronics"},
	})

	uow := NewUnitOfWork(testPool)
	products, err := uow.Products().FindAllByID(ctx, []string{"it-laptop"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	p.Quantity -= 2
	require.NoError(t, uow.Products().Update(ctx, p))

	items := []order.LineItem{{
		ProductID: p.ID, Quantity: 2, BasePrice: p.Price, PurchasedPrice: p.Price, CategoryIDs: p.CategoryIDs,
	}}
	pricing := &order.Pricing{
		ProductsTotal:   decimal.RequireFromString("200"),
		DiscountedTotal: decimal.RequireFromString("200"),
		ShippingPrice:   decimal.RequireFromString("20"),
		Total:           decimal.RequireFromString("220"),
	}
	o := order.New("it-order-1", items, "standard", nil, order.PaymentCard, pricing, time.Now())
	require.NoError(t, uow.Orders().Add(ctx, o))
	require.NoError(t, uow.SaveChanges(ctx))

	reread, err := NewUnitOfWork(testPool).Products().FindAllByID(ctx, []string{"it-laptop"})
	require.NoError(t, err)
	assert.Equal(t, 1, reread[0].Quantity)
	assert.Equal(t, p.Version+1, reread[0].Version)

	store := NewOutboxStore(testPool)
	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	var found bool
	for _, m := range pending {
		if m.Key == "it-order-1" {
			found = true
			assert.Equal(t, order.TopicOrderPlaced, m.Topic)
			require.NoError(t, store.MarkDispatched(ctx, []string{m.ID}))
		}
	}
	assert.True(t, found)
}

func TestUnitOfWork_ConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	seedCatalog(t, product.Product{
		ID: "it-phone", Name: "Phone", Price: decimal.RequireFromString("50"), Quantity: 5,
	})

	first := NewUnitOfWork(testPool)
	second := NewUnitOfWork(testPool)

	a, err := first.Products().FindAllByID(ctx, []string{"it-phone"})
	require.NoError(t, err)
	b, err := second.Products().FindAllByID(ctx, []string{"it-phone"})
	require.NoError(t, err)

	a[0].Quantity--
	b[0].Quantity--
	require.NoError(t, first.Products().Update(ctx, a[0]))
	require.NoError(t, second.Products().Update(ctx, b[0]))

	require.NoError(t, first.SaveChanges(ctx))
	err = second.SaveChanges(ctx)
	require.ErrorIs(t, err, product.ErrConcurrentUpdate)

	reread, err := NewUnitOfWork(testPool).Products().FindAllByID(ctx, []string{"it-phone"})
	require.NoError(t, err)
	assert.Equal(t, 4, reread[0].Quantity)
}

func TestCouponRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCouponRepository(testPool)
	now := time.Now().UTC().Truncate(time.Second)

	c, err := coupon.New("it-tech", "TECH", discount.Restore(15, "tech", now.Add(-time.Hour), now.Add(time.Hour)),
		10, decimal.RequireFromString("50"), false,
		coupon.CategoryRestriction{
			CategoriesAllowed:              sale.NewSet("electronics"),
			ProductsFromCategoryNotAllowed: sale.NewSet("it-phone"),
		},
		coupon.ProductRestriction{ProductsAllowed: sale.NewSet("it-laptop")},
	)
	require.NoError(t, err)
	require.NoError(t, repo.InsertCoupon(ctx, c))
	require.ErrorIs(t, repo.InsertCoupon(ctx, c), ErrDuplicateCoupon)

	got, err := repo.FindAllByID(ctx, []string{"it-tech", "missing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TECH", got[0].Code)
	assert.Equal(t, 15, got[0].Discount.Percentage)
	assert.True(t, got[0].MinPrice.Equal(decimal.RequireFromString("50")))
	require.Len(t, got[0].Restrictions, 2)
	assert.Equal(t, coupon.KindCategory, got[0].Restrictions[0].Kind())
	assert.Equal(t, coupon.KindProduct, got[0].Restrictions[1].Kind())
}

func TestSaleRepository_FindsByProductOrCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewSaleRepository(testPool)
	now := time.Now()

	s, err := sale.New("it-sale", discount.Restore(10, "", now.Add(-time.Hour), now.Add(time.Hour)),
		nil, sale.NewSet("it-books"), nil)
	require.NoError(t, err)
	require.NoError(t, repo.InsertSale(ctx, s))

	got, err := repo.FindActiveSalesForProducts(ctx, []string{"none"}, []string{"it-books"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Categories.Has("it-books"))

	got, err = repo.FindActiveSalesForProducts(ctx, []string{"none"}, []string{"garden"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShippingRepository_NotFound(t *testing.T) {
	_, err := NewShippingRepository(testPool).FindByID(context.Background(), "teleport")
	require.ErrorIs(t, err, shipping.ErrNotFound)
}
