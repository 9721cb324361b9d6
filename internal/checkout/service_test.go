package checkout

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/internal/cart"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubCheckoutStore struct {
	lines   []cart.ItemWithProduct
	orders  []*models.Order
	numbers map[string]bool
	cleared bool
}

func newStubCheckoutStore(lines ...cart.ItemWithProduct) *stubCheckoutStore {
	return &stubCheckoutStore{lines: lines, numbers: map[string]bool{}}
}

func (s *stubCheckoutStore) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (s *stubCheckoutStore) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]cart.ItemWithProduct, error) {
	return s.lines, nil
}

func (s *stubCheckoutStore) ClearTx(tx *gorm.DB, userID uuid.UUID) error {
	s.lines = nil
	s.cleared = true
	return nil
}

func (s *stubCheckoutStore) CreateWithItems(tx *gorm.DB, order *models.Order) error {
	s.orders = append(s.orders, order)
	s.numbers[order.Number] = true
	return nil
}

func (s *stubCheckoutStore) NumberExists(ctx context.Context, number string) (bool, error) {
	return s.numbers[number], nil
}

func newTestCheckoutService(t *testing.T, store *stubCheckoutStore, randInt func(n int) int) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		DB:         store,
		CartRepo:   store,
		OrderRepo:  store,
		CartConfig: config.CartConfig{FreeShippingOverDZD: 10000, ShippingFlatDZD: 1000},
		Now:        func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		RandInt:    randInt,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCheckoutSnapshotsCartAndEmptiesIt(t *testing.T) {
	store := newStubCheckoutStore(cart.ItemWithProduct{
		ProductID: "p-1",
		Name:      "Acme One",
		Brand:     "Acme",
		PriceDZD:  5000,
		Quantity:  2,
	})
	svc := newTestCheckoutService(t, store, nil)

	dto, err := svc.Checkout(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if dto.Subtotal != 10000 || dto.Shipping != 0 || dto.Total != 10000 {
		t.Fatalf("unexpected totals: %+v", dto)
	}
	if dto.Status != "processing" {
		t.Fatalf("expected processing status, got %q", dto.Status)
	}
	if len(dto.Items) != 1 || dto.Items[0].LineTotal != 10000 {
		t.Fatalf("unexpected items: %v", dto.Items)
	}
	if !store.cleared || len(store.lines) != 0 {
		t.Fatal("expected cart to be emptied by checkout")
	}
	if len(store.orders) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(store.orders))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := newStubCheckoutStore()
	svc := newTestCheckoutService(t, store, nil)

	_, err := svc.Checkout(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict error, got %v", err)
	}
	if len(store.orders) != 0 {
		t.Fatal("no order should be created for an empty cart")
	}
}

func TestCheckoutNumberFormatAndShipping(t *testing.T) {
	store := newStubCheckoutStore(cart.ItemWithProduct{
		ProductID: "p-1",
		Name:      "Acme One",
		Brand:     "Acme",
		PriceDZD:  3000,
		Quantity:  1,
	})
	svc := newTestCheckoutService(t, store, func(n int) int { return 234 })

	dto, err := svc.Checkout(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if dto.Number != "#ORD-2026-1234" {
		t.Fatalf("unexpected order number %q", dto.Number)
	}
	if ok, _ := regexp.MatchString(`^#ORD-\d{4}-\d{4}$`, dto.Number); !ok {
		t.Fatalf("order number %q does not match expected shape", dto.Number)
	}
	if dto.Subtotal != 3000 || dto.Shipping != 1000 || dto.Total != 4000 {
		t.Fatalf("unexpected totals below free-shipping threshold: %+v", dto)
	}
}

func TestCheckoutRetriesTakenNumbers(t *testing.T) {
	store := newStubCheckoutStore(cart.ItemWithProduct{
		ProductID: "p-1",
		Name:      "Acme One",
		Brand:     "Acme",
		PriceDZD:  3000,
		Quantity:  1,
	})
	store.numbers["#ORD-2026-1000"] = true

	draws := []int{0, 0, 42}
	svc := newTestCheckoutService(t, store, func(n int) int {
		d := draws[0]
		draws = draws[1:]
		return d
	})

	dto, err := svc.Checkout(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if dto.Number != "#ORD-2026-1042" {
		t.Fatalf("expected retry past the taken number, got %q", dto.Number)
	}
}
