package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubCartStore struct {
	products map[string]*models.Product
	lines    map[string]int // productID -> quantity
	order    []string
}

func newStubCartStore(products ...*models.Product) *stubCartStore {
	s := &stubCartStore{
		products: map[string]*models.Product{},
		lines:    map[string]int{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubCartStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartStore) FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartItem, error) {
	if qty, ok := s.lines[productID]; ok {
		return &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartStore) CreateItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	s.lines[productID] = quantity
	s.order = append(s.order, productID)
	return nil
}

func (s *stubCartStore) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	s.lines[productID] = quantity
	return nil
}

func (s *stubCartStore) DeleteItem(ctx context.Context, userID uuid.UUID, productID string) error {
	if _, ok := s.lines[productID]; ok {
		delete(s.lines, productID)
		for i, id := range s.order {
			if id == productID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s *stubCartStore) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]ItemWithProduct, error) {
	rows := make([]ItemWithProduct, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		rows = append(rows, ItemWithProduct{
			ProductID:   id,
			Name:        p.Name,
			Brand:       p.Brand,
			PriceDZD:    p.PriceDZD,
			ImageURL:    p.ImageURL,
			Description: p.Description,
			Quantity:    s.lines[id],
		})
	}
	return rows, nil
}

func testCartConfig() config.CartConfig {
	return config.CartConfig{FreeShippingOverDZD: 10000, ShippingFlatDZD: 1000}
}

func newTestCartService(t *testing.T, store *stubCartStore) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		CartRepo:    store,
		ProductRepo: store,
		CartConfig:  testCartConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func phoneProduct() *models.Product {
	return &models.Product{ID: "p-1", Name: "Acme One", Brand: "Acme", Category: "phones", PriceDZD: 5000}
}

func TestAddItemTwiceBumpsQuantity(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, userID, "p-1", 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := svc.AddItem(ctx, userID, "p-1", 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(dto.Items) != 1 {
		t.Fatalf("expected one row, got %d", len(dto.Items))
	}
	if dto.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", dto.Items[0].Quantity)
	}
	if dto.ItemCount != 2 {
		t.Fatalf("expected item count to sum quantities, got %d", dto.ItemCount)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)

	_, err := svc.AddItem(context.Background(), uuid.New(), "ghost", 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSetQuantityClampsBelowOne(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, userID, "p-1", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	dto, err := svc.SetQuantity(ctx, userID, "p-1", 0)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if dto.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", dto.Items[0].Quantity)
	}

	dto, err = svc.SetQuantity(ctx, userID, "p-1", -4)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if dto.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", dto.Items[0].Quantity)
	}
}

func TestSetQuantityAbsentProductIsNoop(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)
	userID := uuid.New()

	dto, err := svc.SetQuantity(context.Background(), userID, "p-1", 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected no-op on absent line, got %v", dto.Items)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, userID, "p-1", 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	dto, err := svc.RemoveItem(ctx, userID, "ghost")
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected cart unchanged, got %v", dto.Items)
	}

	dto, err = svc.RemoveItem(ctx, userID, "p-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %v", dto.Items)
	}
}

func TestCartTotalsAndShipping(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)
	userID := uuid.New()
	ctx := context.Background()

	dto, err := svc.AddItem(ctx, userID, "p-1", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if dto.Subtotal != 5000 || dto.Shipping != 1000 || dto.Total != 6000 {
		t.Fatalf("unexpected totals below threshold: %+v", dto)
	}

	dto, err = svc.SetQuantity(ctx, userID, "p-1", 2)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if dto.Subtotal != 10000 || dto.Shipping != 0 || dto.Total != 10000 {
		t.Fatalf("expected free shipping at threshold: %+v", dto)
	}
}

func TestEmptyCartHasNoShipping(t *testing.T) {
	store := newStubCartStore(phoneProduct())
	svc := newTestCartService(t, store)

	dto, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.Subtotal != 0 || dto.Shipping != 0 || dto.Total != 0 || dto.ItemCount != 0 {
		t.Fatalf("unexpected empty cart: %+v", dto)
	}
}
