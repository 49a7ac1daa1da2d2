package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labportal_backend/internal/events"
	"labportal_backend/internal/quotes/cartstore"
	"labportal_backend/internal/quotes/domain"
	"labportal_backend/internal/quotes/repository"
	"labportal_backend/internal/quotes/transport"
	"labportal_backend/platform/apperr"
	"labportal_backend/platform/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu         sync.Mutex
	quotations map[uuid.UUID]*repository.Quotation
	items      map[uuid.UUID][]repository.QuotationItem
	nextNum    int
	failCreate error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quotations: make(map[uuid.UUID]*repository.Quotation),
		items:      make(map[uuid.UUID][]repository.QuotationItem),
	}
}

func (f *fakeRepo) NextQuotationNumber(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextNum++
	return fmt.Sprintf("COT-2026-%04d", f.nextNum), nil
}

func (f *fakeRepo) CreateWithItems(_ context.Context, q *repository.Quotation, items []repository.QuotationItem) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *q
	f.quotations[q.ID] = &cp
	f.items[q.ID] = items
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotations[id]
	if !ok {
		return nil, apperr.NotFound("quotation not found")
	}
	cp := *q
	return &cp, nil
}

func (f *fakeRepo) GetItemsByQuotationID(_ context.Context, id uuid.UUID) ([]repository.QuotationItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id], nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotations[id]
	if !ok {
		return apperr.NotFound("quotation not found")
	}
	q.Status = status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.quotations[id]; !ok {
		return apperr.NotFound("quotation not found")
	}
	delete(f.quotations, id)
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []repository.Quotation
	for _, q := range f.quotations {
		if params.Status != nil && q.Status != *params.Status {
			continue
		}
		items = append(items, *q)
	}
	return &repository.ListResult{
		Items:    items,
		Total:    len(items),
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

type fakeCatalog struct {
	products map[uuid.UUID]domain.ProductSnapshot
}

func (f *fakeCatalog) ProductSnapshot(_ context.Context, id uuid.UUID) (*domain.ProductSnapshot, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	return &p, nil
}

func (f *fakeCatalog) ProductOptions(_ context.Context) ([]transport.ProductOption, error) {
	opts := make([]transport.ProductOption, 0, len(f.products))
	for _, p := range f.products {
		opts = append(opts, transport.ProductOption{ID: p.ID, Code: p.Code, Name: p.Name, UnitPrice: p.UnitPrice})
	}
	return opts, nil
}

type fakeClients struct {
	clients map[uuid.UUID]domain.ClientSnapshot
}

func (f *fakeClients) ClientSnapshot(_ context.Context, id uuid.UUID) (*domain.ClientSnapshot, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, apperr.NotFound("client not found")
	}
	return &c, nil
}

func (f *fakeClients) ClientOptions(_ context.Context) ([]transport.ClientOption, error) {
	opts := make([]transport.ClientOption, 0, len(f.clients))
	for _, c := range f.clients {
		opts = append(opts, transport.ClientOption{ID: c.ID, Name: c.Name, Company: c.Company})
	}
	return opts, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	svc     *Service
	repo    *fakeRepo
	bus     *recordingBus
	carts   cartstore.Store
	product domain.ProductSnapshot
	client  domain.ClientSnapshot
	userID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	product := domain.ProductSnapshot{
		ID:           uuid.New(),
		Code:         "BAL-400",
		Name:         "Analytical balance",
		UnitPrice:    decimal.RequireFromString("100"),
		SupplierName: "Equipos del Norte",
	}
	client := domain.ClientSnapshot{
		ID:      uuid.New(),
		Name:    "Ana Torres",
		Company: "Laboratorios Orion",
		Phone:   "+525512345678",
		Email:   "ana@orion.mx",
	}

	repo := newFakeRepo()
	bus := &recordingBus{}
	carts := cartstore.NewMemoryStore()

	svc := New(
		repo,
		carts,
		&fakeCatalog{products: map[uuid.UUID]domain.ProductSnapshot{product.ID: product}},
		&fakeClients{clients: map[uuid.UUID]domain.ClientSnapshot{client.ID: client}},
		bus,
		logger.New("test"),
	)

	return &fixture{
		svc:     svc,
		repo:    repo,
		bus:     bus,
		carts:   carts,
		product: product,
		client:  client,
		userID:  uuid.New(),
	}
}

// ── Cart operations ───────────────────────────────────────────────────────────

func TestAddProductMergesDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cart, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after first add: %+v", cart)
	}

	cart, err = f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected merged line item, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if !cart.Total.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected total 500, got %s", cart.Total)
	}
}

func TestAddProductUnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddProduct(context.Background(), f.userID, transport.AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestAddProductPersistsCartBetweenCalls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := f.svc.Cart(ctx, f.userID)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatal("cart did not survive between calls")
	}
}

func TestUpdateQuantityNonPositiveIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := f.svc.UpdateQuantity(ctx, f.userID, 0, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity unchanged, got %d", cart.Items[0].Quantity)
	}
}

func TestRemoveItemOutOfRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RemoveItem(context.Background(), f.userID, 3)
	if !errors.Is(err, domain.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

// ── Assembly ──────────────────────────────────────────────────────────────────

func TestAssembleRequiresClientBeforeCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Both preconditions fail; the client check must win.
	_, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{})
	if !errors.Is(err, ErrMissingClient) {
		t.Fatalf("expected ErrMissingClient, got %v", err)
	}

	_, err = f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: uuid.New()})
	if !errors.Is(err, ErrMissingClient) {
		t.Fatalf("unknown client: expected ErrMissingClient, got %v", err)
	}

	_, err = f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestAssemblePersistsAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}

	quotation, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if quotation.Status != string(transport.QuotationStatusPending) {
		t.Fatalf("expected pending status, got %s", quotation.Status)
	}
	if !quotation.Total.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("expected total 300, got %s", quotation.Total)
	}
	if quotation.ClientName != f.client.Name || quotation.ClientCompany != f.client.Company {
		t.Fatalf("client snapshot missing: %+v", quotation)
	}
	if len(quotation.Items) != 1 || quotation.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items: %+v", quotation.Items)
	}

	// Persisted.
	stored, err := f.svc.Get(ctx, quotation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.QuotationNumber != quotation.QuotationNumber {
		t.Fatalf("stored quotation differs: %+v", stored)
	}

	// Cart cleared only on success.
	cart, err := f.svc.Cart(ctx, f.userID)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatal("expected cart cleared after assembly")
	}

	// Event published.
	published := f.bus.published()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	created, ok := published[0].(events.QuotationCreated)
	if !ok {
		t.Fatalf("expected QuotationCreated, got %T", published[0])
	}
	if created.QuotationID != quotation.ID || created.ItemCount != 1 {
		t.Fatalf("event payload wrong: %+v", created)
	}
	if created.QuotationNumber != quotation.QuotationNumber {
		t.Fatalf("event quotation number = %q, want %q", created.QuotationNumber, quotation.QuotationNumber)
	}
}

func TestAssembleFailureLeavesCartIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	f.repo.failCreate = errors.New("connection reset")
	if _, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID}); err == nil {
		t.Fatal("expected assembly to fail")
	}

	cart, err := f.svc.Cart(ctx, f.userID)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatal("failed assembly must not clear the cart")
	}
	if len(f.bus.published()) != 0 {
		t.Fatal("failed assembly must not publish events")
	}
}

// ── Listing ───────────────────────────────────────────────────────────────────

func TestListFiltersInMemory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID}); err != nil {
		t.Fatalf("assemble: %v", err)
	}

	result, err := f.svc.List(ctx, transport.ListQuotationsRequest{Search: "orion", Scope: "clientCompany"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.Items))
	}
	if result.Total != 1 || result.TotalPages != 1 {
		t.Fatalf("counts must follow the filtered slice: total %d, pages %d", result.Total, result.TotalPages)
	}

	result, err = f.svc.List(ctx, transport.ListQuotationsRequest{Search: "orion", Scope: "clientName"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatal("scoped search must not match other fields")
	}
	if result.Total != 0 || result.TotalPages != 0 {
		t.Fatalf("counts must follow the filtered slice: total %d, pages %d", result.Total, result.TotalPages)
	}
}

func TestUpdateStatusPublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	quotation, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if err := f.svc.UpdateStatus(ctx, quotation.ID, transport.QuotationStatusAccepted); err != nil {
		t.Fatalf("update status: %v", err)
	}

	stored, err := f.svc.Get(ctx, quotation.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != string(transport.QuotationStatusAccepted) {
		t.Fatalf("status = %q, want accepted", stored.Status)
	}

	published := f.bus.published()
	if len(published) != 2 {
		t.Fatalf("expected create+status events, got %d", len(published))
	}
	changed, ok := published[1].(events.QuotationStatusChanged)
	if !ok {
		t.Fatalf("expected QuotationStatusChanged, got %T", published[1])
	}
	if changed.QuotationID != quotation.ID || changed.Status != string(transport.QuotationStatusAccepted) {
		t.Fatalf("event payload wrong: %+v", changed)
	}
	if changed.QuotationNumber != quotation.QuotationNumber || changed.ClientEmail != f.client.Email {
		t.Fatalf("event snapshot wrong: %+v", changed)
	}
}

func TestUpdateStatusUnknownQuotation(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateStatus(context.Background(), uuid.New(), transport.QuotationStatusAccepted)
	if err == nil {
		t.Fatal("expected error for unknown quotation")
	}
	if len(f.bus.published()) != 0 {
		t.Fatal("failed update must not publish events")
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	quotation, err := f.svc.Assemble(ctx, f.userID, transport.AssembleQuotationRequest{ClientID: f.client.ID})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if err := f.svc.Delete(ctx, quotation.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, quotation.ID); err == nil {
		t.Fatal("expected quotation gone after delete")
	}

	published := f.bus.published()
	if len(published) != 2 {
		t.Fatalf("expected create+delete events, got %d", len(published))
	}
	if _, ok := published[1].(events.QuotationDeleted); !ok {
		t.Fatalf("expected QuotationDeleted, got %T", published[1])
	}
}

// ── Workspace ─────────────────────────────────────────────────────────────────

func TestWorkspaceLoadsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AddProduct(ctx, f.userID, transport.AddCartItemRequest{ProductID: f.product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	ws, err := f.svc.Workspace(ctx, f.userID)
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	if len(ws.Clients) != 1 || len(ws.Products) != 1 {
		t.Fatalf("pickers not loaded: %d clients, %d products", len(ws.Clients), len(ws.Products))
	}
	if len(ws.Cart.Items) != 1 {
		t.Fatal("cart not loaded")
	}
}
