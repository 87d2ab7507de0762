package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/application/orders"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	byID map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: map[string]*entity.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(f.byID))
	for _, o := range f.byID {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userUID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if o.UserUID == userUID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRider(_ context.Context, riderUID string, statuses []entity.OrderStatus) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if o.AssignedRider != riderUID {
			continue
		}
		for _, s := range statuses {
			if o.OrderStatus == s {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

// UpdateStatus imita la semántica del UPDATE filtrado: una sola
// "sentencia" que exige el estado origen.
func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, target entity.OrderStatus, from []entity.OrderStatus, assignRider string, tracking *entity.Tracking) (bool, error) {
	o, ok := f.byID[orderID]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range from {
		if o.OrderStatus == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	o.OrderStatus = target
	if assignRider != "" {
		o.AssignedRider = assignRider
	}
	if tracking != nil {
		o.Tracking = tracking
	}
	o.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeOrderRepo) UpdateDelivery(_ context.Context, orderID, riderUID string, target entity.OrderStatus, notes string) (bool, error) {
	o, ok := f.byID[orderID]
	if !ok || o.AssignedRider != riderUID || o.OrderStatus != entity.StatusShipped {
		return false, nil
	}
	o.OrderStatus = target
	o.DeliveryNotes = notes
	o.UpdatedAt = time.Now()
	return true, nil
}

type fakeOrderProducts struct {
	byID map[string]*entity.Product
}

func (f *fakeOrderProducts) Create(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeOrderProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeOrderProducts) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeOrderProducts) Update(_ context.Context, _ *entity.Product) error { return nil }

func (f *fakeOrderProducts) Delete(_ context.Context, _ string) (bool, error) { return false, nil }

func (f *fakeOrderProducts) UpdateVariantStocks(_ context.Context, _ string, _ []repository.VariantStockUpdate, _ bool) error {
	return nil
}

type fakeOrderUsers struct {
	byUID map[string]*entity.User
}

func (f *fakeOrderUsers) Create(_ context.Context, u *entity.User) error         { return nil }
func (f *fakeOrderUsers) CreateIfAbsent(_ context.Context, u *entity.User) error { return nil }
func (f *fakeOrderUsers) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeOrderUsers) GetByUID(_ context.Context, uid string) (*entity.User, error) {
	return f.byUID[uid], nil
}
func (f *fakeOrderUsers) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeOrderUsers) Update(_ context.Context, _ *entity.User) error      { return nil }
func (f *fakeOrderUsers) List(_ context.Context) ([]*entity.User, error)      { return nil, nil }
func (f *fakeOrderUsers) ListActiveRiders(_ context.Context) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeOrderUsers) GetActiveRiderByUID(_ context.Context, uid string) (*entity.User, error) {
	u := f.byUID[uid]
	if u == nil || u.Role != entity.RoleRider || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

type fakeOrderTx struct {
	repo repository.OrderRepository
}

func (f *fakeOrderTx) Run(ctx context.Context, fn func(repo repository.OrderRepository) error) error {
	return fn(f.repo)
}

type fakeReceipts struct{}

func (fakeReceipts) Render(_ *entity.Order, _ *entity.User) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	customer = &auth.Principal{UID: "uid-cliente", Email: "ana@example.com", Role: entity.RoleCustomer, UserID: "u1"}
	admin    = &auth.Principal{UID: "uid-admin", Email: "admin@example.com", Role: entity.RoleAdmin, UserID: "u2"}
	rider    = &auth.Principal{UID: "uid-rider", Email: "rider@example.com", Role: entity.RoleRider, UserID: "u3"}
)

type fixture struct {
	uc       *orders.OrderUseCase
	orders   *fakeOrderRepo
	products *fakeOrderProducts
	users    *fakeOrderUsers
}

func newFixture() *fixture {
	orderRepo := newFakeOrderRepo()
	products := &fakeOrderProducts{byID: map[string]*entity.Product{}}
	users := &fakeOrderUsers{byUID: map[string]*entity.User{}}

	products.byID["p1"] = &entity.Product{
		ID: "p1", Name: "Ventilador de torre 40\"",
		Price:    decimal.NewFromFloat(129.99),
		Category: entity.CategoryFan,
		Variants: []entity.Variant{
			{ID: "v1", Size: "40in", Color: "white", Stock: 5},
		},
		InStock: true,
	}
	users.byUID[rider.UID] = &entity.User{
		ID: "u3", UID: rider.UID, Email: rider.Email,
		Role: entity.RoleRider, IsActive: true,
	}
	users.byUID[customer.UID] = &entity.User{
		ID: "u1", UID: customer.UID, Email: customer.Email,
		Role: entity.RoleCustomer, IsActive: true,
	}

	uc := orders.NewOrderUseCase(orderRepo, products, users, &fakeOrderTx{repo: orderRepo}, fakeReceipts{})
	return &fixture{uc: uc, orders: orderRepo, products: products, users: users}
}

func (f *fixture) seedOrder(status entity.OrderStatus, assignedRider string) *entity.Order {
	o := &entity.Order{
		ID:      "o-" + string(status),
		UserUID: customer.UID,
		Items: []entity.OrderItem{{
			ID: "i1", ProductID: "p1", ProductName: "Ventilador de torre 40\"",
			Size: "40in", Color: "white", Quantity: 2,
			UnitPrice: decimal.NewFromFloat(129.99),
		}},
		TotalAmount:   decimal.NewFromFloat(259.98),
		PaymentStatus: entity.PaymentPaid,
		OrderStatus:   status,
		AssignedRider: assignedRider,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.orders.byID[o.ID] = o
	return o
}

func validCheckout() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, Size: "40in", Color: "white"},
		},
		ShippingAddress: entity.Address{Street: "Cra 7 # 1-23", City: "Bogotá", Country: "CO"},
		PaymentMethod:   "credit_card",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_SnapshotDePrecioYTotal(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), customer, validCheckout())
	require.NoError(t, err)

	assert.Equal(t, "Pending", out.OrderStatus)
	assert.Equal(t, "Paid", out.PaymentStatus)
	assert.Equal(t, customer.UID, out.UserUID)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromFloat(129.99)))
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromFloat(259.98)))

	// Subir el precio del producto no toca la orden ya creada.
	f.products.byID["p1"].Price = decimal.NewFromInt(999)
	stored := f.orders.byID[out.ID]
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromFloat(129.99)))
}

func TestOrderCreate_ProductoInexistente(t *testing.T) {
	f := newFixture()

	in := validCheckout()
	in.Items[0].ProductID = "nope"
	_, err := f.uc.Create(context.Background(), customer, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderCreate_VarianteInexistente(t *testing.T) {
	f := newFixture()

	in := validCheckout()
	in.Items[0].Color = "purple"
	_, err := f.uc.Create(context.Background(), customer, in)

	var vErr *domain.VariantNotFoundError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "purple", vErr.Color)
}

func TestOrderCreate_Invalido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, customer, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := validCheckout()
	in.Items[0].Quantity = 0
	_, err = f.uc.Create(ctx, customer, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderGetByID_ReglaDeVisibilidad(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusShipped, rider.UID)
	ctx := context.Background()

	_, err := f.uc.GetByID(ctx, admin, o.ID)
	assert.NoError(t, err, "admin ve cualquier orden")

	_, err = f.uc.GetByID(ctx, customer, o.ID)
	assert.NoError(t, err, "el dueño ve su orden")

	_, err = f.uc.GetByID(ctx, rider, o.ID)
	assert.NoError(t, err, "el rider asignado ve la orden")

	otherCustomer := &auth.Principal{UID: "uid-otro", Role: entity.RoleCustomer}
	_, err = f.uc.GetByID(ctx, otherCustomer, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	otherRider := &auth.Principal{UID: "uid-otro-rider", Role: entity.RoleRider}
	_, err = f.uc.GetByID(ctx, otherRider, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.GetByID(ctx, admin, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderListAssigned_SoloEstadosVisibles(t *testing.T) {
	f := newFixture()
	f.seedOrder(entity.StatusShipped, rider.UID)
	pending := f.seedOrder(entity.StatusPending, rider.UID) // aún no enviada

	list, err := f.uc.ListAssigned(context.Background(), rider)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, pending.ID, list[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de admin
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_PendingAProcessing(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusPending, "")

	out, err := f.uc.UpdateStatus(context.Background(), o.ID, dto.UpdateOrderStatusRequest{
		OrderStatus: "Processing",
	})
	require.NoError(t, err)
	assert.Equal(t, "Processing", out.OrderStatus)
}

func TestUpdateStatus_ShippedExigeRider(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusProcessing, "")
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, o.ID, dto.UpdateOrderStatusRequest{OrderStatus: "Shipped"})
	assert.ErrorIs(t, err, domain.ErrRiderRequired)

	_, err = f.uc.UpdateStatus(ctx, o.ID, dto.UpdateOrderStatusRequest{
		OrderStatus: "Shipped", AssignedRider: "uid-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrRiderNotFound)

	out, err := f.uc.UpdateStatus(ctx, o.ID, dto.UpdateOrderStatusRequest{
		OrderStatus: "Shipped", AssignedRider: rider.UID,
		Tracking: &dto.TrackingUpdate{Carrier: "Servientrega", TrackingNumber: "SE-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Shipped", out.OrderStatus)
	assert.Equal(t, rider.UID, out.AssignedRider)
	require.NotNil(t, out.Tracking)
	assert.Equal(t, "Servientrega", out.Tracking.Carrier)
}

func TestUpdateStatus_RiderInactivoNoAsignable(t *testing.T) {
	f := newFixture()
	f.users.byUID[rider.UID].IsActive = false
	o := f.seedOrder(entity.StatusProcessing, "")

	_, err := f.uc.UpdateStatus(context.Background(), o.ID, dto.UpdateOrderStatusRequest{
		OrderStatus: "Shipped", AssignedRider: rider.UID,
	})
	assert.ErrorIs(t, err, domain.ErrRiderNotFound)
}

func TestUpdateStatus_DestinosVedadosAlAdmin(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusShipped, rider.UID)
	ctx := context.Background()

	for _, target := range []string{"Delivered", "Undelivered", "Pending"} {
		_, err := f.uc.UpdateStatus(ctx, o.ID, dto.UpdateOrderStatusRequest{OrderStatus: target})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, target)
	}

	_, err := f.uc.UpdateStatus(ctx, o.ID, dto.UpdateOrderStatusRequest{OrderStatus: "Teleported"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_OrigenFueraDeRango(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Terminal: Cancelled no puede volver a Processing.
	cancelled := f.seedOrder(entity.StatusCancelled, "")
	_, err := f.uc.UpdateStatus(ctx, cancelled.ID, dto.UpdateOrderStatusRequest{OrderStatus: "Processing"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Ya enviada: tampoco es origen válido para el admin.
	shipped := f.seedOrder(entity.StatusShipped, rider.UID)
	_, err = f.uc.UpdateStatus(ctx, shipped.ID, dto.UpdateOrderStatusRequest{OrderStatus: "Cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.UpdateStatus(ctx, "nope", dto.UpdateOrderStatusRequest{OrderStatus: "Processing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_CancelarDesdePending(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusPending, "")

	out, err := f.uc.UpdateStatus(context.Background(), o.ID, dto.UpdateOrderStatusRequest{
		OrderStatus: "Cancelled",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", out.OrderStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de rider
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateDelivery_Entrega(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusShipped, rider.UID)

	out, err := f.uc.UpdateDelivery(context.Background(), rider, o.ID, dto.UpdateDeliveryRequest{
		OrderStatus: "Delivered", DeliveryNotes: "Portería, recibe Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Delivery status updated successfully", out.Message)
	assert.Equal(t, "Delivered", out.Order.OrderStatus)
	assert.Equal(t, "Portería, recibe Ana", out.Order.DeliveryNotes)
}

func TestUpdateDelivery_DestinoVedado(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusShipped, rider.UID)
	ctx := context.Background()

	for _, target := range []string{"Processing", "Shipped", "Cancelled", "Pending"} {
		_, err := f.uc.UpdateDelivery(ctx, rider, o.ID, dto.UpdateDeliveryRequest{OrderStatus: target})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, target)
	}
}

func TestUpdateDelivery_FiltroSimultaneo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := dto.UpdateDeliveryRequest{OrderStatus: "Delivered"}

	// Orden de otro rider: 0 filas.
	foreign := f.seedOrder(entity.StatusShipped, "uid-otro-rider")
	_, err := f.uc.UpdateDelivery(ctx, rider, foreign.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Orden aún no enviada: 0 filas.
	pending := f.seedOrder(entity.StatusPending, rider.UID)
	_, err = f.uc.UpdateDelivery(ctx, rider, pending.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Orden ya terminal: inalcanzable.
	done := f.seedOrder(entity.StatusDelivered, rider.UID)
	_, err = f.uc.UpdateDelivery(ctx, rider, done.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_MismaReglaDeVisibilidad(t *testing.T) {
	f := newFixture()
	o := f.seedOrder(entity.StatusDelivered, rider.UID)
	ctx := context.Background()

	pdf, err := f.uc.Receipt(ctx, customer, o.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	other := &auth.Principal{UID: "uid-otro", Role: entity.RoleCustomer}
	_, err = f.uc.Receipt(ctx, other, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
