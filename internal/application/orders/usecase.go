package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

// OrderUseCase checkout, consultas y transiciones del ciclo de vida de
// órdenes. Las transiciones nunca hacen chequeo-y-escritura en dos
// pasos: el estado origen (y el rider asignado, en entregas) viajan
// como filtro de la misma sentencia de actualización.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	tx          TxRunner
	receipts    ReceiptGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	tx TxRunner,
	receipts ReceiptGenerator,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		tx:          tx,
		receipts:    receipts,
	}
}

// Create hace el checkout del cliente. El precio unitario y el nombre
// del producto se capturan de cada producto en este momento y no se
// recalculan nunca; no hay reserva de inventario.
func (uc *OrderUseCase) Create(ctx context.Context, p *auth.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	items := make([]entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 || it.Size == "" || it.Color == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.FindVariant(it.Size, it.Color) < 0 {
			return nil, &domain.VariantNotFoundError{Size: it.Size, Color: it.Color}
		}
		items = append(items, entity.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Size:        it.Size,
			Color:       it.Color,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	order := &entity.Order{
		ID:            uuid.New().String(),
		UserUID:       p.UID,
		Items:         items,
		TotalAmount:   total,
		Shipping:      in.ShippingAddress,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: entity.PaymentPaid,
		OrderStatus:   entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return dto.FromOrder(order), nil
}

// GetByID aplica la regla de visibilidad: admin ve cualquier orden, un
// repartidor solo las asignadas a él, un cliente solo las propias.
func (uc *OrderUseCase) GetByID(ctx context.Context, p *auth.Principal, id string) (*dto.OrderResponse, error) {
	order, err := uc.visibleOrder(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return dto.FromOrder(order), nil
}

func (uc *OrderUseCase) visibleOrder(ctx context.Context, p *auth.Principal, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	switch p.Role {
	case entity.RoleAdmin:
		return order, nil
	case entity.RoleRider:
		if order.AssignedRider != p.UID {
			return nil, domain.ErrForbidden
		}
		return order, nil
	case entity.RoleCustomer:
		if order.UserUID != p.UID {
			return nil, domain.ErrForbidden
		}
		return order, nil
	}
	return nil, domain.ErrForbidden
}

// ListAll lista todas las órdenes (admin).
func (uc *OrderUseCase) ListAll(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(list), nil
}

// ListMine lista las órdenes del cliente autenticado.
func (uc *OrderUseCase) ListMine(ctx context.Context, p *auth.Principal) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByUser(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(list), nil
}

// ListAssigned lista las órdenes del repartidor autenticado en estados
// Shipped/Delivered/Undelivered.
func (uc *OrderUseCase) ListAssigned(ctx context.Context, p *auth.Principal) ([]dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByRider(ctx, p.UID, entity.RiderVisibleStatuses)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(list), nil
}

// UpdateStatus transición de admin. El destino debe ser Processing,
// Shipped o Cancelled; el origen (Pending/Processing) se exige como
// filtro del UPDATE. Shipped exige un repartidor activo asignado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	target, ok := entity.ParseOrderStatus(in.OrderStatus)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !entity.AdminCanSet(target) {
		return nil, domain.ErrInvalidTransition
	}

	assignRider := ""
	if target == entity.StatusShipped {
		if in.AssignedRider == "" {
			return nil, domain.ErrRiderRequired
		}
		rider, err := uc.userRepo.GetActiveRiderByUID(ctx, in.AssignedRider)
		if err != nil {
			return nil, err
		}
		if rider == nil {
			return nil, domain.ErrRiderNotFound
		}
		assignRider = rider.UID
	}

	var tracking *entity.Tracking
	if in.Tracking != nil {
		tracking = &entity.Tracking{
			Carrier:           in.Tracking.Carrier,
			TrackingNumber:    in.Tracking.TrackingNumber,
			EstimatedDelivery: in.Tracking.EstimatedDelivery,
		}
	}

	updated, err := uc.orderRepo.UpdateStatus(ctx, id, target, entity.AdminSourceStatuses, assignRider, tracking)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Ninguna fila coincidió: o la orden no existe, o su estado quedó
		// fuera de Pending/Processing entre tanto.
		order, err := uc.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrInvalidTransition
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromOrder(order), nil
}

// UpdateDelivery transición del repartidor. Destino Delivered o
// Undelivered; el filtro del UPDATE exige a la vez estado Shipped y
// asignación al caller, así una orden ajena, terminal o aún no enviada
// responde igual: 0 filas, not found.
func (uc *OrderUseCase) UpdateDelivery(ctx context.Context, p *auth.Principal, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryUpdateResponse, error) {
	target, ok := entity.ParseOrderStatus(in.OrderStatus)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !entity.RiderCanSet(target) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.orderRepo.UpdateDelivery(ctx, id, p.UID, target, in.DeliveryNotes)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrNotFound
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.DeliveryUpdateResponse{
		Message: "Delivery status updated successfully",
		Order:   dto.FromOrder(order),
	}, nil
}

// Receipt genera el comprobante PDF de una orden; misma regla de
// visibilidad que GetByID.
func (uc *OrderUseCase) Receipt(ctx context.Context, p *auth.Principal, id string) ([]byte, error) {
	order, err := uc.visibleOrder(ctx, p, id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.userRepo.GetByUID(ctx, order.UserUID)
	if err != nil {
		return nil, err
	}
	return uc.receipts.Render(order, customer)
}
