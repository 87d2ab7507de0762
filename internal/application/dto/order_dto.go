package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// OrderItemRequest línea del checkout. El precio unitario no se acepta
// del caller: se captura del producto al crear la orden.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// CreateOrderRequest cuerpo de POST /orders.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" validate:"required,min=1"`
	ShippingAddress entity.Address     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// UpdateOrderStatusRequest cuerpo de PUT /orders/:id/status (admin).
type UpdateOrderStatusRequest struct {
	OrderStatus   string          `json:"orderStatus" validate:"required"`
	AssignedRider string          `json:"assignedRider"`
	Tracking      *TrackingUpdate `json:"tracking"`
}

// TrackingUpdate información de envío opcional al actualizar estado.
type TrackingUpdate struct {
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"trackingNumber"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

// UpdateDeliveryRequest cuerpo de PUT /orders/:id/delivery (rider).
type UpdateDeliveryRequest struct {
	OrderStatus   string `json:"orderStatus" validate:"required,oneof=Delivered Undelivered"`
	DeliveryNotes string `json:"deliveryNotes"`
}

// OrderItemResponse línea de salida con precio snapshoteado.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserUID       string              `json:"userId"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Shipping      entity.Address      `json:"shippingAddress"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentStatus string              `json:"paymentStatus"`
	OrderStatus   string              `json:"orderStatus"`
	AssignedRider string              `json:"assignedRider,omitempty"`
	DeliveryNotes string              `json:"deliveryNotes,omitempty"`
	Tracking      *entity.Tracking    `json:"tracking,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// FromOrder convierte la entidad a su representación API.
func FromOrder(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Color:       it.Color,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		UserUID:       o.UserUID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Shipping:      o.Shipping,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: string(o.PaymentStatus),
		OrderStatus:   string(o.OrderStatus),
		AssignedRider: o.AssignedRider,
		DeliveryNotes: o.DeliveryNotes,
		Tracking:      o.Tracking,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// FromOrders convierte un listado.
func FromOrders(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *FromOrder(o))
	}
	return out
}

// DeliveryUpdateResponse resultado de la actualización de entrega.
type DeliveryUpdateResponse struct {
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order"`
}
