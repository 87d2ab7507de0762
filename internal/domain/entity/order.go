package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus es la máquina de estados de una orden:
//
//	Pending → Processing → Shipped → {Delivered | Undelivered}
//
// Cancelled es alcanzable desde Pending/Processing (solo admin).
// Delivered, Undelivered y Cancelled son terminales.
type OrderStatus string

const (
	StatusPending     OrderStatus = "Pending"
	StatusProcessing  OrderStatus = "Processing"
	StatusShipped     OrderStatus = "Shipped"
	StatusDelivered   OrderStatus = "Delivered"
	StatusUndelivered OrderStatus = "Undelivered"
	StatusCancelled   OrderStatus = "Cancelled"
)

// AllOrderStatuses en orden de ciclo de vida; usado por el dashboard.
var AllOrderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped,
	StatusDelivered, StatusUndelivered, StatusCancelled,
}

// ParseOrderStatus valida un estado recibido por la API.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusDelivered, StatusUndelivered, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal indica si el estado no admite más transiciones.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusUndelivered, StatusCancelled:
		return true
	case StatusPending, StatusProcessing, StatusShipped:
		return false
	}
	return false
}

// AdminCanSet indica si el admin puede fijar el estado destino. El estado
// origen se restringe a Pending/Processing en la consulta de actualización
// (filtro simultáneo, no chequeo separado).
func AdminCanSet(target OrderStatus) bool {
	switch target {
	case StatusProcessing, StatusShipped, StatusCancelled:
		return true
	case StatusPending, StatusDelivered, StatusUndelivered:
		return false
	}
	return false
}

// AdminSourceStatuses estados origen desde los que el admin puede mover una orden.
var AdminSourceStatuses = []OrderStatus{StatusPending, StatusProcessing}

// RiderCanSet indica si un repartidor puede fijar el estado destino.
// El origen (Shipped) y la asignación al caller se exigen en la consulta.
func RiderCanSet(target OrderStatus) bool {
	switch target {
	case StatusDelivered, StatusUndelivered:
		return true
	case StatusPending, StatusProcessing, StatusShipped, StatusCancelled:
		return false
	}
	return false
}

// RiderVisibleStatuses estados de órdenes que un repartidor ve en sus listados.
var RiderVisibleStatuses = []OrderStatus{StatusShipped, StatusDelivered, StatusUndelivered}

// Estados de pago. Sin pasarela real: por defecto Paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// ParsePaymentStatus valida un estado de pago recibido por la API.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return PaymentStatus(s), true
	}
	return "", false
}

// OrderItem línea de una orden. UnitPrice se captura del producto al crear
// la orden y no se recalcula nunca contra el precio vivo.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Size        string
	Color       string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal de la línea.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Tracking información opcional de envío.
type Tracking struct {
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"trackingNumber"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

// Order orden de compra. UserUID es la identidad externa del dueño;
// AssignedRider la del repartidor (vacío hasta el envío).
type Order struct {
	ID            string
	UserUID       string
	Items         []OrderItem
	TotalAmount   decimal.Decimal
	Shipping      Address
	PaymentMethod string
	PaymentStatus PaymentStatus
	OrderStatus   OrderStatus
	AssignedRider string
	DeliveryNotes string
	Tracking      *Tracking
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
