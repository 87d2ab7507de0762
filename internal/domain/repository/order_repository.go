package repository

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Las transiciones de estado se aplican con UPDATEs filtrados por estado
// actual (y rider asignado, en entregas) en una sola sentencia, para que
// no exista ventana entre chequeo y escritura.
type OrderRepository interface {
	// Create persiste la orden y sus líneas. Debe ejecutarse sobre una
	// transacción (TxRunner).
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	ListByUser(ctx context.Context, userUID string) ([]*entity.Order, error)
	ListByRider(ctx context.Context, riderUID string, statuses []entity.OrderStatus) ([]*entity.Order, error)
	// UpdateStatus fija el estado destino solo si el actual está en from.
	// assignRider vacío conserva el rider actual. Devuelve false si ninguna
	// fila coincidió (orden inexistente o estado fuera de from).
	UpdateStatus(ctx context.Context, orderID string, target entity.OrderStatus, from []entity.OrderStatus, assignRider string, tracking *entity.Tracking) (bool, error)
	// UpdateDelivery fija Delivered/Undelivered solo si la orden está en
	// Shipped Y asignada a riderUID (filtro simultáneo). Devuelve false si
	// ninguna fila coincidió.
	UpdateDelivery(ctx context.Context, orderID, riderUID string, target entity.OrderStatus, notes string) (bool, error)
}
