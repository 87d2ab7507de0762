package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre las tablas orders y
// order_items (usable con pool o tx). Las transiciones de estado son
// UPDATEs de una sola sentencia filtrados por estado actual (y rider
// asignado en entregas): si la fila no cumple el filtro no se escribe
// nada y el caller lo ve como 0 filas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_uid, total_amount, shipping, payment_method,
	payment_status, order_status, assigned_rider, delivery_notes, tracking, created_at, updated_at`

// Create persiste la orden y sus líneas. Debe correr dentro de una
// transacción (OrderTxRunner).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("marshal shipping: %w", err)
	}
	tracking, err := marshalTracking(order.Tracking)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (id, user_uid, total_amount, shipping, payment_method,
			payment_status, order_status, assigned_rider, delivery_notes, tracking, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.UserUID, order.TotalAmount, shipping, order.PaymentMethod,
		string(order.PaymentStatus), string(order.OrderStatus),
		nullIfEmpty(order.AssignedRider), nullIfEmpty(order.DeliveryNotes), tracking,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, size, color, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range order.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, order.ID, it.ProductID, it.ProductName, it.Size, it.Color, it.Quantity, it.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsByOrder(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	return order, nil
}

// ListAll devuelve todas las órdenes, más recientes primero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// ListByUser devuelve las órdenes de un cliente.
func (r *OrderRepo) ListByUser(ctx context.Context, userUID string) ([]*entity.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_uid = $1 ORDER BY created_at DESC`, userUID)
}

// ListByRider devuelve las órdenes asignadas a un repartidor en los
// estados dados.
func (r *OrderRepo) ListByRider(ctx context.Context, riderUID string, statuses []entity.OrderStatus) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE assigned_rider = $1 AND order_status = ANY($2)
		ORDER BY created_at DESC`, riderUID, statusStrings(statuses))
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	var ids []string
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

func (r *OrderRepo) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, size, color, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.OrderItem)
	for rows.Next() {
		var it entity.OrderItem
		var orderID string
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.ProductName,
			&it.Size, &it.Color, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

// UpdateStatus fija el estado destino solo si el actual está en from;
// filtro y escritura en la misma sentencia. assignRider vacío conserva
// el rider actual; tracking nil conserva el tracking actual.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID string, target entity.OrderStatus, from []entity.OrderStatus, assignRider string, tracking *entity.Tracking) (bool, error) {
	trackingJSON, err := marshalTracking(tracking)
	if err != nil {
		return false, err
	}
	query := `
		UPDATE orders
		SET order_status   = $2,
		    assigned_rider = COALESCE($3, assigned_rider),
		    tracking       = COALESCE($4, tracking),
		    updated_at     = now()
		WHERE id = $1 AND order_status = ANY($5)`
	tag, err := r.q.Exec(ctx, query,
		orderID, string(target), nullIfEmpty(assignRider), trackingJSON, statusStrings(from))
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateDelivery fija Delivered/Undelivered solo si la orden está en
// Shipped Y asignada a riderUID; ambos requisitos viajan como filtro de
// la misma sentencia, sin ventana entre chequeo y escritura.
func (r *OrderRepo) UpdateDelivery(ctx context.Context, orderID, riderUID string, target entity.OrderStatus, notes string) (bool, error) {
	query := `
		UPDATE orders
		SET order_status   = $3,
		    delivery_notes = $4,
		    updated_at     = now()
		WHERE id = $1 AND assigned_rider = $2 AND order_status = 'Shipped'`
	tag, err := r.q.Exec(ctx, query, orderID, riderUID, string(target), nullIfEmpty(notes))
	if err != nil {
		return false, fmt.Errorf("update order delivery: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func marshalTracking(t *entity.Tracking) ([]byte, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal tracking: %w", err)
	}
	return b, nil
}

func statusStrings(statuses []entity.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var paymentStatus, orderStatus string
	var assignedRider, deliveryNotes *string
	var shipping, tracking []byte
	if err := row.Scan(
		&o.ID, &o.UserUID, &o.TotalAmount, &shipping, &o.PaymentMethod,
		&paymentStatus, &orderStatus, &assignedRider, &deliveryNotes, &tracking,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.AssignedRider = derefStr(assignedRider)
	o.DeliveryNotes = derefStr(deliveryNotes)
	if parsed, ok := entity.ParsePaymentStatus(paymentStatus); ok {
		o.PaymentStatus = parsed
	}
	if parsed, ok := entity.ParseOrderStatus(orderStatus); ok {
		o.OrderStatus = parsed
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
			return nil, fmt.Errorf("unmarshal shipping: %w", err)
		}
	}
	if len(tracking) > 0 {
		var t entity.Tracking
		if err := json.Unmarshal(tracking, &t); err != nil {
			return nil, fmt.Errorf("unmarshal tracking: %w", err)
		}
		o.Tracking = &t
	}
	return &o, nil
}
