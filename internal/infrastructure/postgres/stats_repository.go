package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas read-only para el dashboard admin y las
// estadísticas de repartidor.
type StatsRepo struct {
	q Querier

	orders *OrderRepo
}

// NewStatsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q, orders: NewOrderRepository(q)}
}

// CountOrdersByStatus devuelve el conteo de órdenes por estado.
func (r *StatsRepo) CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT order_status, count(*) FROM orders GROUP BY order_status`)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.OrderStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		if parsed, ok := entity.ParseOrderStatus(status); ok {
			out[parsed] = n
		}
	}
	return out, rows.Err()
}

// CountUsersByRole devuelve el conteo de usuarios por rol.
func (r *StatsRepo) CountUsersByRole(ctx context.Context) (map[entity.Role]int, error) {
	rows, err := r.q.Query(ctx, `SELECT role, count(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer rows.Close()

	out := make(map[entity.Role]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan user count: %w", err)
		}
		if parsed, ok := entity.ParseRole(role); ok {
			out[parsed] = n
		}
	}
	return out, rows.Err()
}

// RecentOrders devuelve las últimas órdenes con sus líneas.
func (r *StatsRepo) RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	return r.orders.list(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

// RiderOrderStats calcula los contadores de un repartidor en una sola
// pasada con agregados condicionales.
func (r *StatsRepo) RiderOrderStats(ctx context.Context, riderUID string) (repository.RiderStats, error) {
	var stats repository.RiderStats
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE order_status = 'Shipped'),
		       count(*) FILTER (WHERE order_status = 'Delivered'),
		       count(*) FILTER (WHERE order_status = 'Undelivered')
		FROM orders
		WHERE assigned_rider = $1`, riderUID).Scan(
		&stats.TotalAssigned, &stats.PendingDeliveries, &stats.Delivered, &stats.Undelivered,
	)
	if err != nil {
		return repository.RiderStats{}, fmt.Errorf("rider order stats: %w", err)
	}
	return stats, nil
}

// RecentOrdersByRider devuelve las últimas órdenes asignadas al repartidor.
func (r *StatsRepo) RecentOrdersByRider(ctx context.Context, riderUID string, limit int) ([]*entity.Order, error) {
	return r.orders.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE assigned_rider = $1
		ORDER BY created_at DESC
		LIMIT $2`, riderUID, limit)
}
