package repository

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// RiderStats contadores agregados de las órdenes de un repartidor.
type RiderStats struct {
	TotalAssigned     int
	PendingDeliveries int // en Shipped
	Delivered         int
	Undelivered       int
}

// StatsRepository consultas read-only para el dashboard admin y las
// estadísticas de repartidor. Sin caché: se calculan por petición.
type StatsRepository interface {
	CountOrdersByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
	CountUsersByRole(ctx context.Context) (map[entity.Role]int, error)
	RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error)
	RiderOrderStats(ctx context.Context, riderUID string) (RiderStats, error)
	RecentOrdersByRider(ctx context.Context, riderUID string, limit int) ([]*entity.Order, error)
}
