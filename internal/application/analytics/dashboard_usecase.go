package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

const recentOrdersLimit = 5

// DashboardUseCase vistas agregadas del panel admin y del panel de
// repartidor. Sin caché: cada petición recalcula contra la base.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// AdminDashboard arma el resumen admin: contadores de órdenes por
// estado, usuarios por rol y las últimas órdenes. Las tres consultas
// son independientes y corren en paralelo.
func (uc *DashboardUseCase) AdminDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	type orderCountsResult struct {
		counts map[entity.OrderStatus]int
		err    error
	}
	type userCountsResult struct {
		counts map[entity.Role]int
		err    error
	}
	type recentResult struct {
		orders []*entity.Order
		err    error
	}

	ordersCh := make(chan orderCountsResult, 1)
	usersCh := make(chan userCountsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		counts, err := uc.statsRepo.CountOrdersByStatus(ctx)
		ordersCh <- orderCountsResult{counts, err}
	}()
	go func() {
		counts, err := uc.statsRepo.CountUsersByRole(ctx)
		usersCh <- userCountsResult{counts, err}
	}()
	go func() {
		orders, err := uc.statsRepo.RecentOrders(ctx, recentOrdersLimit)
		recentCh <- recentResult{orders, err}
	}()

	ordersRes := <-ordersCh
	usersRes := <-usersCh
	recentRes := <-recentCh

	if ordersRes.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes por estado: %w", ordersRes.err)
	}
	if usersRes.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios por rol: %w", usersRes.err)
	}
	if recentRes.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes recientes: %w", recentRes.err)
	}

	orderCounts := dto.OrderCounts{
		Pending:     ordersRes.counts[entity.StatusPending],
		Processing:  ordersRes.counts[entity.StatusProcessing],
		Shipped:     ordersRes.counts[entity.StatusShipped],
		Delivered:   ordersRes.counts[entity.StatusDelivered],
		Undelivered: ordersRes.counts[entity.StatusUndelivered],
		Cancelled:   ordersRes.counts[entity.StatusCancelled],
	}
	for _, n := range ordersRes.counts {
		orderCounts.Total += n
	}

	userCounts := dto.UserCounts{
		Customers: usersRes.counts[entity.RoleCustomer],
		Riders:    usersRes.counts[entity.RoleRider],
		Admins:    usersRes.counts[entity.RoleAdmin],
	}
	for _, n := range usersRes.counts {
		userCounts.Total += n
	}

	return &dto.DashboardResponse{
		Orders:       orderCounts,
		Users:        userCounts,
		RecentOrders: dto.FromOrders(recentRes.orders),
	}, nil
}

// RiderStats arma el panel del repartidor: contadores de sus órdenes y
// las últimas asignadas. Dos consultas independientes, en paralelo.
func (uc *DashboardUseCase) RiderStats(ctx context.Context, riderUID string) (*dto.RiderStatsResponse, error) {
	type statsResult struct {
		stats repository.RiderStats
		err   error
	}
	type recentResult struct {
		orders []*entity.Order
		err    error
	}

	statsCh := make(chan statsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		stats, err := uc.statsRepo.RiderOrderStats(ctx, riderUID)
		statsCh <- statsResult{stats, err}
	}()
	go func() {
		orders, err := uc.statsRepo.RecentOrdersByRider(ctx, riderUID, recentOrdersLimit)
		recentCh <- recentResult{orders, err}
	}()

	statsRes := <-statsCh
	recentRes := <-recentCh

	if statsRes.err != nil {
		return nil, fmt.Errorf("rider stats: contadores: %w", statsRes.err)
	}
	if recentRes.err != nil {
		return nil, fmt.Errorf("rider stats: órdenes recientes: %w", recentRes.err)
	}

	return &dto.RiderStatsResponse{
		Stats: dto.RiderStatsCounts{
			TotalAssigned:     statsRes.stats.TotalAssigned,
			PendingDeliveries: statsRes.stats.PendingDeliveries,
			DeliveredOrders:   statsRes.stats.Delivered,
			UndeliveredOrders: statsRes.stats.Undelivered,
		},
		RecentOrders: dto.FromOrders(recentRes.orders),
	}, nil
}
