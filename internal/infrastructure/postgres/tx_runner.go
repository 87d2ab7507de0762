package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/coolbreeze-api/internal/application/orders"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

var (
	_ usecase.ProductTxRunner = (*ProductTxRunner)(nil)
	_ orders.TxRunner         = (*OrderTxRunner)(nil)
)

// ProductTxRunner ejecuta callbacks con un ProductRepo atado a una
// transacción; el lote de stock del PATCH se aplica todo o nada.
type ProductTxRunner struct {
	pool *pgxpool.Pool
}

// NewProductTxRunner construye el runner con el pool.
func NewProductTxRunner(pool *pgxpool.Pool) *ProductTxRunner {
	return &ProductTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *ProductTxRunner) Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// OrderTxRunner ejecuta callbacks con un OrderRepo atado a una
// transacción; la orden y sus líneas se insertan juntas.
type OrderTxRunner struct {
	pool *pgxpool.Pool
}

// NewOrderTxRunner construye el runner con el pool.
func NewOrderTxRunner(pool *pgxpool.Pool) *OrderTxRunner {
	return &OrderTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *OrderTxRunner) Run(ctx context.Context, fn func(repo repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
