package repository

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// ProductFilter filtros del listado público de catálogo.
type ProductFilter struct {
	Category          *entity.Category
	IncludeOutOfStock bool // por defecto solo productos con InStock
}

// VariantStockUpdate actualización de stock para una pareja (size, color).
type VariantStockUpdate struct {
	Size  string
	Color string
	Stock int
}

// ProductRepository define el puerto de persistencia para Product y sus
// variantes. Create/Update/UpdateVariantStocks persisten el InStock
// derivado que les entrega el caso de uso.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Update reemplaza los campos del producto y el set completo de variantes.
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve false si el id no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// UpdateVariantStocks aplica el lote completo de stocks ya validado y
	// persiste el nuevo InStock. Debe ejecutarse sobre una transacción
	// (TxRunner) para que el lote sea atómico.
	UpdateVariantStocks(ctx context.Context, productID string, updates []VariantStockUpdate, inStock bool) error
}
