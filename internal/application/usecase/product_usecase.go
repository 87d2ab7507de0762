package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

// ProductTxRunner ejecuta fn con un ProductRepository atado a una
// transacción; el lote de stock del PATCH debe ser todo-o-nada.
type ProductTxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ProductRepository) error) error
}

// ProductUseCase casos de uso del catálogo. Las mutaciones son solo de
// admin (lo impone la capa HTTP); InStock es siempre derivado aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   ProductTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx ProductTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx}
}

// Create crea un producto con sus variantes. InStock se deriva de las
// variantes; lo que mande el caller se ignora.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := buildProduct(uuid.New().String(), in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromProduct(product), nil
}

// List lista el catálogo. Por defecto solo productos en stock; con
// includeOutOfStock se listan todos. category filtra si viene.
func (uc *ProductUseCase) List(ctx context.Context, category string, includeOutOfStock bool) ([]dto.ProductResponse, error) {
	filter := repository.ProductFilter{IncludeOutOfStock: includeOutOfStock}
	if category != "" {
		cat, ok := entity.ParseCategory(category)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Category = &cat
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(list), nil
}

// Update reemplaza el producto completo, variantes incluidas, y
// recalcula InStock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	product, err := buildProduct(id, in)
	if err != nil {
		return nil, err
	}
	product.Ratings = existing.Ratings
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock aplica el lote de stocks del PATCH. Primero valida que
// TODAS las parejas (size, color) existan — si alguna falta no se toca
// nada y se devuelve qué pareja falló — y luego aplica el lote completo
// más el recálculo de InStock dentro de una sola transacción.
func (uc *ProductUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	if len(in.VariantUpdates) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, u := range in.VariantUpdates {
		if u.Stock < 0 || u.Size == "" || u.Color == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	var updated *entity.Product
	err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		product, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		updates := make([]repository.VariantStockUpdate, 0, len(in.VariantUpdates))
		for _, u := range in.VariantUpdates {
			idx := product.FindVariant(u.Size, u.Color)
			if idx < 0 {
				return &domain.VariantNotFoundError{Size: u.Size, Color: u.Color}
			}
			product.Variants[idx].Stock = u.Stock
			updates = append(updates, repository.VariantStockUpdate{
				Size: u.Size, Color: u.Color, Stock: u.Stock,
			})
		}

		product.ComputeInStock()
		product.UpdatedAt = time.Now()
		if err := repo.UpdateVariantStocks(ctx, id, updates, product.InStock); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(updated), nil
}

// buildProduct valida la entrada y construye la entidad con InStock
// derivado. No toca timestamps ni ratings: eso lo decide el caller.
func buildProduct(id string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Variants) == 0 {
		return nil, domain.ErrInvalidInput
	}

	variants := make([]entity.Variant, 0, len(in.Variants))
	seen := make(map[[2]string]bool, len(in.Variants))
	for _, v := range in.Variants {
		if v.Size == "" || v.Color == "" || v.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		key := [2]string{v.Size, v.Color}
		if seen[key] {
			return nil, domain.ErrDuplicate
		}
		seen[key] = true
		variants = append(variants, entity.Variant{
			ID:    uuid.New().String(),
			Size:  v.Size,
			Color: v.Color,
			Stock: v.Stock,
			SKU:   v.SKU,
		})
	}

	product := &entity.Product{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Category:       category,
		ImageURLs:      in.ImageURLs,
		Variants:       variants,
		Features:       in.Features,
		Specifications: in.Specifications,
	}
	product.ComputeInStock()
	return product, nil
}
