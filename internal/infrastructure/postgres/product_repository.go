package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre las tablas
// products y product_variants (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, price, category, image_urls,
	ratings_average, ratings_count, features, specifications, in_stock, created_at, updated_at`

// Create persiste el producto y sus variantes.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, category, image_urls,
			ratings_average, ratings_count, features, specifications, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, string(product.Category),
		product.ImageURLs, product.Ratings.Average, product.Ratings.Count,
		product.Features, specificationsParam(product), product.InStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertVariants(ctx, product.ID, product.Variants)
}

func specificationsParam(product *entity.Product) []byte {
	if len(product.Specifications) == 0 {
		return []byte("{}")
	}
	return []byte(product.Specifications)
}

func (r *ProductRepo) insertVariants(ctx context.Context, productID string, variants []entity.Variant) error {
	query := `
		INSERT INTO product_variants (id, product_id, size, color, stock, sku)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, v := range variants {
		if _, err := r.q.Exec(ctx, query, v.ID, productID, v.Size, v.Color, v.Stock, nullIfEmpty(v.SKU)); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert variant: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un producto con sus variantes.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	variants, err := r.variantsByProduct(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	product.Variants = variants[id]
	return product, nil
}

// List lista el catálogo con los filtros dados, más reciente primero.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if !filter.IncludeOutOfStock {
		query += " AND in_stock"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	var ids []string
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, product)
		ids = append(ids, product.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	variants, err := r.variantsByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Variants = variants[p.ID]
	}
	return list, nil
}

func (r *ProductRepo) variantsByProduct(ctx context.Context, productIDs []string) (map[string][]entity.Variant, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, size, color, stock, sku
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY size, color`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.Variant)
	for rows.Next() {
		var v entity.Variant
		var productID string
		var sku *string
		if err := rows.Scan(&v.ID, &productID, &v.Size, &v.Color, &v.Stock, &sku); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		v.SKU = derefStr(sku)
		out[productID] = append(out[productID], v)
	}
	return out, rows.Err()
}

// Update reemplaza los campos del producto y el set completo de
// variantes (la semántica del PUT es reemplazo total).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name            = $2,
		    description     = $3,
		    price           = $4,
		    category        = $5,
		    image_urls      = $6,
		    features        = $7,
		    specifications  = $8,
		    in_stock        = $9,
		    updated_at      = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, string(product.Category),
		product.ImageURLs, product.Features, specificationsParam(product),
		product.InStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}
	return r.insertVariants(ctx, product.ID, product.Variants)
}

// Delete elimina un producto (las variantes caen por ON DELETE CASCADE).
// Devuelve false si el id no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateVariantStocks aplica el lote de stocks ya validado y persiste
// el InStock recalculado. Debe correr dentro de una transacción
// (ProductTxRunner) para que el lote sea atómico.
func (r *ProductRepo) UpdateVariantStocks(ctx context.Context, productID string, updates []repository.VariantStockUpdate, inStock bool) error {
	query := `
		UPDATE product_variants
		SET stock = $4
		WHERE product_id = $1 AND size = $2 AND color = $3`
	for _, u := range updates {
		tag, err := r.q.Exec(ctx, query, productID, u.Size, u.Color, u.Stock)
		if err != nil {
			return fmt.Errorf("update variant stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return &domain.VariantNotFoundError{Size: u.Size, Color: u.Color}
		}
	}
	_, err := r.q.Exec(ctx,
		`UPDATE products SET in_stock = $2, updated_at = now() WHERE id = $1`,
		productID, inStock)
	if err != nil {
		return fmt.Errorf("update product in_stock: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var category string
	var specifications []byte
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &category, &p.ImageURLs,
		&p.Ratings.Average, &p.Ratings.Count, &p.Features, &specifications,
		&p.InStock, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if parsed, ok := entity.ParseCategory(category); ok {
		p.Category = parsed
	}
	p.Specifications = specifications
	return &p, nil
}
