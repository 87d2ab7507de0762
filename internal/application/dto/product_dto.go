package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// VariantRequest variante de entrada (alta o reemplazo completo).
type VariantRequest struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
	Stock int    `json:"stock" validate:"min=0"`
	SKU   string `json:"sku"`
}

// CreateProductRequest entrada para crear un producto. InStock no se
// acepta del caller: siempre se deriva de las variantes.
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	Description    string           `json:"description" validate:"required"`
	Price          decimal.Decimal  `json:"price"`
	Category       string           `json:"category" validate:"required,oneof=fan air_conditioner"`
	ImageURLs      []string         `json:"imageURLs"`
	Variants       []VariantRequest `json:"variants" validate:"required,min=1"`
	Features       []string         `json:"features"`
	Specifications json.RawMessage  `json:"specifications"`
}

// UpdateProductRequest reemplazo completo (PUT); misma forma que el alta.
type UpdateProductRequest = CreateProductRequest

// VariantStockUpdateRequest elemento del lote del PATCH de stock.
type VariantStockUpdateRequest struct {
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
	Stock int    `json:"stock" validate:"min=0"`
}

// UpdateStockRequest cuerpo de PATCH /products/:id/stock.
type UpdateStockRequest struct {
	VariantUpdates []VariantStockUpdateRequest `json:"variantUpdates" validate:"required,min=1"`
}

// VariantResponse variante de salida.
type VariantResponse struct {
	ID    string `json:"id"`
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
	SKU   string `json:"sku,omitempty"`
}

// RatingsResponse agregado de calificaciones.
type RatingsResponse struct {
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Category       string            `json:"category"`
	ImageURLs      []string          `json:"imageURLs"`
	Variants       []VariantResponse `json:"variants"`
	Ratings        RatingsResponse   `json:"ratings"`
	Features       []string          `json:"features"`
	Specifications json.RawMessage   `json:"specifications,omitempty"`
	InStock        bool              `json:"inStock"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// FromProduct convierte la entidad a su representación API.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantResponse{
			ID: v.ID, Size: v.Size, Color: v.Color, Stock: v.Stock, SKU: v.SKU,
		})
	}
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Category:       string(p.Category),
		ImageURLs:      p.ImageURLs,
		Variants:       variants,
		Ratings:        RatingsResponse{Average: p.Ratings.Average, Count: p.Ratings.Count},
		Features:       p.Features,
		Specifications: p.Specifications,
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// FromProducts convierte un listado.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *FromProduct(p))
	}
	return out
}
