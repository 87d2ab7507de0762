package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas para Product.
type Category string

const (
	CategoryFan            Category = "fan"
	CategoryAirConditioner Category = "air_conditioner"
)

// ParseCategory valida una categoría recibida por la API.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryFan, CategoryAirConditioner:
		return Category(s), true
	}
	return "", false
}

// Variant es la unidad de stock de un producto por combinación (size, color).
// La pareja (size, color) es única dentro del producto.
type Variant struct {
	ID    string
	Size  string
	Color string
	Stock int
	SKU   string
}

// Ratings agregado de calificaciones del producto.
type Ratings struct {
	Average decimal.Decimal `json:"average"` // 0..5
	Count   int             `json:"count"`
}

// Product entrada del catálogo. InStock es derivado: true si alguna
// variante tiene stock > 0; se recalcula en cada mutación de variantes
// y nunca lo fija el caller directamente.
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal // >= 0; se snapshotea en las líneas de orden
	Category       Category
	ImageURLs      []string
	Variants       []Variant
	Ratings        Ratings
	Features       []string
	Specifications json.RawMessage // mapa libre clave -> valor
	InStock        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeInStock recalcula el flag derivado a partir de las variantes.
func (p *Product) ComputeInStock() {
	p.InStock = AnyVariantInStock(p.Variants)
}

// AnyVariantInStock devuelve true si alguna variante tiene stock positivo.
func AnyVariantInStock(variants []Variant) bool {
	for _, v := range variants {
		if v.Stock > 0 {
			return true
		}
	}
	return false
}

// FindVariant localiza la variante con la pareja exacta (size, color).
// Devuelve -1 si no existe.
func (p *Product) FindVariant(size, color string) int {
	for i, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return i
		}
	}
	return -1
}
