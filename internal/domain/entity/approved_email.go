package entity

import (
	"strings"
	"time"

	"golang.org/x/text/secure/precis"
)

// ApprovedEmail es el registro de pre-aprobación que habilita a un email
// a obtener una identidad en el sistema y con qué rol. Un User solo se
// considera autorizado si existe aquí una entrada activa para su email.
type ApprovedEmail struct {
	ID        string
	Email     string // normalizado: trim + case-fold
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail aplica el perfil PRECIS UsernameCaseMapped (case-fold
// Unicode) tras recortar espacios. Los emails de la lista de aprobados
// son case-insensitive por contrato.
func NormalizeEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	normalized, err := precis.UsernameCaseMapped.String(trimmed)
	if err != nil {
		// Entrada fuera del perfil (p.ej. bytes de control): degradar a lower-case ASCII.
		return strings.ToLower(trimmed)
	}
	return normalized
}
