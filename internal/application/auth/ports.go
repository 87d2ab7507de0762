package auth

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// Identity identidad externa verificada por el proveedor.
type Identity struct {
	Subject string // id estable del proveedor (sub)
	Email   string
	Name    string
	Picture string
}

// TokenVerifier puerto hacia el proveedor de identidad. Verifica firma y
// expiración del credential entrante y devuelve la identidad. No existe
// camino alterno de verificación: solo tokens verificados del proveedor.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// Principal actor autenticado y autorizado de una petición. Lo produce
// la cadena de autorización y se pasa explícitamente a cada caso de uso;
// nunca vive en estado ambiente.
type Principal struct {
	UID    string
	Email  string
	Role   entity.Role
	UserID string
}
