package repository

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateIfAbsent es el upsert idempotente del primer login:
	// INSERT ... ON CONFLICT DO NOTHING. La unicidad de uid/email a nivel
	// de store es la única salvaguarda frente a logins concurrentes.
	CreateIfAbsent(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	// ListActiveRiders usuarios activos con rol rider (para asignación).
	ListActiveRiders(ctx context.Context) ([]*entity.User, error)
	// GetActiveRiderByUID resuelve un rider activo por identidad externa;
	// (nil, nil) si no existe, no es rider o está inactivo.
	GetActiveRiderByUID(ctx context.Context, uid string) (*entity.User, error)
}
