package repository

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// ApprovedEmailRepository define el puerto de persistencia para la lista
// de emails aprobados. Emails siempre normalizados antes de consultar.
type ApprovedEmailRepository interface {
	Create(ctx context.Context, approved *entity.ApprovedEmail) error
	GetByEmail(ctx context.Context, email string) (*entity.ApprovedEmail, error)
	// GetActiveByEmail filtra por is_active = true en la misma consulta.
	GetActiveByEmail(ctx context.Context, email string) (*entity.ApprovedEmail, error)
	List(ctx context.Context) ([]*entity.ApprovedEmail, error)
	// Delete devuelve false si el id no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// SetRoleByEmail / SetActiveByEmail mantienen la entrada en sync cuando
	// el admin cambia rol o estado del User correspondiente.
	SetRoleByEmail(ctx context.Context, email string, role entity.Role) error
	SetActiveByEmail(ctx context.Context, email string, active bool) error
}
