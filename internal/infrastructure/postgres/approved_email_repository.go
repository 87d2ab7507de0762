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

var _ repository.ApprovedEmailRepository = (*ApprovedEmailRepo)(nil)

// ApprovedEmailRepo implementación de ApprovedEmailRepository.
type ApprovedEmailRepo struct {
	q Querier
}

// NewApprovedEmailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovedEmailRepository(q Querier) *ApprovedEmailRepo {
	return &ApprovedEmailRepo{q: q}
}

const approvedColumns = `id, email, role, is_active, created_at, updated_at`

// Create agrega una entrada a la lista de aprobados. Email duplicado es
// ErrDuplicate (constraint única sobre email).
func (r *ApprovedEmailRepo) Create(ctx context.Context, approved *entity.ApprovedEmail) error {
	query := `
		INSERT INTO approved_emails (id, email, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		approved.ID, approved.Email, approved.Role.String(), approved.IsActive,
		approved.CreatedAt, approved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert approved email: %w", err)
	}
	return nil
}

// GetByEmail obtiene una entrada por email normalizado.
func (r *ApprovedEmailRepo) GetByEmail(ctx context.Context, email string) (*entity.ApprovedEmail, error) {
	return r.getOne(ctx, `SELECT `+approvedColumns+` FROM approved_emails WHERE email = $1`, email)
}

// GetActiveByEmail obtiene la entrada solo si está activa.
func (r *ApprovedEmailRepo) GetActiveByEmail(ctx context.Context, email string) (*entity.ApprovedEmail, error) {
	return r.getOne(ctx,
		`SELECT `+approvedColumns+` FROM approved_emails WHERE email = $1 AND is_active`, email)
}

func (r *ApprovedEmailRepo) getOne(ctx context.Context, query string, arg any) (*entity.ApprovedEmail, error) {
	var a entity.ApprovedEmail
	var role string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approved email: %w", err)
	}
	if parsed, ok := entity.ParseRole(role); ok {
		a.Role = parsed
	}
	return &a, nil
}

// List devuelve la lista de acceso completa, más reciente primero.
func (r *ApprovedEmailRepo) List(ctx context.Context) ([]*entity.ApprovedEmail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+approvedColumns+` FROM approved_emails ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list approved emails: %w", err)
	}
	defer rows.Close()

	var list []*entity.ApprovedEmail
	for rows.Next() {
		var a entity.ApprovedEmail
		var role string
		if err := rows.Scan(&a.ID, &a.Email, &role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan approved email: %w", err)
		}
		if parsed, ok := entity.ParseRole(role); ok {
			a.Role = parsed
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete quita una entrada. Devuelve false si el id no existía.
func (r *ApprovedEmailRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM approved_emails WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete approved email: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetRoleByEmail espeja un cambio de rol hecho sobre el usuario.
func (r *ApprovedEmailRepo) SetRoleByEmail(ctx context.Context, email string, role entity.Role) error {
	_, err := r.q.Exec(ctx,
		`UPDATE approved_emails SET role = $2, updated_at = now() WHERE email = $1`,
		email, role.String())
	if err != nil {
		return fmt.Errorf("set approved email role: %w", err)
	}
	return nil
}

// SetActiveByEmail espeja una activación/desactivación del usuario.
func (r *ApprovedEmailRepo) SetActiveByEmail(ctx context.Context, email string, active bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE approved_emails SET is_active = $2, updated_at = now() WHERE email = $1`,
		email, active)
	if err != nil {
		return fmt.Errorf("set approved email active: %w", err)
	}
	return nil
}
