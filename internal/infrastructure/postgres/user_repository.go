package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, uid, email, display_name, photo_url, role, is_active, address, phone, created_at, updated_at`

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	address, err := json.Marshal(user.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	query := `
		INSERT INTO users (id, uid, email, display_name, photo_url, role, is_active, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.UID, user.Email, user.DisplayName, nullIfEmpty(user.PhotoURL),
		user.Role.String(), user.IsActive, address, nullIfEmpty(user.Phone),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta el usuario solo si su uid no existe aún; es el
// upsert idempotente del primer login. Las constraints únicas de
// uid/email deciden ante logins concurrentes.
func (r *UserRepo) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	address, err := json.Marshal(user.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	query := `
		INSERT INTO users (id, uid, email, display_name, photo_url, role, is_active, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (uid) DO NOTHING`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.UID, user.Email, user.DisplayName, nullIfEmpty(user.PhotoURL),
		user.Role.String(), user.IsActive, address, nullIfEmpty(user.Phone),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por su ID interno.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUID obtiene un usuario por su identidad externa.
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid)
}

// GetByEmail obtiene un usuario por email (ya normalizado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	row := r.q.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update reescribe los campos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	address, err := json.Marshal(user.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	query := `
		UPDATE users
		SET display_name = $2,
		    photo_url    = $3,
		    role         = $4,
		    is_active    = $5,
		    address      = $6,
		    phone        = $7,
		    updated_at   = $8
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.DisplayName, nullIfEmpty(user.PhotoURL), user.Role.String(),
		user.IsActive, address, nullIfEmpty(user.Phone), user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

// ListActiveRiders devuelve los repartidores activos asignables.
func (r *UserRepo) ListActiveRiders(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'rider' AND is_active ORDER BY display_name`)
}

// GetActiveRiderByUID devuelve el usuario solo si es un rider activo.
func (r *UserRepo) GetActiveRiderByUID(ctx context.Context, uid string) (*entity.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE uid = $1 AND role = 'rider' AND is_active`, uid)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	var photoURL, phone *string
	var address []byte
	if err := row.Scan(
		&u.ID, &u.UID, &u.Email, &u.DisplayName, &photoURL, &role,
		&u.IsActive, &address, &phone, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.PhotoURL = derefStr(photoURL)
	u.Phone = derefStr(phone)
	if parsed, ok := entity.ParseRole(role); ok {
		u.Role = parsed
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &u.Address); err != nil {
			return nil, fmt.Errorf("unmarshal address: %w", err)
		}
	}
	return &u, nil
}
