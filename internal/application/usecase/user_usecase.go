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

// UserUseCase perfiles, administración de usuarios y lista de emails
// aprobados. El rol y el flag activo de un usuario se mantienen en
// espejo con su entrada de la lista de aprobados.
type UserUseCase struct {
	userRepo     repository.UserRepository
	approvedRepo repository.ApprovedEmailRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository, approvedRepo repository.ApprovedEmailRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, approvedRepo: approvedRepo}
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil propio
// ──────────────────────────────────────────────────────────────────────────────

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.FromUser(user), nil
}

// UpdateProfile actualiza solo displayName, address y phone. Email, rol
// y estado no se tocan por esta vía.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	applyProfilePatch(user, in)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

func applyProfilePatch(user *entity.User, in dto.UpdateProfileRequest) {
	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	user.UpdatedAt = time.Now()
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil de repartidor (mismas operaciones, acotadas al rol)
// ──────────────────────────────────────────────────────────────────────────────

// GetRiderProfile devuelve el perfil solo si el principal es una fila
// con rol rider; otra cosa es 404, no 403: la ruta es de repartidores.
func (uc *UserUseCase) GetRiderProfile(ctx context.Context, uid string) (*dto.UserResponse, error) {
	user, err := uc.riderByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// UpdateRiderProfile igual que UpdateProfile, acotado a rol rider.
func (uc *UserUseCase) UpdateRiderProfile(ctx context.Context, uid string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.riderByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	applyProfilePatch(user, in)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

func (uc *UserUseCase) riderByUID(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleRider {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración de usuarios
// ──────────────────────────────────────────────────────────────────────────────

// ListUsers lista todos los usuarios (admin).
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *dto.FromUser(u))
	}
	return out, nil
}

// GetUser obtiene un usuario por su ID interno (admin).
func (uc *UserUseCase) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.FromUser(user), nil
}

// UpdateRole cambia el rol de un usuario y sincroniza su entrada en la
// lista de aprobados para que el próximo login no lo revierta.
func (uc *UserUseCase) UpdateRole(ctx context.Context, userID string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.approvedRepo.SetRoleByEmail(ctx, user.Email, role); err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// ToggleStatus invierte el flag activo del usuario y lo espeja en la
// lista de aprobados. Es idempotente en forma: cada llamada invierte el
// estado actual, nunca falla por "ya estaba así".
func (uc *UserUseCase) ToggleStatus(ctx context.Context, userID string) (*dto.ToggleStatusResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.approvedRepo.SetActiveByEmail(ctx, user.Email, user.IsActive); err != nil {
		return nil, err
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	return &dto.ToggleStatusResponse{Message: message, User: dto.FromUser(user)}, nil
}

// ListRiders lista los repartidores activos asignables a órdenes.
func (uc *UserUseCase) ListRiders(ctx context.Context) ([]dto.RiderResponse, error) {
	riders, err := uc.userRepo.ListActiveRiders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RiderResponse, 0, len(riders))
	for _, r := range riders {
		out = append(out, dto.RiderResponse{
			ID: r.ID, UID: r.UID, DisplayName: r.DisplayName, Email: r.Email, PhotoURL: r.PhotoURL,
		})
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista de emails aprobados
// ──────────────────────────────────────────────────────────────────────────────

// ListApprovedEmails lista la lista de acceso completa (admin).
func (uc *UserUseCase) ListApprovedEmails(ctx context.Context) ([]dto.ApprovedEmailResponse, error) {
	list, err := uc.approvedRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApprovedEmailResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *dto.FromApprovedEmail(a))
	}
	return out, nil
}

// CreateApprovedEmail agrega un email a la lista de acceso. El email se
// normaliza antes de persistir; un duplicado es ErrDuplicate.
func (uc *UserUseCase) CreateApprovedEmail(ctx context.Context, in dto.CreateApprovedEmailRequest) (*dto.CreateApprovedEmailResponse, error) {
	if in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	approved := &entity.ApprovedEmail{
		ID:        uuid.New().String(),
		Email:     entity.NormalizeEmail(in.Email),
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.approvedRepo.Create(ctx, approved); err != nil {
		return nil, err
	}
	return &dto.CreateApprovedEmailResponse{
		Message:       "Email approved successfully",
		ApprovedEmail: dto.FromApprovedEmail(approved),
	}, nil
}

// DeleteApprovedEmail quita una entrada de la lista de acceso.
func (uc *UserUseCase) DeleteApprovedEmail(ctx context.Context, id string) error {
	deleted, err := uc.approvedRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
