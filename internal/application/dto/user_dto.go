package dto

import (
	"time"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// UserResponse salida de un usuario.
type UserResponse struct {
	ID          string         `json:"id"`
	UID         string         `json:"uid"`
	Email       string         `json:"email"`
	DisplayName string         `json:"displayName"`
	PhotoURL    string         `json:"photoURL,omitempty"`
	Role        string         `json:"role"`
	IsActive    bool           `json:"isActive"`
	Address     entity.Address `json:"address"`
	Phone       string         `json:"phone,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FromUser convierte la entidad a su representación API.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role.String(),
		IsActive:    u.IsActive,
		Address:     u.Address,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UpdateProfileRequest campos de perfil que el propio usuario puede editar.
type UpdateProfileRequest struct {
	DisplayName *string         `json:"displayName"`
	Address     *entity.Address `json:"address"`
	Phone       *string         `json:"phone"`
}

// UpdateRoleRequest cambio de rol por admin.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin rider"`
}

// ToggleStatusResponse resultado de activar/desactivar un usuario.
type ToggleStatusResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// RiderResponse entrada del listado de repartidores asignables.
type RiderResponse struct {
	ID          string `json:"id"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// CreateApprovedEmailRequest alta en la lista de aprobados.
type CreateApprovedEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=customer admin rider"`
}

// ApprovedEmailResponse salida de una entrada aprobada.
type ApprovedEmailResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromApprovedEmail convierte la entidad a su representación API.
func FromApprovedEmail(a *entity.ApprovedEmail) *ApprovedEmailResponse {
	if a == nil {
		return nil
	}
	return &ApprovedEmailResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role.String(),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreateApprovedEmailResponse alta exitosa.
type CreateApprovedEmailResponse struct {
	Message       string                 `json:"message"`
	ApprovedEmail *ApprovedEmailResponse `json:"approvedEmail"`
}
