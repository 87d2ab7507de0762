package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
	"github.com/jhoicas/coolbreeze-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login con proveedor externo y resolución de principal.
//
// Política de acceso: un email sin entrada activa en la lista de
// aprobados se RECHAZA con ErrEmailNotApproved; no hay auto-aprobación.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	approvedRepo repository.ApprovedEmailRepository
	verifier     TokenVerifier
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	approvedRepo repository.ApprovedEmailRepository,
	verifier TokenVerifier,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, approvedRepo: approvedRepo, verifier: verifier, jwtCfg: jwtCfg}
}

// GoogleLogin verifica el ID token del proveedor, aplica la lista de
// aprobados, hace el find-or-create del usuario local y emite el token
// de sesión propio.
//
// El find-or-create es un upsert explícito e idempotente: INSERT ... ON
// CONFLICT DO NOTHING más relectura; ante primeros logins concurrentes
// del mismo email, las constraints únicas de uid/email deciden.
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, rawToken string) (*dto.LoginResponse, error) {
	identity, err := uc.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	email := entity.NormalizeEmail(identity.Email)
	approved, err := uc.approvedRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if approved == nil {
		return nil, domain.ErrEmailNotApproved
	}

	user, err := uc.userRepo.GetByUID(ctx, identity.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := time.Now()
		candidate := &entity.User{
			ID:          uuid.New().String(),
			UID:         identity.Subject,
			Email:       email,
			DisplayName: identity.Name,
			PhotoURL:    identity.Picture,
			Role:        approved.Role,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.userRepo.CreateIfAbsent(ctx, candidate); err != nil {
			return nil, err
		}
		user, err = uc.userRepo.GetByUID(ctx, identity.Subject)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
	} else if uc.syncFromLogin(user, identity, approved) {
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.UID, user.Email, user.Role.String(), user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message: "Authentication successful",
		Token:   token,
		User:    *dto.FromUser(user),
	}, nil
}

// syncFromLogin sincroniza en cada login el nombre/foto desde los claims
// del proveedor y el rol desde la lista de aprobados. Devuelve true si
// hubo cambios.
func (uc *AuthUseCase) syncFromLogin(user *entity.User, identity *Identity, approved *entity.ApprovedEmail) bool {
	changed := false
	if identity.Name != "" && user.DisplayName != identity.Name {
		user.DisplayName = identity.Name
		changed = true
	}
	if identity.Picture != "" && user.PhotoURL != identity.Picture {
		user.PhotoURL = identity.Picture
		changed = true
	}
	if user.Role != approved.Role {
		user.Role = approved.Role
		changed = true
	}
	return changed
}

// ResolvePrincipal es el segundo tramo de la cadena de autorización: con
// la identidad ya probada por el token de sesión, re-chequea lista de
// aprobados, existencia y estado del usuario, y produce el Principal.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, uid, email string) (*Principal, error) {
	approved, err := uc.approvedRepo.GetActiveByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if approved == nil {
		return nil, domain.ErrEmailNotApproved
	}

	user, err := uc.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return &Principal{UID: user.UID, Email: user.Email, Role: user.Role, UserID: user.ID}, nil
}

// CurrentUser devuelve el usuario del principal (GET /auth/me).
func (uc *AuthUseCase) CurrentUser(ctx context.Context, p *Principal) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByUID(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.FromUser(user), nil
}
