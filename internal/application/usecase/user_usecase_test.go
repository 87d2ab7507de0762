package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/coolbreeze-api/internal/application/dto"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
	"github.com/jhoicas/coolbreeze-api/internal/domain"
	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byUID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.byUID[u.UID] = u
	return nil
}

func (f *fakeUserRepo) CreateIfAbsent(_ context.Context, u *entity.User) error {
	if _, ok := f.byUID[u.UID]; !ok {
		f.byUID[u.UID] = u
	}
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byUID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUID(_ context.Context, uid string) (*entity.User, error) {
	return f.byUID[uid], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byUID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.byUID[u.UID] = u
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.byUID))
	for _, u := range f.byUID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListActiveRiders(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byUID {
		if u.Role == entity.RoleRider && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetActiveRiderByUID(_ context.Context, uid string) (*entity.User, error) {
	u := f.byUID[uid]
	if u == nil || u.Role != entity.RoleRider || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

type fakeApprovedRepo struct {
	byEmail map[string]*entity.ApprovedEmail
}

func newFakeApprovedRepo() *fakeApprovedRepo {
	return &fakeApprovedRepo{byEmail: map[string]*entity.ApprovedEmail{}}
}

func (f *fakeApprovedRepo) Create(_ context.Context, a *entity.ApprovedEmail) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return domain.ErrDuplicate
	}
	f.byEmail[a.Email] = a
	return nil
}

func (f *fakeApprovedRepo) GetByEmail(_ context.Context, email string) (*entity.ApprovedEmail, error) {
	return f.byEmail[email], nil
}

func (f *fakeApprovedRepo) GetActiveByEmail(_ context.Context, email string) (*entity.ApprovedEmail, error) {
	a := f.byEmail[email]
	if a == nil || !a.IsActive {
		return nil, nil
	}
	return a, nil
}

func (f *fakeApprovedRepo) List(_ context.Context) ([]*entity.ApprovedEmail, error) {
	out := make([]*entity.ApprovedEmail, 0, len(f.byEmail))
	for _, a := range f.byEmail {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApprovedRepo) Delete(_ context.Context, id string) (bool, error) {
	for email, a := range f.byEmail {
		if a.ID == id {
			delete(f.byEmail, email)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApprovedRepo) SetRoleByEmail(_ context.Context, email string, role entity.Role) error {
	if a := f.byEmail[email]; a != nil {
		a.Role = role
	}
	return nil
}

func (f *fakeApprovedRepo) SetActiveByEmail(_ context.Context, email string, active bool) error {
	if a := f.byEmail[email]; a != nil {
		a.IsActive = active
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newUserUseCase() (*usecase.UserUseCase, *fakeUserRepo, *fakeApprovedRepo) {
	users := newFakeUserRepo()
	approved := newFakeApprovedRepo()
	return usecase.NewUserUseCase(users, approved), users, approved
}

func seedUser(users *fakeUserRepo, approved *fakeApprovedRepo, id, uid, email string, role entity.Role) *entity.User {
	now := time.Now()
	u := &entity.User{
		ID: id, UID: uid, Email: email, DisplayName: "Test User",
		Role: role, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	users.byUID[uid] = u
	approved.byEmail[email] = &entity.ApprovedEmail{
		ID: "ae-" + id, Email: email, Role: role, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	return u
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Perfiles
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProfile_SoloCamposPermitidos(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)

	out, err := uc.UpdateProfile(context.Background(), "uid-1", dto.UpdateProfileRequest{
		DisplayName: strPtr("Ana María"),
		Phone:       strPtr("+57 300 000 0000"),
		Address:     &entity.Address{Street: "Cra 7 # 1-23", City: "Bogotá", Country: "CO"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana María", out.DisplayName)
	assert.Equal(t, "+57 300 000 0000", out.Phone)
	assert.Equal(t, "Bogotá", out.Address.City)
	assert.Equal(t, "ana@example.com", out.Email, "el email no cambia por esta vía")
	assert.Equal(t, "customer", out.Role, "el rol no cambia por esta vía")
}

func TestUpdateProfile_PatchParcial(t *testing.T) {
	uc, users, approved := newUserUseCase()
	u := seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)
	u.Phone = "+57 111"

	out, err := uc.UpdateProfile(context.Background(), "uid-1", dto.UpdateProfileRequest{
		DisplayName: strPtr("Ana"),
	})
	require.NoError(t, err)
	assert.Equal(t, "+57 111", out.Phone, "los campos no enviados se conservan")
}

func TestGetProfile_NoExiste(t *testing.T) {
	uc, _, _ := newUserUseCase()

	_, err := uc.GetProfile(context.Background(), "uid-nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRiderProfile_AcotadoARolRider(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-cliente", "ana@example.com", entity.RoleCustomer)
	seedUser(users, approved, "u2", "uid-rider", "rider@example.com", entity.RoleRider)

	_, err := uc.GetRiderProfile(context.Background(), "uid-cliente")
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "no-rider en ruta de rider es 404")

	out, err := uc.GetRiderProfile(context.Background(), "uid-rider")
	require.NoError(t, err)
	assert.Equal(t, "rider", out.Role)

	_, err = uc.UpdateRiderProfile(context.Background(), "uid-cliente", dto.UpdateProfileRequest{
		DisplayName: strPtr("X"),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Administración
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateRole_SincronizaListaAprobados(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)

	out, err := uc.UpdateRole(context.Background(), "u1", dto.UpdateRoleRequest{Role: "rider"})
	require.NoError(t, err)

	assert.Equal(t, "rider", out.Role)
	assert.Equal(t, entity.RoleRider, approved.byEmail["ana@example.com"].Role,
		"la lista de aprobados queda en espejo; el próximo login no revierte el rol")
}

func TestUpdateRole_RolInvalido(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)

	_, err := uc.UpdateRole(context.Background(), "u1", dto.UpdateRoleRequest{Role: "superadmin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRole_UsuarioNoExiste(t *testing.T) {
	uc, _, _ := newUserUseCase()

	_, err := uc.UpdateRole(context.Background(), "nope", dto.UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestToggleStatus_InvierteYSincroniza(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)
	ctx := context.Background()

	out, err := uc.ToggleStatus(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, out.User.IsActive)
	assert.Equal(t, "User deactivated successfully", out.Message)
	assert.False(t, approved.byEmail["ana@example.com"].IsActive)

	out, err = uc.ToggleStatus(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, out.User.IsActive)
	assert.Equal(t, "User activated successfully", out.Message)
	assert.True(t, approved.byEmail["ana@example.com"].IsActive)
}

func TestListRiders_SoloActivosConRolRider(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)
	seedUser(users, approved, "u2", "uid-2", "rider@example.com", entity.RoleRider)
	inactive := seedUser(users, approved, "u3", "uid-3", "ex-rider@example.com", entity.RoleRider)
	inactive.IsActive = false

	riders, err := uc.ListRiders(context.Background())
	require.NoError(t, err)
	require.Len(t, riders, 1)
	assert.Equal(t, "rider@example.com", riders[0].Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista de emails aprobados
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateApprovedEmail_NormalizaYRechazaDuplicados(t *testing.T) {
	uc, _, approved := newUserUseCase()
	ctx := context.Background()

	out, err := uc.CreateApprovedEmail(ctx, dto.CreateApprovedEmailRequest{
		Email: "  Nueva@Example.COM ", Role: "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, "nueva@example.com", out.ApprovedEmail.Email)
	assert.True(t, out.ApprovedEmail.IsActive)
	assert.NotNil(t, approved.byEmail["nueva@example.com"])

	_, err = uc.CreateApprovedEmail(ctx, dto.CreateApprovedEmailRequest{
		Email: "nueva@example.com", Role: "customer",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateApprovedEmail_RolInvalido(t *testing.T) {
	uc, _, _ := newUserUseCase()

	_, err := uc.CreateApprovedEmail(context.Background(), dto.CreateApprovedEmailRequest{
		Email: "x@example.com", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteApprovedEmail(t *testing.T) {
	uc, users, approved := newUserUseCase()
	seedUser(users, approved, "u1", "uid-1", "ana@example.com", entity.RoleCustomer)
	ctx := context.Background()

	err := uc.DeleteApprovedEmail(ctx, "ae-u1")
	require.NoError(t, err)
	assert.Nil(t, approved.byEmail["ana@example.com"])

	err = uc.DeleteApprovedEmail(ctx, "ae-u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
