package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clinivet-api/internal/application/auth"
	"github.com/jhoicas/Clinivet-api/internal/application/dto"
	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Clinivet-api/pkg/jwt"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

// memUserRepo repositorio de usuarios en memoria, indexado por email.
type memUserRepo struct {
	users       map[string]*entity.User
	createErr   error // si no es nil, Create siempre falla con este error
	createCalls int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func newTestAuth(repo *memUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "clinivet-test",
	}, retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond})
}

func TestRegisterUser_CreaConHashYDefaults(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "ana@clinivet.com",
		Password: "super-secreta",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@clinivet.com", out.Email)
	assert.Equal(t, "ana@clinivet.com", out.Name, "sin nombre, usa el email")
	assert.Equal(t, entity.RoleRecepcion, out.Role, "rol por defecto")
	assert.True(t, out.IsActive)

	stored := repo.users["ana@clinivet.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "super-secreta", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@clinivet.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@clinivet.com", Password: "otra-clave"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_DuplicadoEnvueltoNoReintenta(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)

	// El repo real envuelve la violación de unicidad; la detección debe
	// atravesar el wrap y cortar los reintentos.
	repo.createErr = fmt.Errorf("insert usuarios: %w", domain.ErrDuplicate)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    "nuevo@clinivet.com",
		Password: "super-secreta",
	})

	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, repo.createCalls, "un error de negocio no se reintenta")
}

func TestLogin_TokenValido(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    "vet@clinivet.com",
		Password: "super-secreta",
		Name:     "Dra. Souza",
		Role:     entity.RoleVeterinario,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "vet@clinivet.com", Password: "super-secreta"})

	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	userID, role, err := pkgjwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleVeterinario, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@clinivet.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@clinivet.com", Password: "equivocada"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newTestAuth(newMemUserRepo())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@clinivet.com", Password: "x"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newMemUserRepo()
	uc := newTestAuth(repo)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@clinivet.com", Password: "super-secreta"})
	require.NoError(t, err)
	repo.users["ana@clinivet.com"].IsActive = false

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@clinivet.com", Password: "super-secreta"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
