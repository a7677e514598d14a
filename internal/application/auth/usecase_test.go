package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// fakeClientRepo repositorio en memoria para las pruebas de auth.
type fakeClientRepo struct {
	byEmail map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byEmail: map[string]*entity.Client{}}
}

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	f.byEmail[c.Email] = c
	return nil
}
func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range f.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*entity.Client, error) {
	return f.byEmail[email], nil
}
func (f *fakeClientRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Client, error) {
	return nil, nil
}
func (f *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	f.byEmail[c.Email] = c
	return nil
}
func (f *fakeClientRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, c := range f.byEmail {
		if c.ID == id {
			c.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}
func (f *fakeClientRepo) Delete(_ context.Context, _ string) error             { return nil }
func (f *fakeClientRepo) AddPet(_ context.Context, _ *entity.PetDetails) error { return nil }
func (f *fakeClientRepo) ListPets(_ context.Context, _ string) ([]*entity.PetDetails, error) {
	return nil, nil
}
func (f *fakeClientRepo) DeletePet(_ context.Context, _ string) error { return nil }

type fakeNotifier struct{ pending []string }

func (f *fakeNotifier) NotifyAccountPending(_ context.Context, name string) {
	f.pending = append(f.pending, name)
}

func testJWTConfig() JWTConfig {
	return JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "mdcpro-test"}
}

func TestRegister_CuentaQuedaPendiente(t *testing.T) {
	repo := newFakeClientRepo()
	notifier := &fakeNotifier{}
	uc := NewAuthUseCase(repo, notifier, testJWTConfig())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana Distribuciones",
		Email:    "ana@tienda.example",
		Password: "super-secreta",
		Role:     entity.RoleDistributor,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ClientStatusPending, resp.Status)
	assert.Equal(t, entity.RoleDistributor, resp.Role)
	assert.Equal(t, []string{"Ana Distribuciones"}, notifier.pending)

	// la contraseña se guarda solo como hash bcrypt
	stored := repo.byEmail["ana@tienda.example"]
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "super-secreta")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("super-secreta")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewAuthUseCase(repo, nil, testJWTConfig())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Uno", Email: "dup@x.example", Password: "12345678",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Dos", Email: "dup@x.example", Password: "12345678",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CuentaPendienteNoEntra(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewAuthUseCase(repo, nil, testJWTConfig())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Pepe", Email: "pepe@x.example", Password: "12345678",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "pepe@x.example", Password: "12345678",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotApproved)
}

func TestLogin_AprobadaDevuelveToken(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewAuthUseCase(repo, nil, testJWTConfig())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Lola", Email: "lola@x.example", Password: "12345678",
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), resp.ID, entity.ClientStatusApproved))

	login, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "lola@x.example", Password: "12345678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "lola@x.example", login.Client.Email)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeClientRepo()
	uc := NewAuthUseCase(repo, nil, testJWTConfig())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Mar", Email: "mar@x.example", Password: "12345678",
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), resp.ID, entity.ClientStatusApproved))

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "mar@x.example", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@x.example", Password: "12345678",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
