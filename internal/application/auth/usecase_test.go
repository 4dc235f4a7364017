package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-backoffice/internal/application/auth"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	pkgjwt "github.com/jhoicas/pos-backoffice/pkg/jwt"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error { return nil }

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "pos-backoffice-test"
)

func testJWTConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: testIssuer}
}

func adminUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return &entity.User{
		ID:           "30000000-0000-0000-0000-000000000001",
		Email:        "admin@tienda.co",
		PasswordHash: string(hash),
		Name:         "Admin",
		Role:         entity.RoleAdmin,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

// Login exitoso: el token lleva el user ID y el rol, y la respuesta nunca
// expone el hash.
func TestLogin_Exitoso(t *testing.T) {
	user := adminUser(t, "secreta123")
	uc := auth.NewAuthUseCase(newMemUserRepo(user), testJWTConfig())

	out, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.co", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID, "el ledger usa este ID verbatim como created_by")
	assert.Equal(t, entity.RoleAdmin, role)
}

// Password incorrecta → no autorizado.
func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(adminUser(t, "secreta123")), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email desconocido → usuario no encontrado (el handler lo colapsa en 401).
func TestLogin_EmailDesconocido(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Usuario inactivo no puede iniciar sesión aunque la password sea correcta.
func TestLogin_UsuarioInactivo(t *testing.T) {
	user := adminUser(t, "secreta123")
	user.Status = entity.StatusInactive
	uc := auth.NewAuthUseCase(newMemUserRepo(user), testJWTConfig())

	_, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Register hashea la password y asigna rol STAFF por defecto.
func TestRegister_DefaultStaff(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWTConfig())

	out, err := uc.Register(dto.RegisterRequest{
		Email:    "staff@tienda.co",
		Password: "clave-larga-8",
		Name:     "Vendedora",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, out.Role)
	assert.Equal(t, entity.StatusActive, out.Status)

	stored, _ := repo.GetByID(out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-larga-8", stored.PasswordHash, "la password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-larga-8")))
}

// Email repetido → conflicto.
func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(adminUser(t, "x")), testJWTConfig())

	_, err := uc.Register(dto.RegisterRequest{
		Email:    "admin@tienda.co",
		Password: "clave-larga-8",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
