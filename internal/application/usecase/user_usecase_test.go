package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func TestUserCreate_HashYCreatedBy(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUserUseCase(repo)

	out, err := uc.Create("admin-1", dto.CreateUserRequest{
		Name:       "Laura Gómez",
		Email:      "laura@empresa.com",
		Password:   "secreta123",
		Role:       entity.RoleEmployee,
		Department: "Contabilidad",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, out.Role)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "admin-1", stored.CreatedBy)
	// El password nunca se guarda en claro
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestUserCreate_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: "u-1", Email: "laura@empresa.com", Role: entity.RoleEmployee})
	uc := NewUserUseCase(repo)

	_, err := uc.Create("admin-1", dto.CreateUserRequest{
		Name:     "Otra Laura",
		Email:    "laura@empresa.com",
		Password: "x",
		Role:     entity.RoleEmployee,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create("admin-1", dto.CreateUserRequest{
		Name:     "Laura",
		Email:    "laura@empresa.com",
		Password: "x",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserCreate_CamposRequeridos(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo())

	cases := []dto.CreateUserRequest{
		{Email: "a@b.com", Password: "x", Role: entity.RoleEmployee},
		{Name: "Laura", Password: "x", Role: entity.RoleEmployee},
		{Name: "Laura", Email: "a@b.com", Role: entity.RoleEmployee},
		{Name: "Laura", Email: "a@b.com", Password: "x"},
	}
	for _, in := range cases {
		_, err := uc.Create("admin-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUserDelete_NuncaLaPropiaCuenta(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: "admin-1", Email: "admin@empresa.com", Role: entity.RoleAdmin})
	uc := NewUserUseCase(repo)

	err := uc.Delete("admin-1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrSelfDelete)

	// La cuenta sigue existiendo
	_, ok := repo.users["admin-1"]
	assert.True(t, ok)
}

func TestUserDelete_OtraCuenta(t *testing.T) {
	repo := newFakeUserRepo(
		&entity.User{ID: "admin-1", Role: entity.RoleAdmin},
		&entity.User{ID: "u-2", Role: entity.RoleEmployee},
	)
	uc := NewUserUseCase(repo)

	require.NoError(t, uc.Delete("admin-1", "u-2"))
	_, ok := repo.users["u-2"]
	assert.False(t, ok)
}

func TestUserDelete_Inexistente(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(&entity.User{ID: "admin-1"}))

	err := uc.Delete("admin-1", "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
