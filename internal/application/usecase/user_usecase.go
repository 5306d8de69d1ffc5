package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/office-orders/internal/application/auth"
	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

// UserUseCase gestión de identidades (solo admin): crear, listar, eliminar.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario con el password hasheado (bcrypt).
// createdBy es el ID del admin autenticado que lo crea.
func (uc *UserUseCase) Create(createdBy string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Department:   in.Department,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista todos los usuarios (sin hashes), del más reciente al más antiguo.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	users, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario. Un actor nunca puede eliminar su propia cuenta,
// independientemente del chequeo de rol admin.
func (uc *UserUseCase) Delete(callerID, userID string) error {
	if userID == callerID {
		return domain.ErrSelfDelete
	}
	deleted, err := uc.repo.Delete(userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	return nil
}
