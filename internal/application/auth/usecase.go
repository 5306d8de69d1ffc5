package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
	"github.com/tu-usuario/office-orders/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// AuthUseCase caso de uso de autenticación: login contra hashes bcrypt.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password y genera el token de sesión.
// Email desconocido y password incorrecto devuelven ambos ErrUnauthorized:
// no se revela cuál de las dos mitades falló.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
	if err != nil {
		return nil, "", err
	}
	return ToUserResponse(user), token, nil
}

// Me devuelve el resumen del usuario de la sesión actual.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad a su resumen público (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}
