package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. Los callers tratan a los tres igual (denegar /
// redirigir a login); se distinguen solo para logging.
var (
	ErrExpired      = errors.New("jwt: token expirado")
	ErrBadSignature = errors.New("jwt: firma inválida")
	ErrMalformed    = errors.New("jwt: token malformado")
)

// Claims incluye los claims estándar JWT más el rol de la aplicación.
// Se añade Role para que los middlewares puedan decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "employee" | "dispatcher" | "admin"
}

// roles aceptados en un token. Un rol desconocido invalida el token en Parse,
// no se deja pasar silenciosamente.
var validRoles = map[string]bool{
	"employee":   true,
	"dispatcher": true,
	"admin":      true,
}

// Generate genera un token de sesión firmado (HS256) con userID como subject y el rol.
// expDays es la ventana de validez en días (30 en la configuración por defecto).
func Generate(secret, userID, role, issuer string, expDays int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expDays) * 24 * time.Hour)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve userID (subject) y rol.
// Retorna ErrExpired, ErrBadSignature o ErrMalformed según el fallo; un rol
// desconocido en los claims también invalida el token.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", "", fmt.Errorf("%w: %v", ErrExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", "", fmt.Errorf("%w: %v", ErrBadSignature, err)
		default:
			return "", "", fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", ErrMalformed
	}
	if claims.Subject == "" || !validRoles[claims.Role] {
		return "", "", fmt.Errorf("%w: subject o rol inválido", ErrMalformed)
	}
	return claims.Subject, claims.Role, nil
}
