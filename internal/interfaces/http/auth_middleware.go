package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/pkg/jwt"
)

// SessionCookieName nombre de la cookie de sesión.
const SessionCookieName = "token"

// SessionMaxAgeSeconds vida de la cookie: 30 días, igual que el token que transporta.
const SessionMaxAgeSeconds = 30 * 24 * 60 * 60

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// CookieAuth valida el token de sesión de la cookie y extrae UserID y Role a
// c.Locals. Variante API: responde 401 JSON, nunca redirige. Cada grupo de
// rutas protegido lo monta por su cuenta, independiente del gateway de páginas
// (defensa en profundidad: estas rutas son alcanzables como llamadas directas).
func CookieAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida"})
		}
		userID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de
// CookieAuth (necesita LocalRole). Token válido con rol insuficiente → 403;
// la falta de rol en el contexto → 401 (CookieAuth debería haberlo puesto).
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no encontrado en la sesión"})
		}
		for _, r := range allowed {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// newSessionCookie construye la cookie de sesión: HTTP-only, SameSite=Strict,
// Secure en producción, scope a toda la aplicación.
func newSessionCookie(token, appEnv string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   SessionMaxAgeSeconds,
		HTTPOnly: true,
		Secure:   appEnv == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// expiredSessionCookie cookie vacía con MaxAge negativo para cerrar la sesión.
func expiredSessionCookie(appEnv string) *fiber.Cookie {
	c := newSessionCookie("", appEnv)
	c.MaxAge = -1
	return c
}
