package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/pkg/jwt"
)

// gatewayAllowlist prefijos de ruta que no requieren sesión (login, assets, salud, docs).
var gatewayAllowlist = []string{
	"/login",
	"/api/auth/login",
	"/static",
	"/favicon.ico",
	"/health",
	"/docs",
}

// dashboardAreas áreas de dashboard con scope por rol.
var dashboardAreas = []string{entity.RoleEmployee, entity.RoleDispatcher, entity.RoleAdmin}

// Gateway intercepta las peticiones de página antes de cualquier handler:
//   - rutas del allowlist pasan sin chequeo;
//   - sin token o token inválido → redirect a /login (en esta capa el fallo
//     siempre es redirect, nunca 401; los handlers de API emiten sus propios
//     códigos);
//   - un rol que pide el área de otro rol se corrige con redirect a su propia
//     área, no se bloquea;
//   - la raíz y /dashboard redirigen al área del rol de la sesión.
func Gateway(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, p := range gatewayAllowlist {
			if strings.HasPrefix(path, p) {
				return c.Next()
			}
		}

		token := c.Cookies(SessionCookieName)
		if token == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		userID, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Redirect("/login", fiber.StatusFound)
		}

		ownArea := "/dashboard/" + role
		for _, area := range dashboardAreas {
			if strings.HasPrefix(path, "/dashboard/"+area) && role != area {
				return c.Redirect(ownArea, fiber.StatusFound)
			}
		}
		if path == "/" || path == "/dashboard" {
			return c.Redirect(ownArea, fiber.StatusFound)
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}
