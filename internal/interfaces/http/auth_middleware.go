package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/pkg/jwt"
)

// Locals keys con la identidad del token en Fiber.
const (
	LocalUserID       = "user_id"
	LocalRoleID       = "role_id"
	LocalDepartamento = "departamento"
	LocalNombre       = "nombre"
)

// AuthMiddleware toma el token de la cookie cookieName o, si no hay, del header
// Authorization: Bearer. Sin token responde 401; token inválido o expirado, 403.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(cookieName)
		if tokenString == "" {
			tokenString = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRoleID, id.RoleID)
		c.Locals(LocalDepartamento, id.Departamento)
		c.Locals(LocalNombre, id.Nombre)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole permite el paso solo a los role_id indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRoleID(c)
		if role == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo administradores pueden realizar esta acción"})
	}
}

// GetUserID devuelve el id del usuario autenticado (0 fuera de rutas protegidas).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

func GetRoleID(c *fiber.Ctx) int {
	v, _ := c.Locals(LocalRoleID).(int)
	return v
}

func GetDepartamento(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalDepartamento).(string)
	return v
}
