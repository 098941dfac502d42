package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// OriginAllowed decide si un Origin está en la lista. Lista vacía fuera de
// producción o "*" en la lista permiten cualquier origen. Las barras finales se ignoran.
func OriginAllowed(origins []string, production bool) func(origin string) bool {
	permitidos := make(map[string]bool, len(origins))
	todos := len(origins) == 0 && !production
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			todos = true
		}
		permitidos[o] = true
	}
	return func(origin string) bool {
		if todos {
			return true
		}
		return permitidos[strings.TrimRight(origin, "/")]
	}
}

// CORS con credenciales: la cookie de sesión viaja en peticiones cross-site.
func CORS(origins []string, production bool) fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: OriginAllowed(origins, production),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
