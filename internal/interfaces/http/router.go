package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/sigep-gc/internal/application/auth"
	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	PedidosUC PedidosService
	JWTSecret string
	Cookie    CookieOptions
	RateLimit int // peticiones por minuto e IP en login y forgot-password; 0 = sin límite
	Log       *logger.Logger
}

// authLimiter limita por IP los endpoints que aceptan credenciales o disparan correos.
func authLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos, intente más tarde",
			})
		},
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.Cookie.Name)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authLimiter(deps.RateLimit), authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/forgot-password", authLimiter(deps.RateLimit), authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Pedidos (protegido). Las rutas fijas van antes de /:id.
	pedidosGroup := api.Group("/pedidos", requireAuth)
	pedidoHandler := NewPedidoHandler(deps.PedidosUC, log)
	pedidosGroup.Get("/", pedidoHandler.List)
	pedidosGroup.Get("/reporte", pedidoHandler.Reporte)
	pedidosGroup.Post("/", adminOnly, pedidoHandler.Create)
	pedidosGroup.Put("/estatus/:id", pedidoHandler.UpdateEstatus)
	pedidosGroup.Delete("/completados", adminOnly, pedidoHandler.DeleteCompletados)

	// Comentarios por área
	comentarioHandler := NewComentarioHandler(deps.PedidosUC, log)
	pedidosGroup.Get("/comentario/:pedidoId/:area", comentarioHandler.Get)
	pedidosGroup.Put("/comentario/:pedidoId/:area", comentarioHandler.Set)
	pedidosGroup.Delete("/comentario/:pedidoId/:area", comentarioHandler.Clear)
	pedidosGroup.Get("/comentario/:pedidoId", comentarioHandler.List)
	pedidosGroup.Get("/comentarios/:pedidoId", comentarioHandler.List)

	pedidosGroup.Delete("/:id", adminOnly, pedidoHandler.Delete)
}
