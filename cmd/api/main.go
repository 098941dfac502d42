// @title        SIGEP GC API
// @version      1.0
// @description  Seguimiento de pedidos por departamento (ventas, contabilidad, producción).
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/sigep-gc/docs"
	"github.com/jhoicas/sigep-gc/internal/application/auth"
	"github.com/jhoicas/sigep-gc/internal/application/pedidos"
	"github.com/jhoicas/sigep-gc/internal/infrastructure/email"
	"github.com/jhoicas/sigep-gc/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/sigep-gc/internal/infrastructure/pdf"
	"github.com/jhoicas/sigep-gc/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sigep-gc/internal/interfaces/http"
	"github.com/jhoicas/sigep-gc/pkg/config"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria desconocida, se usa UTC")
		loc = time.UTC
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Ints("versiones", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	estatusRepo := postgres.NewEstatusRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(loc)
	mailer := email.New(cfg.Mail, log.Component("email"))

	pedidosUC := pedidos.NewUseCase(pedidoRepo, estatusRepo, txRunner, pdfGenerator, appMetrics, loc)
	authUC := auth.NewAuthUseCase(userRepo, mailer,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.ResetConfig{
			FrontendURL: cfg.Reset.FrontendURL,
			TTL:         time.Duration(cfg.Reset.TTLMinutes) * time.Minute,
		},
	)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
		// detrás del proxy de Render/Railway la IP real viene en X-Forwarded-For
		ProxyHeader: fiber.HeaderXForwardedFor,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(httpLog, appMetrics))
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(httpRouter.CORS(cfg.CORS.Origins, cfg.App.IsProduction()))

	// Swagger UI en http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SIGEP GC API",
		}))
	}

	health := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	}
	app.Get("/", health)
	app.Get("/health", health)
	app.Get("/healthz", health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		PedidosUC: pedidosUC,
		JWTSecret: cfg.JWT.Secret,
		Cookie: httpRouter.CookieOptions{
			Name:   cfg.Cookie.Name,
			Secure: cfg.App.IsProduction(),
		},
		RateLimit: cfg.HTTP.RateLimit,
		Log:       httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
