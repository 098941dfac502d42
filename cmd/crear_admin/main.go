// crear_admin registra un usuario administrador (role_id 1) con la misma
// configuración que la API.
//
// Uso: go run ./cmd/crear_admin -nombre "Admin" -email admin@sigepgc.com -password secreto [-departamento produccion] [-migrar]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/sigep-gc/internal/application/auth"
	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/infrastructure/email"
	"github.com/jhoicas/sigep-gc/internal/infrastructure/postgres"
	"github.com/jhoicas/sigep-gc/pkg/config"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

func main() {
	nombre := flag.String("nombre", "Administrador", "nombre del administrador")
	correo := flag.String("email", "", "correo del administrador (obligatorio)")
	password := flag.String("password", "", "contraseña (obligatoria)")
	departamento := flag.String("departamento", entity.AreaProduccion, "contabilidad | ventas | produccion")
	migrar := flag.Bool("migrar", false, "aplicar migraciones antes de crear el usuario")
	flag.Parse()

	if *correo == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "-email y -password son obligatorios")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "crear_admin"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *migrar || cfg.DB.AutoMigrate {
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
			os.Exit(1)
		}
	}

	// El JWT de la respuesta no se usa; basta con un secreto no vacío.
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = "crear-admin"
	}
	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), email.NewLogSender(log),
		auth.JWTConfig{Secret: secret, ExpMinutes: 1, Issuer: cfg.JWT.Issuer},
		auth.ResetConfig{FrontendURL: cfg.Reset.FrontendURL},
	)
	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Nombre:       *nombre,
		Email:        *correo,
		Password:     *password,
		RoleID:       entity.RoleAdmin,
		Departamento: *departamento,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: id=%d email=%s departamento=%s\n", out.User.ID, out.User.Email, out.User.Departamento)
}
