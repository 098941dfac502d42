//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/application/pedidos"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	pedidoreglas "github.com/jhoicas/sigep-gc/internal/domain/pedido"
)

// startPostgres levanta postgres:16-alpine, aplica las migraciones y devuelve el pool.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "sigep",
				"POSTGRES_PASSWORD": "sigep",
				"POSTGRES_DB":       "sigep",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("docker no disponible: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://sigep:sigep@%s:%s/sigep?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, applied)

	again, err := Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again, "las migraciones se aplican una sola vez")
	return pool
}

func TestIntegration_PedidosPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	admin := &entity.User{Nombre: "Admin", Email: "admin@x.com", PasswordHash: "h", RoleID: entity.RoleAdmin, Departamento: "ventas"}
	require.NoError(t, users.Create(ctx, admin))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{Nombre: "B", Email: "admin@x.com", PasswordHash: "h", RoleID: 2, Departamento: "ventas"}), domain.ErrEmailAlreadyExists)

	uc := pedidos.NewUseCase(NewPedidoRepository(pool), NewEstatusRepository(pool), NewTxRunner(pool), nil, nil, time.UTC)

	out, err := uc.CreatePedido(ctx, dto.CreatePedidoRequest{NumeroPedido: "PO-100", FechaEntrega: "2025-06-30"}, admin.ID)
	require.NoError(t, err)
	id := out.PedidoID

	filas, err := NewEstatusRepository(pool).ListByPedido(ctx, id)
	require.NoError(t, err)
	require.Len(t, filas, 3)
	for _, f := range filas {
		assert.Equal(t, entity.EstatusPendiente, f.Estatus)
	}

	_, err = uc.CreatePedido(ctx, dto.CreatePedidoRequest{NumeroPedido: "PO-100", FechaEntrega: "2025-07-01"}, admin.ID)
	assert.ErrorIs(t, err, domain.ErrPedidoDuplicado)

	// estatus inválido no toca la fila
	_, err = uc.UpdateEstatus(ctx, id, dto.UpdateEstatusRequest{Area: "ventas", Estatus: "cancelado"})
	assert.ErrorIs(t, err, domain.ErrEstatusInvalido)

	for _, a := range []string{"Ventas", "contabilidad"} {
		_, err := uc.UpdateEstatus(ctx, id, dto.UpdateEstatusRequest{Area: a, Estatus: "completado"})
		require.NoError(t, err)
	}
	inc, err := uc.ListPedidos(ctx, pedidoreglas.FiltroIncompletos)
	require.NoError(t, err)
	require.Len(t, inc, 1)
	assert.Equal(t, "2025-06-30", inc[0].FechaEntrega)
	assert.Equal(t, "completado", inc[0].Estatus.Ventas.Estado)

	require.NoError(t, uc.SetComentario(ctx, id, "produccion", strPtr("  sin vidrio ")))
	c, err := uc.GetComentario(ctx, id, "PRODUCCION")
	require.NoError(t, err)
	assert.Equal(t, "sin vidrio", *c.Comentarios)
	require.NoError(t, uc.ClearComentario(ctx, id, "produccion"))
	c, err = uc.GetComentario(ctx, id, "produccion")
	require.NoError(t, err)
	assert.Nil(t, c.Comentarios)

	n, err := uc.DeleteCompletados(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = uc.UpdateEstatus(ctx, id, dto.UpdateEstatusRequest{Area: "produccion", Estatus: "completado"})
	require.NoError(t, err)
	n, err = uc.DeleteCompletados(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = uc.DeleteCompletados(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, uc.DeletePedido(ctx, id), domain.ErrPedidoNotFound)
}

func TestIntegration_ResetPassword(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := &entity.User{Nombre: "Ana", Email: "ana@x.com", PasswordHash: "viejo", RoleID: 2, Departamento: "produccion"}
	require.NoError(t, repo.Create(ctx, u))

	now := time.Now().UTC()
	require.NoError(t, repo.SetResetToken(ctx, u.ID, "tok", now.Add(15*time.Minute)))

	ok, err := repo.ResetPassword(ctx, "tok", "nuevo", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ResetPassword(ctx, "tok", "otro", now)
	require.NoError(t, err)
	assert.False(t, ok, "el token es de un solo uso")

	got, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got.PasswordHash)
	assert.Nil(t, got.ResetToken)
}

func strPtr(s string) *string { return &s }
