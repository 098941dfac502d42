package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre la tabla pedidos.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// ExistsByNumero indica si ya hay un pedido con ese número.
func (r *PedidoRepo) ExistsByNumero(ctx context.Context, numero string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pedidos WHERE numero_pedido = $1)`, numero).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists pedido: %w", err)
	}
	return exists, nil
}

// Create inserta el pedido y completa ID y FechaCreacion.
// Una violación de unicidad concurrente se traduce a ErrPedidoDuplicado.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (numero_pedido, fecha_entrega, creado_por)
		VALUES ($1, $2, $3)
		RETURNING id, fecha_creacion`
	var creadoPor *int64
	if p.CreadoPor != 0 {
		creadoPor = &p.CreadoPor
	}
	err := r.q.QueryRow(ctx, query, p.NumeroPedido, p.FechaEntrega, creadoPor).Scan(&p.ID, &p.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPedidoDuplicado
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// Delete elimina el pedido. false si no existía.
func (r *PedidoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete pedido: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteMany elimina los pedidos indicados y devuelve cuántos borró.
func (r *PedidoRepo) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete pedidos: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListConEstatus una fila por (pedido, área); un pedido sin filas de estatus aparece una vez con área NULL.
func (r *PedidoRepo) ListConEstatus(ctx context.Context) ([]entity.PedidoEstatusRow, error) {
	query := `
		SELECT p.id, p.numero_pedido, p.fecha_entrega, p.fecha_creacion, COALESCE(p.creado_por, 0),
		       e.area, e.estatus, e.comentarios
		FROM pedidos p
		LEFT JOIN pedido_estatus e ON e.pedido_id = p.id
		ORDER BY p.fecha_creacion DESC, p.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var list []entity.PedidoEstatusRow
	for rows.Next() {
		var row entity.PedidoEstatusRow
		if err := rows.Scan(
			&row.Pedido.ID, &row.Pedido.NumeroPedido, &row.Pedido.FechaEntrega, &row.Pedido.FechaCreacion, &row.Pedido.CreadoPor,
			&row.Area, &row.Estatus, &row.Comentarios,
		); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CompletedIDs pedidos con al menos una fila de estatus y todas en completado.
func (r *PedidoRepo) CompletedIDs(ctx context.Context) ([]int64, error) {
	query := `
		SELECT p.id
		FROM pedidos p
		JOIN pedido_estatus e ON e.pedido_id = p.id
		GROUP BY p.id
		HAVING COUNT(*) = SUM((e.estatus = 'completado')::int)`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("completed ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan completed ids: %w", err)
	}
	return ids, nil
}
