package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

var _ repository.EstatusRepository = (*EstatusRepo)(nil)

// EstatusRepo implementación del puerto EstatusRepository sobre pedido_estatus.
type EstatusRepo struct {
	q Querier
}

// NewEstatusRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstatusRepository(q Querier) *EstatusRepo {
	return &EstatusRepo{q: q}
}

// Create inserta la fila (pedido, área).
func (r *EstatusRepo) Create(ctx context.Context, e *entity.EstatusArea) error {
	estatus := e.Estatus
	if estatus == "" {
		estatus = entity.EstatusPendiente
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO pedido_estatus (pedido_id, area, estatus, comentarios) VALUES ($1, $2, $3, $4)`,
		e.PedidoID, e.Area, estatus, e.Comentarios,
	)
	if err != nil {
		return fmt.Errorf("insert pedido_estatus: %w", err)
	}
	return nil
}

func (r *EstatusRepo) ListByPedido(ctx context.Context, pedidoID int64) ([]entity.EstatusArea, error) {
	rows, err := r.q.Query(ctx,
		`SELECT pedido_id, area, estatus, comentarios FROM pedido_estatus WHERE pedido_id = $1 ORDER BY area`,
		pedidoID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pedido_estatus: %w", err)
	}
	defer rows.Close()
	var list []entity.EstatusArea
	for rows.Next() {
		var e entity.EstatusArea
		if err := rows.Scan(&e.PedidoID, &e.Area, &e.Estatus, &e.Comentarios); err != nil {
			return nil, fmt.Errorf("scan pedido_estatus: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateEstatus false si no existe la fila (pedido, área).
func (r *EstatusRepo) UpdateEstatus(ctx context.Context, pedidoID int64, area, estatus, comentarios string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE pedido_estatus SET estatus = $1, comentarios = $2 WHERE pedido_id = $3 AND area = $4`,
		estatus, comentarios, pedidoID, area,
	)
	if err != nil {
		return false, fmt.Errorf("update estatus: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *EstatusRepo) DeleteByPedido(ctx context.Context, pedidoID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedido_estatus WHERE pedido_id = $1`, pedidoID)
	if err != nil {
		return 0, fmt.Errorf("delete pedido_estatus: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *EstatusRepo) DeleteByPedidos(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedido_estatus WHERE pedido_id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete pedido_estatus: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// GetComentario found=false si no existe la fila; comentario nil si está en NULL.
func (r *EstatusRepo) GetComentario(ctx context.Context, pedidoID int64, area string) (*string, bool, error) {
	var c *string
	err := r.q.QueryRow(ctx,
		`SELECT comentarios FROM pedido_estatus WHERE pedido_id = $1 AND area = $2`,
		pedidoID, area,
	).Scan(&c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get comentario: %w", err)
	}
	return c, true, nil
}

func (r *EstatusRepo) ListComentarios(ctx context.Context, pedidoID int64) ([]entity.Comentario, error) {
	rows, err := r.q.Query(ctx, `
		SELECT area, comentarios
		FROM pedido_estatus
		WHERE pedido_id = $1 AND comentarios IS NOT NULL AND comentarios <> ''
		ORDER BY area`,
		pedidoID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comentarios: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Comentario, error) {
		var c entity.Comentario
		err := row.Scan(&c.Area, &c.Comentarios)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan comentarios: %w", err)
	}
	return list, nil
}

// SetComentario con nil deja NULL. false si no existe la fila.
func (r *EstatusRepo) SetComentario(ctx context.Context, pedidoID int64, area string, comentario *string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE pedido_estatus SET comentarios = $1 WHERE pedido_id = $2 AND area = $3`,
		comentario, pedidoID, area,
	)
	if err != nil {
		return false, fmt.Errorf("set comentario: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
