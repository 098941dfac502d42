package repository

import (
	"context"

	"github.com/jhoicas/sigep-gc/internal/domain/entity"
)

// PedidoRepository puerto de persistencia para la tabla pedidos.
type PedidoRepository interface {
	ExistsByNumero(ctx context.Context, numero string) (bool, error)
	// Create inserta el pedido y completa ID y FechaCreacion.
	Create(ctx context.Context, p *entity.Pedido) error
	// Delete devuelve false si el pedido no existía.
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	// ListConEstatus devuelve el LEFT JOIN con pedido_estatus, más recientes primero.
	ListConEstatus(ctx context.Context) ([]entity.PedidoEstatusRow, error)
	// CompletedIDs devuelve los pedidos cuyas filas de estatus están todas completadas.
	CompletedIDs(ctx context.Context) ([]int64, error)
}

// EstatusRepository puerto de persistencia para pedido_estatus (estatus y comentarios por área).
type EstatusRepository interface {
	Create(ctx context.Context, e *entity.EstatusArea) error
	ListByPedido(ctx context.Context, pedidoID int64) ([]entity.EstatusArea, error)
	// UpdateEstatus devuelve false si no existe la fila (pedido, área).
	UpdateEstatus(ctx context.Context, pedidoID int64, area, estatus, comentarios string) (bool, error)
	DeleteByPedido(ctx context.Context, pedidoID int64) (int64, error)
	DeleteByPedidos(ctx context.Context, ids []int64) (int64, error)

	// GetComentario devuelve found=false si no existe la fila (pedido, área).
	GetComentario(ctx context.Context, pedidoID int64, area string) (comentario *string, found bool, err error)
	// ListComentarios solo devuelve comentarios no nulos y no vacíos.
	ListComentarios(ctx context.Context, pedidoID int64) ([]entity.Comentario, error)
	// SetComentario con nil deja el comentario en NULL. Devuelve false si no existe la fila.
	SetComentario(ctx context.Context, pedidoID int64, area string, comentario *string) (bool, error)
}
