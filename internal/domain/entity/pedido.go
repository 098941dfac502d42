package entity

import "time"

// Areas (departamentos) que siguen cada pedido.
const (
	AreaVentas       = "ventas"
	AreaContabilidad = "contabilidad"
	AreaProduccion   = "produccion"
)

// Estatus posibles de un área sobre un pedido.
const (
	EstatusPendiente  = "pendiente"
	EstatusEnProceso  = "en proceso"
	EstatusCompletado = "completado"
)

// Pedido orden de compra con número único y fecha de entrega.
type Pedido struct {
	ID            int64
	NumeroPedido  string
	FechaEntrega  time.Time
	FechaCreacion time.Time
	CreadoPor     int64
}

// EstatusArea fila de pedido_estatus: estatus y comentario de un área para un pedido.
type EstatusArea struct {
	PedidoID    int64
	Area        string
	Estatus     string
	Comentarios *string
}

// PedidoEstatusRow fila del LEFT JOIN pedidos/pedido_estatus.
// Area es nil cuando el pedido no tiene filas de estatus.
type PedidoEstatusRow struct {
	Pedido      Pedido
	Area        *string
	Estatus     *string
	Comentarios *string
}

// Comentario comentario no vacío de un área.
type Comentario struct {
	Area        string
	Comentarios string
}
