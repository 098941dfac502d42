package dto

// CreatePedidoRequest entrada para crear un pedido (solo admin).
type CreatePedidoRequest struct {
	NumeroPedido string `json:"numero_pedido" validate:"required,max=50"`
	FechaEntrega string `json:"fecha_entrega" validate:"required,datetime=2006-01-02"`
}

// CreatePedidoResponse salida de la creación.
type CreatePedidoResponse struct {
	Message  string `json:"message"`
	PedidoID int64  `json:"pedidoId"`
}

// UpdateEstatusRequest cambio de estatus de un área. Comentarios ausente se guarda vacío.
type UpdateEstatusRequest struct {
	Area        string  `json:"area"`
	Estatus     string  `json:"estatus"`
	Comentarios *string `json:"comentarios"`
}

// EstadoAreaResponse estado de un área en el listado.
type EstadoAreaResponse struct {
	Estado      string `json:"estado"`
	Comentarios string `json:"comentarios"`
}

// EstatusPorArea las tres áreas siempre presentes.
type EstatusPorArea struct {
	Ventas       EstadoAreaResponse `json:"ventas"`
	Contabilidad EstadoAreaResponse `json:"contabilidad"`
	Produccion   EstadoAreaResponse `json:"produccion"`
}

// PedidoResponse resumen de un pedido. El estado completado derivado no se expone.
type PedidoResponse struct {
	ID            int64          `json:"id"`
	NumeroPedido  string         `json:"numero_pedido"`
	FechaEntrega  string         `json:"fecha_entrega"`
	FechaCreacion string         `json:"fecha_creacion"`
	Estatus       EstatusPorArea `json:"estatus"`
}

// ComentarioRequest PUT del comentario de un área. Cadena vacía es válida; ausente no.
type ComentarioRequest struct {
	Comentario *string `json:"comentario"`
}

// ComentarioResponse comentario de un área (null si fue eliminado).
type ComentarioResponse struct {
	Comentarios *string `json:"comentarios"`
}

// ComentarioAreaResponse comentario visible de un área.
type ComentarioAreaResponse struct {
	Area        string `json:"area"`
	Comentarios string `json:"comentarios"`
}
