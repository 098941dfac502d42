package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/application/pedidos"
	"github.com/jhoicas/sigep-gc/internal/domain/pedido"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

// PedidosService lo que los handlers de pedidos y comentarios usan del motor de pedidos.
type PedidosService interface {
	CreatePedido(ctx context.Context, in dto.CreatePedidoRequest, creadoPor int64) (*dto.CreatePedidoResponse, error)
	ListPedidos(ctx context.Context, filtro pedido.Filtro) ([]dto.PedidoResponse, error)
	UpdateEstatus(ctx context.Context, pedidoID int64, in dto.UpdateEstatusRequest) (string, error)
	DeletePedido(ctx context.Context, pedidoID int64) error
	DeleteCompletados(ctx context.Context) (int64, error)
	GenerarReporte(ctx context.Context, filtro pedido.Filtro) ([]byte, error)

	GetComentario(ctx context.Context, pedidoID int64, area string) (*dto.ComentarioResponse, error)
	ListComentarios(ctx context.Context, pedidoID int64) ([]dto.ComentarioAreaResponse, error)
	SetComentario(ctx context.Context, pedidoID int64, area string, comentario *string) error
	ClearComentario(ctx context.Context, pedidoID int64, area string) error
}

var _ PedidosService = (*pedidos.UseCase)(nil)

// PedidoHandler expone el CRUD de pedidos y el reporte PDF.
type PedidoHandler struct {
	svc PedidosService
	log *logger.Logger
}

// NewPedidoHandler construye el handler de pedidos.
func NewPedidoHandler(svc PedidosService, log *logger.Logger) *PedidoHandler {
	return &PedidoHandler{svc: svc, log: log}
}

// pathID lee un id numérico de la ruta.
func pathID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de pedido inválido"})
}

// List godoc
// @Summary      Listar pedidos
// @Description  Más recientes primero. completado=true|false filtra por el estado derivado.
// @Tags         pedidos
// @Produce      json
// @Param        completado  query  string  false  "true | false"
// @Success      200  {array}   dto.PedidoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListPedidos(c.UserContext(), pedido.ParseFiltro(c.Query("completado")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido
// @Description  Crea el pedido con sus tres áreas en pendiente. Solo administradores.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePedidoRequest  true  "numero_pedido, fecha_entrega"
// @Success      201   {object}  dto.CreatePedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreatePedido(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Int64("pedido_id", out.PedidoID).Int64("user_id", GetUserID(c)).Msg("pedido creado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEstatus godoc
// @Summary      Actualizar estatus de un área
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del pedido"
// @Param        body  body  dto.UpdateEstatusRequest  true  "area, estatus, comentarios"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/estatus/{id} [put]
func (h *PedidoHandler) UpdateEstatus(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateEstatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	area, err := h.svc.UpdateEstatus(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Estatus actualizado para %s correctamente.", area)})
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         pedidos
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [delete]
func (h *PedidoHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.svc.DeletePedido(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Int64("pedido_id", id).Int64("user_id", GetUserID(c)).Msg("pedido eliminado")
	return c.JSON(dto.MessageResponse{Message: "Pedido eliminado correctamente"})
}

// DeleteCompletados godoc
// @Summary      Eliminar todos los pedidos completados
// @Tags         pedidos
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/pedidos/completados [delete]
func (h *PedidoHandler) DeleteCompletados(c *fiber.Ctx) error {
	n, err := h.svc.DeleteCompletados(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if n == 0 {
		return c.JSON(dto.MessageResponse{Message: "No hay pedidos completados para eliminar."})
	}
	h.log.Info().Int64("eliminados", n).Int64("user_id", GetUserID(c)).Msg("pedidos completados eliminados")
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("%d pedidos completados eliminados correctamente.", n)})
}

// Reporte godoc
// @Summary      Reporte PDF de pedidos
// @Tags         pedidos
// @Produce      application/pdf
// @Param        completado  query  string  false  "true | false"
// @Success      200
// @Router       /api/pedidos/reporte [get]
func (h *PedidoHandler) Reporte(c *fiber.Ctx) error {
	pdf, err := h.svc.GenerarReporte(c.UserContext(), pedido.ParseFiltro(c.Query("completado")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedidos.pdf"`)
	return c.Send(pdf)
}
