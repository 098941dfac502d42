package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/pkg/logger"
)

// ComentarioHandler comentarios por área de un pedido.
type ComentarioHandler struct {
	svc PedidosService
	log *logger.Logger
}

func NewComentarioHandler(svc PedidosService, log *logger.Logger) *ComentarioHandler {
	return &ComentarioHandler{svc: svc, log: log}
}

// Get godoc
// @Summary      Comentario de un área
// @Tags         comentarios
// @Produce      json
// @Param        pedidoId  path  int     true  "ID del pedido"
// @Param        area      path  string  true  "contabilidad | ventas | produccion"
// @Success      200  {object}  dto.ComentarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/comentario/{pedidoId}/{area} [get]
func (h *ComentarioHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "pedidoId")
	if !ok {
		return invalidID(c)
	}
	out, err := h.svc.GetComentario(c.UserContext(), id, c.Params("area"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Comentarios no vacíos de un pedido
// @Tags         comentarios
// @Produce      json
// @Param        pedidoId  path  int  true  "ID del pedido"
// @Success      200  {array}  dto.ComentarioAreaResponse
// @Router       /api/pedidos/comentarios/{pedidoId} [get]
func (h *ComentarioHandler) List(c *fiber.Ctx) error {
	id, ok := pathID(c, "pedidoId")
	if !ok {
		return invalidID(c)
	}
	out, err := h.svc.ListComentarios(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Guardar comentario de un área
// @Tags         comentarios
// @Accept       json
// @Produce      json
// @Param        pedidoId  path  int                    true  "ID del pedido"
// @Param        area      path  string                 true  "área"
// @Param        body      body  dto.ComentarioRequest  true  "comentario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/comentario/{pedidoId}/{area} [put]
func (h *ComentarioHandler) Set(c *fiber.Ctx) error {
	id, ok := pathID(c, "pedidoId")
	if !ok {
		return invalidID(c)
	}
	var in dto.ComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.SetComentario(c.UserContext(), id, c.Params("area"), in.Comentario); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comentario actualizado correctamente"})
}

// Clear godoc
// @Summary      Eliminar comentario de un área
// @Tags         comentarios
// @Produce      json
// @Param        pedidoId  path  int     true  "ID del pedido"
// @Param        area      path  string  true  "área"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/comentario/{pedidoId}/{area} [delete]
func (h *ComentarioHandler) Clear(c *fiber.Ctx) error {
	id, ok := pathID(c, "pedidoId")
	if !ok {
		return invalidID(c)
	}
	if err := h.svc.ClearComentario(c.UserContext(), id, c.Params("area")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comentario eliminado correctamente"})
}
