package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/pkg/logger"
	"github.com/jhoicas/sigep-gc/pkg/validator"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorTable = []errorMapping{
	{domain.ErrCamposRequeridos, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrComentarioRequerido, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrFechaInvalida, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrAreaInvalida, fiber.StatusBadRequest, "AREA_INVALIDA"},
	{domain.ErrEstatusInvalido, fiber.StatusBadRequest, "ESTATUS_INVALIDO"},
	{domain.ErrDepartamentoInvalido, fiber.StatusBadRequest, "DEPARTAMENTO_INVALIDO"},
	{domain.ErrResetTokenInvalido, fiber.StatusBadRequest, "INVALID_RESET_TOKEN"},

	{domain.ErrPedidoDuplicado, fiber.StatusBadRequest, "PEDIDO_DUPLICADO"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},

	{domain.ErrPedidoNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEstatusNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrComentarioNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},

	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// mapError traduce un error de dominio a status y cuerpo. Lo no reconocido es 500.
func mapError(err error) (int, dto.ErrorResponse) {
	var verrs validator.Errors
	if errors.As(err, &verrs) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verrs.Error()}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: err.Error()}
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// respondError escribe el error; los 500 se registran con el error real y el request id.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: respeta los *fiber.Error (404 de ruta, 413, etc.)
// y trata todo lo demás como 500.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}
