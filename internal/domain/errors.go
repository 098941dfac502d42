package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("usuario ya registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("contraseña incorrecta")
	ErrForbidden          = errors.New("acceso denegado")

	ErrDepartamentoInvalido = errors.New("departamento inválido o no proporcionado")
	ErrResetTokenInvalido   = errors.New("token inválido o expirado")

	ErrPedidoDuplicado    = errors.New("ese número de pedido ya existe")
	ErrPedidoNotFound     = errors.New("pedido no encontrado")
	ErrAreaInvalida       = errors.New("área no permitida")
	ErrEstatusInvalido    = errors.New("estatus no válido")
	ErrEstatusNotFound    = errors.New("no se encontró estatus para ese pedido y área")
	ErrComentarioNotFound = errors.New("no se encontró comentario")

	ErrCamposRequeridos    = errors.New("faltan campos requeridos")
	ErrComentarioRequerido = errors.New("comentario requerido")
	ErrFechaInvalida       = errors.New("fecha_entrega debe tener formato YYYY-MM-DD")
)
