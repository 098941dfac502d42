package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigep-gc/pkg/validator"
)

type pedidoIn struct {
	NumeroPedido string `json:"numero_pedido" validate:"required,max=10"`
	FechaEntrega string `json:"fecha_entrega" validate:"required,datetime=2006-01-02"`
	Email        string `json:"email" validate:"omitempty,email"`
}

func TestStruct_Valido(t *testing.T) {
	err := validator.Struct(&pedidoIn{NumeroPedido: "PO-1", FechaEntrega: "2025-10-01"})
	assert.NoError(t, err)
}

func TestStruct_Mensajes(t *testing.T) {
	tests := []struct {
		name  string
		in    pedidoIn
		field string
		msg   string
	}{
		{"requerido", pedidoIn{FechaEntrega: "2025-10-01"}, "numero_pedido", "numero_pedido es requerido"},
		{"max", pedidoIn{NumeroPedido: "PO-123456789", FechaEntrega: "2025-10-01"}, "numero_pedido", "numero_pedido debe tener como máximo 10 caracteres"},
		{"fecha", pedidoIn{NumeroPedido: "PO-1", FechaEntrega: "01/10/2025"}, "fecha_entrega", "fecha_entrega debe tener el formato YYYY-MM-DD"},
		{"email", pedidoIn{NumeroPedido: "PO-1", FechaEntrega: "2025-10-01", Email: "x"}, "email", "email debe ser un correo válido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(&tt.in)
			require.Error(t, err)

			var verrs validator.Errors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
