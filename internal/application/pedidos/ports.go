package pedidos

import (
	"context"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		estatusRepo repository.EstatusRepository,
	) error) error
}

// ReportGenerator genera el PDF del listado de pedidos.
type ReportGenerator interface {
	GenerarReporte(titulo string, pedidos []dto.PedidoResponse) ([]byte, error)
}

// Recorder registra métricas de negocio. Lo implementa infrastructure/metrics.
type Recorder interface {
	PedidoCreado()
	EstatusActualizado(area, estatus string)
	PedidosEliminados(n int)
}

type nopRecorder struct{}

func (nopRecorder) PedidoCreado()                   {}
func (nopRecorder) EstatusActualizado(_, _ string) {}
func (nopRecorder) PedidosEliminados(int)          {}
