// Package pedidos implementa el seguimiento de pedidos: alta con sus tres filas de
// estatus, listado agregado por área, actualización de estatus, comentarios y
// borrado (individual o de todos los completados).
package pedidos

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/pedido"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

const (
	fechaLayout         = "2006-01-02"
	fechaCreacionLayout = "2006-01-02 15:04"
	maxNumeroPedido     = 50
)

// UseCase motor de pedidos. Recibe los repositorios y el TxRunner por constructor.
type UseCase struct {
	pedidoRepo  repository.PedidoRepository
	estatusRepo repository.EstatusRepository
	tx          TxRunner
	reporte     ReportGenerator
	metrics     Recorder
	loc         *time.Location
}

// NewUseCase construye el motor. metrics y loc son opcionales (nop y UTC).
func NewUseCase(
	pedidoRepo repository.PedidoRepository,
	estatusRepo repository.EstatusRepository,
	tx TxRunner,
	reporte ReportGenerator,
	metrics Recorder,
	loc *time.Location,
) *UseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		pedidoRepo:  pedidoRepo,
		estatusRepo: estatusRepo,
		tx:          tx,
		reporte:     reporte,
		metrics:     metrics,
		loc:         loc,
	}
}

// CreatePedido crea el pedido y sus tres filas de estatus (pendiente) en una sola transacción.
func (uc *UseCase) CreatePedido(ctx context.Context, in dto.CreatePedidoRequest, creadoPor int64) (*dto.CreatePedidoResponse, error) {
	numero := strings.TrimSpace(in.NumeroPedido)
	if numero == "" || strings.TrimSpace(in.FechaEntrega) == "" {
		return nil, domain.ErrCamposRequeridos
	}
	if utf8.RuneCountInString(numero) > maxNumeroPedido {
		return nil, fmt.Errorf("%w: numero_pedido excede %d caracteres", domain.ErrInvalidInput, maxNumeroPedido)
	}
	fecha, err := time.Parse(fechaLayout, strings.TrimSpace(in.FechaEntrega))
	if err != nil {
		return nil, domain.ErrFechaInvalida
	}

	existe, err := uc.pedidoRepo.ExistsByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, domain.ErrPedidoDuplicado
	}

	p := &entity.Pedido{NumeroPedido: numero, FechaEntrega: fecha, CreadoPor: creadoPor}
	err = uc.tx.Run(ctx, func(pedidoRepo repository.PedidoRepository, estatusRepo repository.EstatusRepository) error {
		if err := pedidoRepo.Create(ctx, p); err != nil {
			return err
		}
		for _, area := range pedido.Areas {
			if err := estatusRepo.Create(ctx, &entity.EstatusArea{
				PedidoID: p.ID,
				Area:     area,
				Estatus:  entity.EstatusPendiente,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PedidoCreado()
	return &dto.CreatePedidoResponse{Message: "Pedido creado correctamente", PedidoID: p.ID}, nil
}

// ListPedidos devuelve los pedidos (más recientes primero) con el estado de cada área.
func (uc *UseCase) ListPedidos(ctx context.Context, filtro pedido.Filtro) ([]dto.PedidoResponse, error) {
	rows, err := uc.pedidoRepo.ListConEstatus(ctx)
	if err != nil {
		return nil, err
	}
	resumenes := pedido.Filtrar(pedido.Agrupar(rows), filtro)
	out := make([]dto.PedidoResponse, 0, len(resumenes))
	for _, r := range resumenes {
		out = append(out, uc.toResponse(r))
	}
	return out, nil
}

// UpdateEstatus cambia estatus y comentario de un área. Última escritura gana.
func (uc *UseCase) UpdateEstatus(ctx context.Context, pedidoID int64, in dto.UpdateEstatusRequest) (string, error) {
	if strings.TrimSpace(in.Area) == "" || strings.TrimSpace(in.Estatus) == "" {
		return "", domain.ErrCamposRequeridos
	}
	area, err := pedido.ParseArea(strings.TrimSpace(in.Area))
	if err != nil {
		return "", err
	}
	estatus, err := pedido.ParseEstatus(strings.TrimSpace(in.Estatus))
	if err != nil {
		return "", err
	}
	comentarios := ""
	if in.Comentarios != nil {
		comentarios = *in.Comentarios
	}
	ok, err := uc.estatusRepo.UpdateEstatus(ctx, pedidoID, area, estatus, comentarios)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrEstatusNotFound
	}
	uc.metrics.EstatusActualizado(area, estatus)
	return area, nil
}

// DeletePedido borra las filas de estatus y el pedido en una transacción.
func (uc *UseCase) DeletePedido(ctx context.Context, pedidoID int64) error {
	err := uc.tx.Run(ctx, func(pedidoRepo repository.PedidoRepository, estatusRepo repository.EstatusRepository) error {
		if _, err := estatusRepo.DeleteByPedido(ctx, pedidoID); err != nil {
			return err
		}
		ok, err := pedidoRepo.Delete(ctx, pedidoID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrPedidoNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.metrics.PedidosEliminados(1)
	return nil
}

// DeleteCompletados borra todos los pedidos completados y devuelve cuántos eliminó.
// Sin pedidos completados devuelve 0 sin error.
func (uc *UseCase) DeleteCompletados(ctx context.Context) (int64, error) {
	var eliminados int64
	err := uc.tx.Run(ctx, func(pedidoRepo repository.PedidoRepository, estatusRepo repository.EstatusRepository) error {
		ids, err := pedidoRepo.CompletedIDs(ctx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if _, err := estatusRepo.DeleteByPedidos(ctx, ids); err != nil {
			return err
		}
		n, err := pedidoRepo.DeleteMany(ctx, ids)
		if err != nil {
			return err
		}
		eliminados = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if eliminados > 0 {
		uc.metrics.PedidosEliminados(int(eliminados))
	}
	return eliminados, nil
}

// GenerarReporte renderiza en PDF el mismo listado que ListPedidos.
func (uc *UseCase) GenerarReporte(ctx context.Context, filtro pedido.Filtro) ([]byte, error) {
	lista, err := uc.ListPedidos(ctx, filtro)
	if err != nil {
		return nil, err
	}
	titulo := "Pedidos"
	switch filtro {
	case pedido.FiltroCompletados:
		titulo = "Pedidos completados"
	case pedido.FiltroIncompletos:
		titulo = "Pedidos en curso"
	}
	return uc.reporte.GenerarReporte(titulo, lista)
}

func (uc *UseCase) toResponse(r *pedido.Resumen) dto.PedidoResponse {
	estado := func(area string) dto.EstadoAreaResponse {
		e := r.Estatus[area]
		return dto.EstadoAreaResponse{Estado: e.Estado, Comentarios: e.Comentarios}
	}
	return dto.PedidoResponse{
		ID:            r.Pedido.ID,
		NumeroPedido:  r.Pedido.NumeroPedido,
		FechaEntrega:  r.Pedido.FechaEntrega.Format(fechaLayout),
		FechaCreacion: r.Pedido.FechaCreacion.In(uc.loc).Format(fechaCreacionLayout),
		Estatus: dto.EstatusPorArea{
			Ventas:       estado(entity.AreaVentas),
			Contabilidad: estado(entity.AreaContabilidad),
			Produccion:   estado(entity.AreaProduccion),
		},
	}
}
