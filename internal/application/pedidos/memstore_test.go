package pedidos

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
	"github.com/jhoicas/sigep-gc/internal/domain/repository"
)

// memStore almacén en memoria con las mismas reglas que las tablas pedidos/pedido_estatus.
type memStore struct {
	pedidos []entity.Pedido
	estatus []entity.EstatusArea
	nextID  int64
	clock   time.Time

	failEstatusCreate int // falla al crear la n-ésima fila (1-based); 0 = nunca
	creadas           int
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *memStore) snapshot() memStore {
	cp := *s
	cp.pedidos = append([]entity.Pedido(nil), s.pedidos...)
	cp.estatus = make([]entity.EstatusArea, len(s.estatus))
	for i, e := range s.estatus {
		cp.estatus[i] = e
		if e.Comentarios != nil {
			c := *e.Comentarios
			cp.estatus[i].Comentarios = &c
		}
	}
	return cp
}

func (s *memStore) restore(snap memStore) {
	s.pedidos = snap.pedidos
	s.estatus = snap.estatus
	s.nextID = snap.nextID
}

func (s *memStore) filas(pedidoID int64) []entity.EstatusArea {
	var out []entity.EstatusArea
	for _, e := range s.estatus {
		if e.PedidoID == pedidoID {
			out = append(out, e)
		}
	}
	return out
}

// memTx restaura el snapshot si fn falla.
type memTx struct{ s *memStore }

func (t memTx) Run(_ context.Context, fn func(repository.PedidoRepository, repository.EstatusRepository) error) error {
	snap := t.s.snapshot()
	if err := fn(memPedidos{t.s}, memEstatus{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memPedidos struct{ s *memStore }

func (r memPedidos) ExistsByNumero(_ context.Context, numero string) (bool, error) {
	for _, p := range r.s.pedidos {
		if p.NumeroPedido == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r memPedidos) Create(ctx context.Context, p *entity.Pedido) error {
	if ok, _ := r.ExistsByNumero(ctx, p.NumeroPedido); ok {
		return domain.ErrPedidoDuplicado
	}
	r.s.nextID++
	r.s.clock = r.s.clock.Add(time.Minute)
	p.ID = r.s.nextID
	p.FechaCreacion = r.s.clock
	r.s.pedidos = append(r.s.pedidos, *p)
	return nil
}

func (r memPedidos) Delete(_ context.Context, id int64) (bool, error) {
	for i, p := range r.s.pedidos {
		if p.ID == id {
			r.s.pedidos = append(r.s.pedidos[:i], r.s.pedidos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r memPedidos) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if ok, _ := r.Delete(ctx, id); ok {
			n++
		}
	}
	return n, nil
}

func (r memPedidos) ListConEstatus(_ context.Context) ([]entity.PedidoEstatusRow, error) {
	ps := append([]entity.Pedido(nil), r.s.pedidos...)
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].FechaCreacion.Equal(ps[j].FechaCreacion) {
			return ps[i].FechaCreacion.After(ps[j].FechaCreacion)
		}
		return ps[i].ID > ps[j].ID
	})
	var out []entity.PedidoEstatusRow
	for _, p := range ps {
		fs := r.s.filas(p.ID)
		if len(fs) == 0 {
			out = append(out, entity.PedidoEstatusRow{Pedido: p})
			continue
		}
		for _, f := range fs {
			area, estatus := f.Area, f.Estatus
			out = append(out, entity.PedidoEstatusRow{Pedido: p, Area: &area, Estatus: &estatus, Comentarios: f.Comentarios})
		}
	}
	return out, nil
}

func (r memPedidos) CompletedIDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for _, p := range r.s.pedidos {
		fs := r.s.filas(p.ID)
		if len(fs) == 0 {
			continue
		}
		todas := true
		for _, f := range fs {
			if f.Estatus != entity.EstatusCompletado {
				todas = false
			}
		}
		if todas {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

type memEstatus struct{ s *memStore }

var errFallaInsercion = errors.New("falla simulada")

func (r memEstatus) Create(_ context.Context, e *entity.EstatusArea) error {
	r.s.creadas++
	if r.s.failEstatusCreate > 0 && r.s.creadas == r.s.failEstatusCreate {
		return errFallaInsercion
	}
	r.s.estatus = append(r.s.estatus, *e)
	return nil
}

func (r memEstatus) ListByPedido(_ context.Context, pedidoID int64) ([]entity.EstatusArea, error) {
	return r.s.filas(pedidoID), nil
}

func (r memEstatus) find(pedidoID int64, area string) *entity.EstatusArea {
	for i := range r.s.estatus {
		if r.s.estatus[i].PedidoID == pedidoID && r.s.estatus[i].Area == area {
			return &r.s.estatus[i]
		}
	}
	return nil
}

func (r memEstatus) UpdateEstatus(_ context.Context, pedidoID int64, area, estatus, comentarios string) (bool, error) {
	e := r.find(pedidoID, area)
	if e == nil {
		return false, nil
	}
	e.Estatus = estatus
	e.Comentarios = &comentarios
	return true, nil
}

func (r memEstatus) DeleteByPedido(_ context.Context, pedidoID int64) (int64, error) {
	var n int64
	kept := r.s.estatus[:0]
	for _, e := range r.s.estatus {
		if e.PedidoID == pedidoID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.s.estatus = kept
	return n, nil
}

func (r memEstatus) DeleteByPedidos(ctx context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		m, _ := r.DeleteByPedido(ctx, id)
		n += m
	}
	return n, nil
}

func (r memEstatus) GetComentario(_ context.Context, pedidoID int64, area string) (*string, bool, error) {
	e := r.find(pedidoID, area)
	if e == nil {
		return nil, false, nil
	}
	return e.Comentarios, true, nil
}

func (r memEstatus) ListComentarios(_ context.Context, pedidoID int64) ([]entity.Comentario, error) {
	var out []entity.Comentario
	for _, e := range r.s.filas(pedidoID) {
		if e.Comentarios != nil && *e.Comentarios != "" {
			out = append(out, entity.Comentario{Area: e.Area, Comentarios: *e.Comentarios})
		}
	}
	return out, nil
}

func (r memEstatus) SetComentario(_ context.Context, pedidoID int64, area string, comentario *string) (bool, error) {
	e := r.find(pedidoID, area)
	if e == nil {
		return false, nil
	}
	e.Comentarios = comentario
	return true, nil
}

type fakeReporte struct {
	titulo  string
	pedidos []dto.PedidoResponse
}

func (f *fakeReporte) GenerarReporte(titulo string, pedidos []dto.PedidoResponse) ([]byte, error) {
	f.titulo, f.pedidos = titulo, pedidos
	return []byte("%PDF-fake"), nil
}

type fakeMetrics struct {
	creados    int
	estatus    map[string]int
	eliminados int
}

func (m *fakeMetrics) PedidoCreado() { m.creados++ }
func (m *fakeMetrics) EstatusActualizado(area, estatus string) {
	if m.estatus == nil {
		m.estatus = map[string]int{}
	}
	m.estatus[area+"/"+estatus]++
}
func (m *fakeMetrics) PedidosEliminados(n int) { m.eliminados += n }
