package pedido

import "github.com/jhoicas/sigep-gc/internal/domain/entity"

// SinEstatus se muestra cuando falta la fila (o el estatus) de un área.
const SinEstatus = "Sin estatus"

// EstadoArea estado visible de un área dentro del resumen.
type EstadoArea struct {
	Estado      string
	Comentarios string
}

// Resumen agregado de un pedido con el estado de sus tres áreas.
// Estatus siempre contiene las tres áreas.
type Resumen struct {
	Pedido  entity.Pedido
	Estatus map[string]EstadoArea

	total       int
	completados int
}

// Completado deriva el estado del pedido: al menos una fila y todas completadas.
// Un pedido sin filas nunca está completado.
func (r *Resumen) Completado() bool {
	return r.total > 0 && r.completados == r.total
}

// Completado aplica la misma regla a una lista de estatus.
func Completado(estatus []string) bool {
	if len(estatus) == 0 {
		return false
	}
	for _, e := range estatus {
		if e != entity.EstatusCompletado {
			return false
		}
	}
	return true
}

func nuevoResumen(p entity.Pedido) *Resumen {
	r := &Resumen{Pedido: p, Estatus: make(map[string]EstadoArea, len(Areas))}
	for _, a := range Areas {
		r.Estatus[a] = EstadoArea{Estado: SinEstatus}
	}
	return r
}

// Agrupar pliega las filas del LEFT JOIN en un resumen por pedido, conservando el
// orden de primera aparición (el orden de la consulta).
func Agrupar(rows []entity.PedidoEstatusRow) []*Resumen {
	index := make(map[int64]*Resumen)
	out := make([]*Resumen, 0)
	for _, row := range rows {
		r, ok := index[row.Pedido.ID]
		if !ok {
			r = nuevoResumen(row.Pedido)
			index[row.Pedido.ID] = r
			out = append(out, r)
		}
		if row.Area == nil {
			continue
		}
		r.total++
		estado := SinEstatus
		if row.Estatus != nil && *row.Estatus != "" {
			estado = *row.Estatus
		}
		if estado == entity.EstatusCompletado {
			r.completados++
		}
		if EsArea(*row.Area) {
			comentarios := ""
			if row.Comentarios != nil {
				comentarios = *row.Comentarios
			}
			r.Estatus[*row.Area] = EstadoArea{Estado: estado, Comentarios: comentarios}
		}
	}
	return out
}

// Filtro sobre el estado completado derivado.
type Filtro int

const (
	FiltroNinguno Filtro = iota
	FiltroCompletados
	FiltroIncompletos
)

// ParseFiltro interpreta el query param completado=true|false; cualquier otro valor no filtra.
func ParseFiltro(q string) Filtro {
	switch q {
	case "true":
		return FiltroCompletados
	case "false":
		return FiltroIncompletos
	default:
		return FiltroNinguno
	}
}

// Filtrar devuelve los resúmenes que cumplen f, en el mismo orden.
func Filtrar(rs []*Resumen, f Filtro) []*Resumen {
	if f == FiltroNinguno {
		return rs
	}
	out := make([]*Resumen, 0, len(rs))
	for _, r := range rs {
		if r.Completado() == (f == FiltroCompletados) {
			out = append(out, r)
		}
	}
	return out
}
