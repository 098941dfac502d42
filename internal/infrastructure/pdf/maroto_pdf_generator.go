// Package pdf genera el reporte imprimible del listado de pedidos.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: SIGEP GC + título          │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° Pedido | Entrega | Creado | Ventas | Conta | Prod │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de pedidos                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sigep-gc/internal/application/dto"
	"github.com/jhoicas/sigep-gc/internal/application/pedidos"
)

var _ pedidos.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 25, Green: 135, Blue: 84}
	colorOrange  = &props.Color{Red: 200, Green: 110, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa pedidos.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	loc *time.Location
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador; loc es la zona de la fecha de generación.
func NewMarotoPDFGenerator(loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{loc: loc, now: time.Now}
}

// GenerarReporte genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarReporte(titulo string, lista []dto.PedidoResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("SIGEP GC - "+titulo, true).
		WithAuthor("SIGEP GC", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(titulo, g.now().In(g.loc)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lista)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(lista)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(titulo string, generado time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SIGEP GC", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(titulo, props.Text{
				Size: 10, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generado.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N° Pedido", 2, align.Left),
		h("Entrega", 1, align.Center),
		h("Creado", 2, align.Center),
		h("Ventas", 2, align.Left),
		h("Contabilidad", 2, align.Left),
		h("Producción", 3, align.Left),
	)
}

// tableRows una fila por pedido; cada área muestra estado y comentario.
func tableRows(lista []dto.PedidoResponse) []core.Row {
	rows := make([]core.Row, 0, len(lista))
	for _, p := range lista {
		rows = append(rows, row.New(10).Add(
			col.New(2).Add(text.New(p.NumeroPedido, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(1).Add(text.New(p.FechaEntrega, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(p.FechaCreacion, props.Text{Size: 8, Align: align.Center, Top: 1})),
			areaCol(2, p.Estatus.Ventas),
			areaCol(2, p.Estatus.Contabilidad),
			areaCol(3, p.Estatus.Produccion),
		))
	}
	return rows
}

func areaCol(size int, e dto.EstadoAreaResponse) core.Col {
	c := col.New(size).Add(text.New(e.Estado, props.Text{
		Size: 8, Top: 1, Left: 1, Style: fontstyle.Bold, Color: estadoColor(e.Estado),
	}))
	if e.Comentarios != "" {
		c.Add(text.New(e.Comentarios, props.Text{Size: 7, Top: 5, Left: 1, Color: colorGray}))
	}
	return c
}

func estadoColor(estado string) *props.Color {
	switch estado {
	case "completado":
		return colorGreen
	case "en proceso":
		return colorOrange
	default:
		return colorGray
	}
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Total de pedidos: %d", total), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}
