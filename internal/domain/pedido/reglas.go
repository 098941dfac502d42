// Package pedido contiene las reglas del seguimiento de pedidos: el conjunto cerrado
// de áreas y estatus, y la derivación del estado completado a partir de las filas
// de pedido_estatus. No hace I/O.
package pedido

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/sigep-gc/internal/domain"
	"github.com/jhoicas/sigep-gc/internal/domain/entity"
)

// Areas en el orden en que se crean las filas de estatus de un pedido nuevo.
var Areas = []string{entity.AreaContabilidad, entity.AreaVentas, entity.AreaProduccion}

var estatusValidos = map[string]bool{
	entity.EstatusPendiente:  true,
	entity.EstatusEnProceso:  true,
	entity.EstatusCompletado: true,
}

// Normalizar pasa a minúsculas la entrada del cliente; "Ventas" y "VENTAS" son la misma área.
func Normalizar(s string) string {
	// cases.Caser no es seguro entre goroutines: uno por llamada.
	return cases.Lower(language.Und).String(s)
}

// EsArea informa si a (ya normalizada) es un área conocida.
func EsArea(a string) bool {
	for _, x := range Areas {
		if x == a {
			return true
		}
	}
	return false
}

// ParseArea normaliza y valida un área.
func ParseArea(s string) (string, error) {
	a := Normalizar(s)
	if !EsArea(a) {
		return "", domain.ErrAreaInvalida
	}
	return a, nil
}

// ParseEstatus normaliza y valida un estatus.
func ParseEstatus(s string) (string, error) {
	e := Normalizar(s)
	if !estatusValidos[e] {
		return "", domain.ErrEstatusInvalido
	}
	return e, nil
}

// ParseDepartamento valida el departamento de un usuario (mismo conjunto que las áreas).
func ParseDepartamento(s string) (string, error) {
	d := Normalizar(s)
	if !EsArea(d) {
		return "", domain.ErrDepartamentoInvalido
	}
	return d, nil
}
