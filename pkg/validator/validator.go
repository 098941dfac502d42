// Package validator valida los DTO de entrada con go-playground/validator usando
// las etiquetas `validate` y devuelve mensajes en español con el nombre JSON del campo.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError error de validación de un campo.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Errors lista de errores de validación; Error() devuelve el primero.
type Errors []*FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "entrada inválida"
	}
	return e[0].Message
}

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s. Devuelve nil o Errors.
func Struct(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", f)
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", f)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s debe tener como máximo %s caracteres", f, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s debe tener el formato %s", f, layoutHint(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", f, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido", f)
	}
}

func layoutHint(layout string) string {
	if layout == "2006-01-02" {
		return "YYYY-MM-DD"
	}
	return layout
}
