package validator

import (
	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que falló la validación (tags `validate:` de los DTO).
type FieldError struct {
	Field string // nombre del campo (namespace del struct)
	Tag   string // regla que falló (required, gt, oneof, ...)
	Param string // parámetro de la regla, si aplica
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct evalúa los tags `validate:` de un struct y devuelve la lista
// de campos ofensivos (vacía si todo es válido).
func ValidateStruct(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "struct", Tag: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
