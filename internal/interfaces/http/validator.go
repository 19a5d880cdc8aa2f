package http

import (
	"github.com/go-playground/validator/v10"
)

// validate instancia compartida del validador de structs (tags `validate`).
var validate = validator.New()

// validationMessage devuelve un mensaje legible para el primer fallo de validación.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "datos inválidos"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es requerido"
	case "email":
		return fe.Field() + " no es un email válido"
	case "uuid":
		return fe.Field() + " no es un UUID válido"
	case "oneof":
		return fe.Field() + " debe ser uno de: " + fe.Param()
	case "gt":
		return fe.Field() + " debe ser mayor que " + fe.Param()
	case "min":
		return fe.Field() + " por debajo del mínimo " + fe.Param()
	case "max":
		return fe.Field() + " excede el máximo " + fe.Param()
	default:
		return fe.Field() + " inválido"
	}
}
