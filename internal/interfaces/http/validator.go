package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wedding-api/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindJSON parsea el cuerpo en out y aplica las etiquetas validate. Si falla ya escribió la
// respuesta 400 y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: validationMessage(err),
		})
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" es obligatorio")
		case "max":
			parts = append(parts, fmt.Sprintf("%s admite como máximo %s caracteres", field, fe.Param()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s requiere un mínimo de %s", field, fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param()))
		case "email":
			parts = append(parts, field+" no es un email válido")
		default:
			parts = append(parts, field+" no es válido")
		}
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
