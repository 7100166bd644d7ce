package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"taskfeed-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidateRequest checks struct tags and returns a Validation error listing failed fields.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("invalid request", nil)
	}

	fields := make([]FieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		names = append(names, fe.Field())
	}
	return apperror.Validation(fmt.Sprintf("invalid fields: %s", strings.Join(names, ", ")), fields)
}

// ParseBody decodes and validates the JSON body in one go.
func ParseBody(ctx *fiber.Ctx, req any) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("malformed request body", nil)
	}
	return ValidateRequest(req)
}

func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("%s must be a uuid", name), nil)
	}
	return id, nil
}

// QueryUUID returns nil when the parameter is absent.
func QueryUUID(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("%s must be a uuid", name), nil)
	}
	return &id, nil
}
