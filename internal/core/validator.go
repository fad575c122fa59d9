package core

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"archiplan/internal/types"
)

// Validator checks decoded request bodies. Field errors are reported by
// their JSON names.
type Validator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewValidator creates a Validator with the custom "discipline" tag, which
// accepts the four discipline names case-insensitively.
func NewValidator(logger *slog.Logger) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("discipline", func(fl validator.FieldLevel) bool {
		return types.Discipline(strings.ToLower(fl.Field().String())).Valid()
	}); err != nil {
		logger.Error("failed to register discipline validation", "error", err)
	}
	return &Validator{validate: v, logger: logger}
}

// ValidateStruct returns nil, or an AppError whose details map each failing
// field to the rule it broke. When every failure is a missing required
// field the code is validation_missing_required_field.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v.logger.Error("validator misuse", "error", err, "type", reflect.TypeOf(s).String())
		return types.NewAppError(types.ErrCodeInternalUnexpected, "request validation failed", err)
	}

	fields := make(map[string]any, len(verrs))
	code := types.ErrCodeValidationMissingField
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Namespace()[strings.IndexByte(fe.Namespace(), '.')+1:]] = rule
		if fe.Tag() != "required" {
			code = types.ErrCodeValidationFailed
		}
	}
	return types.NewAppErrorWithDetails(code, "request validation failed", err,
		map[string]any{"fields": fields})
}
