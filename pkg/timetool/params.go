package timetool

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
)

// ErrMissingArgument is the kind of a *timezone.ValidationError for a
// required tool argument that is absent or blank.
var ErrMissingArgument = errors.New("required argument missing")

// GetCurrentTimeParams are the arguments of get_current_time.
type GetCurrentTimeParams struct {
	// Timezone is optional; absent or blank means UTC.
	Timezone string `json:"timezone,omitempty"`
}

// ConvertTimeParams are the arguments of convert_time.
type ConvertTimeParams struct {
	SourceTimezone string `json:"source_timezone" validate:"required,notblank"`
	Time           string `json:"time"            validate:"required,notblank"`
	TargetTimezone string `json:"target_timezone" validate:"required,notblank"`
}

var messages = map[string]string{
	"required": "Missing required argument '{field}'.",
	"notblank": "Argument '{field}' must not be blank.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON argument names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

// validateParams runs struct validation and converts the first failure into
// a caller-facing validation error.
func validateParams(v *validator.Validate, params any) error {
	err := v.Struct(params)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	msg, ok := messages[first.Tag()]
	if !ok {
		msg = "Invalid argument '{field}'."
	}
	return &timezone.ValidationError{
		Kind:    ErrMissingArgument,
		Input:   first.Field(),
		Message: strings.ReplaceAll(msg, "{field}", first.Field()),
	}
}
