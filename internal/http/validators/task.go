package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "task-sheet-manager.com/task-sheet-manager/internal/errors"
)

var (
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	oneofParam   = regexp.MustCompile(`'[^']*'|\S+`)
)

// RequestValidator plugs go-playground/validator into echo. Failures come
// back as validation exceptions.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return jsonName(field.Tag.Get("json"), field.Tag.Get("query"), field.Name)
	})
	return &RequestValidator{validate: v}
}

func (r *RequestValidator) Validate(i interface{}) error {
	err := r.validate.Struct(i)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apperrors.Validation(err.Error())
	}

	messages := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		messages = append(messages, describe(fe))
	}
	return apperrors.Validation(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), oneofList(fe.Param()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "clock":
		return fmt.Sprintf("%s must be a HH:MM time", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func jsonName(jsonTag, queryTag, fallback string) string {
	for _, tag := range []string{jsonTag, queryTag} {
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fallback
}

// oneofList renders a oneof parameter, where quoted words hold spaces.
func oneofList(param string) string {
	values := oneofParam.FindAllString(param, -1)
	for i, v := range values {
		values[i] = strings.Trim(v, "'")
	}
	return strings.Join(values, ", ")
}
