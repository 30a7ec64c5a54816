// Package validation checks catalog records against the field constraints
// declared in their struct tags.
//
// Constraints use go-playground/validator tags. The label tag names the
// field in messages and the optional range tag overrides the message of a
// failed gte/lte bound.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is one failed constraint.
type FieldError struct {
	Field   string
	Message string
}

// Result is the outcome of validating one record. Failures are in field
// declaration order.
type Result struct {
	Valid    bool
	Failures []FieldError
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Failures: r.Failures}
}

// Error carries the failures of an invalid record.
type Error struct {
	Failures []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Engine validates records. It holds no state besides the cached struct
// metadata of the underlying validator and is safe to reuse.
type Engine struct {
	validate *validator.Validate
}

func New() *Engine {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("nonblank", nonBlank); err != nil {
		panic(fmt.Sprintf("validation: register nonblank: %v", err))
	}

	return &Engine{validate: v}
}

// Validate checks record, a pointer to or value of a tagged struct.
func (e *Engine) Validate(record any) Result {
	err := e.validate.Struct(record)
	if err == nil {
		return Result{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Failures: []FieldError{{Message: err.Error()}}}
	}

	recordType := reflect.TypeOf(record)
	for recordType.Kind() == reflect.Pointer {
		recordType = recordType.Elem()
	}

	failures := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failures = append(failures, FieldError{
			Field:   fe.StructField(),
			Message: message(recordType, fe),
		})
	}
	return Result{Failures: failures}
}

func message(recordType reflect.Type, fe validator.FieldError) string {
	label := fe.Field()

	switch fe.Tag() {
	case "nonblank", "required":
		return label + " is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
		}
	case "gte", "lte":
		if sf, ok := recordType.FieldByName(fe.StructField()); ok {
			if msg := sf.Tag.Get("range"); msg != "" {
				return msg
			}
		}
		return fmt.Sprintf("%s is out of range", label)
	}
	return fmt.Sprintf("%s is invalid", label)
}

func nonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func decimalValue(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
