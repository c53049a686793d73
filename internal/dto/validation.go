package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid input")

const MsgNoFieldProvided = "At least one field must be provided for update"

// PartialUpdate is implemented by update requests whose fields are all optional.
type PartialUpdate interface {
	OptionalFields() []any
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}

	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}

		v.RegisterStructValidation(validatePrice, ProductRequest{}, ProductUpdateRequest{})

		validate = v
	})

	return validate
}

// Validate checks struct tags and, for PartialUpdate values, that at least one field is set.
// It returns a *ValidationError or nil.
func Validate(v any) error {
	var violations []Violation

	if err := validatorInstance().Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate: %w", err)
		}

		for _, fe := range fieldErrs {
			violations = append(violations, Violation{
				Field:   fieldPath(fe),
				Message: message(fe),
			})
		}
	}

	if u, ok := v.(PartialUpdate); ok && !AnyFieldSet(u) {
		violations = append(violations, Violation{Message: MsgNoFieldProvided})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	return nil
}

// AnyFieldSet reports whether at least one optional field of u carries a value.
// A nil u is vacuously valid.
func AnyFieldSet(u PartialUpdate) bool {
	if u == nil {
		return true
	}
	if rv := reflect.ValueOf(u); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return true
	}

	for _, f := range u.OptionalFields() {
		if isSet(f) {
			return true
		}
	}

	return false
}

func isSet(f any) bool {
	switch v := f.(type) {
	case nil:
		return false
	case *string:
		return v != nil && strings.TrimSpace(*v) != ""
	case *decimal.Decimal:
		return v != nil
	case []int64:
		return len(v) > 0
	}

	rv := reflect.ValueOf(f)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}

	return true
}

// priceScale and maxPrice mirror the NUMERIC(12,2) price columns.
const priceScale = 2

var maxPrice = decimal.New(1, 10)

func validatePrice(sl validator.StructLevel) {
	var price *decimal.Decimal
	switch r := sl.Current().Interface().(type) {
	case ProductRequest:
		price = &r.Price
	case ProductUpdateRequest:
		price = r.Price
	}

	// required and gt report missing and non-positive prices
	if price == nil || !price.IsPositive() {
		return
	}

	if !price.Equal(price.Round(priceScale)) {
		sl.ReportError(*price, "price", "Price", "scale", fmt.Sprint(priceScale))
	}
	if price.GreaterThanOrEqual(maxPrice) {
		sl.ReportError(*price, "price", "Price", "lt", maxPrice.String())
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

var customMessages = map[string]string{
	"price.gt":              "Price must be positive",
	"price.required":        "Price cannot be empty",
	"categoriesId.min":      "At least one category is required",
	"categoriesId.required": "At least one category is required",
	"items.min":             "At least one item is required",
	"items.required":        "At least one item is required",
	"items.unique":          "Items must not repeat a product",
	"price.scale":           "Price must have at most 2 decimal places",
	"price.lt":              "Price must be less than 10000000000",
}

func message(fe validator.FieldError) string {
	if msg, ok := customMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	name := label(fe.Field())

	switch fe.Tag() {
	case "required", "notblank", "min":
		return fmt.Sprintf("%s cannot be empty", name)
	case "email":
		return "Invalid email format"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func label(field string) string {
	if field == "email" {
		return "E-mail"
	}
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		return field
	}

	return strings.ToUpper(field[:1]) + field[1:]
}
