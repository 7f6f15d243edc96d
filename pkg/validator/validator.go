package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/bizmanager-api/pkg/errors"
)

// Validator turns struct tag violations into a per-field message map keyed by
// the JSON field name. Every violation is reported, not only the first one.
//
// Rules live in the "validate" tag. Fields that must be present when a
// resource is created, but may be omitted from a partial update, are marked
// with a separate "create" tag and checked by Required.
type Validator struct {
	validate *validator.Validate
	create   *validator.Validate
}

func New() *Validator {
	return &Validator{
		validate: newEngine("validate"),
		create:   newEngine("create"),
	}
}

func newEngine(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimals are compared as floats so gt/gte/lte work on prices and quantities
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	_ = v.RegisterValidation("places", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl)
		if !ok {
			return true
		}
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return d.Equal(d.Round(int32(places)))
	})

	return v
}

// decimalField reads the untranslated decimal behind fl. The custom type
// func above hands validation funcs a float64, which cannot tell 0.004 apart
// from its rounded neighbours.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := fl.Parent()
	for parent.Kind() == reflect.Ptr {
		if parent.IsNil() {
			return decimal.Decimal{}, false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return decimal.Decimal{}, false
	}

	field := parent.FieldByName(fl.StructFieldName())
	if !field.IsValid() || !field.CanInterface() {
		return decimal.Decimal{}, false
	}
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d, true
	case *decimal.Decimal:
		if d == nil {
			return decimal.Decimal{}, false
		}
		return *d, true
	}
	return decimal.Decimal{}, false
}

// Required reports fields tagged create:"required" that are missing from s.
func (v *Validator) Required(s interface{}) errors.FieldErrors {
	return collect(v.create.Struct(s))
}

// Struct validates s and returns nil when it satisfies every tag.
func (v *Validator) Struct(s interface{}) errors.FieldErrors {
	return collect(v.validate.Struct(s))
}

func collect(err error) errors.FieldErrors {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.FieldErrors{errors.MessageKey: {err.Error()}}
	}

	out := errors.FieldErrors{}
	for _, fe := range verrs {
		field, path := splitNamespace(fe.Namespace())
		msg := message(fe)
		if path != "" {
			msg = fmt.Sprintf("%s: %s", path, msg)
		}
		out.Add(field, msg)
	}
	return out
}

// splitNamespace turns "Request.products[1].quantity" into ("products", "[1].quantity").
func splitNamespace(ns string) (string, string) {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	end := strings.IndexAny(ns, ".[")
	if end < 0 {
		return ns, ""
	}
	return ns[:end], strings.TrimPrefix(ns[end:], ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "digits":
		return "Enter a number containing only digits."
	case "uuid":
		return "Must be a valid UUID."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "places":
		return fmt.Sprintf("Ensure that there are no more than %s decimal places.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}
