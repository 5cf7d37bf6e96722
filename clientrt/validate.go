package clientrt

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	validateErr  error

	patternCache sync.Map // string -> *regexp.Regexp, or nil for invalid patterns
)

func tagValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Use json tags as field names for better error messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "-" {
				return ""
			}
			if idx := strings.Index(name, ","); idx != -1 {
				name = name[:idx]
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		if err := v.RegisterValidation("pattern", validatePattern); err != nil {
			validateErr = fmt.Errorf("register pattern validator: %w", err)
			return
		}
		if err := v.RegisterValidation("multipleof", validateMultipleOf); err != nil {
			validateErr = fmt.Errorf("register multipleof validator: %w", err)
			return
		}
		validate = v
	})
	return validate, validateErr
}

// validatePattern matches a string field against the regular expression in
// its sibling `pattern` struct tag. A pattern that does not compile is not
// enforced.
func validatePattern(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	parent := fl.Parent().Type()
	for parent.Kind() == reflect.Pointer {
		parent = parent.Elem()
	}
	sf, ok := parent.FieldByName(fl.StructFieldName())
	if !ok {
		return true
	}
	expr := sf.Tag.Get("pattern")
	if expr == "" {
		return true
	}
	re := compilePattern(expr)
	if re == nil {
		return true
	}
	return re.MatchString(field.String())
}

func compilePattern(expr string) *regexp.Regexp {
	if cached, ok := patternCache.Load(expr); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		re = nil
	}
	patternCache.Store(expr, re)
	return re
}

// validateMultipleOf checks numeric fields against the tag parameter.
func validateMultipleOf(fl validator.FieldLevel) bool {
	step, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil || step <= 0 {
		return false
	}
	var v float64
	field := fl.Field()
	switch {
	case field.CanInt():
		v = float64(field.Int())
	case field.CanUint():
		v = float64(field.Uint())
	case field.CanFloat():
		v = field.Float()
	default:
		return true
	}
	q := v / step
	return math.Abs(q-math.Round(q)) < 1e-9
}

// Validate checks v against its validate struct tags. Values that are not
// structs (or pointers to structs), nil and Empty always pass.
func Validate(v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(Empty); ok {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	tv, err := tagValidator()
	if err != nil {
		return err
	}
	if err := tv.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &ValidationError{Errs: verrs}
		}
		return fmt.Errorf("clientrt: validate: %w", err)
	}
	return nil
}
