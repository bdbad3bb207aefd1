package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// NumberValidator validates numeric input of any Go integer or float kind.
// Booleans are rejected.
type NumberValidator struct {
	base
	min        *float64
	max        *float64
	integer    bool
	positive   bool
	negative   bool
	multipleOf *float64
}

// NumberInfo is the read-only configuration of a NumberValidator.
type NumberInfo struct {
	Min        *float64
	Max        *float64
	Integer    bool
	Positive   bool
	Negative   bool
	MultipleOf *float64
}

func Number() NumberValidator {
	return NumberValidator{}
}

func (n NumberValidator) Kind() Kind { return KindNumber }

func (n NumberValidator) Optional() NumberValidator {
	n.opts = n.opts.withOptional()
	return n
}

func (n NumberValidator) Nullable() NumberValidator {
	n.opts = n.opts.withNullable()
	return n
}

func (n NumberValidator) Default(value any) NumberValidator {
	n.opts = n.opts.withDefault(value)
	return n
}

func (n NumberValidator) DefaultFunc(fn func() any) NumberValidator {
	n.opts = n.opts.withDefault(fn)
	return n
}

func (n NumberValidator) Error(message string) NumberValidator {
	n.opts = n.opts.withMessage(message)
	return n
}

func (n NumberValidator) Min(v float64) NumberValidator {
	n.min = &v
	return n
}

func (n NumberValidator) Max(v float64) NumberValidator {
	n.max = &v
	return n
}

// Int requires a finite integral value. Integral floats within the int64
// range are returned as int64.
func (n NumberValidator) Int() NumberValidator {
	n.integer = true
	return n
}

func (n NumberValidator) Positive() NumberValidator {
	n.positive = true
	return n
}

func (n NumberValidator) Negative() NumberValidator {
	n.negative = true
	return n
}

func (n NumberValidator) MultipleOf(v float64) NumberValidator {
	n.multipleOf = &v
	return n
}

func (n NumberValidator) Info() NumberInfo {
	return NumberInfo{
		Min:        n.min,
		Max:        n.max,
		Integer:    n.integer,
		Positive:   n.positive,
		Negative:   n.negative,
		MultipleOf: n.multipleOf,
	}
}

func (n NumberValidator) Validate(data any) (any, error) {
	return Validate(n, data)
}

func (n NumberValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, n, data)
}

func (n NumberValidator) CheckAsync(_ context.Context, data any, path Path) (any, error) {
	return n.Check(data, path)
}

func (n NumberValidator) Check(data any, path Path) (any, error) {
	value, ok := toFloat(data)
	if !ok || math.IsNaN(value) {
		return nil, typeMismatch(path, "number", data)
	}

	if n.integer && (math.IsInf(value, 0) || value != math.Trunc(value)) {
		return nil, newFailure(CodeRange, path, "must be an integer", nil)
	}
	if n.min != nil && value < *n.min {
		return nil, newFailure(CodeRange, path,
			fmt.Sprintf("must be at least %v", *n.min),
			map[string]any{"min": *n.min})
	}
	if n.max != nil && value > *n.max {
		return nil, newFailure(CodeRange, path,
			fmt.Sprintf("must be at most %v", *n.max),
			map[string]any{"max": *n.max})
	}
	if n.positive && value <= 0 {
		return nil, newFailure(CodeRange, path, "must be positive", nil)
	}
	if n.negative && value >= 0 {
		return nil, newFailure(CodeRange, path, "must be negative", nil)
	}
	if n.multipleOf != nil && *n.multipleOf != 0 {
		q := value / *n.multipleOf
		if math.Abs(q-math.Round(q)) > 1e-10 {
			return nil, newFailure(CodeRange, path,
				fmt.Sprintf("must be a multiple of %v", *n.multipleOf),
				map[string]any{"multiple_of": *n.multipleOf})
		}
	}

	return n.normalize(data, value), nil
}

// normalize returns exact integers as int64. JSON numbers that fit int64 keep
// full precision; integral floats outside the int64 range stay float64.
func (n NumberValidator) normalize(data any, value float64) any {
	switch v := data.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if n.integer && inInt64Range(value) {
			return int64(value)
		}
		return value
	case float32, float64:
		if n.integer && inInt64Range(value) {
			return int64(value)
		}
	}
	return data
}

// inInt64Range reports whether value converts to int64 without overflow.
// float64(math.MaxInt64) rounds up to 2^63, hence the strict upper bound.
func inInt64Range(value float64) bool {
	return value >= math.MinInt64 && value < math.MaxInt64
}

// toFloat converts any numeric value to float64. Booleans are not numbers.
func toFloat(data any) (float64, bool) {
	switch v := data.(type) {
	case bool:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
