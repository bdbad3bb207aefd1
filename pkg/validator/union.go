package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/dmitrymomot/sift/pkg/async"
)

// UnionValidator accepts a value matching any of its options.
type UnionValidator struct {
	base
	options       []Validator
	discriminator string
	mapping       map[string]Validator
}

// UnionInfo is the read-only configuration of a UnionValidator.
type UnionInfo struct {
	Options       []Validator
	Discriminator string
	Mapping       map[string]Validator
}

func Union(options ...Validator) UnionValidator {
	return UnionValidator{options: slices.Clone(options)}
}

func (u UnionValidator) Kind() Kind { return KindUnion }

func (u UnionValidator) Optional() UnionValidator {
	u.opts = u.opts.withOptional()
	return u
}

func (u UnionValidator) Nullable() UnionValidator {
	u.opts = u.opts.withNullable()
	return u
}

func (u UnionValidator) Default(value any) UnionValidator {
	u.opts = u.opts.withDefault(value)
	return u
}

func (u UnionValidator) DefaultFunc(fn func() any) UnionValidator {
	u.opts = u.opts.withDefault(fn)
	return u
}

func (u UnionValidator) Error(message string) UnionValidator {
	u.opts = u.opts.withMessage(message)
	return u
}

// Discriminator dispatches map input straight to mapping[input[key]] when the
// key holds a mapped value. Numeric and boolean values are looked up by their
// DiscriminatorTag form, so mapping key "1" matches the decoded integer 1.
// Other input falls back to trying every option.
func (u UnionValidator) Discriminator(key string, mapping map[string]Validator) UnionValidator {
	u.discriminator = key
	u.mapping = maps.Clone(mapping)
	return u
}

func (u UnionValidator) Info() UnionInfo {
	return UnionInfo{
		Options:       slices.Clone(u.options),
		Discriminator: u.discriminator,
		Mapping:       maps.Clone(u.mapping),
	}
}

func (u UnionValidator) Validate(data any) (any, error) {
	return Validate(u, data)
}

func (u UnionValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, u, data)
}

func (u UnionValidator) dispatch(data any) (Validator, bool) {
	if u.discriminator == "" {
		return nil, false
	}
	m, ok := asMap(data)
	if !ok {
		return nil, false
	}
	tag, ok := DiscriminatorTag(m[u.discriminator])
	if !ok {
		return nil, false
	}
	v, ok := u.mapping[tag]
	return v, ok
}

// DiscriminatorTag returns the mapping key for a scalar discriminator value.
// Strings are returned unchanged, integral numbers in decimal form, other
// floats in their shortest form and booleans as "true" or "false".
func DiscriminatorTag(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		f, err := v.Float64()
		if err != nil {
			return "", false
		}
		return formatFloatTag(f)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloatTag(rv.Float())
	case reflect.String:
		return rv.String(), true
	}
	return "", false
}

func formatFloatTag(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func (u UnionValidator) Check(data any, path Path) (any, error) {
	if v, ok := u.dispatch(data); ok {
		return validateAt(v, data, path)
	}

	errs := make([]error, len(u.options))
	for i, option := range u.options {
		out, err := validateAt(option, data, path)
		if err == nil {
			return out, nil
		}
		errs[i] = err
	}
	return nil, u.noMatch(path, errs)
}

// CheckAsync runs every option concurrently and returns the first success in
// declaration order.
func (u UnionValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	if v, ok := u.dispatch(data); ok {
		return validateAtAsync(ctx, v, data, path)
	}

	futures := make([]*async.Future[any], len(u.options))
	for i, option := range u.options {
		futures[i] = async.Async(ctx, data, func(ctx context.Context, data any) (any, error) {
			return validateAtAsync(ctx, option, data, path)
		})
	}

	results, errs := async.Settle(futures...)
	for i, err := range errs {
		if err == nil {
			return results[i], nil
		}
	}
	return nil, u.noMatch(path, errs)
}

func (u UnionValidator) noMatch(path Path, errs []error) error {
	entries := make(Failures, 0, len(errs))
	for i, err := range errs {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		f, ok := AsFailure(err)
		if !ok {
			f = NewFailure(CodeCustom, path, err.Error())
		}
		entry := *f
		entry.Label = fmt.Sprintf("Option %d", i+1)
		entries = append(entries, &entry)
	}
	return joinFailures(CodeInvalidUnion, path, "value does not match any of the expected types", entries)
}
