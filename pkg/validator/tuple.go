package validator

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrymomot/sift/pkg/async"
)

// TupleValidator validates positional items, with an optional validator for
// trailing elements.
type TupleValidator struct {
	base
	items []Validator
	rest  Validator
	min   int
	max   int
}

// TupleInfo is the read-only configuration of a TupleValidator.
// MaxLength is nil when a rest validator allows unbounded trailing items.
type TupleInfo struct {
	Items     []Validator
	Rest      Validator
	MinLength int
	MaxLength *int
}

func Tuple(items ...Validator) TupleValidator {
	return TupleValidator{items: slices.Clone(items), min: len(items), max: -1}
}

func (t TupleValidator) Kind() Kind { return KindTuple }

func (t TupleValidator) Optional() TupleValidator {
	t.opts = t.opts.withOptional()
	return t
}

func (t TupleValidator) Nullable() TupleValidator {
	t.opts = t.opts.withNullable()
	return t
}

func (t TupleValidator) Default(value any) TupleValidator {
	t.opts = t.opts.withDefault(value)
	return t
}

func (t TupleValidator) DefaultFunc(fn func() any) TupleValidator {
	t.opts = t.opts.withDefault(fn)
	return t
}

func (t TupleValidator) Error(message string) TupleValidator {
	t.opts = t.opts.withMessage(message)
	return t
}

// Rest validates every element beyond the positional ones.
func (t TupleValidator) Rest(v Validator) TupleValidator {
	t.rest = v
	return t
}

// Min sets the minimum length; it never drops below the positional count.
func (t TupleValidator) Min(n int) TupleValidator {
	t.min = max(n, len(t.items))
	return t
}

// Max bounds the number of elements. It panics unless a rest validator is set.
func (t TupleValidator) Max(n int) TupleValidator {
	if t.rest == nil {
		panic(ErrRestRequired)
	}
	t.max = max(n, len(t.items))
	return t
}

func (t TupleValidator) Info() TupleInfo {
	info := TupleInfo{Items: slices.Clone(t.items), Rest: t.rest, MinLength: t.min}
	if limit, ok := t.maxLength(); ok {
		info.MaxLength = ptr(limit)
	}
	return info
}

func (t TupleValidator) maxLength() (int, bool) {
	switch {
	case t.rest == nil:
		return len(t.items), true
	case t.max >= 0:
		return t.max, true
	}
	return 0, false
}

func (t TupleValidator) Validate(data any) (any, error) {
	return Validate(t, data)
}

func (t TupleValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, t, data)
}

func (t TupleValidator) precheck(data any, path Path) ([]any, error) {
	items, ok := asSlice(data)
	if !ok {
		return nil, typeMismatch(path, "array", data)
	}

	limit, bounded := t.maxLength()
	switch {
	case bounded && t.min == limit && len(items) != limit:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must have exactly %d items", limit),
			map[string]any{"length": limit})
	case len(items) < t.min:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must have at least %d items", t.min),
			map[string]any{"min": t.min})
	case bounded && len(items) > limit:
		return nil, newFailure(CodeLength, path,
			fmt.Sprintf("must have at most %d items", limit),
			map[string]any{"max": limit})
	}
	return items, nil
}

func (t TupleValidator) at(i int) Validator {
	if i < len(t.items) {
		return t.items[i]
	}
	return t.rest
}

func (t TupleValidator) Check(data any, path Path) (any, error) {
	items, err := t.precheck(data, path)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(items))
	for i, item := range items {
		v, err := validateAt(t.at(i), item, path.Append(Index(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CheckAsync validates every position concurrently and reports the failure
// of the lowest position.
func (t TupleValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	items, err := t.precheck(data, path)
	if err != nil {
		return nil, err
	}

	futures := make([]*async.Future[any], len(items))
	for i, item := range items {
		futures[i] = async.Async(ctx, item, func(ctx context.Context, item any) (any, error) {
			return validateAtAsync(ctx, t.at(i), item, path.Append(Index(i)))
		})
	}

	out, err := async.WaitAll(futures...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
