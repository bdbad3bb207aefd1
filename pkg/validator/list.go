package validator

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/sift/pkg/async"
)

// ListValidator validates a homogeneous sequence.
type ListValidator struct {
	base
	item     Validator
	min      int
	max      int
	unique   bool
	nonempty bool
}

// ListInfo is the read-only configuration of a ListValidator.
type ListInfo struct {
	Item      Validator
	MinLength *int
	MaxLength *int
	Unique    bool
	Nonempty  bool
}

// List validates every element with item. A nil item leaves elements unchecked.
func List(item Validator) ListValidator {
	return ListValidator{item: item, min: -1, max: -1}
}

func (l ListValidator) Kind() Kind { return KindList }

func (l ListValidator) Optional() ListValidator {
	l.opts = l.opts.withOptional()
	return l
}

func (l ListValidator) Nullable() ListValidator {
	l.opts = l.opts.withNullable()
	return l
}

func (l ListValidator) Default(value any) ListValidator {
	l.opts = l.opts.withDefault(value)
	return l
}

func (l ListValidator) DefaultFunc(fn func() any) ListValidator {
	l.opts = l.opts.withDefault(fn)
	return l
}

func (l ListValidator) Error(message string) ListValidator {
	l.opts = l.opts.withMessage(message)
	return l
}

func (l ListValidator) Min(n int) ListValidator {
	l.min = n
	return l
}

func (l ListValidator) Max(n int) ListValidator {
	l.max = n
	return l
}

func (l ListValidator) Length(n int) ListValidator {
	l.min, l.max = n, n
	return l
}

func (l ListValidator) Unique() ListValidator {
	l.unique = true
	return l
}

func (l ListValidator) Nonempty() ListValidator {
	l.nonempty = true
	return l
}

func (l ListValidator) Info() ListInfo {
	info := ListInfo{Item: l.item, Unique: l.unique, Nonempty: l.nonempty}
	if l.min >= 0 {
		info.MinLength = ptr(l.min)
	}
	if l.max >= 0 {
		info.MaxLength = ptr(l.max)
	}
	return info
}

func (l ListValidator) Validate(data any) (any, error) {
	return Validate(l, data)
}

func (l ListValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, l, data)
}

func (l ListValidator) Check(data any, path Path) (any, error) {
	items, err := l.precheck(data, path)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(items))
	for i, item := range items {
		if l.item == nil {
			out[i] = item
			continue
		}
		v, err := validateAt(l.item, item, path.Append(Index(i)))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CheckAsync validates every item concurrently. All items run to completion;
// the failure of the lowest index is reported.
func (l ListValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	items, err := l.precheck(data, path)
	if err != nil {
		return nil, err
	}
	if l.item == nil {
		return append([]any{}, items...), nil
	}

	futures := make([]*async.Future[any], len(items))
	for i, item := range items {
		futures[i] = async.Async(ctx, item, func(ctx context.Context, item any) (any, error) {
			return validateAtAsync(ctx, l.item, item, path.Append(Index(i)))
		})
	}

	out, err := async.WaitAll(futures...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// precheck runs the type, length and uniqueness checks that precede item validation.
func (l ListValidator) precheck(data any, path Path) ([]any, error) {
	items, ok := asSlice(data)
	if !ok {
		return nil, typeMismatch(path, "array", data)
	}

	if err := checkCount(path, len(items), l.nonempty, l.min, l.max, "items"); err != nil {
		return nil, err
	}

	if l.unique {
		if i := firstDuplicate(items); i >= 0 {
			return nil, newFailure(CodeUnique, path,
				fmt.Sprintf("items must be unique (duplicate at index %d)", i),
				map[string]any{"index": i})
		}
	}
	return items, nil
}

// checkCount validates a collection size; noun is "items" or "properties".
func checkCount(path Path, n int, nonempty bool, min, max int, noun string) *Failure {
	switch {
	case nonempty && n == 0:
		return newFailure(CodeLength, path, "must not be empty", nil)
	case min >= 0 && min == max && n != min:
		return newFailure(CodeLength, path,
			fmt.Sprintf("must have exactly %d %s", min, noun),
			map[string]any{"length": min})
	case min >= 0 && n < min:
		return newFailure(CodeLength, path,
			fmt.Sprintf("must have at least %d %s", min, noun),
			map[string]any{"min": min})
	case max >= 0 && n > max:
		return newFailure(CodeLength, path,
			fmt.Sprintf("must have at most %d %s", max, noun),
			map[string]any{"max": max})
	}
	return nil
}
