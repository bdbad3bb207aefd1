package validator

import "context"

// CheckFunc validates data located at path and returns the value to keep.
type CheckFunc func(data any, path Path) (any, error)

// CheckAsyncFunc is the context-aware counterpart of CheckFunc.
type CheckAsyncFunc func(ctx context.Context, data any, path Path) (any, error)

// CustomValidator wraps caller-supplied logic, typically checks that perform I/O.
// Plain errors it returns become failures with CodeCustom at the node's path.
// The functions must be safe for concurrent use.
type CustomValidator struct {
	base
	name  string
	check CheckFunc
	async CheckAsyncFunc
}

func Custom(name string, check CheckFunc) CustomValidator {
	return CustomValidator{name: name, check: check}
}

// Predicate builds a custom validator failing with message when ok returns false.
func Predicate(name string, ok func(any) bool, message string) CustomValidator {
	return Custom(name, func(data any, path Path) (any, error) {
		if !ok(data) {
			return nil, NewFailure(CodeCustom, path, message)
		}
		return data, nil
	})
}

func (c CustomValidator) Kind() Kind { return KindCustom }

// Name identifies the validator to collaborators such as schema generators.
func (c CustomValidator) Name() string { return c.name }

// Async sets the function used by ValidateAsync.
func (c CustomValidator) Async(fn CheckAsyncFunc) CustomValidator {
	c.async = fn
	return c
}

func (c CustomValidator) Optional() CustomValidator {
	c.opts = c.opts.withOptional()
	return c
}

func (c CustomValidator) Nullable() CustomValidator {
	c.opts = c.opts.withNullable()
	return c
}

func (c CustomValidator) Default(value any) CustomValidator {
	c.opts = c.opts.withDefault(value)
	return c
}

func (c CustomValidator) DefaultFunc(fn func() any) CustomValidator {
	c.opts = c.opts.withDefault(fn)
	return c
}

func (c CustomValidator) Error(message string) CustomValidator {
	c.opts = c.opts.withMessage(message)
	return c
}

func (c CustomValidator) Validate(data any) (any, error) {
	return Validate(c, data)
}

func (c CustomValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, c, data)
}

func (c CustomValidator) Check(data any, path Path) (any, error) {
	switch {
	case c.check != nil:
		return c.check(data, path)
	case c.async != nil:
		return c.async(context.Background(), data, path)
	}
	return data, nil
}

func (c CustomValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	if c.async != nil {
		return c.async(ctx, data, path)
	}
	return c.Check(data, path)
}
