package validator

import "context"

// TransformValidator validates with an inner validator, then maps the result.
// The function never sees nil input: nil is resolved by the options copied
// from the inner validator when the transform was created.
type TransformValidator struct {
	base
	inner Validator
	fn    func(any) (any, error)
}

func Transform(inner Validator, fn func(any) (any, error)) TransformValidator {
	return TransformValidator{base: base{opts: inner.Options()}, inner: inner, fn: fn}
}

func (t TransformValidator) Kind() Kind { return KindTransform }

// Inner returns the wrapped validator.
func (t TransformValidator) Inner() Validator { return t.inner }

func (t TransformValidator) Optional() TransformValidator {
	t.opts = t.opts.withOptional()
	return t
}

func (t TransformValidator) Nullable() TransformValidator {
	t.opts = t.opts.withNullable()
	return t
}

func (t TransformValidator) Default(value any) TransformValidator {
	t.opts = t.opts.withDefault(value)
	return t
}

func (t TransformValidator) DefaultFunc(fn func() any) TransformValidator {
	t.opts = t.opts.withDefault(fn)
	return t
}

func (t TransformValidator) Error(message string) TransformValidator {
	t.opts = t.opts.withMessage(message)
	return t
}

func (t TransformValidator) Validate(data any) (any, error) {
	return Validate(t, data)
}

func (t TransformValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, t, data)
}

func (t TransformValidator) Check(data any, path Path) (any, error) {
	out, err := validateAt(t.inner, data, path)
	if err != nil {
		return nil, err
	}
	return t.apply(out)
}

func (t TransformValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	out, err := validateAtAsync(ctx, t.inner, data, path)
	if err != nil {
		return nil, err
	}
	return t.apply(out)
}

func (t TransformValidator) apply(value any) (any, error) {
	if t.fn == nil {
		return value, nil
	}
	return t.fn(value)
}
