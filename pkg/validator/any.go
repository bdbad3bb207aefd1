package validator

import "context"

// AnyValidator accepts every value, nil included.
type AnyValidator struct {
	base
}

func Any() AnyValidator {
	return AnyValidator{base{opts: Options{nullable: true}}}
}

func (a AnyValidator) Kind() Kind { return KindAny }

func (a AnyValidator) Optional() AnyValidator {
	a.opts = a.opts.withOptional()
	return a
}

func (a AnyValidator) Default(value any) AnyValidator {
	a.opts = a.opts.withDefault(value)
	return a
}

func (a AnyValidator) DefaultFunc(fn func() any) AnyValidator {
	a.opts = a.opts.withDefault(fn)
	return a
}

func (a AnyValidator) Error(message string) AnyValidator {
	a.opts = a.opts.withMessage(message)
	return a
}

func (a AnyValidator) Validate(data any) (any, error) {
	return Validate(a, data)
}

func (a AnyValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, a, data)
}

func (a AnyValidator) CheckAsync(_ context.Context, data any, _ Path) (any, error) {
	return data, nil
}

func (a AnyValidator) Check(data any, _ Path) (any, error) {
	return data, nil
}
