package validator

import "context"

// NullValidator accepts only nil. It is nullable by construction and offers no default.
type NullValidator struct {
	base
}

func Null() NullValidator {
	return NullValidator{base{opts: Options{nullable: true}}}
}

func (n NullValidator) Kind() Kind { return KindNull }

func (n NullValidator) Optional() NullValidator {
	n.opts = n.opts.withOptional()
	return n
}

func (n NullValidator) Error(message string) NullValidator {
	n.opts = n.opts.withMessage(message)
	return n
}

func (n NullValidator) Validate(data any) (any, error) {
	return Validate(n, data)
}

func (n NullValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, n, data)
}

func (n NullValidator) CheckAsync(_ context.Context, data any, path Path) (any, error) {
	return n.Check(data, path)
}

func (n NullValidator) Check(data any, path Path) (any, error) {
	return nil, typeMismatch(path, "null", data)
}
