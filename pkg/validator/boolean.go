package validator

import (
	"context"
	"strings"
)

var (
	truthyStrings = map[string]bool{"true": true, "yes": true, "y": true, "1": true, "on": true}
	falsyStrings  = map[string]bool{"false": true, "no": true, "n": true, "0": true, "off": true}
)

// BooleanValidator validates booleans.
type BooleanValidator struct {
	base
	truthy bool
}

type BooleanInfo struct {
	Truthy bool
}

func Boolean() BooleanValidator {
	return BooleanValidator{}
}

func (b BooleanValidator) Kind() Kind { return KindBoolean }

func (b BooleanValidator) Optional() BooleanValidator {
	b.opts = b.opts.withOptional()
	return b
}

func (b BooleanValidator) Nullable() BooleanValidator {
	b.opts = b.opts.withNullable()
	return b
}

func (b BooleanValidator) Default(value any) BooleanValidator {
	b.opts = b.opts.withDefault(value)
	return b
}

func (b BooleanValidator) DefaultFunc(fn func() any) BooleanValidator {
	b.opts = b.opts.withDefault(fn)
	return b
}

func (b BooleanValidator) Error(message string) BooleanValidator {
	b.opts = b.opts.withMessage(message)
	return b
}

// Truthy also accepts "yes"/"no" style strings and the numbers 0 and 1.
func (b BooleanValidator) Truthy() BooleanValidator {
	b.truthy = true
	return b
}

func (b BooleanValidator) Info() BooleanInfo {
	return BooleanInfo{Truthy: b.truthy}
}

func (b BooleanValidator) Validate(data any) (any, error) {
	return Validate(b, data)
}

func (b BooleanValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, b, data)
}

func (b BooleanValidator) CheckAsync(_ context.Context, data any, path Path) (any, error) {
	return b.Check(data, path)
}

func (b BooleanValidator) Check(data any, path Path) (any, error) {
	if v, ok := data.(bool); ok {
		return v, nil
	}

	if b.truthy {
		if s, ok := asString(data); ok {
			s = strings.ToLower(strings.TrimSpace(s))
			switch {
			case truthyStrings[s]:
				return true, nil
			case falsyStrings[s]:
				return false, nil
			}
		}
		if f, ok := toFloat(data); ok && (f == 0 || f == 1) {
			return f == 1, nil
		}
	}

	return nil, typeMismatch(path, "boolean", data)
}
