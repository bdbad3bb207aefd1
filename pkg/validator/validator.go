package validator

import (
	"context"
	"errors"
	"fmt"
)

// Kind tags every validator so collaborators can dispatch without type inspection.
type Kind uint8

const (
	KindCustom Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindAny
	KindList
	KindDict
	KindTuple
	KindUnion
	KindObject
	KindTransform
)

var kindNames = [...]string{
	KindCustom:    "custom",
	KindString:    "string",
	KindNumber:    "number",
	KindBoolean:   "boolean",
	KindNull:      "null",
	KindAny:       "any",
	KindList:      "list",
	KindDict:      "dict",
	KindTuple:     "tuple",
	KindUnion:     "union",
	KindObject:    "object",
	KindTransform: "transform",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Validator is implemented by every node of a validator tree.
//
// Check and CheckAsync hold the type-specific logic and are only ever called
// with non-nil data; nil handling, defaults and custom messages are applied by
// Validate and ValidateAsync at every node.
type Validator interface {
	Kind() Kind
	Options() Options
	Check(data any, path Path) (any, error)
	CheckAsync(ctx context.Context, data any, path Path) (any, error)
}

// Options is the presence and messaging configuration shared by all validators.
type Options struct {
	optional   bool
	nullable   bool
	hasDefault bool
	defaultVal any
	defaultFn  func() any
	message    string
}

func (o Options) IsOptional() bool { return o.optional }
func (o Options) IsNullable() bool { return o.nullable }
func (o Options) HasDefault() bool { return o.hasDefault }

// Default resolves the configured default, calling the producer if one is set.
func (o Options) Default() any {
	if o.defaultFn != nil {
		return o.defaultFn()
	}
	return o.defaultVal
}

// StaticDefault returns the default value when it is not produced lazily.
func (o Options) StaticDefault() (any, bool) {
	if !o.hasDefault || o.defaultFn != nil {
		return nil, false
	}
	return o.defaultVal, true
}

// Message returns the custom failure message, if any.
func (o Options) Message() (string, bool) {
	return o.message, o.message != ""
}

// Required reports whether a missing value fails validation.
func (o Options) Required() bool {
	return !o.optional && !o.nullable && !o.hasDefault
}

func (o Options) withOptional() Options {
	o.optional = true
	return o
}

func (o Options) withNullable() Options {
	o.nullable = true
	return o
}

func (o Options) withDefault(value any) Options {
	o.hasDefault = true
	o.optional = true
	o.defaultVal = nil
	o.defaultFn = nil
	if fn, ok := value.(func() any); ok {
		o.defaultFn = fn
	} else {
		o.defaultVal = value
	}
	return o
}

func (o Options) withMessage(message string) Options {
	o.message = message
	return o
}

// Validate runs v against data synchronously.
func Validate(v Validator, data any) (any, error) {
	return validateAt(v, data, nil)
}

// ValidateAsync runs v against data, validating independent parts concurrently.
func ValidateAsync(ctx context.Context, v Validator, data any) (any, error) {
	return validateAtAsync(ctx, v, data, nil)
}

// ValidateAs validates data and asserts the result to T. A nil result yields the zero T.
func ValidateAs[T any](v Validator, data any) (T, error) {
	var zero T

	out, err := Validate(v, data)
	if err != nil || out == nil {
		return zero, err
	}

	t, ok := out.(T)
	if !ok {
		return zero, newFailure(CodeInvalidType, nil,
			fmt.Sprintf("cannot use %T as %T", out, zero),
			map[string]any{"expected": fmt.Sprintf("%T", zero), "actual": fmt.Sprintf("%T", out)})
	}
	return t, nil
}

func validateAt(v Validator, data any, path Path) (any, error) {
	opts := v.Options()
	if data == nil {
		return resolveNil(opts, path)
	}

	out, err := v.Check(data, path)
	if err != nil {
		return nil, wrapError(opts, err, path)
	}
	return out, nil
}

func validateAtAsync(ctx context.Context, v Validator, data any, path Path) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := v.Options()
	if data == nil {
		return resolveNil(opts, path)
	}

	out, err := v.CheckAsync(ctx, data, path)
	if err != nil {
		return nil, wrapError(opts, err, path)
	}
	return out, nil
}

func resolveNil(opts Options, path Path) (any, error) {
	switch {
	case opts.hasDefault:
		return opts.Default(), nil
	case opts.nullable, opts.optional:
		return nil, nil
	}

	f := newFailure(CodeRequired, path, "value is required", nil)
	if msg, ok := opts.Message(); ok {
		return nil, f.withMessage(msg)
	}
	return nil, f
}

// wrapError turns any error surfacing through a node into a *Failure carrying
// the node's custom message. Context errors pass through unchanged.
func wrapError(opts Options, err error, path Path) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	f, ok := AsFailure(err)
	if !ok {
		f = NewFailure(CodeCustom, path, err.Error())
		f.cause = err
	}

	if msg, ok := opts.Message(); ok {
		return f.withMessage(msg)
	}
	return f
}

// base carries Options for concrete validators.
type base struct {
	opts Options
}

func (b base) Options() Options { return b.opts }
