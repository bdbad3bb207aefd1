package validator

import (
	"context"
	"fmt"
	"slices"
)

// ObjectValidator is a keyed-map schema supporting schema algebra:
// Extend, Exclude and Omit each return a new schema.
type ObjectValidator struct {
	dict DictValidator
}

// ObjectInfo is the read-only configuration of an ObjectValidator.
type ObjectInfo struct {
	DictInfo
	Excluded []string
}

func Object(shape Shape) ObjectValidator {
	return ObjectValidator{dict: Dict(shape)}
}

func ObjectFields(fields ...Field) ObjectValidator {
	return ObjectValidator{dict: DictFields(fields...)}
}

func (o ObjectValidator) Kind() Kind       { return KindObject }
func (o ObjectValidator) Options() Options { return o.dict.opts }

func (o ObjectValidator) Optional() ObjectValidator {
	o.dict = o.dict.Optional()
	return o
}

func (o ObjectValidator) Nullable() ObjectValidator {
	o.dict = o.dict.Nullable()
	return o
}

func (o ObjectValidator) Default(value any) ObjectValidator {
	o.dict = o.dict.Default(value)
	return o
}

func (o ObjectValidator) DefaultFunc(fn func() any) ObjectValidator {
	o.dict = o.dict.DefaultFunc(fn)
	return o
}

func (o ObjectValidator) Error(message string) ObjectValidator {
	o.dict = o.dict.Error(message)
	return o
}

func (o ObjectValidator) Required(keys ...string) ObjectValidator {
	o.dict = o.dict.Required(keys...)
	return o
}

func (o ObjectValidator) AdditionalProperties(policy Additional) ObjectValidator {
	o.dict = o.dict.AdditionalProperties(policy)
	return o
}

func (o ObjectValidator) PatternProperty(expr string, v Validator) ObjectValidator {
	o.dict = o.dict.PatternProperty(expr, v)
	return o
}

func (o ObjectValidator) MinProperties(n int) ObjectValidator {
	o.dict = o.dict.MinProperties(n)
	return o
}

func (o ObjectValidator) MaxProperties(n int) ObjectValidator {
	o.dict = o.dict.MaxProperties(n)
	return o
}

// Extend adds the fields of shape in sorted key order. Every other setting is
// carried over. It panics with ErrFieldConflict if a key is already declared.
func (o ObjectValidator) Extend(shape Shape) ObjectValidator {
	return o.ExtendFields(shape.fields()...)
}

// ExtendFields is like Extend but keeps the order of fields.
func (o ObjectValidator) ExtendFields(fields ...Field) ObjectValidator {
	for _, f := range fields {
		if _, ok := o.dict.index[f.Name]; ok {
			panic(fmt.Errorf("%w: %q", ErrFieldConflict, f.Name))
		}
	}

	d := o.dict
	d = d.withFields(append(slices.Clone(d.fields), fields...))
	required := append(slices.Clone(d.required), derivedRequired(fields)...)
	slices.Sort(required)
	d.required = slices.Compact(required)
	o.dict = d
	return o
}

// Exclude skips keys during validation. They stay declared, are no longer
// required, and their values pass through unchanged. Keys that are not
// declared are ignored and stay subject to the additional-properties policy.
func (o ObjectValidator) Exclude(keys ...string) ObjectValidator {
	skip := cloneSet(o.dict.skip)
	for _, k := range keys {
		if _, ok := o.dict.index[k]; ok {
			skip[k] = struct{}{}
		}
	}
	o.dict.skip = skip
	return o
}

// Omit removes keys from the schema. Input still holding them is subject to
// the additional-properties policy.
func (o ObjectValidator) Omit(keys ...string) ObjectValidator {
	d := o.dict
	d = d.withFields(slices.DeleteFunc(slices.Clone(d.fields), func(f Field) bool {
		return slices.Contains(keys, f.Name)
	}))
	d.required = slices.DeleteFunc(slices.Clone(d.required), func(k string) bool {
		return slices.Contains(keys, k)
	})

	skip := cloneSet(d.skip)
	for _, k := range keys {
		delete(skip, k)
	}
	d.skip = skip

	o.dict = d
	return o
}

// FieldNames returns the declared keys, excluded ones included, in declaration order.
func (o ObjectValidator) FieldNames() []string {
	return o.dict.FieldNames()
}

// Fields returns the declared fields in declaration order.
func (o ObjectValidator) Fields() []Field {
	return slices.Clone(o.dict.fields)
}

// ExcludedFields returns the keys skipped during validation, sorted.
func (o ObjectValidator) ExcludedFields() []string {
	return sortedKeys(o.dict.skip)
}

// Dict returns the underlying keyed-map validator, exclusions applied.
func (o ObjectValidator) Dict() DictValidator {
	return o.dict
}

func (o ObjectValidator) Info() ObjectInfo {
	return ObjectInfo{DictInfo: o.dict.Info(), Excluded: o.ExcludedFields()}
}

func (o ObjectValidator) Validate(data any) (any, error) {
	return Validate(o, data)
}

func (o ObjectValidator) ValidateAsync(ctx context.Context, data any) (any, error) {
	return ValidateAsync(ctx, o, data)
}

func (o ObjectValidator) Check(data any, path Path) (any, error) {
	return o.dict.Check(data, path)
}

func (o ObjectValidator) CheckAsync(ctx context.Context, data any, path Path) (any, error) {
	return o.dict.CheckAsync(ctx, data, path)
}
