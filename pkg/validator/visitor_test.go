package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sift/pkg/validator"
)

// kindNamer reports the visitor method that was called.
type kindNamer struct{}

func (kindNamer) String(validator.StringValidator) string       { return "string" }
func (kindNamer) Number(validator.NumberValidator) string       { return "number" }
func (kindNamer) Boolean(validator.BooleanValidator) string     { return "boolean" }
func (kindNamer) Null(validator.NullValidator) string           { return "null" }
func (kindNamer) Any(validator.AnyValidator) string             { return "any" }
func (kindNamer) List(validator.ListValidator) string           { return "list" }
func (kindNamer) Dict(validator.DictValidator) string           { return "dict" }
func (kindNamer) Tuple(validator.TupleValidator) string         { return "tuple" }
func (kindNamer) Union(validator.UnionValidator) string         { return "union" }
func (kindNamer) Object(validator.ObjectValidator) string       { return "object" }
func (kindNamer) Transform(validator.TransformValidator) string { return "transform" }
func (kindNamer) Custom(validator.Validator) string             { return "custom" }

// foreign implements Validator outside the package and claims a built-in kind.
type foreign struct{}

func (foreign) Kind() validator.Kind                       { return validator.KindString }
func (foreign) Options() validator.Options                 { return validator.Options{} }
func (foreign) Check(d any, _ validator.Path) (any, error) { return d, nil }
func (foreign) CheckAsync(_ context.Context, d any, _ validator.Path) (any, error) {
	return d, nil
}

func TestVisit(t *testing.T) {
	tests := []struct {
		v    validator.Validator
		want string
	}{
		{validator.String(), "string"},
		{validator.Number(), "number"},
		{validator.Boolean(), "boolean"},
		{validator.Null(), "null"},
		{validator.Any(), "any"},
		{validator.List(nil), "list"},
		{validator.Dict(nil), "dict"},
		{validator.Tuple(), "tuple"},
		{validator.Union(), "union"},
		{validator.Object(nil), "object"},
		{validator.Transform(validator.String(), nil), "transform"},
		{validator.Custom("x", nil), "custom"},
		{foreign{}, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.Visit[string](tt.v, kindNamer{}))
		})
	}
}

func TestForeignValidatorGetsContract(t *testing.T) {
	_, err := validator.Validate(foreign{}, nil)
	assert.Equal(t, validator.CodeRequired, failureOf(t, err).Code)

	got, err := validator.List(foreign{}).ValidateAsync(context.Background(), []any{1})
	assert.NoError(t, err)
	assert.Equal(t, []any{1}, got)
}
