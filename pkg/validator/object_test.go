package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sift/pkg/validator"
)

func userSchema() validator.ObjectValidator {
	return validator.Object(validator.Shape{
		"name":  validator.String().Min(2),
		"email": validator.String().Email(),
	})
}

func TestObjectExtend(t *testing.T) {
	base := userSchema().AdditionalProperties(validator.ForbidAdditional()).Error("invalid user")

	extended := base.Extend(validator.Shape{
		"age":  validator.Number().Int(),
		"bio":  validator.String().Optional(),
		"role": validator.String().Default("member"),
	})

	t.Run("adds fields after existing ones", func(t *testing.T) {
		assert.Equal(t, []string{"email", "name", "age", "bio", "role"}, extended.FieldNames())
		assert.Equal(t, []string{"age", "email", "name"}, extended.Info().Required)
	})

	t.Run("copies settings", func(t *testing.T) {
		_, err := extended.Validate(map[string]any{"name": "Jo", "email": "jo@example.com", "age": 3, "x": 1})
		f := failureOf(t, err)
		assert.Equal(t, validator.CodeUnrecognizedKeys, f.Code)
		assert.Equal(t, "invalid user", f.Message)
	})

	t.Run("validates new fields", func(t *testing.T) {
		got, err := extended.Validate(map[string]any{"name": "Jo", "email": "jo@example.com", "age": 30.0})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Jo", "email": "jo@example.com", "age": int64(30), "role": "member"}, got)
	})

	t.Run("does not modify the base", func(t *testing.T) {
		assert.Equal(t, []string{"email", "name"}, base.FieldNames())
	})

	t.Run("conflicting key panics", func(t *testing.T) {
		assert.PanicsWithError(t, `validator: field already defined: "name"`, func() {
			base.Extend(validator.Shape{"name": validator.String()})
		})
	})
}

func TestObjectExclude(t *testing.T) {
	base := validator.Object(validator.Shape{
		"a": validator.Number(),
		"b": validator.String(),
	})
	excluded := base.Exclude("a")

	t.Run("passes excluded values through", func(t *testing.T) {
		got, err := excluded.Validate(map[string]any{"a": "garbage", "b": "x"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "garbage", "b": "x"}, got)

		got, err = excluded.ValidateAsync(context.Background(), map[string]any{"a": "garbage", "b": "x"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "garbage", "b": "x"}, got)
	})

	t.Run("excluded keys are not required", func(t *testing.T) {
		got, err := excluded.Validate(map[string]any{"b": "x"})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"b": "x"}, got)
	})

	t.Run("keys stay declared", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, excluded.FieldNames())
		assert.Equal(t, []string{"a"}, excluded.ExcludedFields())
		assert.Empty(t, base.ExcludedFields())
	})

	t.Run("not treated as additional", func(t *testing.T) {
		strict := excluded.AdditionalProperties(validator.ForbidAdditional())
		_, err := strict.Validate(map[string]any{"a": []any{1}, "b": "x"})
		assert.NoError(t, err)
	})

	t.Run("undeclared keys are ignored", func(t *testing.T) {
		ghost := base.Exclude("a", "ghost")
		assert.Equal(t, []string{"a"}, ghost.ExcludedFields())

		_, err := ghost.AdditionalProperties(validator.ForbidAdditional()).
			Validate(map[string]any{"b": "x", "ghost": 1})
		f := failureOf(t, err)
		assert.Equal(t, validator.CodeUnrecognizedKeys, f.Code)
		assert.Equal(t, `unrecognized keys: "ghost"`, f.Message)
	})
}

func TestObjectOmit(t *testing.T) {
	base := userSchema().Exclude("email")
	omitted := base.Omit("email")

	assert.Equal(t, []string{"name"}, omitted.FieldNames())
	assert.Equal(t, []string{"name"}, omitted.Info().Required)
	assert.Empty(t, omitted.ExcludedFields())

	got, err := omitted.Validate(map[string]any{"name": "Jo", "email": 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Jo", "email": 5}, got)

	_, err = omitted.AdditionalProperties(validator.ForbidAdditional()).
		Validate(map[string]any{"name": "Jo", "email": 5})
	f := failureOf(t, err)
	assert.Equal(t, `unrecognized keys: "email"`, f.Message)
}

func TestObjectExtendOmitIdentity(t *testing.T) {
	base := userSchema().MinProperties(1).Nullable()
	roundTrip := base.Extend(validator.Shape{"x": validator.Number()}).Omit("x")

	assert.Equal(t, base.FieldNames(), roundTrip.FieldNames())
	assert.Equal(t, base.Info().Required, roundTrip.Info().Required)
	assert.True(t, roundTrip.Options().IsNullable())

	inputs := []any{
		nil,
		map[string]any{},
		map[string]any{"name": "Jo", "email": "jo@example.com"},
		map[string]any{"name": "Jo", "email": "nope"},
		map[string]any{"name": "Jo", "email": "jo@example.com", "x": "str"},
		[]any{},
	}
	for _, input := range inputs {
		want, wantErr := base.Validate(input)
		got, gotErr := roundTrip.Validate(input)
		assert.Equal(t, want, got)
		if wantErr == nil {
			assert.NoError(t, gotErr)
		} else {
			assert.EqualError(t, gotErr, wantErr.Error())
		}
	}
}
