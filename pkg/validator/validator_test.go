package validator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sift/pkg/validator"
)

func TestNilPrecedence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		v    validator.Validator
		want any
	}{
		{"default wins over nullable", validator.String().Nullable().Default("fallback"), "fallback"},
		{"nullable", validator.String().Nullable(), nil},
		{"optional", validator.String().Optional(), nil},
		{"null is nullable", validator.Null(), nil},
		{"any is nullable", validator.Any(), nil},
		{"list default", validator.List(validator.Number()).Default([]any{1}), []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.Validate(tt.v, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			got, err = validator.ValidateAsync(ctx, tt.v, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("required without settings", func(t *testing.T) {
		_, err := validator.String().Validate(nil)
		f, ok := validator.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, validator.CodeRequired, f.Code)
		assert.Equal(t, "$: value is required", f.Error())
	})

	t.Run("required uses custom message", func(t *testing.T) {
		_, err := validator.Number().Error("age please").Validate(nil)
		f, ok := validator.AsFailure(err)
		require.True(t, ok)
		assert.Equal(t, validator.CodeRequired, f.Code)
		assert.Equal(t, "age please", f.Message)
	})
}

func TestDefaultProducerIsLazy(t *testing.T) {
	var calls atomic.Int32
	v := validator.Number().DefaultFunc(func() any {
		return int(calls.Add(1))
	})
	assert.Equal(t, int32(0), calls.Load())

	first, err := v.Validate(nil)
	require.NoError(t, err)
	second, err := v.Validate(nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)

	got, err := v.Validate(7)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDefaultAcceptsProducer(t *testing.T) {
	v := validator.String().Default(func() any { return "made" })
	got, err := v.Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, "made", got)
	assert.True(t, v.Options().IsOptional())

	_, static := v.Options().StaticDefault()
	assert.False(t, static)
}

func TestBuildersCopyOnWrite(t *testing.T) {
	base := validator.String()
	strict := base.Min(5).Error("too short")

	_, err := base.Validate("ab")
	assert.NoError(t, err)

	_, err = strict.Validate("ab")
	require.Error(t, err)
	assert.Equal(t, "$: too short", err.Error())

	_, hasMessage := base.Options().Message()
	assert.False(t, hasMessage)

	list := validator.Dict(validator.Shape{"a": validator.String()})
	withRule := list.PatternProperty("^x", validator.Number())
	assert.Empty(t, list.Info().Patterns)
	assert.Len(t, withRule.Info().Patterns, 1)
}

func TestCustomMessageKeepsPath(t *testing.T) {
	schema := validator.Dict(validator.Shape{
		"user": validator.Dict(validator.Shape{
			"name": validator.String().Min(3).Error("name too short"),
		}),
	})

	_, err := schema.Validate(map[string]any{"user": map[string]any{"name": "al"}})
	f, ok := validator.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "$.user.name", f.Path.String())
	assert.Equal(t, "name too short", f.Message)
	assert.Equal(t, validator.CodeLength, f.Code)

	_, err = schema.Error("invalid profile").Validate(map[string]any{"user": map[string]any{"name": "al"}})
	f, ok = validator.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "$.user.name: invalid profile", f.Error())
}

func TestCustomValidator(t *testing.T) {
	errTaken := errors.New("username is taken")
	taken := validator.Custom("available", func(data any, path validator.Path) (any, error) {
		if data == "admin" {
			return nil, errTaken
		}
		return data, nil
	})

	schema := validator.Dict(validator.Shape{"username": taken})

	_, err := schema.Validate(map[string]any{"username": "admin"})
	f, ok := validator.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, validator.CodeCustom, f.Code)
	assert.Equal(t, "$.username: username is taken", f.Error())
	assert.ErrorIs(t, err, errTaken)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)

	out, err := schema.ValidateAsync(context.Background(), map[string]any{"username": "jo"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "jo"}, out)
}

func TestCustomAsync(t *testing.T) {
	var asyncCalls atomic.Int32
	v := validator.Custom("echo", nil).Async(func(ctx context.Context, data any, _ validator.Path) (any, error) {
		asyncCalls.Add(1)
		return data, ctx.Err()
	})

	got, err := v.ValidateAsync(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	got, err = v.Validate("y")
	require.NoError(t, err)
	assert.Equal(t, "y", got)
	assert.Equal(t, int32(2), asyncCalls.Load())
}

func TestPredicate(t *testing.T) {
	even := validator.Predicate("even", func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	}, "must be even")

	_, err := even.Validate(3)
	require.Error(t, err)
	assert.Equal(t, "$: must be even", err.Error())

	got, err := even.Validate(4)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestTransform(t *testing.T) {
	length := validator.Transform(validator.String().Trim(), func(v any) (any, error) {
		return len(v.(string)), nil
	})

	got, err := length.Validate("  four ")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	got, err = length.ValidateAsync(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = length.Validate(12)
	f, ok := validator.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, validator.CodeInvalidType, f.Code)

	failing := validator.Transform(validator.Any(), func(any) (any, error) {
		return nil, errors.New("cannot convert")
	})
	_, err = validator.List(failing).Validate([]any{1})
	require.Error(t, err)
	assert.Equal(t, "$[0]: cannot convert", err.Error())
}

func TestValidateAs(t *testing.T) {
	name, err := validator.ValidateAs[string](validator.String().Uppercase(), "jo")
	require.NoError(t, err)
	assert.Equal(t, "JO", name)

	_, err = validator.ValidateAs[int](validator.String(), "jo")
	f, ok := validator.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, validator.CodeInvalidType, f.Code)

	missing, err := validator.ValidateAs[string](validator.String().Optional(), nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestValidateAsyncCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := validator.List(validator.String()).ValidateAsync(ctx, []any{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, validator.IsFailure(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "string", validator.KindString.String())
	assert.Equal(t, validator.KindObject, validator.Object(nil).Kind())
	assert.Equal(t, "kind(200)", validator.Kind(200).String())
}
