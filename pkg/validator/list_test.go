package validator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sift/pkg/validator"
)

func TestListItems(t *testing.T) {
	v := validator.List(validator.String().Min(3))

	t.Run("reports failing index", func(t *testing.T) {
		_, err := v.Validate([]any{"abc", "de"})
		f := failureOf(t, err)
		assert.Equal(t, "$[1]", f.Path.String())
		assert.Equal(t, validator.CodeLength, f.Code)
		assert.Equal(t, "must be at least 3 characters long", f.Message)
	})

	t.Run("returns valid items", func(t *testing.T) {
		got, err := v.Validate([]any{"abc", "def"})
		require.NoError(t, err)
		assert.Equal(t, []any{"abc", "def"}, got)

		got, err = v.Validate([]string{"abc", "def"})
		require.NoError(t, err)
		assert.Equal(t, []any{"abc", "def"}, got)
	})

	t.Run("keeps transformed items", func(t *testing.T) {
		got, err := validator.List(validator.String().Trim()).Validate([]any{" a ", "b "})
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b"}, got)
	})

	t.Run("nil item validator leaves items unchecked", func(t *testing.T) {
		got, err := validator.List(nil).Validate([]any{1, "x", nil})
		require.NoError(t, err)
		assert.Equal(t, []any{1, "x", nil}, got)
	})

	t.Run("rejects non sequences", func(t *testing.T) {
		_, err := v.Validate("abc")
		f := failureOf(t, err)
		assert.Equal(t, validator.CodeInvalidType, f.Code)
		assert.Equal(t, "expected array, got string", f.Message)
	})

	t.Run("nested paths", func(t *testing.T) {
		matrix := validator.List(validator.List(validator.Number()))
		_, err := matrix.Validate([]any{[]any{1, 2}, []any{3, "x"}})
		assert.Equal(t, "$[1][1]", failureOf(t, err).Path.String())
	})
}

func TestListCounts(t *testing.T) {
	tests := []struct {
		name    string
		v       validator.ListValidator
		input   []any
		message string
	}{
		{"min", validator.List(nil).Min(2), []any{1}, "must have at least 2 items"},
		{"max", validator.List(nil).Max(1), []any{1, 2}, "must have at most 1 items"},
		{"exact", validator.List(nil).Length(2), []any{1}, "must have exactly 2 items"},
		{"nonempty", validator.List(nil).Nonempty(), []any{}, "must not be empty"},
		{"counts run before items", validator.List(validator.String()).Min(3), []any{1}, "must have at least 3 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.v.Validate(tt.input)
			f := failureOf(t, err)
			assert.Equal(t, validator.CodeLength, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestListUnique(t *testing.T) {
	v := validator.List(nil).Unique()

	t.Run("numbers compare by value", func(t *testing.T) {
		_, err := v.Validate([]any{1, 2, 1.0})
		f := failureOf(t, err)
		assert.Equal(t, validator.CodeUnique, f.Code)
		assert.Equal(t, "items must be unique (duplicate at index 2)", f.Message)
	})

	t.Run("unhashable items use deep equality", func(t *testing.T) {
		_, err := v.Validate([]any{map[string]any{"a": 1}, []any{1}, map[string]any{"a": 1}})
		assert.Equal(t, validator.CodeUnique, failureOf(t, err).Code)

		_, err = v.Validate([]any{map[string]any{"a": 1}, map[string]any{"a": 2}})
		assert.NoError(t, err)
	})

	t.Run("different types are distinct", func(t *testing.T) {
		_, err := v.Validate([]any{1, "1", true, nil})
		assert.NoError(t, err)
	})
}

func TestListAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("items run concurrently", func(t *testing.T) {
		t.Parallel()
		items := make([]any, 10)
		for i := range items {
			items[i] = 50
		}

		start := time.Now()
		got, err := validator.List(sleepy).ValidateAsync(ctx, items)
		duration := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, items, got)
		assert.Less(t, duration, 250*time.Millisecond)
	})

	t.Run("lowest failing index wins", func(t *testing.T) {
		t.Parallel()
		input := []any{10, -60, 5, -1}

		_, syncErr := validator.List(sleepy).Validate(input)
		_, asyncErr := validator.List(sleepy).ValidateAsync(ctx, input)

		for _, err := range []error{syncErr, asyncErr} {
			f := failureOf(t, err)
			assert.Equal(t, "$[1]", f.Path.String())
			assert.Equal(t, "rejected -60", f.Message)
		}
	})

	t.Run("matches sync output", func(t *testing.T) {
		t.Parallel()
		v := validator.List(validator.String().Trim().Uppercase()).Unique()
		for _, input := range []any{[]any{" a", "b "}, []any{"a", "a"}, []any{"a", 1}, "nope"} {
			want, wantErr := v.Validate(input)
			got, gotErr := v.ValidateAsync(ctx, input)
			assert.Equal(t, want, got)
			if wantErr == nil {
				assert.NoError(t, gotErr)
			} else {
				assert.EqualError(t, gotErr, wantErr.Error())
			}
		}
	})
}
