package i18n_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sift/pkg/i18n"
)

func newTestTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	adapter := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {
			"validation": map[string]any{
				"required": "is required",
				"range":    "must be between %{min} and %{max}",
			},
			"count": 3,
		},
		"de": {
			"validation": map[string]any{
				"required": "ist erforderlich",
			},
		},
	}}
	tr, err := i18n.NewTranslator(context.Background(), adapter, opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslatorT(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	t.Run("nested key", func(t *testing.T) {
		assert.Equal(t, "is required", tr.T("en", "validation.required"))
		assert.Equal(t, "ist erforderlich", tr.T("de", "validation.required"))
	})

	t.Run("named placeholders", func(t *testing.T) {
		assert.Equal(t, "must be between 1 and 5", tr.T("en", "validation.range", "min", "1", "max", "5"))
	})

	t.Run("unknown placeholder kept", func(t *testing.T) {
		assert.Equal(t, "must be between 1 and %{max}", tr.T("en", "validation.range", "min", "1"))
	})

	t.Run("missing key falls back to key", func(t *testing.T) {
		assert.Equal(t, "validation.missing", tr.T("en", "validation.missing"))
		assert.Equal(t, "validation.required", tr.T("fr", "validation.required"))
	})

	t.Run("non-string value", func(t *testing.T) {
		assert.Equal(t, "count", tr.T("en", "count"))
		assert.Equal(t, "validation", tr.T("en", "validation"))
	})
}

func TestTranslatorNoFallback(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, tr.T("en", "validation.missing"))
}

func TestTranslatorTd(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	assert.Equal(t, "ist erforderlich", tr.Td("de", "validation.required", "is required"))
	assert.Equal(t, "must be between 2 and 4", tr.Td("de", "validation.range", "must be between %{min} and %{max}", "min", "2", "max", "4"))
	assert.Equal(t, "fallback", tr.Td("xx", "validation.required", "fallback"))
}

func TestTranslatorHasTranslation(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	assert.True(t, tr.HasTranslation("en", "validation.range"))
	assert.False(t, tr.HasTranslation("de", "validation.range"))
	assert.False(t, tr.HasTranslation("fr", "validation.required"))
	assert.Equal(t, []string{"de", "en"}, tr.SupportedLanguages())
}

func TestTranslatorMatch(t *testing.T) {
	t.Parallel()
	tr := newTestTranslator(t)

	assert.Equal(t, "en", tr.DefaultLanguage())
	assert.Equal(t, "de", tr.Match("de"))
	assert.Equal(t, "de", tr.Match("de-AT"))
	assert.Equal(t, "en", tr.Match("en-GB"))
	assert.Equal(t, "en", tr.Match(""))
	assert.Equal(t, "en", tr.Match("not a tag!"))
}

func TestTranslatorMissingLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := newTestTranslator(t, i18n.WithLogger(logger), i18n.WithMissingTranslationsLogging(true))

	tr.T("en", "validation.unknown")
	assert.Contains(t, buf.String(), "translation not found")
	assert.Contains(t, buf.String(), "validation.unknown")
}

func TestNewTranslatorErrors(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(context.Background(), nil)
	require.ErrorIs(t, err, i18n.ErrNilAdapter)

	_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{"": {}}})
	require.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)

	_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{"en": nil}})
	require.ErrorIs(t, err, i18n.ErrNilTranslationsMap)

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
	require.NoError(t, err)
	assert.Empty(t, tr.SupportedLanguages())
	assert.Equal(t, "en", tr.Match("de"))
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(os.DirFS("testdata"), "locales"))
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en"}, tr.SupportedLanguages())
	assert.Equal(t, "must be at least 3 characters long", tr.T("en", "validation.length", "min", "3"))
	assert.Equal(t, "muss mindestens 3 Zeichen lang sein", tr.T("de", "validation.length", "min", "3"))
	// en.yaml and en_extra.yml both contribute keys below "validation".
	assert.Equal(t, "is required", tr.T("en", "validation.required"))
	assert.Equal(t, "is invalid", tr.T("en", "validation.custom"))
}

func TestFSAdapterErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(fstest.MapFS{}, "nope").Load(context.Background())
		require.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("malformed file", func(t *testing.T) {
		fsys := fstest.MapFS{"broken.json": {Data: []byte(`{"en": `)}}
		_, err := i18n.NewFSAdapter(fsys, "").Load(context.Background())
		require.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("language entry is not a map", func(t *testing.T) {
		fsys := fstest.MapFS{"flat.yaml": {Data: []byte("en: hello\n")}}
		_, err := i18n.NewFSAdapter(fsys, "").Load(context.Background())
		require.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
		require.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(fstest.MapFS{}, "").Load(ctx)
		require.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestNewParserForFile(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &i18n.JSONParser{}, i18n.NewParserForFile("en.JSON"))
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("en.yml"))
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("dir/en.yaml"))
	assert.Nil(t, i18n.NewParserForFile("README.txt"))

	assert.True(t, i18n.NewYAMLParser().SupportsFileExtension(".YML"))
	assert.False(t, i18n.NewJSONParser().SupportsFileExtension("yaml"))
}
