package config_test

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sift/pkg/config"
)

type defaultsConfig struct {
	Level string `env:"CFG_DEFAULT_LEVEL" envDefault:"info"`
	Count int    `env:"CFG_DEFAULT_COUNT" envDefault:"42"`
	Async bool   `env:"CFG_DEFAULT_ASYNC" envDefault:"true"`
}

type successConfig struct {
	Level string `env:"CFG_SUCCESS_LEVEL" envDefault:"info"`
	Count int    `env:"CFG_SUCCESS_COUNT"`
	Async bool   `env:"CFG_SUCCESS_ASYNC" envDefault:"true"`
}

type cachedConfig struct {
	Value string `env:"CFG_CACHED_VALUE"`
}

type prefixedConfig struct {
	Lang string `env:"LANG" envDefault:"en"`
}

type requiredConfig struct {
	Required string `env:"CFG_REQUIRED_VALUE,required"`
}

type fileConfig struct {
	Lang   string   `env:"TEST_LANG"`
	List   []string `env:"TEST_LIST" envSeparator:","`
	Quoted string   `env:"TEST_QUOTED"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("CFG_SUCCESS_LEVEL", "debug")
	t.Setenv("CFG_SUCCESS_COUNT", "100")
	t.Setenv("CFG_SUCCESS_ASYNC", "false")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, 100, cfg.Count)
	assert.False(t, cfg.Async)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("CFG_DEFAULT_LEVEL")
	os.Unsetenv("CFG_DEFAULT_COUNT")
	os.Unsetenv("CFG_DEFAULT_ASYNC")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, 42, cfg.Count)
	assert.True(t, cfg.Async)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("CFG_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CFG_REQUIRED_VALUE", "set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "set", cfg.Required)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("CFG_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	var fresh cachedConfig
	require.NoError(t, config.Load(&fresh, config.WithoutCache()))
	assert.Equal(t, "second", fresh.Value)

	config.ResetCache()
	t.Setenv("CFG_CACHED_VALUE", "third")
	var reset cachedConfig
	require.NoError(t, config.Load(&reset))
	assert.Equal(t, "third", reset.Value)
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("CFGA_LANG", "de")
	t.Setenv("CFGB_LANG", "fr")

	var a, b prefixedConfig
	require.NoError(t, config.Load(&a, config.WithPrefix("CFGA_")))
	require.NoError(t, config.Load(&b, config.WithPrefix("CFGB_")))

	assert.Equal(t, "de", a.Lang)
	assert.Equal(t, "fr", b.Lang)
}

func TestLoad_EnvFiles(t *testing.T) {
	for _, k := range []string{"SIFT_TEST_LANG", "SIFT_TEST_LIST", "SIFT_TEST_QUOTED"} {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range []string{"SIFT_TEST_LANG", "SIFT_TEST_LIST", "SIFT_TEST_QUOTED"} {
			os.Unsetenv(k)
		}
	})

	var cfg fileConfig
	err := config.Load(&cfg, config.WithPrefix("SIFT_"), config.WithEnvFiles("testdata/.env.sift"))
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Lang)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.List)
	assert.Equal(t, "quoted value", cfg.Quoted)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	var cfg prefixedConfig
	err := config.Load(&cfg, config.WithEnvFiles("testdata/missing.env"))
	require.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoad_Concurrent(t *testing.T) {
	t.Setenv("CFG_CACHED_VALUE", "concurrent")
	config.ResetCache()

	var wg sync.WaitGroup
	results := make([]cachedConfig, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = config.Load(&results[i])
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "concurrent", r.Value)
	}
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *successConfig
	require.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("CFG_REQUIRED_VALUE")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
	assert.NotPanics(t, func() {
		var cfg defaultsConfig
		config.MustLoad(&cfg)
	})
}
