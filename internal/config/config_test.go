package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 90, cfg.JPEGQuality)
	assert.Equal(t, "polarity-io-cache-v1", cfg.CacheName)
	assert.Equal(t, 64, cfg.CacheSize)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		EnvLogLevel:    "DEBUG",
		EnvLogFormat:   "Text",
		EnvJPEGQuality: "75",
		EnvAssetBase:   "https://polarity.example/app/",
		EnvCacheName:   "polarity-io-cache-v2",
		EnvCacheSize:   "8",
	}))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 75, cfg.JPEGQuality)
	assert.Equal(t, "https://polarity.example/app/", cfg.AssetBase)
	assert.Equal(t, "polarity-io-cache-v2", cfg.CacheName)
	assert.Equal(t, 8, cfg.CacheSize)
}

func TestFromEnv_EmptyValuesKeepDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{EnvLogLevel: "", EnvCacheSize: ""}))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"level", map[string]string{EnvLogLevel: "loud"}},
		{"format", map[string]string{EnvLogFormat: "xml"}},
		{"quality not a number", map[string]string{EnvJPEGQuality: "high"}},
		{"quality zero", map[string]string{EnvJPEGQuality: "0"}},
		{"quality too high", map[string]string{EnvJPEGQuality: "101"}},
		{"relative base", map[string]string{EnvAssetBase: "app/"}},
		{"cache size", map[string]string{EnvCacheSize: "-3"}},
		{"cache size not a number", map[string]string{EnvCacheSize: "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestValidate_EmptyCacheName(t *testing.T) {
	cfg := Default()
	cfg.CacheName = ""
	assert.Error(t, cfg.Validate())
}
