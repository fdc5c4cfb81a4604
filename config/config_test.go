package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/docbridge/errors"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.EqualValues(t, 4096, cfg.MemoryLimitPages)
	assert.False(t, cfg.ConstantCache)
	assert.False(t, cfg.DryRun)
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DOCBRIDGE_GUEST":          "/opt/itext.wasm",
		"DOCBRIDGE_LOG_LEVEL":      "debug",
		"DOCBRIDGE_LOG_FORMAT":     "json",
		"DOCBRIDGE_CONSTANT_CACHE": "true",
		"DOCBRIDGE_DRY_RUN":        "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/opt/itext.wasm", cfg.GuestPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.ConstantCache)
	assert.True(t, cfg.DryRun)

	log, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1))
}

func TestInvalid(t *testing.T) {
	for name, vars := range map[string]map[string]string{
		"level":  {"DOCBRIDGE_LOG_LEVEL": "loud"},
		"format": {"DOCBRIDGE_LOG_FORMAT": "xml"},
		"pages":  {"DOCBRIDGE_MEMORY_LIMIT_PAGES": "70000"},
		"parse":  {"DOCBRIDGE_DRY_RUN": "maybe"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			require.Error(t, err)
			assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidInput}))
		})
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "log_level")
	assert.Contains(t, props, "memory_limit_pages")
}
