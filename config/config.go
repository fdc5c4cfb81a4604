// Package config loads docbridge settings from DOCBRIDGE_* environment
// variables.
package config

import (
	"encoding/json"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/docbridge/errors"
)

// Prefix is prepended to every variable name.
const Prefix = "DOCBRIDGE_"

// Config holds runtime settings.
type Config struct {
	// GuestPath is the WebAssembly build of the foreign library. Empty uses
	// the bundled guest when the binary was built with it.
	GuestPath string `env:"GUEST" json:"guest,omitempty" jsonschema:"description=path to the guest module"`
	// CacheDir persists compiled guest code. Empty caches in memory.
	CacheDir string `env:"CACHE_DIR" json:"cache_dir,omitempty" jsonschema:"description=compilation cache directory"`
	// InstallDir receives the unpacked dependency bundle.
	InstallDir string `env:"INSTALL_DIR" json:"install_dir,omitempty" jsonschema:"description=bundle install directory"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"console" json:"log_format" validate:"oneof=console json" jsonschema:"enum=console,enum=json,default=console"`
	// MemoryLimitPages caps guest memory in 64KiB pages. 0 is unlimited.
	MemoryLimitPages uint32 `env:"MEMORY_LIMIT_PAGES" envDefault:"4096" json:"memory_limit_pages" validate:"lte=65536" jsonschema:"maximum=65536,default=4096"`
	// ConstantCache enables per-context caching of resolved constants.
	ConstantCache bool `env:"CONSTANT_CACHE" json:"constant_cache" jsonschema:"default=false"`
	// DryRun uses the in-process reference runtime instead of a guest.
	DryRun bool `env:"DRY_RUN" json:"dry_run" jsonschema:"default=false"`
}

var validate = validator.New()

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads the configuration from vars instead of the process
// environment when vars is non-nil.
func LoadFrom(vars map[string]string) (*Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "validate")
	}
	return nil
}

// NewLogger builds a zap logger for LogLevel and LogFormat.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	var zc zap.Config
	if c.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Schema returns the JSON schema of Config.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{ExpandedStruct: true}
	b, err := json.MarshalIndent(r.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "marshal schema")
	}
	return b, nil
}
