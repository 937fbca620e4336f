package modules

import (
	"github.com/Sokol111/problemdetail/pkg/core/config"
	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"go.uber.org/fx"
)

type coreOptions struct {
	loggerConfig       *logger.Config
	disableDotEnv      bool
	disableViperConfig bool
}

// CoreOption is a functional option for configuring the core module.
type CoreOption func(*coreOptions)

// WithLoggerConfig provides a static logger Config (useful for tests).
func WithLoggerConfig(cfg logger.Config) CoreOption {
	return func(opts *coreOptions) {
		opts.loggerConfig = &cfg
	}
}

// WithoutEnvFile disables loading of the .env file.
func WithoutEnvFile() CoreOption {
	return func(opts *coreOptions) {
		opts.disableDotEnv = true
	}
}

// WithoutConfigFile disables loading of the config file.
func WithoutConfigFile() CoreOption {
	return func(opts *coreOptions) {
		opts.disableViperConfig = true
	}
}

// NewCoreModule provides core functionality: .env loading, viper and zap.
//
//	// Production - loads config from CONFIG_FILE and .env
//	modules.NewCoreModule()
//
//	// Testing - static logger config, no files
//	modules.NewCoreModule(
//	    modules.WithLoggerConfig(logger.DefaultConfig()),
//	    modules.WithoutEnvFile(),
//	    modules.WithoutConfigFile(),
//	)
func NewCoreModule(opts ...CoreOption) fx.Option {
	cfg := &coreOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		dotEnvModule(cfg),
		viperModule(cfg),
		loggerModule(cfg),
	)
}

func dotEnvModule(cfg *coreOptions) fx.Option {
	if cfg.disableDotEnv {
		return fx.Options()
	}
	return config.NewDotEnvModule()
}

func viperModule(cfg *coreOptions) fx.Option {
	if cfg.disableViperConfig {
		return config.NewViperModule(config.WithoutConfigFile())
	}
	return config.NewViperModule()
}

func loggerModule(cfg *coreOptions) fx.Option {
	if cfg.loggerConfig != nil {
		return logger.NewZapLoggingModule(logger.WithLoggerConfig(*cfg.loggerConfig))
	}
	return logger.NewZapLoggingModule()
}
