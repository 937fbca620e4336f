package config

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type dotenvOptions struct {
	paths []string
}

// DotEnvOption is a functional option for configuring the dotenv module.
type DotEnvOption func(*dotenvOptions)

// WithDotEnvPath replaces the default ".env" with one or more files.
// Earlier files win: variables already set are never overwritten.
func WithDotEnvPath(paths ...string) DotEnvOption {
	return func(o *dotenvOptions) {
		o.paths = paths
	}
}

// NewDotEnvModule loads environment variables from .env files. Loading
// happens when the module is created, before viper reads the environment.
// Missing files are not an error.
func NewDotEnvModule(opts ...DotEnvOption) fx.Option {
	o := &dotenvOptions{paths: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	loaded, err := loadDotEnv(o.paths)

	return fx.Module("dotenv",
		fx.Invoke(func(lc fx.Lifecycle, log *zap.Logger) error {
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if len(loaded) > 0 {
						log.Info("Loaded .env files", zap.Strings("paths", loaded))
					} else {
						log.Debug("No .env file loaded", zap.Strings("paths", o.paths))
					}
					return nil
				},
			})
			return nil
		}),
	)
}

// loadDotEnv loads every existing file and returns the ones that were read.
func loadDotEnv(paths []string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
