package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "CONFIG_FILE"

type viperOptions struct {
	configPath   *string
	noConfigFile bool
	envPrefix    string
}

// ViperOption is a functional option for configuring the Viper module.
type ViperOption func(*viperOptions)

// WithConfigPath sets a direct path to the configuration file instead of
// resolving it from CONFIG_FILE.
func WithConfigPath(path string) ViperOption {
	return func(o *viperOptions) {
		o.configPath = &path
	}
}

// WithoutConfigFile disables loading of any config file. Viper is still
// provided, backed by environment variables only.
func WithoutConfigFile() ViperOption {
	return func(o *viperOptions) {
		o.noConfigFile = true
	}
}

// WithEnvPrefix makes environment overrides require a prefix, e.g. with
// "APP" the key problems.default-status is read from APP_PROBLEMS_DEFAULT_STATUS.
func WithEnvPrefix(prefix string) ViperOption {
	return func(o *viperOptions) {
		o.envPrefix = prefix
	}
}

// FilePath is the path of the configuration file. Empty means none.
type FilePath string

// EnvPrefix is the prefix of environment overrides. Empty means none.
type EnvPrefix string

// NewViperModule provides a *viper.Viper read from the file named by
// CONFIG_FILE (or WithConfigPath), with environment overrides where "."
// and "-" in keys become "_".
func NewViperModule(opts ...ViperOption) fx.Option {
	o := &viperOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return fx.Module("viper",
		fx.Supply(resolveConfigPath(o), EnvPrefix(o.envPrefix)),
		fx.Provide(newViper),
		fx.Invoke(logViperConfig),
	)
}

func logViperConfig(log *zap.Logger, v *viper.Viper) {
	log.Info("Configuration loaded",
		zap.String("configFile", v.ConfigFileUsed()),
		zap.Strings("configKeys", v.AllKeys()),
	)
}

func resolveConfigPath(o *viperOptions) FilePath {
	if o.noConfigFile {
		return ""
	}
	if o.configPath != nil {
		return FilePath(*o.configPath)
	}
	return FilePath(os.Getenv(EnvConfigFile))
}

func newViper(configFile FilePath, prefix EnvPrefix, log *zap.Logger) (*viper.Viper, error) {
	v := viper.New()
	if prefix != "" {
		v.SetEnvPrefix(string(prefix))
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile == "" {
		log.Info("No config file specified, using environment only")
		return v, nil
	}

	v.SetConfigFile(string(configFile))
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file [%s]: %w", configFile, err)
	}

	return v, nil
}
