package problems

import (
	"github.com/ogen-go/ogen/ogenerrors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type moduleOptions struct {
	config *Config
}

// Option configures the problems module.
type Option func(*moduleOptions)

// WithConfig provides a static Config instead of reading it from viper.
func WithConfig(cfg Config) Option {
	return func(o *moduleOptions) {
		o.config = &cfg
	}
}

// NewProblemsModule provides Config, *Registry, *Classifier, *Handler and
// an ogenerrors.ErrorHandler for generated servers.
//
// The registry holds the configured statuses plus everything registered in
// DefaultRegistry before the app was built, e.g. by generated Register
// functions. While the app runs, its classifier is the Default one used by
// the package level From and FromError helpers.
func NewProblemsModule(opts ...Option) fx.Option {
	o := &moduleOptions{}
	for _, opt := range opts {
		opt(o)
	}

	configProvider := fx.Provide(newConfig)
	if o.config != nil {
		configProvider = fx.Supply(*o.config)
	}

	return fx.Module("problems",
		configProvider,
		fx.Provide(
			provideRegistry,
			provideClassifier,
			provideHandler,
			func(h *Handler) ogenerrors.ErrorHandler { return h.HandleError },
		),
		fx.Invoke(installDefault, logRegistry),
	)
}

func provideRegistry(cfg Config) *Registry {
	return NewRegistryFromConfig(cfg).Include(DefaultRegistry)
}

func provideClassifier(r *Registry, cfg Config) *Classifier {
	return NewClassifier(r, WithTypeNamespace(cfg.TypeNamespace))
}

type handlerParams struct {
	fx.In
	Classifier *Classifier
	Conf       Config
	Log        *zap.Logger
	MP         metric.MeterProvider `optional:"true"`
}

func provideHandler(p handlerParams) *Handler {
	return NewHandler(p.Classifier, p.Conf, p.Log, WithMeterProvider(p.MP))
}

func installDefault(lc fx.Lifecycle, c *Classifier) {
	previous := Default
	Default = c
	lc.Append(fx.StopHook(func() {
		Default = previous
	}))
}

func logRegistry(log *zap.Logger, r *Registry, cfg Config) {
	log.Info("Problem statuses registered",
		zap.Int("count", len(r.Types())),
		zap.Int("defaultStatus", r.Fallback()),
		zap.String("typeNamespace", cfg.TypeNamespace),
	)
}
