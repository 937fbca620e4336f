package modules

import (
	"github.com/Sokol111/problemdetail/pkg/http/middleware"
	"github.com/Sokol111/problemdetail/pkg/http/problems"
	"go.uber.org/fx"
)

type httpOptions struct {
	problemsConfig *problems.Config
}

// HTTPOption is a functional option for configuring the HTTP module.
type HTTPOption func(*httpOptions)

// WithProblemsConfig provides a static problems Config (useful for tests).
// When set, the configuration will not be loaded from viper.
func WithProblemsConfig(cfg problems.Config) HTTPOption {
	return func(opts *httpOptions) {
		opts.problemsConfig = &cfg
	}
}

// NewHTTPModule provides the problem error handler for ogen servers, the
// gin-capable problems.Handler and the ordered ogen middlewares.
//
// A generated server is then wired as:
//
//	fx.Provide(func(h api.Handler, eh ogenerrors.ErrorHandler, mws []middleware.Middleware) (*api.Server, error) {
//	    return api.NewServer(h, api.WithErrorHandler(eh), api.WithMiddleware(mws...))
//	})
func NewHTTPModule(opts ...HTTPOption) fx.Option {
	cfg := &httpOptions{}
	for _, opt := range opts {
		opt(cfg)
	}

	return fx.Options(
		problemsModule(cfg),
		middleware.NewOgenMiddlewareModule(),
	)
}

func problemsModule(cfg *httpOptions) fx.Option {
	if cfg.problemsConfig != nil {
		return problems.NewProblemsModule(problems.WithConfig(*cfg.problemsConfig))
	}
	return problems.NewProblemsModule()
}
