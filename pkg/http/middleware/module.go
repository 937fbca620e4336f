package middleware

import (
	"sort"

	"github.com/ogen-go/ogen/middleware"
	"go.uber.org/fx"
)

// NewOgenMiddlewareModule provides the ogen middlewares of this module.
// Execution order (by priority, lower = earlier):
//
//	10 - Recovery - turns panics into ErrPanic
//	15 - Trace    - puts a trace-aware logger into the context
//	20 - Logger   - logs requests
//
// Other modules may add their own Middleware to the "ogen_mw" group.
func NewOgenMiddlewareModule() fx.Option {
	return fx.Options(
		RecoveryModule(10),
		TraceModule(15),
		LoggerModule(20),
		fx.Provide(provideOgenMiddlewares),
	)
}

type middlewareParams struct {
	fx.In
	Middlewares []Middleware `group:"ogen_mw"`
}

// provideOgenMiddlewares orders the group by priority, ready to be passed
// to a generated server's WithMiddleware option.
func provideOgenMiddlewares(p middlewareParams) []middleware.Middleware {
	return sortMiddlewares(p.Middlewares)
}

func sortMiddlewares(mws []Middleware) []middleware.Middleware {
	sorted := make([]Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw.Handler != nil {
			sorted = append(sorted, mw)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	handlers := make([]middleware.Middleware, len(sorted))
	for i, mw := range sorted {
		handlers[i] = mw.Handler
	}
	return handlers
}
