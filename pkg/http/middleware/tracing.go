package middleware

import (
	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"github.com/ogen-go/ogen/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// traceMiddleware stores a request logger carrying trace_id and span_id in
// the request context, so problems logged later can be correlated.
func traceMiddleware(log *zap.Logger) middleware.Middleware {
	return func(req middleware.Request, next middleware.Next) (middleware.Response, error) {
		sc := trace.SpanContextFromContext(req.Context)
		if sc.HasTraceID() {
			reqLog := log.With(
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
			req.SetContext(logger.With(req.Context, reqLog))
		}
		return next(req)
	}
}

// TraceModule provides the trace correlation middleware.
func TraceModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(log *zap.Logger) Middleware {
				return Middleware{Priority: priority, Handler: traceMiddleware(log)}
			},
			fx.ResultTags(`group:"ogen_mw"`),
		),
	)
}
