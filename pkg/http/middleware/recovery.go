package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"github.com/ogen-go/ogen/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrPanic is returned in place of a recovered panic. Error handlers map it
// to 500 Internal Server Error without exposing the panic value.
var ErrPanic = errors.New("panic recovered")

// recoveryMiddleware turns handler panics into ErrPanic.
func recoveryMiddleware() middleware.Middleware {
	return func(req middleware.Request, next middleware.Next) (resp middleware.Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				fields := append(requestFields(req.Raw),
					zap.String("operation", req.OperationName),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				logger.Get(req.Context).Error("Panic recovered", fields...)
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		return next(req)
	}
}

// RecoveryModule provides recovery middleware.
func RecoveryModule(priority int) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func() Middleware {
				return Middleware{Priority: priority, Handler: recoveryMiddleware()}
			},
			fx.ResultTags(`group:"ogen_mw"`),
		),
	)
}
