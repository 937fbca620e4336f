package middleware

import (
	"testing"

	"github.com/ogen-go/ogen/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func TestSortMiddlewares(t *testing.T) {
	var order []int
	tag := func(n int) middleware.Middleware {
		return func(req middleware.Request, next middleware.Next) (middleware.Response, error) {
			order = append(order, n)
			return next(req)
		}
	}

	handlers := sortMiddlewares([]Middleware{
		{Priority: 30, Handler: tag(30)},
		{Priority: 10, Handler: tag(10)},
		{Priority: 15},
		{Priority: 20, Handler: tag(20)},
	})

	require.Len(t, handlers, 3)
	for _, h := range handlers {
		_, _ = h(middleware.Request{}, func(middleware.Request) (middleware.Response, error) {
			return middleware.Response{}, nil
		})
	}
	assert.Equal(t, []int{10, 20, 30}, order)
}

func TestNewOgenMiddlewareModule(t *testing.T) {
	var handlers []middleware.Middleware

	err := fx.ValidateApp(
		fx.Supply(zap.NewNop()),
		NewOgenMiddlewareModule(),
		fx.Populate(&handlers),
	)

	assert.NoError(t, err)
}
