package problems

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"github.com/Sokol111/problemdetail/pkg/http/middleware"
	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestHandler(conf Config, log *zap.Logger) *Handler {
	registry := NewRegistry(0).Register(youDidItWrong, http.StatusForbidden)
	return NewHandler(NewClassifier(registry), conf, log)
}

func TestHandler_HandleError(t *testing.T) {
	ctx := logger.With(context.Background(), zap.NewNop())

	t.Run("writes a web error as problem+json", func(t *testing.T) {
		h := newTestHandler(DefaultConfig(), zap.NewNop())
		webErr := For(http.StatusConflict).Detail("order already shipped").Build()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/orders/42/cancel", nil)

		h.HandleError(ctx, w, r, webErr)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, problem.ApplicationProblemJSON, w.Header().Get("Content-Type"))
		d, err := problem.FromJSON(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, webErr.Detail(), d)
	})

	t.Run("writes a classified error type", func(t *testing.T) {
		h := newTestHandler(DefaultConfig(), zap.NewNop())
		webErr := h.classifier.From(youDidItWrong).Detail("nope").Build()
		w := httptest.NewRecorder()

		h.HandleError(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil), webErr)

		assert.Equal(t, http.StatusForbidden, w.Code)
		d, err := problem.FromJSON(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "you did it wrong", d.Title())
	})

	t.Run("hides the message of unknown errors", func(t *testing.T) {
		h := newTestHandler(DefaultConfig(), zap.NewNop())
		w := httptest.NewRecorder()

		h.HandleError(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=secret"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret")
		d, err := problem.FromJSON(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "Internal Server Error", d.Title())
	})

	t.Run("maps recovered panics to 500", func(t *testing.T) {
		h := newTestHandler(DefaultConfig(), zap.NewNop())
		w := httptest.NewRecorder()

		h.HandleError(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil), middleware.ErrPanic)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("writes xml when accepted", func(t *testing.T) {
		h := newTestHandler(DefaultConfig(), zap.NewNop())
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", problem.ApplicationProblemXML)

		h.HandleError(ctx, w, r, NotFound("order 42"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, problem.ApplicationProblemXML, w.Header().Get("Content-Type"))
		d, err := problem.FromXML(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "order 42", d.Detail())
	})

	t.Run("NewErrorHandler returns the same behavior", func(t *testing.T) {
		handler := NewErrorHandler(NewClassifier(NewRegistry(0)), DefaultConfig(), zap.NewNop())
		w := httptest.NewRecorder()

		handler(ctx, w, httptest.NewRequest(http.MethodGet, "/", nil), BadRequest("bad"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ConfiguredStatuses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TypeNamespace = "urn:problem:orders:"
	cfg.Statuses = []StatusMapping{{Type: testPackage + ".orderNotFound", Status: http.StatusNotFound}}
	h := NewHandler(provideClassifier(NewRegistryFromConfig(cfg), cfg), cfg, zap.NewNop())
	ctx := logger.With(context.Background(), zap.NewNop())
	w := httptest.NewRecorder()

	h.HandleError(ctx, w, httptest.NewRequest(http.MethodGet, "/orders/42", nil),
		fmt.Errorf("get order: %w", &orderNotFound{id: "42"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	d, err := problem.FromJSON(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "order not found", d.Title())
	assert.Equal(t, "urn:problem:orders:"+testPackage+".orderNotFound", d.Type())
	assert.Equal(t, "get order: order 42 not found", d.Detail())
}

func TestHandler_CountsResponses(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	h := NewHandler(NewClassifier(NewRegistry(0)), DefaultConfig(), zap.NewNop(), WithMeterProvider(mp))
	ctx := logger.With(context.Background(), zap.NewNop())

	for _, err := range []error{NotFound("a"), NotFound("b"), errors.New("db down")} {
		h.HandleError(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	m := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "problem.responses", m.Name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	counts := make(map[int64]int64)
	classes := make(map[int64]string)
	for _, dp := range sum.DataPoints {
		status, ok := dp.Attributes.Value(attribute.Key("http.response.status_code"))
		require.True(t, ok)
		class, ok := dp.Attributes.Value(attribute.Key("problem.classification"))
		require.True(t, ok)
		counts[status.AsInt64()] = dp.Value
		classes[status.AsInt64()] = class.AsString()
	}
	assert.Equal(t, map[int64]int64{404: 2, 500: 1}, counts)
	assert.Equal(t, map[int64]string{404: "application", 500: "server"}, classes)
}

func TestHandler_Logging(t *testing.T) {
	t.Run("server errors are logged at error with the trace id", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		h := newTestHandler(DefaultConfig(), zap.NewNop())

		traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		require.NoError(t, err)
		spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
		require.NoError(t, err)
		ctx := trace.ContextWithSpanContext(
			logger.With(context.Background(), zap.New(core)),
			trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID}),
		)

		h.HandleError(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders", nil), errors.New("db down"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.EqualValues(t, http.StatusInternalServerError, fields["status"])
		assert.Equal(t, "/orders", fields["path"])
		assert.Contains(t, fields, "problem")
	})

	t.Run("repeated application errors are throttled", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		conf := DefaultConfig()
		conf.LogThrottleInterval = time.Hour
		h := newTestHandler(conf, zap.New(core))
		ctx := logger.With(context.Background(), zap.NewNop())

		for range 3 {
			h.HandleError(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), NotFound("x"))
		}
		h.HandleError(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), BadRequest("y"))

		require.Equal(t, 4, logs.Len())
		assert.Equal(t, 2, logs.FilterLevelExact(zapcore.WarnLevel).Len())
		assert.Equal(t, 2, logs.FilterLevelExact(zapcore.DebugLevel).Len())
	})
}

func TestWantsXML(t *testing.T) {
	tests := []struct {
		name      string
		accept    string
		preferXML bool
		want      bool
	}{
		{name: "no accept header", accept: "", want: false},
		{name: "no accept header with xml preferred", accept: "", preferXML: true, want: true},
		{name: "problem xml", accept: "application/problem+xml", want: true},
		{name: "plain xml", accept: "application/xml", want: true},
		{name: "problem json wins over preference", accept: "application/problem+json", preferXML: true, want: false},
		{name: "first supported type decides", accept: "application/json, application/xml", want: false},
		{name: "xml after wildcard", accept: "*/*, application/problem+xml;q=0.9", want: true},
		{name: "only wildcard", accept: "*/*", want: false},
		{name: "malformed entries are skipped", accept: ";;, application/xml", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wantsXML(tt.accept, tt.preferXML))
		})
	}
}
