package problems

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/ogen-go/ogen/ogenerrors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const meterName = "github.com/Sokol111/problemdetail/pkg/http/problems"

// Handler writes errors as problem detail responses and logs them.
// Server errors are logged at ERROR on every occurrence; application
// errors at WARN once per interval for each status and type. Every
// response is counted in the problem.responses metric.
type Handler struct {
	classifier *Classifier
	preferXML  bool
	throttler  *logger.LogThrottler
	responses  metric.Int64Counter
}

// HandlerOption configures a Handler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	meterProvider metric.MeterProvider
}

// WithMeterProvider records metrics with mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) HandlerOption {
	return func(o *handlerOptions) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// NewHandler creates a handler. log receives the throttled application
// error entries; server errors go to the request's logger.
func NewHandler(classifier *Classifier, conf Config, log *zap.Logger, opts ...HandlerOption) *Handler {
	o := &handlerOptions{meterProvider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(o)
	}

	responses, err := o.meterProvider.Meter(meterName).Int64Counter("problem.responses",
		metric.WithDescription("Problem detail responses written, by status and classification"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		log.Warn("failed to create problem.responses counter", zap.Error(err))
		responses = noop.Int64Counter{}
	}

	return &Handler{
		classifier: classifier,
		preferXML:  conf.PreferXML,
		throttler:  logger.NewLogThrottler(log, conf.LogThrottleInterval),
		responses:  responses,
	}
}

// NewErrorHandler returns an ogen ErrorHandler writing problem details.
func NewErrorHandler(classifier *Classifier, conf Config, log *zap.Logger, opts ...HandlerOption) ogenerrors.ErrorHandler {
	return NewHandler(classifier, conf, log, opts...).HandleError
}

// HandleError has the signature of ogenerrors.ErrorHandler.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	resp := h.Resolve(ctx, r, err)
	if werr := resp.Write(w); werr != nil {
		logger.Get(ctx).Debug("failed to write problem response", zap.Error(werr))
	}
}

// Resolve converts err into the response for r and logs it.
func (h *Handler) Resolve(ctx context.Context, r *http.Request, err error) Response {
	webErr := h.classifier.WebErrorFor(err)
	resp := webErr.Response()
	if wantsXML(r.Header.Get("Accept"), h.preferXML) {
		resp = resp.AsXML()
	}
	h.log(ctx, r, webErr, err)
	return resp
}

func (h *Handler) log(ctx context.Context, r *http.Request, webErr *WebError, err error) {
	h.responses.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("http.response.status_code", webErr.Status()),
		attribute.String("problem.classification", webErr.Classification().String()),
	))

	detail := webErr.Detail()
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", webErr.Status()),
		zap.Object("problem", detail),
		zap.Error(err),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}

	if webErr.IsServerError() {
		logger.Get(ctx).Error("Request failed", fields...)
		return
	}
	key := fmt.Sprintf("%d %s", webErr.Status(), detail.Type())
	h.throttler.Warn(key, "Request rejected", fields...)
}

// wantsXML inspects Accept in order: the first problem-compatible media
// type decides. Without one, preferXML decides.
func wantsXML(accept string, preferXML bool) bool {
	for _, part := range strings.Split(accept, ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch {
		case problem.IsXML(mt):
			return true
		case mt == problem.ApplicationProblemJSON || mt == "application/json":
			return false
		}
	}
	return preferXML
}
