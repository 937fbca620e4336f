package problems

import (
	"errors"
	"net/http"

	"github.com/Sokol111/problemdetail/pkg/problem"
)

// Builder assembles a problem detail together with the response and the
// error that carry it.
//
// Simple example:
//
//	return problems.BadRequest("you did it wrong")
//
// Or using a builder:
//
//	return problems.For(http.StatusConflict).CausedBy(err).Detail("you did it wrong").Build()
type Builder struct {
	entity *problem.Builder
	status int
	cause  error
}

// For starts a builder for the given status. Statuses outside 100..599 are
// replaced by 500 when building.
func For(status int) *Builder {
	return &Builder{
		entity: problem.NewBuilder().Status(status),
		status: status,
	}
}

// Type overrides the problem type URI.
func (b *Builder) Type(uri string) *Builder {
	b.entity.Type(uri)
	return b
}

// Title overrides the title derived from the error type.
func (b *Builder) Title(title string) *Builder {
	b.entity.Title(title)
	return b
}

// Detail sets the occurrence-specific explanation.
func (b *Builder) Detail(detail string) *Builder {
	b.entity.Detail(detail)
	return b
}

// Instance overrides the generated instance URI.
func (b *Builder) Instance(uri string) *Builder {
	b.entity.Instance(uri)
	return b
}

// CausedBy records err as the underlying cause. If err carries a WebError,
// its problem detail is also nested as the detail's cause.
func (b *Builder) CausedBy(err error) *Builder {
	b.cause = err
	var webErr *WebError
	if errors.As(err, &webErr) {
		b.entity.Cause(webErr.Detail())
	}
	return b
}

// CausedByProblem nests a previously received or built detail as the cause.
func (b *Builder) CausedByProblem(cause problem.Detail) *Builder {
	b.entity.Cause(cause)
	return b
}

// BuildDetail returns only the problem detail.
func (b *Builder) BuildDetail() problem.Detail {
	b.normalizeStatus()
	return b.entity.Build()
}

// BuildResponse returns the detail bound to a problem+json response.
func (b *Builder) BuildResponse() Response {
	detail := b.BuildDetail()
	return Response{
		Status:      b.status,
		ContentType: problem.ApplicationProblemJSON,
		Body:        detail,
	}
}

// Build returns the error carrying the response. Its classification is
// Server for 5xx statuses and Application otherwise.
func (b *Builder) Build() *WebError {
	return NewWebError("", b.BuildResponse(), b.cause)
}

func (b *Builder) normalizeStatus() {
	if b.status < 100 || b.status > 599 {
		b.status = http.StatusInternalServerError
		b.entity.Status(b.status)
	}
}

// BadRequest returns a 400 error with the given detail.
func BadRequest(detail string) *WebError {
	return For(http.StatusBadRequest).Detail(detail).Build()
}

// BadGateway returns a 502 error with the given detail.
func BadGateway(detail string) *WebError {
	return For(http.StatusBadGateway).Detail(detail).Build()
}

// NotFound returns a 404 error with the given detail.
func NotFound(detail string) *WebError {
	return For(http.StatusNotFound).Detail(detail).Build()
}
