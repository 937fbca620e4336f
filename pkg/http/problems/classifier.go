package problems

import (
	"errors"
	"net/http"

	"github.com/Sokol111/problemdetail/pkg/http/middleware"
	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/ogen-go/ogen/ogenerrors"
)

// Classification tells a surrounding transactional scope how to treat an error.
type Classification int

const (
	// Application errors are expected, recoverable outcomes (status < 500).
	Application Classification = iota
	// Server errors are unexpected failures (5xx) that should roll back work in progress.
	Server
)

func (c Classification) String() string {
	if c == Server {
		return "server"
	}
	return "application"
}

// Classify returns Server for 5xx statuses and Application otherwise.
func Classify(status int) Classification {
	if problem.StatusOf(status).IsServerError() {
		return Server
	}
	return Application
}

// Classifier turns error types into problem builders, resolving their
// status, title and type URI.
type Classifier struct {
	resolver  StatusResolver
	namespace string
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithTypeNamespace replaces the default "urn:problem:java:" prefix of derived type URIs.
func WithTypeNamespace(namespace string) ClassifierOption {
	return func(c *Classifier) {
		if namespace != "" {
			c.namespace = namespace
		}
	}
}

// Default is the classifier used by the package level helpers.
var Default = NewClassifier(DefaultRegistry)

// NewClassifier creates a classifier resolving statuses with resolver.
func NewClassifier(resolver StatusResolver, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		resolver:  resolver,
		namespace: problem.URNProblemJavaPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusFor resolves the status of an error type.
func (c *Classifier) StatusFor(t ErrorType) int {
	return c.resolver.StatusFor(t)
}

// TypeURI returns the default problem type URI of an error type.
func (c *Classifier) TypeURI(t ErrorType) string {
	return c.namespace + t.FullName()
}

// From starts a builder for an error type with its resolved status,
// derived type URI and derived title.
func (c *Classifier) From(t ErrorType) *Builder {
	return For(c.StatusFor(t)).
		Type(c.TypeURI(t)).
		Title(Title(t.SimpleName()))
}

// FromError starts a builder for the Go type of err, keeping err as the cause.
func (c *Classifier) FromError(err error) *Builder {
	return c.From(TypeOf(err)).CausedBy(err)
}

// WebErrorFor converts any error into a WebError. Errors that already carry
// one are returned as is. An error whose Go type, or the type of an error it
// wraps, is registered with the resolver is built from that type. Known
// transport errors map to their status; everything else becomes a problem
// whose status comes from ogen's error code mapping (500 for unknown
// errors). Server side messages are not copied into the detail.
func (c *Classifier) WebErrorFor(err error) *WebError {
	var webErr *WebError
	if errors.As(err, &webErr) {
		return webErr
	}

	if t, ok := c.registeredType(err); ok {
		b := c.From(t).CausedBy(err)
		if Classify(c.StatusFor(t)) == Application {
			b.Detail(err.Error())
		}
		return b.Build()
	}

	status := errorToStatusCode(err)
	b := For(status).Title(http.StatusText(status)).CausedBy(err)
	if !problem.StatusOf(status).IsServerError() {
		b.Detail(err.Error())
	}
	return b.Build()
}

// registeredType walks the Unwrap chain of err and returns the first type
// the resolver has a registration for. Resolvers without StatusLookup
// register nothing.
func (c *Classifier) registeredType(err error) (ErrorType, bool) {
	lookup, ok := c.resolver.(StatusLookup)
	if !ok {
		return ErrorType{}, false
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		t := TypeOf(e)
		if t.IsZero() {
			continue
		}
		if _, found := lookup.Lookup(t); found {
			return t, true
		}
	}
	return ErrorType{}, false
}

// errorToStatusCode maps errors to HTTP status codes.
func errorToStatusCode(err error) int {
	switch {
	case errors.Is(err, middleware.ErrPanic):
		return http.StatusInternalServerError
	case errors.Is(err, problem.ErrMalformed):
		return http.StatusBadRequest
	default:
		return ogenerrors.ErrorCode(err)
	}
}

// From starts a builder for t using the Default classifier.
func From(t ErrorType) *Builder {
	return Default.From(t)
}

// FromError starts a builder for err's Go type using the Default classifier.
func FromError(err error) *Builder {
	return Default.FromError(err)
}
