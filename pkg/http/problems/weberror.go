package problems

import (
	"errors"

	"github.com/Sokol111/problemdetail/pkg/problem"
)

// WebError is an error bound to a problem detail response.
//
// Its Classification lets an enclosing transactional scope decide whether
// to roll back (Server) or to treat the error as a normal outcome
// (Application). Nothing in this package acts on it.
type WebError struct {
	message        string
	response       Response
	cause          error
	classification Classification
}

// NewWebError creates an error for response. An empty message makes Error
// return the rendered problem detail.
func NewWebError(message string, response Response, cause error) *WebError {
	return &WebError{
		message:        message,
		response:       response,
		cause:          cause,
		classification: Classify(response.Status),
	}
}

func (e *WebError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.response.Body.String()
}

// Unwrap returns the underlying cause, if any.
func (e *WebError) Unwrap() error {
	return e.cause
}

// Response returns the response carrying the problem detail.
func (e *WebError) Response() Response {
	return e.response
}

// Detail returns the problem detail of the response.
func (e *WebError) Detail() problem.Detail {
	return e.response.Body
}

// Status returns the HTTP status of the response.
func (e *WebError) Status() int {
	return e.response.Status
}

func (e *WebError) Classification() Classification {
	return e.classification
}

// IsServerError reports whether the status is in the 5xx family.
func (e *WebError) IsServerError() bool {
	return e.classification == Server
}

// AsWebError finds the first WebError in err's chain.
func AsWebError(err error) (*WebError, bool) {
	var webErr *WebError
	if errors.As(err, &webErr) {
		return webErr, true
	}
	return nil, false
}

// IsServerError reports whether err carries a WebError with a 5xx status.
func IsServerError(err error) bool {
	webErr, ok := AsWebError(err)
	return ok && webErr.IsServerError()
}

// IsApplicationError reports whether err carries a WebError with a non-5xx status.
func IsApplicationError(err error) bool {
	webErr, ok := AsWebError(err)
	return ok && !webErr.IsServerError()
}
