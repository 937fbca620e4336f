package client

import (
	"fmt"
	"net/http"

	"github.com/Sokol111/problemdetail/pkg/http/problems"
	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/samber/lo"
)

// RemoteError reports a non-2xx response. When the body was a problem
// detail it is available as Problem.
type RemoteError struct {
	Service    string
	Status     int
	Problem    problem.Detail
	HasProblem bool
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("remote returned %d", e.Status)
	if e.Service != "" {
		msg = e.Service + ": " + msg
	}
	if e.HasProblem {
		if text := lo.CoalesceOrEmpty(e.Problem.Detail(), e.Problem.Title()); text != "" {
			msg += ": " + text
		}
	}
	return msg
}

// WebError wraps the remote failure into a 502 Bad Gateway problem whose
// cause is the received problem detail, if any.
func (e *RemoteError) WebError() *problems.WebError {
	b := problems.For(http.StatusBadGateway).
		Title(http.StatusText(http.StatusBadGateway)).
		Detail(e.Error())
	if e.HasProblem {
		b.CausedByProblem(e.Problem)
	}
	return b.CausedBy(e).Build()
}

// CheckResponse returns nil for 2xx responses and a *RemoteError otherwise.
// The body is left readable for the caller.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail, ok := problems.FromHTTPResponse(resp)
	return &RemoteError{
		Status:     resp.StatusCode,
		Problem:    detail,
		HasProblem: ok,
	}
}
