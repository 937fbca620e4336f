package problems

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/Sokol111/problemdetail/pkg/core/logger"
	"github.com/Sokol111/problemdetail/pkg/problem"
	"go.uber.org/zap"
)

// maxProblemBodySize bounds how much of a response body is read when
// looking for a problem detail.
const maxProblemBodySize = 1 << 20

// FromResponse tries to read a problem detail from a received response.
// It never fails: bodies that are not problem details yield false.
func FromResponse(ctx context.Context, status int, contentType, body string) (problem.Detail, bool) {
	detail, err := problem.Unmarshal(contentType, []byte(body))
	if err != nil {
		logger.Get(ctx).Debug("response carries no problem detail",
			zap.Int("status", status),
			zap.String("contentType", contentType),
			zap.Error(err),
		)
		return problem.Detail{}, false
	}
	return detail, true
}

// FromHTTPResponse is FromResponse for an *http.Response. The body is
// restored afterwards so callers can still read it.
func FromHTTPResponse(resp *http.Response) (problem.Detail, bool) {
	if resp == nil || resp.Body == nil {
		return problem.Detail{}, false
	}

	ctx := context.Background()
	if resp.Request != nil {
		ctx = resp.Request.Context()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProblemBodySize))
	_ = resp.Body.Close() //nolint:errcheck // body is replaced below
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		logger.Get(ctx).Debug("failed to read response body", zap.Error(err))
		return problem.Detail{}, false
	}

	return FromResponse(ctx, resp.StatusCode, resp.Header.Get("Content-Type"), string(body))
}
