package problems

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("409 is an application error rendered as its detail", func(t *testing.T) {
		webErr := For(http.StatusConflict).Detail("foo").Build()

		assert.Equal(t, Application, webErr.Classification())
		assert.False(t, webErr.IsServerError())
		assert.Equal(t, "status: 409\ndetail: foo\ninstance: "+webErr.Detail().Instance()+"\n", webErr.Error())
	})

	t.Run("400 bad request", func(t *testing.T) {
		webErr := BadRequest("you did it wrong")

		assert.Equal(t, "status: 400\ndetail: you did it wrong\ninstance: "+webErr.Detail().Instance()+"\n", webErr.Error())
	})

	t.Run("403 from a declared error type", func(t *testing.T) {
		c := NewClassifier(NewRegistry(0).Register(youDidItWrong, http.StatusForbidden))

		webErr := c.From(youDidItWrong).Detail("you did it wrong").Build()

		assert.Equal(t, ""+
			"type: urn:problem:java:com.example.YouDidItWrongException\n"+
			"title: you did it wrong\n"+
			"status: 403\n"+
			"detail: you did it wrong\n"+
			"instance: "+webErr.Detail().Instance()+"\n", webErr.Error())
		assert.Equal(t, Application, webErr.Classification())
	})

	t.Run("500 is a server error", func(t *testing.T) {
		webErr := For(http.StatusInternalServerError).Title("Internal Server Error").Build()

		assert.Equal(t, Server, webErr.Classification())
		assert.True(t, webErr.IsServerError())
		assert.Equal(t, "title: Internal Server Error\nstatus: 500\ninstance: "+webErr.Detail().Instance()+"\n", webErr.Error())
	})

	t.Run("binds the detail to a problem+json response", func(t *testing.T) {
		webErr := For(http.StatusConflict).Detail("foo").Build()

		resp := webErr.Response()
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, problem.ApplicationProblemJSON, resp.ContentType)
		assert.Equal(t, webErr.Detail(), resp.Body)
	})

	t.Run("instance is generated and can be overridden", func(t *testing.T) {
		generated := For(http.StatusConflict).BuildDetail()
		explicit := For(http.StatusConflict).Instance("urn:order:42").BuildDetail()

		assert.True(t, strings.HasPrefix(generated.Instance(), problem.URNProblemInstancePrefix))
		assert.Equal(t, "urn:order:42", explicit.Instance())
	})
}

func TestBuilder_InvalidStatus(t *testing.T) {
	for _, status := range []int{0, 42, 600, -1} {
		t.Run(fmt.Sprintf("%d becomes 500", status), func(t *testing.T) {
			webErr := For(status).Build()

			assert.Equal(t, http.StatusInternalServerError, webErr.Status())
			assert.Equal(t, http.StatusInternalServerError, webErr.Detail().Status())
			assert.True(t, webErr.IsServerError())
		})
	}
}

func TestBuilder_CausedBy(t *testing.T) {
	t.Run("keeps a plain error for unwrapping only", func(t *testing.T) {
		cause := errors.New("connection reset")

		webErr := badGatewayCausedBy(cause)

		assert.ErrorIs(t, webErr, cause)
		assert.Nil(t, webErr.Detail().Cause())
	})

	t.Run("nests the detail of a wrapped web error", func(t *testing.T) {
		upstream := NotFound("order 42")

		webErr := For(http.StatusBadGateway).
			Detail("upstream failed").
			CausedBy(fmt.Errorf("calling orders: %w", upstream)).
			Build()

		require.NotNil(t, webErr.Detail().Cause())
		assert.Equal(t, upstream.Detail(), *webErr.Detail().Cause())
		assert.ErrorIs(t, webErr, upstream)
	})

	t.Run("nests a received problem detail", func(t *testing.T) {
		received := problem.NewBuilder().Title("remote").Status(http.StatusConflict).Build()

		d := For(http.StatusBadGateway).CausedByProblem(received).BuildDetail()

		require.NotNil(t, d.Cause())
		assert.Equal(t, "remote", d.Cause().Title())
		assert.Contains(t, d.String(), "cause:\n  title: remote\n  status: 409\n")
	})
}

func badGatewayCausedBy(err error) *WebError {
	return For(http.StatusBadGateway).CausedBy(err).Build()
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *WebError
		status int
	}{
		{name: "BadRequest", err: BadRequest("d"), status: http.StatusBadRequest},
		{name: "NotFound", err: NotFound("d"), status: http.StatusNotFound},
		{name: "BadGateway", err: BadGateway("d"), status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.status, tt.err.Detail().Status())
			assert.Equal(t, "d", tt.err.Detail().Detail())
		})
	}
}

func TestWebError(t *testing.T) {
	t.Run("explicit message replaces the rendering", func(t *testing.T) {
		resp := For(http.StatusConflict).BuildResponse()

		webErr := NewWebError("order already shipped", resp, nil)

		assert.Equal(t, "order already shipped", webErr.Error())
		assert.Nil(t, webErr.Unwrap())
	})

	t.Run("helpers find wrapped web errors", func(t *testing.T) {
		server := fmt.Errorf("saving: %w", For(http.StatusServiceUnavailable).Build())
		client := fmt.Errorf("validating: %w", BadRequest("bad"))
		plain := errors.New("plain")

		assert.True(t, IsServerError(server))
		assert.False(t, IsApplicationError(server))
		assert.True(t, IsApplicationError(client))
		assert.False(t, IsServerError(client))
		assert.False(t, IsServerError(plain))
		assert.False(t, IsApplicationError(plain))

		webErr, ok := AsWebError(client)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, webErr.Status())
	})

	t.Run("classification names", func(t *testing.T) {
		assert.Equal(t, "application", Application.String())
		assert.Equal(t, "server", Server.String())
	})
}
