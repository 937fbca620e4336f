package problems

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conflictResponse() Response {
	return For(http.StatusConflict).Detail("foo").Instance("foo-instance").BuildResponse()
}

func TestResponse_SendTo(t *testing.T) {
	t.Run("sends status, media type and json body", func(t *testing.T) {
		var (
			gotStatus int
			gotType   string
			gotBody   string
		)
		sender := SenderFunc(func(status int, mediaType string, body []byte) error {
			gotStatus, gotType, gotBody = status, mediaType, string(body)
			return nil
		})

		require.NoError(t, conflictResponse().SendTo(sender))

		assert.Equal(t, http.StatusConflict, gotStatus)
		assert.Equal(t, problem.ApplicationProblemJSON, gotType)
		assert.JSONEq(t, `{"status":409,"detail":"foo","instance":"foo-instance"}`, gotBody)
	})

	t.Run("returns the sender error", func(t *testing.T) {
		sender := SenderFunc(func(int, string, []byte) error { return assert.AnError })

		assert.ErrorIs(t, conflictResponse().SendTo(sender), assert.AnError)
	})
}

func TestResponse_Write(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		w := httptest.NewRecorder()

		require.NoError(t, conflictResponse().Write(w))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, problem.ApplicationProblemJSON, w.Header().Get("Content-Type"))
		d, err := problem.FromJSON(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, conflictResponse().Body, d)
	})

	t.Run("xml", func(t *testing.T) {
		w := httptest.NewRecorder()

		require.NoError(t, conflictResponse().AsXML().Write(w))

		assert.Equal(t, problem.ApplicationProblemXML, w.Header().Get("Content-Type"))
		d, err := problem.FromXML(w.Body.Bytes())
		require.NoError(t, err)
		assert.Equal(t, conflictResponse().Body, d)
	})
}

func TestResponse_AsXML_DoesNotModifyOriginal(t *testing.T) {
	resp := conflictResponse()

	xmlResp := resp.AsXML()

	assert.Equal(t, problem.ApplicationProblemJSON, resp.ContentType)
	assert.Equal(t, problem.ApplicationProblemXML, xmlResp.ContentType)
}
