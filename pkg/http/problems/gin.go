package problems

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render implements gin's render.Render for a problem response.
//
//	c.Render(resp.Status, problems.Render{Response: resp})
type Render struct {
	Response Response
}

func (r Render) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{r.Response.ContentType}
	}
}

func (r Render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	body, err := r.Response.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// GinMiddleware renders the last error attached to the gin context as a
// problem detail, unless the handler already wrote a response.
func (h *Handler) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		resp := h.Resolve(c.Request.Context(), c.Request, c.Errors.Last().Err)
		c.Render(resp.Status, Render{Response: resp})
		c.Abort()
	}
}

// GinMiddleware creates a Handler and returns its gin middleware.
func GinMiddleware(classifier *Classifier, conf Config, log *zap.Logger, opts ...HandlerOption) gin.HandlerFunc {
	return NewHandler(classifier, conf, log, opts...).GinMiddleware()
}
