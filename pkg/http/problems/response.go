package problems

import (
	"fmt"
	"net/http"

	"github.com/Sokol111/problemdetail/pkg/problem"
)

// Sender emits a response. It is the only thing this package needs from
// an HTTP framework.
type Sender interface {
	Send(status int, mediaType string, body []byte) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(status int, mediaType string, body []byte) error

func (f SenderFunc) Send(status int, mediaType string, body []byte) error {
	return f(status, mediaType, body)
}

// Response is a problem detail bound to a status and content type.
type Response struct {
	Status      int
	ContentType string
	Body        problem.Detail
}

// AsXML returns a copy of r using the application/problem+xml representation.
func (r Response) AsXML() Response {
	r.ContentType = problem.ApplicationProblemXML
	return r
}

// Encode serializes the body according to the content type.
func (r Response) Encode() ([]byte, error) {
	body, err := problem.Marshal(r.ContentType, r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode problem detail: %w", err)
	}
	return body, nil
}

// SendTo encodes the body and hands it to s.
func (r Response) SendTo(s Sender) error {
	body, err := r.Encode()
	if err != nil {
		return err
	}
	return s.Send(r.Status, r.ContentType, body)
}

// Write sends r to w.
func (r Response) Write(w http.ResponseWriter) error {
	return r.SendTo(WriterSender(w))
}

// WriterSender returns a Sender writing to w.
func WriterSender(w http.ResponseWriter) Sender {
	return SenderFunc(func(status int, mediaType string, body []byte) error {
		w.Header().Set("Content-Type", mediaType)
		w.WriteHeader(status)
		_, err := w.Write(body)
		return err
	})
}
