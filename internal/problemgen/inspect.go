package problemgen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Sokol111/problemdetail/pkg/problem"
)

// NoProblemDetail is printed by Inspect when the input is not a problem detail.
const NoProblemDetail = "no problem detail"

// Inspect reads a problem body and returns its text rendering. An empty
// contentType selects XML when the body starts with '<' and JSON otherwise.
func Inspect(r io.Reader, contentType string) (string, bool, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}

	if contentType == "" {
		contentType = problem.ApplicationProblemJSON
		if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '<' {
			contentType = problem.ApplicationProblemXML
		}
	}

	d, err := problem.Unmarshal(contentType, body)
	if err != nil {
		return NoProblemDetail, false, nil
	}
	return d.String(), true, nil
}
