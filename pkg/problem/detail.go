// Package problem implements "problem details" for HTTP APIs: a small,
// immutable record carrying machine-readable information about one error
// occurrence, with JSON and XML codecs.
//
// A detail is created with a Builder:
//
//	d := problem.NewBuilder().
//		Status(http.StatusConflict).
//		Detail("order already shipped").
//		Build()
//
// Every built detail has an instance identifier; when none is given,
// Build generates "urn:problem-instance:<uuid>".
package problem

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"
)

const (
	// ApplicationProblemTypePrefix is completed by "+json" or "+xml".
	ApplicationProblemTypePrefix = "application/problem"
	// ApplicationProblemJSON is the media type for details in JSON.
	ApplicationProblemJSON = ApplicationProblemTypePrefix + "+json"
	// ApplicationProblemXML is the media type for details in XML.
	ApplicationProblemXML = ApplicationProblemTypePrefix + "+xml"

	// URNProblemPrefix is the default scheme and namespace for problem types.
	URNProblemPrefix = "urn:problem:"
	// URNProblemJavaPrefix is the default namespace for types derived from an error type name.
	URNProblemJavaPrefix = URNProblemPrefix + "java:"
	// URNProblemInstancePrefix is the scheme and namespace of generated instance identifiers.
	URNProblemInstancePrefix = "urn:problem-instance:"
)

// Detail describes one occurrence of a problem.
//
// The zero value of each field means "absent": empty strings, a zero status
// and a nil cause are never serialized.
type Detail struct {
	typ      string
	title    string
	status   int
	detail   string
	instance string
	cause    *Detail
}

// Type returns the URI identifying the problem type.
func (d Detail) Type() string { return d.typ }

// Title returns the short, human-readable summary of the problem type.
func (d Detail) Title() string { return d.title }

// Status returns the HTTP status code, or 0 if absent.
func (d Detail) Status() int { return d.status }

// StatusType returns the semantic status derived from Status.
func (d Detail) StatusType() Status { return StatusOf(d.status) }

// Detail returns the explanation specific to this occurrence.
func (d Detail) Detail() string { return d.detail }

// Instance returns the URI identifying this occurrence.
func (d Detail) Instance() string { return d.instance }

// Cause returns the nested cause, or nil.
func (d Detail) Cause() *Detail { return d.cause }

// HasStatus reports whether a status code is present.
func (d Detail) HasStatus() bool { return d.status != 0 }

// EqualIgnoringInstance compares all fields except the instance identifier,
// recursing through the cause chain.
func (d Detail) EqualIgnoringInstance(other Detail) bool {
	if d.typ != other.typ || d.title != other.title || d.status != other.status || d.detail != other.detail {
		return false
	}
	if d.cause == nil || other.cause == nil {
		return d.cause == nil && other.cause == nil
	}
	return d.cause.EqualIgnoringInstance(*other.cause)
}

// String renders one "key: value" line per present field. A cause is
// rendered below a "cause:" line, indented by two more spaces.
func (d Detail) String() string {
	var b strings.Builder
	d.writeTo(&b, "")
	return b.String()
}

func (d Detail) writeTo(b *strings.Builder, indent string) {
	line := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(indent)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}

	line("type", d.typ)
	line("title", d.title)
	if d.status != 0 {
		line("status", strconv.Itoa(d.status))
	}
	line("detail", d.detail)
	line("instance", d.instance)

	if d.cause != nil {
		b.WriteString(indent)
		b.WriteString("cause:\n")
		d.cause.writeTo(b, indent+"  ")
	}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d Detail) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if d.typ != "" {
		enc.AddString("type", d.typ)
	}
	if d.title != "" {
		enc.AddString("title", d.title)
	}
	if d.status != 0 {
		enc.AddInt("status", d.status)
	}
	if d.detail != "" {
		enc.AddString("detail", d.detail)
	}
	enc.AddString("instance", d.instance)
	if d.cause != nil {
		return enc.AddObject("cause", *d.cause)
	}
	return nil
}

// ToBuilder returns a builder pre-filled with the fields of d, including its instance.
func (d Detail) ToBuilder() *Builder {
	return &Builder{d: d}
}

// NewInstance returns a fresh "urn:problem-instance:<uuid>" identifier.
// It is safe for concurrent use.
func NewInstance() string {
	return URNProblemInstancePrefix + uuid.NewString()
}

// Builder assembles a Detail. The zero value is ready to use.
type Builder struct {
	d Detail
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Type sets the problem type URI.
func (b *Builder) Type(uri string) *Builder {
	b.d.typ = uri
	return b
}

// Title sets the short summary of the problem type.
func (b *Builder) Title(title string) *Builder {
	b.d.title = title
	return b
}

// Status sets the raw HTTP status code.
func (b *Builder) Status(code int) *Builder {
	b.d.status = code
	return b
}

// StatusType sets the status from its semantic value.
func (b *Builder) StatusType(status Status) *Builder {
	b.d.status = status.Code
	return b
}

// Detail sets the explanation specific to this occurrence.
func (b *Builder) Detail(detail string) *Builder {
	b.d.detail = detail
	return b
}

// Instance sets the occurrence URI, replacing the generated one.
func (b *Builder) Instance(uri string) *Builder {
	b.d.instance = uri
	return b
}

// Cause nests an already built detail.
func (b *Builder) Cause(cause Detail) *Builder {
	b.d.cause = &cause
	return b
}

// Build returns the detail. If no instance was set, a new one is generated
// on every call.
func (b *Builder) Build() Detail {
	d := b.d
	if d.instance == "" {
		d.instance = NewInstance()
	}
	return d
}
