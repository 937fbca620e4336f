package problem

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// XMLRootElement is the element name of a detail at the top of an XML document.
const XMLRootElement = "problemDetail"

// ErrMalformed is returned when a body cannot be read as a problem detail.
var ErrMalformed = errors.New("malformed problem detail")

// wire is the serialized shape shared by both codecs. Field order is the
// order of the wire format.
type wire struct {
	Type     string `json:"type,omitempty" xml:"type,omitempty"`
	Title    string `json:"title,omitempty" xml:"title,omitempty"`
	Status   int    `json:"status,omitempty" xml:"status,omitempty"`
	Detail   string `json:"detail,omitempty" xml:"detail,omitempty"`
	Instance string `json:"instance,omitempty" xml:"instance,omitempty"`
	Cause    *wire  `json:"cause,omitempty" xml:"cause,omitempty"`
}

func toWire(d Detail) *wire {
	w := &wire{
		Type:     d.typ,
		Title:    d.title,
		Status:   d.status,
		Detail:   d.detail,
		Instance: d.instance,
	}
	if d.cause != nil {
		w.Cause = toWire(*d.cause)
	}
	return w
}

func (w *wire) toDetail() Detail {
	b := NewBuilder().
		Type(w.Type).
		Title(w.Title).
		Status(w.Status).
		Detail(w.Detail).
		Instance(w.Instance)
	if w.Cause != nil {
		b.Cause(w.Cause.toDetail())
	}
	return b.Build()
}

// MarshalJSON implements json.Marshaler.
func (d Detail) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(d))
}

// wireMembers are the member names of the wire format. encoding/json would
// also accept them in any letter case.
var wireMembers = []string{"type", "title", "status", "detail", "instance", "cause"}

// checkMembers rejects members that differ from a wire member only in
// letter case, in the object and in its cause chain. Other members are
// extensions and are ignored.
func checkMembers(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for name, value := range members {
		for _, known := range wireMembers {
			if name != known && strings.EqualFold(name, known) {
				return fmt.Errorf("unknown member %q, expected %q", name, known)
			}
		}
		if name == "cause" && !bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			if err := checkMembers(value); err != nil {
				return fmt.Errorf("cause: %w", err)
			}
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. Absent and null members are
// both read as absent; a missing instance is generated. Member names must
// match in letter case.
func (d *Detail) UnmarshalJSON(data []byte) error {
	if err := checkMembers(data); err != nil {
		return err
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = w.toDetail()
	return nil
}

// MarshalXML implements xml.Marshaler. A detail marshaled on its own is
// written as a problemDetail element; as a struct field it takes the
// field's element name.
func (d Detail) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if start.Name.Local == "" || start.Name.Local == "Detail" {
		start.Name = xml.Name{Local: XMLRootElement}
	}
	return e.EncodeElement(toWire(d), start)
}

// UnmarshalXML implements xml.Unmarshaler.
func (d *Detail) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var w wire
	if err := dec.DecodeElement(&w, &start); err != nil {
		return err
	}
	*d = w.toDetail()
	return nil
}

// FromJSON parses a JSON object into a detail.
func FromJSON(data []byte) (Detail, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Detail{}, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	var d Detail
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return Detail{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return d, nil
}

// FromJSONString is FromJSON for string input.
func FromJSONString(s string) (Detail, error) {
	return FromJSON([]byte(s))
}

// ToJSON serializes d as compact JSON.
func ToJSON(d Detail) ([]byte, error) {
	return json.Marshal(d)
}

// FromXML parses an XML document whose root element is problemDetail.
func FromXML(data []byte) (Detail, error) {
	var d Detail
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return Detail{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != XMLRootElement {
			return Detail{}, fmt.Errorf("%w: unexpected root element %q", ErrMalformed, start.Name.Local)
		}
		if err := dec.DecodeElement(&d, &start); err != nil {
			return Detail{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return d, nil
	}
}

// ToXML serializes d as an indented XML document including the XML header.
func ToXML(d Detail) ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// IsXML reports whether the media type selects the XML representation,
// e.g. "application/problem+xml" or "application/xml".
func IsXML(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(mediaType))
	}
	return strings.HasSuffix(mt, "+xml") || strings.HasSuffix(mt, "/xml")
}

// Unmarshal parses body with the codec selected by contentType.
// Anything that is not XML is read as JSON.
func Unmarshal(contentType string, body []byte) (Detail, error) {
	if IsXML(contentType) {
		return FromXML(body)
	}
	return FromJSON(body)
}

// Marshal serializes d with the codec selected by contentType.
func Marshal(contentType string, d Detail) ([]byte, error) {
	if IsXML(contentType) {
		return ToXML(d)
	}
	return ToJSON(d)
}
