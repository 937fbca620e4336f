package problem

import (
	"net/http"
	"strconv"
)

// Family groups HTTP status codes by their first digit.
type Family int

const (
	OtherFamily Family = iota
	Informational
	Successful
	Redirection
	ClientError
	ServerError
)

func (f Family) String() string {
	switch f {
	case Informational:
		return "informational"
	case Successful:
		return "successful"
	case Redirection:
		return "redirection"
	case ClientError:
		return "client error"
	case ServerError:
		return "server error"
	default:
		return "other"
	}
}

// Status is the semantic view of an HTTP status code.
// It is derived from the numeric code on demand and never stored next to it.
type Status struct {
	Code int
}

// StatusOf returns the semantic status for the given code.
func StatusOf(code int) Status {
	return Status{Code: code}
}

// Reason returns the standard reason phrase, or an empty string for unknown codes.
func (s Status) Reason() string {
	return http.StatusText(s.Code)
}

// Family returns the status family. Codes outside 100..599 belong to OtherFamily.
func (s Status) Family() Family {
	if s.Code < 100 || s.Code > 599 {
		return OtherFamily
	}
	return Family(s.Code / 100)
}

// IsServerError reports whether the status is in the 5xx family.
func (s Status) IsServerError() bool {
	return s.Family() == ServerError
}

func (s Status) String() string {
	if reason := s.Reason(); reason != "" {
		return strconv.Itoa(s.Code) + " " + reason
	}
	return strconv.Itoa(s.Code)
}
