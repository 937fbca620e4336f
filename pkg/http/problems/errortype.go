package problems

import (
	"reflect"
	"strings"
	"unicode"
)

const exceptionSuffix = "Exception"

// ErrorType is the stable identity of a logical error type. It stands in for
// a class name: statuses are registered against it and the default problem
// type URI and title are derived from it.
type ErrorType struct {
	// Package qualifies the name, e.g. "com.example.orders" or a Go import path.
	Package string
	// Name is the simple type name, e.g. "YouDidItWrongException".
	Name string
}

// ParseErrorType splits a fully qualified name at its last dot.
func ParseErrorType(fullName string) ErrorType {
	idx := strings.LastIndex(fullName, ".")
	if idx < 0 {
		return ErrorType{Name: fullName}
	}
	return ErrorType{Package: fullName[:idx], Name: fullName[idx+1:]}
}

// TypeOf returns the identity of v's static Go type, with pointers stripped.
func TypeOf(v any) ErrorType {
	t := reflect.TypeOf(v)
	if t == nil {
		return ErrorType{}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ErrorType{Package: t.PkgPath(), Name: t.Name()}
}

// FullName returns Package.Name, or just Name when no package is set.
func (t ErrorType) FullName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// SimpleName returns the unqualified name.
func (t ErrorType) SimpleName() string {
	return t.Name
}

// IsZero reports whether t identifies nothing.
func (t ErrorType) IsZero() bool {
	return t.Name == ""
}

func (t ErrorType) String() string {
	return t.FullName()
}

// Title derives a default title from a simple type name: a trailing
// "Exception" is dropped and every upper case letter after the first
// character starts a new lower case word.
//
//	YouDidItWrongException -> "you did it wrong"
//	Foo                    -> "foo"
func Title(simpleName string) string {
	name := strings.TrimSuffix(simpleName, exceptionSuffix)
	return camelToWords(name)
}

func camelToWords(in string) string {
	var out strings.Builder
	out.Grow(len(in) + 4)
	for _, r := range in {
		if out.Len() > 0 && unicode.IsUpper(r) {
			out.WriteByte(' ')
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}
