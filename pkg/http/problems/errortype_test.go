package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type YouDidItWrongException struct{}

func (YouDidItWrongException) Error() string { return "you did it wrong" }

type orderNotFound struct{ id string }

func (e *orderNotFound) Error() string { return "order " + e.id + " not found" }

const testPackage = "github.com/Sokol111/problemdetail/pkg/http/problems"

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "YouDidItWrongException", want: "you did it wrong"},
		{name: "Foo", want: "foo"},
		{name: "FooException", want: "foo"},
		{name: "Exception", want: ""},
		{name: "ExceptionHandler", want: "exception handler"},
		{name: "HTTPTimeout", want: "h t t p timeout"},
		{name: "orderNotFound", want: "order not found"},
		{name: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.name))
		})
	}
}

func TestParseErrorType(t *testing.T) {
	tests := []struct {
		in   string
		want ErrorType
	}{
		{in: "com.example.YouDidItWrongException", want: ErrorType{Package: "com.example", Name: "YouDidItWrongException"}},
		{in: "Foo", want: ErrorType{Name: "Foo"}},
		{in: "github.com/acme/orders.NotFound", want: ErrorType{Package: "github.com/acme/orders", Name: "NotFound"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseErrorType(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.FullName())
		})
	}
}

func TestTypeOf(t *testing.T) {
	t.Run("value type", func(t *testing.T) {
		got := TypeOf(YouDidItWrongException{})

		assert.Equal(t, ErrorType{Package: testPackage, Name: "YouDidItWrongException"}, got)
		assert.Equal(t, "YouDidItWrongException", got.SimpleName())
	})

	t.Run("pointer is stripped", func(t *testing.T) {
		got := TypeOf(&orderNotFound{id: "1"})

		assert.Equal(t, testPackage+".orderNotFound", got.FullName())
	})

	t.Run("error interface holding a value", func(t *testing.T) {
		var err error = &orderNotFound{}

		assert.Equal(t, "orderNotFound", TypeOf(err).Name)
	})

	t.Run("nil is the zero type", func(t *testing.T) {
		got := TypeOf(nil)

		assert.True(t, got.IsZero())
		assert.Empty(t, got.String())
	})
}
