package problemgen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Sokol111/problemdetail/pkg/http/problems"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

// Catalog is the parsed YAML input.
//
//	package: com.example.orders
//	errors:
//	  - name: YouDidItWrongException
//	    status: 409
//	  - name: OrderNotFound
//	    status: 404
type Catalog struct {
	Package string         `yaml:"package"`
	Errors  []CatalogError `yaml:"errors"`
}

// CatalogError declares one error type.
type CatalogError struct {
	Name   string `yaml:"name"`
	Status int    `yaml:"status"`
	// Title overrides the title derived from Name.
	Title string `yaml:"title,omitempty"`
}

// ErrorType returns the identity of e within the catalog package.
func (c *Catalog) ErrorType(e CatalogError) problems.ErrorType {
	return problems.ErrorType{Package: c.Package, Name: e.Name}
}

// BaseName is the Go identifier stem for e: the name without a trailing
// "Exception", in Go PascalCase.
func (e CatalogError) BaseName() string {
	base := strings.TrimSuffix(e.Name, "Exception")
	if base == "" {
		base = e.Name
	}
	return strcase.ToGoPascal(base)
}

// TypeVarName is the name of the generated ErrorType variable.
func (e CatalogError) TypeVarName() string {
	return e.BaseName() + "Type"
}

// ConstructorName is the name of the generated constructor.
func (e CatalogError) ConstructorName() string {
	return "New" + e.BaseName()
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog parses and validates catalog YAML. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks names and statuses and that generated identifiers are unique.
func (c *Catalog) Validate() error {
	if len(c.Errors) == 0 {
		return errors.New("catalog declares no errors")
	}

	seen := make(map[string]string, len(c.Errors))
	for i, e := range c.Errors {
		if !isIdentifier(e.Name) {
			return fmt.Errorf("errors[%d]: name %q is not a valid type name", i, e.Name)
		}
		if e.Status < 100 || e.Status > 599 {
			return fmt.Errorf("errors[%d] %s: status %d is not a valid HTTP status", i, e.Name, e.Status)
		}
		base := e.BaseName()
		if other, ok := seen[base]; ok {
			return fmt.Errorf("errors[%d] %s: generates the same identifiers as %s", i, e.Name, other)
		}
		seen[base] = e.Name
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
