// Package problemgen generates Go code from a YAML catalog of error types.
//
// The catalog declares, per error type, the HTTP status it maps to. The
// generated file holds one problems.ErrorType per entry, a Register
// function filling a problems.Registry, and a constructor per entry.
//
// Basic usage:
//
//	cfg := &problemgen.Config{
//		CatalogFile: "./problems.yaml",
//		OutputDir:   "./gen/apperrors",
//		Package:     "apperrors",
//	}
//
//	gen, err := problemgen.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := gen.Generate(); err != nil {
//		log.Fatal(err)
//	}
package problemgen

import (
	"fmt"
	"path/filepath"
)

const (
	defaultPackage    = "apperrors"
	defaultOutputFile = "problems.gen.go"
)

// Config holds the configuration for the problem generator.
type Config struct {
	// CatalogFile is the YAML catalog. Required.
	CatalogFile string

	// OutputDir is the directory the generated file is written to.
	// Required for generation.
	OutputDir string

	// Package is the Go package name of the generated code.
	// Defaults to "apperrors".
	Package string

	// OutputFile is the generated file name. Defaults to "problems.gen.go".
	OutputFile string

	// Verbose enables detailed logging during generation.
	Verbose bool
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.CatalogFile == "" {
		return fmt.Errorf("catalog file is required")
	}
	if c.Package == "" {
		c.Package = defaultPackage
	}
	if c.OutputFile == "" {
		c.OutputFile = defaultOutputFile
	}
	return nil
}

// ValidateForGeneration checks that the configuration is valid for code generation.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required for generation")
	}
	return nil
}

// AbsolutePaths converts relative paths to absolute paths.
func (c *Config) AbsolutePaths() error {
	var err error
	if c.CatalogFile != "" {
		if c.CatalogFile, err = filepath.Abs(c.CatalogFile); err != nil {
			return fmt.Errorf("failed to resolve catalog file: %w", err)
		}
	}
	if c.OutputDir != "" {
		if c.OutputDir, err = filepath.Abs(c.OutputDir); err != nil {
			return fmt.Errorf("failed to resolve output directory: %w", err)
		}
	}
	return nil
}
