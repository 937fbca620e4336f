// Package main provides the problemgen CLI tool.
//
// Usage:
//
//	problemgen generate --catalog ./problems.yaml --output ./gen/apperrors --package apperrors
//	problemgen inspect response.json
//	curl -s http://localhost:8080/orders/1 | problemgen inspect
//
// generate turns a YAML catalog of error types into Go code registering
// their statuses; inspect prints a problem detail body in readable form.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Sokol111/problemdetail/internal/problemgen"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "problemgen",
		Short:   "Generate and inspect problem details",
		Long:    `problemgen generates error types with HTTP statuses from a YAML catalog and prints problem detail bodies.`,
		Version: version,
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newInspectCmd())

	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cfg := &problemgen.Config{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go code from an error catalog",
		Long: `Generate Go code from an error catalog.

For every catalog entry this command emits a problems.ErrorType variable,
a constructor returning a *problems.WebError, and a registration of its
HTTP status in a Register function.

Example:
  problemgen generate --catalog ./problems.yaml --output ./gen/apperrors --package apperrors`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cfg)
		},
	}

	// Required flags
	cmd.Flags().StringVarP(&cfg.CatalogFile, "catalog", "c", "", "YAML error catalog (required)")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "", "Output directory for generated code (required)")

	// Optional flags
	cmd.Flags().StringVarP(&cfg.Package, "package", "n", "apperrors", "Go package name for generated code")
	cmd.Flags().StringVarP(&cfg.OutputFile, "file", "f", "problems.gen.go", "Generated file name")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")

	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runGenerate(cfg *problemgen.Config) error {
	gen, err := problemgen.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	if err := gen.Generate(); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return nil
}

func newInspectCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a problem detail body",
		Long: `Print a problem detail body read from a file or stdin.

The codec is chosen by --content-type, or by the first character of the
body when no content type is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close() //nolint:errcheck
				in = f
			}
			return runInspect(in, cmd.OutOrStdout(), contentType)
		},
	}

	cmd.Flags().StringVarP(&contentType, "content-type", "t", "", "Media type of the body (sniffed if empty)")

	return cmd
}

func runInspect(in io.Reader, out io.Writer, contentType string) error {
	text, _, err := problemgen.Inspect(in, contentType)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(out, text); err != nil {
		return err
	}
	if text == problemgen.NoProblemDetail {
		_, err = fmt.Fprintln(out)
	}
	return err
}
