package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.yaml.in/yaml/v4"

	"github.com/schemaguard/schemaguard"
	"github.com/schemaguard/schemaguard/internal/mcpserver"
	"github.com/schemaguard/schemaguard/schema"
	"github.com/schemaguard/schemaguard/sgerrors"
	"github.com/schemaguard/schemaguard/validator"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schemaguard v%s\n", schemaguard.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := handleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// validateFlags contains flags for the validate command
type validateFlags struct {
	schemaPath string
	dataPath   string
	kind       string
	coerce     bool
	strip      bool
	optional   bool
	jsonOut    bool
}

func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.StringVar(&flags.schemaPath, "schema", "", "path to the schema document (JSON or YAML)")
	fs.StringVar(&flags.dataPath, "data", "", "path to the data document (JSON or YAML), or - for stdin")
	fs.StringVar(&flags.kind, "kind", "body", "validator kind: body, param, query, or response")
	fs.BoolVar(&flags.coerce, "coerce", false, "coerce string inputs toward declared property types")
	fs.BoolVar(&flags.strip, "strip", false, "strip properties not declared in the schema")
	fs.BoolVar(&flags.optional, "optional", false, "treat null data as acceptable instead of an error")
	fs.BoolVar(&flags.jsonOut, "json", false, "emit machine-readable JSON instead of text")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: schemaguard validate -schema <file> -data <file> [flags]\n\n")
		_, _ = fmt.Fprintf(output, "Validate a JSON or YAML data document against a schema.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  schemaguard validate -schema user.schema.json -data user.json\n")
		_, _ = fmt.Fprintf(output, "  schemaguard validate -schema user.schema.yaml -data user.yaml -coerce -strip\n")
		_, _ = fmt.Fprintf(output, "  cat user.json | schemaguard validate -schema user.schema.json -data - -json\n")
	}

	return fs, flags
}

func handleValidate(args []string) error {
	fs, flags := setupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if flags.schemaPath == "" || flags.dataPath == "" {
		fs.Usage()
		return fmt.Errorf("validate command requires -schema and -data")
	}

	s, err := loadSchema(flags.schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	data, err := loadData(flags.dataPath)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	v, err := validator.Build(validator.Config{
		Kind:              validator.Kind(flags.kind),
		Name:              filepath.Base(flags.schemaPath),
		Schema:            s,
		CoerceTypes:       flags.coerce,
		StripUnknownProps: flags.strip,
		Required:          !flags.optional,
	})
	if err != nil {
		return fmt.Errorf("building validator: %w", err)
	}

	out, err := v.Validate(data)
	var failure *sgerrors.ValidationFailure
	if err != nil && !errors.As(err, &failure) {
		return fmt.Errorf("validating data: %w", err)
	}

	if flags.jsonOut {
		return printJSONResult(out, failure)
	}
	return printTextResult(flags, s, out, failure)
}

// printJSONResult emits the wire-shape body on failure, or a valid/data
// envelope on success.
func printJSONResult(out any, failure *sgerrors.ValidationFailure) error {
	if failure != nil {
		body, err := failure.ResponseBody()
		if err != nil {
			return err
		}
		fmt.Println(string(body))
		os.Exit(1)
	}

	encoded, err := json.Marshal(map[string]any{"valid": true, "data": out})
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func printTextResult(flags *validateFlags, s *schema.Schema, out any, failure *sgerrors.ValidationFailure) error {
	fmt.Printf("Schema Validation\n")
	fmt.Printf("=================\n\n")
	fmt.Printf("schemaguard version: %s\n", schemaguard.Version())
	fmt.Printf("Schema: %s\n", s.Source())
	fmt.Printf("Data: %s\n", flags.dataPath)
	fmt.Printf("Kind: %s\n\n", flags.kind)

	if failure != nil {
		fmt.Printf("Errors (%d):\n", len(failure.Errors))
		for _, e := range failure.Errors {
			path := e.InstancePath
			if path == "" {
				path = "/"
			}
			fmt.Printf("  %s [%s] %s\n", path, e.Keyword, e.Message)
		}
		fmt.Println()
		fmt.Printf("✗ Validation failed: %d error(s)\n", len(failure.Errors))
		os.Exit(1)
	}

	if flags.coerce || flags.strip {
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("Transformed:\n%s\n\n", string(encoded))
	}
	fmt.Printf("✓ Validation passed\n")
	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// loadSchema reads a schema document from disk, or from stdin when the
// path is "-".
func loadSchema(path string) (*schema.Schema, error) {
	data, name, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return schema.FromFile(name, data)
}

// loadData reads a data document from disk (or stdin when the path is "-")
// and decodes it by extension, sniffing when the extension is unfamiliar.
func loadData(path string) (any, error) {
	data, name, err := readInput(path)
	if err != nil {
		return nil, err
	}

	useJSON := false
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		useJSON = true
	case ".yaml", ".yml":
	default:
		trimmed := strings.TrimSpace(string(data))
		useJSON = strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") ||
			strings.HasPrefix(trimmed, `"`)
	}

	var raw any
	if useJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON data: %w", err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML data: %w", err)
	}
	return normalizeYAML(raw), nil
}

// readInput returns file contents and the name used for format detection.
// A path of "-" reads stdin.
func readInput(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "", err
	}
	data, err := os.ReadFile(path)
	return data, path, err
}

// normalizeYAML converts map[any]any nodes from YAML decoding into
// map[string]any so validation sees JSON-shaped data.
func normalizeYAML(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		for k, val := range node {
			node[k] = normalizeYAML(val)
		}
		return node
	case []any:
		for i, val := range node {
			node[i] = normalizeYAML(val)
		}
		return node
	default:
		return v
	}
}

func printUsage() {
	fmt.Println(`schemaguard - Schema Validation Tools

Usage:
  schemaguard <command> [options]

Commands:
  validate    Validate a JSON or YAML data document against a schema
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schemaguard validate -schema user.schema.json -data user.json
  schemaguard validate -schema user.schema.yaml -data user.yaml -coerce -strip
  schemaguard validate -schema id.schema.json -data id.json -kind param -json
  schemaguard mcp

Run 'schemaguard <command> --help' for more information on a command.`)
}
