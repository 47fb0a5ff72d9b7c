package taxonomy

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/tally/internal/core/domain"
)

const (
	objectSchemaURL = "https://tally.custodia-labs.dev/schemas/taxonomy.json"
	tomlSchemaURL   = "https://tally.custodia-labs.dev/schemas/taxonomy-toml.json"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemaOnce   sync.Once
	objectSchema *jsonschema.Schema
	tomlSchema   *jsonschema.Schema
	schemaErr    error
)

// Violation is one schema failure at a location in the document.
type Violation struct {
	// Path is a JSON pointer to the offending value ("" for the root).
	Path string `json:"path"`

	// Message describes the failure.
	Message string `json:"message"`
}

// SchemaError reports every schema violation found in a taxonomy document.
type SchemaError struct {
	Violations []Violation
}

// Error returns all violations, one per line.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(domain.ErrInvalidTaxonomy.Error())
	for _, v := range e.Violations {
		path := v.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(&b, "\n  %s: %s", path, v.Message)
	}
	return b.String()
}

// Unwrap lets errors.Is match domain.ErrInvalidTaxonomy.
func (e *SchemaError) Unwrap() error {
	return domain.ErrInvalidTaxonomy
}

// compileSchemas compiles the embedded schemas once.
func compileSchemas() error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		if err := addSchema(compiler, objectSchemaURL, "schema/taxonomy.json"); err != nil {
			schemaErr = err
			return
		}
		if err := addSchema(compiler, tomlSchemaURL, "schema/taxonomy-toml.json"); err != nil {
			schemaErr = err
			return
		}

		objectSchema, schemaErr = compiler.Compile(objectSchemaURL)
		if schemaErr != nil {
			return
		}
		tomlSchema, schemaErr = compiler.Compile(tomlSchemaURL)
	})
	return schemaErr
}

func addSchema(compiler *jsonschema.Compiler, url, file string) error {
	data, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading schema %s: %w", file, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing schema %s: %w", file, err)
	}
	if err := compiler.AddResource(url, doc); err != nil {
		return fmt.Errorf("adding schema %s: %w", file, err)
	}
	return nil
}

// validate checks a decoded document against the schema for its format.
func validate(format Format, instance any) error {
	if err := compileSchemas(); err != nil {
		return fmt.Errorf("compiling taxonomy schema: %w", err)
	}

	schema := objectSchema
	if format == FormatTOML {
		schema = tomlSchema
	}

	err := schema.Validate(instance)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidTaxonomy, err)
	}

	printer := message.NewPrinter(language.English)
	return &SchemaError{Violations: collectViolations(verr, printer)}
}

// collectViolations flattens the validation error tree into its leaves.
func collectViolations(verr *jsonschema.ValidationError, printer *message.Printer) []Violation {
	if len(verr.Causes) == 0 {
		return []Violation{{
			Path:    pointer(verr.InstanceLocation),
			Message: verr.ErrorKind.LocalizedString(printer),
		}}
	}

	var out []Violation
	for _, cause := range verr.Causes {
		out = append(out, collectViolations(cause, printer)...)
	}
	return out
}

func pointer(location []string) string {
	if len(location) == 0 {
		return ""
	}
	escaped := make([]string, len(location))
	for i, part := range location {
		part = strings.ReplaceAll(part, "~", "~0")
		escaped[i] = strings.ReplaceAll(part, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
