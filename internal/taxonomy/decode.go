package taxonomy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tally/internal/core/domain"
)

type tomlDocument struct {
	Name  string     `toml:"name,omitempty"`
	Terms []tomlTerm `toml:"term"`
}

type tomlTerm struct {
	Name    string   `toml:"name"`
	Aliases []string `toml:"aliases"`
}

// Decode parses a taxonomy document.
// The returned taxonomy has passed both schema and domain validation.
func Decode(data []byte, format Format) (domain.Taxonomy, error) {
	var (
		tax domain.Taxonomy
		err error
	)

	switch format {
	case FormatJSON:
		tax, err = decodeJSON(data)
	case FormatYAML:
		tax, err = decodeYAML(data)
	case FormatTOML:
		tax, err = decodeTOML(data)
	default:
		return domain.Taxonomy{}, fmt.Errorf("%w: taxonomy format %q", domain.ErrUnsupportedType, format)
	}
	if err != nil {
		return domain.Taxonomy{}, err
	}

	if err := tax.Validate(); err != nil {
		return domain.Taxonomy{}, err
	}
	return tax, nil
}

// LoadFile reads and decodes a taxonomy file. When the document carries no
// name, the file name without its extension is used.
func LoadFile(path string) (domain.Taxonomy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.Taxonomy{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Taxonomy{}, fmt.Errorf("%w: taxonomy file %s", domain.ErrNotFound, path)
		}
		return domain.Taxonomy{}, fmt.Errorf("reading taxonomy: %w", err)
	}

	tax, err := Decode(data, format)
	if err != nil {
		return domain.Taxonomy{}, fmt.Errorf("%s: %w", path, err)
	}
	if tax.Name == "" {
		tax.Name = NameFromPath(path)
	}
	return tax, nil
}

func syntaxError(format Format, err error) error {
	return fmt.Errorf("%w: malformed %s: %v", domain.ErrInvalidTaxonomy, format, err)
}

func decodeJSON(data []byte) (domain.Taxonomy, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return domain.Taxonomy{}, syntaxError(FormatJSON, err)
	}
	if err := validate(FormatJSON, instance); err != nil {
		return domain.Taxonomy{}, err
	}

	// Maps lose key order, so walk the object token by token.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return domain.Taxonomy{}, syntaxError(FormatJSON, err)
	}

	var tax domain.Taxonomy
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return domain.Taxonomy{}, syntaxError(FormatJSON, err)
		}
		name, ok := tok.(string)
		if !ok {
			return domain.Taxonomy{}, syntaxError(FormatJSON, fmt.Errorf("unexpected token %v", tok))
		}

		var aliases []string
		if err := dec.Decode(&aliases); err != nil {
			return domain.Taxonomy{}, syntaxError(FormatJSON, err)
		}
		tax.Terms = append(tax.Terms, domain.Term{Name: name, Aliases: nonNil(aliases)})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return domain.Taxonomy{}, syntaxError(FormatJSON, err)
	}
	return tax, nil
}

func decodeYAML(data []byte) (domain.Taxonomy, error) {
	var instance any
	if err := yaml.Unmarshal(data, &instance); err != nil {
		return domain.Taxonomy{}, syntaxError(FormatYAML, err)
	}
	if err := validate(FormatYAML, instance); err != nil {
		return domain.Taxonomy{}, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Taxonomy{}, syntaxError(FormatYAML, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return domain.Taxonomy{}, fmt.Errorf("%w: expected a mapping of terms", domain.ErrInvalidTaxonomy)
	}

	var tax domain.Taxonomy
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var aliases []string
		if err := value.Decode(&aliases); err != nil {
			return domain.Taxonomy{}, syntaxError(FormatYAML, fmt.Errorf("line %d: %w", value.Line, err))
		}
		tax.Terms = append(tax.Terms, domain.Term{Name: key.Value, Aliases: nonNil(aliases)})
	}
	return tax, nil
}

func decodeTOML(data []byte) (domain.Taxonomy, error) {
	var instance map[string]any
	if err := toml.Unmarshal(data, &instance); err != nil {
		return domain.Taxonomy{}, syntaxError(FormatTOML, err)
	}
	if err := validate(FormatTOML, instance); err != nil {
		return domain.Taxonomy{}, err
	}

	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Taxonomy{}, syntaxError(FormatTOML, err)
	}

	tax := domain.Taxonomy{Name: doc.Name, Terms: make([]domain.Term, 0, len(doc.Terms))}
	for _, t := range doc.Terms {
		tax.Terms = append(tax.Terms, domain.Term{Name: t.Name, Aliases: nonNil(t.Aliases)})
	}
	return tax, nil
}

func nonNil(aliases []string) []string {
	if aliases == nil {
		return []string{}
	}
	return aliases
}
