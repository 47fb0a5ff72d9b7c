package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// Encode writes a taxonomy in the given format, preserving term order.
// Output produced here decodes back to an equal taxonomy.
func Encode(tax domain.Taxonomy, format Format) ([]byte, error) {
	if err := tax.Validate(); err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return encodeJSON(tax)
	case FormatYAML:
		return encodeYAML(tax)
	case FormatTOML:
		return encodeTOML(tax)
	default:
		return nil, fmt.Errorf("%w: taxonomy format %q", domain.ErrUnsupportedType, format)
	}
}

func encodeJSON(tax domain.Taxonomy) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, term := range tax.Terms {
		key, err := json.Marshal(term.Name)
		if err != nil {
			return nil, err
		}
		aliases, err := json.Marshal(nonNil(term.Aliases))
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(aliases)
		if i < len(tax.Terms)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeYAML(tax domain.Taxonomy) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, term := range tax.Terms {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, alias := range term.Aliases {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: alias})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: term.Name},
			seq,
		)
	}
	return yaml.Marshal(root)
}

func encodeTOML(tax domain.Taxonomy) ([]byte, error) {
	doc := tomlDocument{Name: tax.Name, Terms: make([]tomlTerm, 0, len(tax.Terms))}
	for _, term := range tax.Terms {
		doc.Terms = append(doc.Terms, tomlTerm{Name: term.Name, Aliases: nonNil(term.Aliases)})
	}
	return toml.Marshal(doc)
}
