package taxonomy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// Format identifies a taxonomy file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat accepts a format name or a file extension with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: unknown taxonomy format %q", domain.ErrInvalidInput, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", domain.ErrUnsupportedType, path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}
	return f, nil
}

// NameFromPath derives a taxonomy name from a file name.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
