package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/taxonomy"
)

const (
	// uriScheme is the custom URI scheme for tally resources.
	uriScheme = "tally://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "taxonomies",
		Name:        "taxonomies",
		Description: "Summaries of all stored taxonomies",
		MIMEType:    "application/json",
	}, s.handleTaxonomiesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "taxonomies/{name}",
		Name:        "taxonomy",
		Description: "Terms and aliases of a taxonomy, in order",
		MIMEType:    "application/json",
	}, s.handleTaxonomyResource)
}

// handleTaxonomiesResource returns summaries of the stored taxonomies.
func (s *Server) handleTaxonomiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	list, err := s.ports.Taxonomy.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomies: %w", err)
	}
	if list == nil {
		list = []domain.TaxonomySummary{}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling taxonomies: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTaxonomyResource returns one taxonomy in its JSON file form.
func (s *Server) handleTaxonomyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractTaxonomyName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tax, err := s.ports.Taxonomy.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting taxonomy: %w", err)
	}

	data, err := taxonomy.Encode(*tax, taxonomy.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("encoding taxonomy: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTaxonomyName extracts the name from a URI like tally://taxonomies/{name}.
func extractTaxonomyName(uri string) string {
	const prefix = uriScheme + "taxonomies/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
