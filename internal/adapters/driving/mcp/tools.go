package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/normalisers"
)

// TermInput is one search term of an inline taxonomy.
type TermInput struct {
	Name    string   `json:"name" jsonschema:"the canonical search term"`
	Aliases []string `json:"aliases" jsonschema:"phrases counted toward the term, case-insensitive, whole words"`
}

// CountInput is the input schema for the count_keywords tool.
type CountInput struct {
	Text        string      `json:"text,omitempty" jsonschema:"plain text to count in; use this or path"`
	Path        string      `json:"path,omitempty" jsonschema:"local document path (pdf, html, docx, eml, markdown or text)"`
	Taxonomy    string      `json:"taxonomy,omitempty" jsonschema:"stored taxonomy name or taxonomy file path; default taxonomy when empty"`
	Terms       []TermInput `json:"terms,omitempty" jsonschema:"inline ordered taxonomy; overrides taxonomy when given"`
	MatchedOnly bool        `json:"matched_only,omitempty" jsonschema:"return only rows with at least one occurrence"`
}

// CountOutput is the output schema for the count_keywords tool.
type CountOutput struct {
	Document   string             `json:"document,omitempty"`
	Taxonomy   string             `json:"taxonomy,omitempty"`
	Rows       []domain.ResultRow `json:"rows"`
	GrandTotal int                `json:"grand_total"`
}

// ListTaxonomiesInput is the input schema for the list_taxonomies tool.
type ListTaxonomiesInput struct{}

// ListTaxonomiesOutput is the output schema for the list_taxonomies tool.
type ListTaxonomiesOutput struct {
	Taxonomies []domain.TaxonomySummary `json:"taxonomies"`
	Count      int                      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "count_keywords",
		Description: "Count whole-word, case-insensitive occurrences of taxonomy aliases in text " +
			"or a local document and return one row per search term in taxonomy order",
	}, s.handleCount)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_taxonomies",
		Description: "List the stored taxonomies that count_keywords accepts by name",
	}, s.handleListTaxonomies)
}

// handleCount handles the count_keywords tool invocation.
func (s *Server) handleCount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountInput,
) (*mcp.CallToolResult, CountOutput, error) {
	hasText := input.Text != ""
	hasPath := strings.TrimSpace(input.Path) != ""
	if hasText == hasPath {
		return nil, CountOutput{}, fmt.Errorf("%w: give exactly one of text or path", domain.ErrInvalidInput)
	}

	tax, err := s.taxonomyFor(ctx, input)
	if err != nil {
		return nil, CountOutput{}, err
	}

	var output CountOutput
	if hasText {
		table, err := s.ports.Tally.Count(ctx, input.Text, *tax)
		if err != nil {
			return nil, CountOutput{}, err
		}
		output = CountOutput{Taxonomy: tax.Name, Rows: table.Rows, GrandTotal: table.GrandTotal}
	} else {
		raw, err := readDocument(input.Path)
		if err != nil {
			return nil, CountOutput{}, err
		}
		report, err := s.ports.Tally.CountDocument(ctx, raw, *tax)
		if err != nil {
			return nil, CountOutput{}, err
		}
		output = CountOutput{
			Document:   report.Document.Title,
			Taxonomy:   report.Taxonomy,
			Rows:       report.Table.Rows,
			GrandTotal: report.Table.GrandTotal,
		}
	}

	if input.MatchedOnly {
		output.Rows = domain.ResultTable{Rows: output.Rows}.Matched()
	}
	if output.Rows == nil {
		output.Rows = []domain.ResultRow{}
	}

	return nil, output, nil
}

// handleListTaxonomies handles the list_taxonomies tool invocation.
func (s *Server) handleListTaxonomies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListTaxonomiesInput,
) (*mcp.CallToolResult, ListTaxonomiesOutput, error) {
	list, err := s.ports.Taxonomy.List(ctx)
	if err != nil {
		return nil, ListTaxonomiesOutput{}, fmt.Errorf("listing taxonomies: %w", err)
	}
	if list == nil {
		list = []domain.TaxonomySummary{}
	}
	return nil, ListTaxonomiesOutput{Taxonomies: list, Count: len(list)}, nil
}

// taxonomyFor builds the inline taxonomy or resolves the reference.
func (s *Server) taxonomyFor(ctx context.Context, input CountInput) (*domain.Taxonomy, error) {
	if len(input.Terms) == 0 {
		return s.ports.Taxonomy.Resolve(ctx, input.Taxonomy)
	}

	tax := &domain.Taxonomy{Terms: make([]domain.Term, len(input.Terms))}
	for i, term := range input.Terms {
		aliases := term.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		tax.Terms[i] = domain.Term{Name: term.Name, Aliases: aliases}
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	return tax, nil
}

func readDocument(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &domain.RawDocument{
		URI:      path,
		MIMEType: normalisers.DetectMIMEType(path, content),
		Content:  content,
	}, nil
}
