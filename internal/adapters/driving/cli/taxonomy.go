package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/keywords"
	"github.com/custodia-labs/tally/internal/taxonomy"
)

var (
	taxonomyShowFormat   string
	taxonomyImportName   string
	taxonomyExportFormat string
)

var taxonomyCmd = &cobra.Command{
	Use:     "taxonomy",
	Aliases: []string{"tax"},
	Short:   "Manage taxonomies",
	Long: `Manage the taxonomies used for counting.

A taxonomy maps each search term to the aliases counted toward it. Files may
be JSON or YAML objects ({"Revenue": ["revenue", "sales"]}) or TOML with
[[term]] tables. Term order is kept as written.`,
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored taxonomies",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyList,
}

var taxonomyShowCmd = &cobra.Command{
	Use:   "show [name|file]",
	Short: "Show a taxonomy's terms and aliases",
	Long: `Show a taxonomy. Without an argument the default taxonomy is shown.
Use --format to print it as json, yaml or toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTaxonomyShow,
}

var taxonomyImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Validate and store a taxonomy file",
	Long: `Validate a taxonomy file and store it for use with --taxonomy.
The stored name is --name, else the name in the file, else the file name.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaxonomyImport,
}

var taxonomyExportCmd = &cobra.Command{
	Use:   "export [name] [file]",
	Short: "Write a taxonomy to a file",
	Long: `Write a stored (or the built-in "default") taxonomy to a file.
The format follows the file extension. Without a file, or with "-",
the taxonomy is written to stdout as --format (default json).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTaxonomyExport,
}

var taxonomyRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a stored taxonomy",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaxonomyRemove,
}

var taxonomyValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a taxonomy file without storing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaxonomyValidate,
}

func init() {
	taxonomyShowCmd.Flags().StringVarP(&taxonomyShowFormat, "format", "f", "", "print as json, yaml or toml")
	taxonomyImportCmd.Flags().StringVarP(&taxonomyImportName, "name", "n", "", "name to store the taxonomy under")
	taxonomyExportCmd.Flags().StringVarP(&taxonomyExportFormat, "format", "f", "json", "format for stdout: json, yaml or toml")

	taxonomyCmd.AddCommand(taxonomyListCmd)
	taxonomyCmd.AddCommand(taxonomyShowCmd)
	taxonomyCmd.AddCommand(taxonomyImportCmd)
	taxonomyCmd.AddCommand(taxonomyExportCmd)
	taxonomyCmd.AddCommand(taxonomyRemoveCmd)
	taxonomyCmd.AddCommand(taxonomyValidateCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomyList(cmd *cobra.Command, _ []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	list, err := taxonomyService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list taxonomies: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No stored taxonomies. The built-in \"default\" taxonomy is always available.")
		cmd.Println("Store one with: tally taxonomy import <file>")
		return nil
	}

	cmd.Println("Stored taxonomies:")
	cmd.Println()
	for _, sum := range list {
		cmd.Printf("  %-20s %3d terms  %4d aliases\n", sum.Name, sum.Terms, sum.Aliases)
	}
	return nil
}

func runTaxonomyShow(cmd *cobra.Command, args []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	ref := ""
	if len(args) == 1 {
		ref = args[0]
	}

	tax, err := taxonomyService.Resolve(cmd.Context(), ref)
	if err != nil {
		return err
	}

	if taxonomyShowFormat != "" {
		format, err := taxonomy.ParseFormat(taxonomyShowFormat)
		if err != nil {
			return err
		}
		return encodeTaxonomy(cmd.OutOrStdout(), *tax, format)
	}

	printTaxonomy(cmd, tax)
	return nil
}

func runTaxonomyImport(cmd *cobra.Command, args []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	tax, err := taxonomyService.Import(cmd.Context(), taxonomyImportName, args[0])
	if err != nil {
		return fmt.Errorf("failed to import taxonomy: %w", err)
	}

	cmd.Printf("Imported taxonomy %q (%d terms, %d aliases)\n", tax.Name, tax.Len(), tax.AliasCount())
	return nil
}

func runTaxonomyExport(cmd *cobra.Command, args []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	tax, err := taxonomyService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 || args[1] == "-" {
		format, err := taxonomy.ParseFormat(taxonomyExportFormat)
		if err != nil {
			return err
		}
		return encodeTaxonomy(cmd.OutOrStdout(), *tax, format)
	}

	path := args[1]
	format, err := taxonomy.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := taxonomy.Encode(*tax, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // taxonomy files are not secret
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmd.Printf("Exported taxonomy %q to %s\n", tax.Name, path)
	return nil
}

func runTaxonomyRemove(cmd *cobra.Command, args []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	if err := taxonomyService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove taxonomy: %w", err)
	}

	cmd.Printf("Removed taxonomy %q\n", args[0])
	return nil
}

func runTaxonomyValidate(cmd *cobra.Command, args []string) error {
	if taxonomyService == nil {
		return errors.New("taxonomy service not configured")
	}

	tax, err := taxonomyService.Validate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("%s is valid: %d terms, %d aliases\n", args[0], tax.Len(), tax.AliasCount())
	if empty := emptyTerms(tax); len(empty) > 0 {
		cmd.Printf("Note: no aliases for %s; these rows will always be zero.\n", strings.Join(empty, ", "))
	}
	return nil
}

func encodeTaxonomy(w io.Writer, tax domain.Taxonomy, format taxonomy.Format) error {
	data, err := taxonomy.Encode(tax, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func printTaxonomy(cmd *cobra.Command, tax *domain.Taxonomy) {
	name := tax.Name
	if name == "" {
		name = "(unnamed)"
	}
	cmd.Printf("Taxonomy: %s (%d terms, %d aliases)\n\n", name, tax.Len(), tax.AliasCount())

	width := 0
	for _, term := range tax.Terms {
		if len(term.Name) > width {
			width = len(term.Name)
		}
	}

	for i, term := range tax.Terms {
		aliases := strings.Join(term.Aliases, ", ")
		if aliases == "" {
			aliases = "(no aliases)"
		}
		cmd.Printf("  %-3s %-*s  %s\n", keywords.ColumnIndex(i+1), width, term.Name, aliases)
	}
}

func emptyTerms(tax *domain.Taxonomy) []string {
	var names []string
	for _, term := range tax.Terms {
		if len(term.Aliases) == 0 {
			names = append(names, term.Name)
		}
	}
	return names
}
