package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tally/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure counting defaults.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  count.workers     goroutines used to count terms (1-256)
  count.format      default output format: table, json or csv
  taxonomy.default  stored taxonomy name or file used when --taxonomy is omitted
  extract.cleanup   comma-separated cleanup steps run after extraction

An empty value for taxonomy.default or extract.cleanup resets it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting's default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Count]")
	cmd.Printf("  Workers: %d\n", settings.Workers)
	cmd.Printf("  Format: %s\n", settings.Format)
	cmd.Println()

	cmd.Println("[Taxonomy]")
	if settings.Taxonomy != "" {
		cmd.Printf("  Default: %s\n", settings.Taxonomy)
	} else {
		cmd.Println("  Default: (built-in)")
	}
	cmd.Println()

	cmd.Println("[Extract]")
	if len(settings.Cleanup) > 0 {
		cmd.Printf("  Cleanup: %s\n", strings.Join(settings.Cleanup, ", "))
	} else {
		cmd.Println("  Cleanup: (none)")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if strings.TrimSpace(value) == "" {
		cmd.Printf("Reset %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}

	cmd.Printf("Reset %s\n", args[0])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Tally Settings Wizard")
	cmd.Println("=====================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Output format
	cmd.Println("Step 1: Select Output Format")
	cmd.Println("----------------------------")
	formats := []domain.OutputFormat{domain.OutputTable, domain.OutputJSON, domain.OutputCSV}
	defaultIdx := 1
	for i, f := range formats {
		if f == current.Format {
			defaultIdx = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, f)
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	formatIdx := parseChoice(readLine(reader), len(formats), defaultIdx)
	selected := formats[formatIdx-1]
	if err := settingsService.Set("count.format", selected.String()); err != nil {
		return fmt.Errorf("failed to set output format: %w", err)
	}
	cmd.Printf("Set output format to: %s\n\n", selected)

	// Step 2: Workers
	cmd.Println("Step 2: Counting Workers")
	cmd.Println("------------------------")
	cmd.Printf("Enter number of workers [%d]: ", current.Workers)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set("count.workers", input); err != nil {
			return fmt.Errorf("failed to set workers: %w", err)
		}
		cmd.Printf("Set workers to: %s\n\n", input)
	} else {
		cmd.Println()
	}

	// Step 3: Default taxonomy
	cmd.Println("Step 3: Default Taxonomy")
	cmd.Println("------------------------")
	cmd.Println("Enter a stored taxonomy name or a file path, \"-\" for the built-in taxonomy.")
	defaultTax := current.Taxonomy
	if defaultTax == "" {
		defaultTax = "built-in"
	}
	cmd.Printf("Default taxonomy [%s]: ", defaultTax)
	if input := readLine(reader); input != "" {
		if input == "-" {
			input = ""
		}
		if err := settingsService.Set("taxonomy.default", input); err != nil {
			return fmt.Errorf("failed to set default taxonomy: %w", err)
		}
	}
	cmd.Println()

	// Step 4: Cleanup
	cmd.Println("Step 4: Text Cleanup")
	cmd.Println("--------------------")
	cmd.Println("Enter cleanup steps separated by commas, \"-\" for none.")
	defaultCleanup := strings.Join(current.Cleanup, ",")
	if defaultCleanup == "" {
		defaultCleanup = "none"
	}
	cmd.Printf("Cleanup steps [%s]: ", defaultCleanup)
	if input := readLine(reader); input != "" {
		if input == "-" {
			input = ""
		}
		if err := settingsService.Set("extract.cleanup", input); err != nil {
			return fmt.Errorf("failed to set cleanup: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Settings saved to %s\n", settingsService.ConfigPath())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
