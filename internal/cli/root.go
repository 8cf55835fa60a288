package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "fieldcheck",
	Short: "Declarative field validation for forms and records",
	Long: `fieldcheck validates named fields against rules declared in fieldcheck.yaml.

Records can come from dotenv files, YAML documents or SQL queries, or be
typed into an interactive form that re-validates on every change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.IsInteractive() {
			return cmd.Help()
		}
		printBanner()
		return nil
	},
}

var noColor bool

func printBanner() {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Secondary)

	versionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1)

	commandsStyle := lipgloss.NewStyle().
		Foreground(ui.Text)

	commands := `
Commands:
  check     Validate records from files or the configured source
  prompt    Fill in the configured fields interactively
  rules     List the available rules
  init      Write a starter fieldcheck.yaml
  version   Show fieldcheck version

Run 'fieldcheck <command> --help' for more information.`

	fmt.Println(titleStyle.Render("fieldcheck"))
	fmt.Println(versionStyle.Render(fmt.Sprintf("Version %s (commit: %s, built: %s)", Version, Commit, BuildDate)))
	fmt.Println(commandsStyle.Render(commands))
}

func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		if !errors.Is(err, fcerrors.ErrValidationFailed) {
			ui.PrintError(err.Error())
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", ".", "Path to fieldcheck.yaml or the directory holding it")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("no-interactive", false, "Disable interactive prompts")
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

// interactive reports whether prompts may be shown.
func interactive(cmd *cobra.Command) bool {
	return !mustGetBool(cmd, "no-interactive") && ui.IsInteractive()
}
