package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/fieldcheck/internal/config"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a starter fieldcheck.yaml",
	Long: `Writes a fieldcheck.yaml that requires each of the given fields.

Arguments:
  PATH  Optional target directory (defaults to the current directory)

An existing fieldcheck.yaml is updated in place: its fields section is
replaced and every other setting is kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("getting absolute path: %w", err)
		}

		isInteractive := interactive(cmd)
		names := ui.SplitFieldNames(mustGetString(cmd, "fields"))
		if len(names) == 0 {
			if !isInteractive {
				return fmt.Errorf("field names required (run interactively or pass --fields)")
			}
			names, err = ui.PromptFieldNames()
			if err != nil {
				return fmt.Errorf("prompting for fields: %w", err)
			}
		}

		configPath := filepath.Join(absDir, config.FileName)
		exists, err := fs.Exists(fs.Default, configPath)
		if err != nil {
			return fmt.Errorf("checking %s: %w", configPath, err)
		}
		if exists && !mustGetBool(cmd, "force") {
			if !isInteractive {
				return fmt.Errorf("%s already exists (use --force to update it)", configPath)
			}
			confirmed, err := ui.ConfirmOverwrite(configPath)
			if err != nil {
				return err
			}
			if !confirmed {
				ui.PrintInfo("Left existing configuration unchanged")
				return nil
			}
		}

		cfg := config.Starter(names)
		cfg.Secret = mustGetStringSlice(cmd, "secret")
		if err := runInit(fs.Default, absDir, cfg); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Wrote %s with %d fields", configPath, len(names)))
		return nil
	},
}

func runInit(fsys fs.FS, dir string, cfg *config.Config) error {
	if err := config.SaveProject(fsys, dir, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	value, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func init() {
	initCmd.Flags().String("fields", "", "Comma separated field names")
	initCmd.Flags().StringSlice("secret", nil, "Fields whose input is masked")
	initCmd.Flags().Bool("force", false, "Update an existing fieldcheck.yaml without asking")
	rootCmd.AddCommand(initCmd)
}
