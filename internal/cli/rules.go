package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/fieldcheck/internal/rules"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	Long:  `Lists every rule that can be used in fieldcheck.yaml with its parameters.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderRulesTable(rules.Default().Describe()))
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
