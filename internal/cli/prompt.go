package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/fieldcheck/internal/engine"
	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/form"
	"github.com/artisanexperiences/fieldcheck/internal/source"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [FILE]",
	Short: "Fill in the configured fields interactively",
	Long: `Shows one input per configured field. Every field is re-validated when
an input is committed, and a field cannot be left while it has errors.

An optional .env, .yaml or .json file pre-fills the inputs from its first record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !interactive(cmd) {
			return errors.New("prompt needs an interactive terminal")
		}

		pc, err := OpenProject(cmd)
		if err != nil {
			return err
		}

		var values map[string]string
		if len(args) == 1 {
			values, err = prefillValues(cmd.Context(), pc, args[0])
			if err != nil {
				return err
			}
		}

		tf := newPromptForm(pc, values)
		eng := attachPromptEngine(pc, tf)

		if err := tf.Run(); err != nil {
			return err
		}
		return reportPrompt(cmd.OutOrStdout(), pc, eng, tf.Values())
	},
}

func newPromptForm(pc *ProjectContext, values map[string]string) *ui.TerminalForm {
	opts := []ui.TerminalOption{ui.WithSecret(pc.Config.Secret...)}
	if pc.Config.Title != "" {
		opts = append(opts, ui.WithTitle(pc.Config.Title))
	}
	if len(values) > 0 {
		opts = append(opts, ui.WithValues(values))
	}
	return ui.NewTerminalForm(pc.Config.Fields, opts...)
}

// attachPromptEngine attaches an engine to f that re-validates on every
// change event.
func attachPromptEngine(pc *ProjectContext, f form.Form) *engine.Engine {
	var eng *engine.Engine
	opts := pc.EngineOptions()
	opts.OnChange = func(ev form.ChangeEvent) {
		pc.Logger.Debug("field changed", "field", ev.Field, "kind", ev.Kind)
		eng.Validate()
	}
	eng = engine.Attach(f, opts)
	return eng
}

func prefillValues(ctx context.Context, pc *ProjectContext, path string) (map[string]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	kind, ok := source.KindFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: cannot tell the format of %s", fcerrors.ErrUnsupportedSource, path)
	}
	records, err := loadRecords(ctx, pc, source.Spec{Kind: kind, Path: path}, false)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records) > 1 {
		pc.Logger.Warn("using the first record only", "path", path, "records", len(records))
	}
	return records[0].Values, nil
}

// reportPrompt validates the submitted values and prints the outcome.
func reportPrompt(out io.Writer, pc *ProjectContext, eng *engine.Engine, values map[string]string) error {
	if !eng.Validate().IsValid() {
		fmt.Fprintln(out, ui.RenderReport(eng.Report()))
		return fcerrors.ErrValidationFailed
	}

	rows := make([][]string, 0, pc.Config.Fields.Len())
	for _, name := range pc.Config.Fields.Names() {
		value := values[name]
		if pc.Config.IsSecret(name) {
			value = strings.Repeat("*", len([]rune(value)))
		}
		rows = append(rows, []string{name, value})
	}
	fmt.Fprintln(out, ui.RenderTable([]string{"FIELD", "VALUE"}, rows))
	fmt.Fprintln(out, ui.RenderRecordHeader("all fields valid", true))
	return nil
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
