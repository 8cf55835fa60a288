package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/fieldcheck/internal/config"
	"github.com/artisanexperiences/fieldcheck/internal/engine"
	fcerrors "github.com/artisanexperiences/fieldcheck/internal/errors"
	"github.com/artisanexperiences/fieldcheck/internal/form"
	"github.com/artisanexperiences/fieldcheck/internal/source"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [FILE...]",
	Short: "Validate records against fieldcheck.yaml",
	Long: `Validates every record against the configured fields.

Records are read from the given files (.env, .yaml or .json) or, without
arguments, from the source declared in fieldcheck.yaml. The command exits
non-zero when any record is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := OpenProject(cmd)
		if err != nil {
			return err
		}

		output := mustGetString(cmd, "output")
		if output == "" {
			output = pc.Config.Output
		}

		return runCheck(cmd.Context(), pc, checkOptions{
			Paths:       args,
			Output:      output,
			Interactive: interactive(cmd),
		}, cmd.OutOrStdout())
	},
}

type checkOptions struct {
	Paths       []string
	Output      string
	Interactive bool
}

// recordResult is the outcome of validating one record.
type recordResult struct {
	Record string              `yaml:"record"`
	Valid  bool                `yaml:"valid"`
	Errors *engine.ErrorReport `yaml:"errors,omitempty"`
}

func runCheck(ctx context.Context, pc *ProjectContext, opts checkOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	specs, err := sourceSpecs(pc.Config, opts.Paths)
	if err != nil {
		return err
	}

	var records []source.Record
	for _, spec := range specs {
		recs, err := loadRecords(ctx, pc, spec, opts.Interactive)
		if err != nil {
			return err
		}
		records = append(records, recs...)
	}
	if len(records) == 0 {
		pc.Logger.Warn("no records to check")
	}

	engineOpts := pc.EngineOptions()
	results := make([]recordResult, 0, len(records))
	var failures []error
	for _, rec := range records {
		result := checkRecord(engineOpts, rec)
		results = append(results, result)
		if !result.Valid {
			failures = append(failures, fmt.Errorf("%s: %w", rec.Label, fcerrors.ErrValidationFailed))
		}
	}

	switch opts.Output {
	case config.OutputYAML:
		if err := writeYAMLResults(out, results); err != nil {
			return err
		}
	default:
		writeTextResults(out, results)
	}

	return errors.Join(failures...)
}

// sourceSpecs returns the sources named on the command line, or the
// configured source when there are none.
func sourceSpecs(cfg *config.Config, paths []string) ([]source.Spec, error) {
	if len(paths) == 0 {
		if cfg.Source.Kind == "" {
			return nil, fmt.Errorf("no source configured: pass files to check or set source in %s", config.FileName)
		}
		return []source.Spec{cfg.Source}, nil
	}

	specs := make([]source.Spec, 0, len(paths))
	for _, path := range paths {
		kind, ok := source.KindFromPath(path)
		if !ok {
			return nil, fmt.Errorf("%w: cannot tell the format of %s", fcerrors.ErrUnsupportedSource, path)
		}
		specs = append(specs, source.Spec{Kind: kind, Path: path})
	}
	return specs, nil
}

func loadRecords(ctx context.Context, pc *ProjectContext, spec source.Spec, interactive bool) ([]source.Record, error) {
	src, err := source.Open(spec, pc.FS)
	if err != nil {
		return nil, err
	}

	var records []source.Record
	load := func() error {
		var err error
		records, err = src.Records(ctx)
		return err
	}

	if spec.IsDatabase() && interactive {
		err = ui.RunWithSpinner(fmt.Sprintf("Querying %s...", spec.Kind), load)
	} else {
		err = load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s records: %w", spec.Kind, err)
	}

	pc.Logger.Debug("loaded records", "kind", spec.Kind, "count", len(records))
	return records, nil
}

// checkRecord validates rec through an in-memory form.
func checkRecord(opts engine.Options, rec source.Record) recordResult {
	eng := engine.Attach(form.NewMemory(rec.Values), opts).Validate()

	result := recordResult{Record: rec.Label, Valid: eng.IsValid()}
	if !result.Valid {
		report := eng.Report()
		result.Errors = &report
	}
	return result
}

func writeTextResults(out io.Writer, results []recordResult) {
	valid := 0
	for _, r := range results {
		fmt.Fprintln(out, ui.RenderRecordHeader(r.Record, r.Valid))
		if r.Valid {
			valid++
			continue
		}
		fmt.Fprintln(out, ui.RenderReport(*r.Errors))
	}
	fmt.Fprintf(out, "%d of %d records valid\n", valid, len(results))
}

func writeYAMLResults(out io.Writer, results []recordResult) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return enc.Close()
}

func init() {
	checkCmd.Flags().StringP("output", "o", "", "Output format: text or yaml (default from config)")
	rootCmd.AddCommand(checkCmd)
}
