// Package commands implements CLI command handlers for modelfang.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/modelfang/pkg/config"
	"github.com/Sumatoshi-tech/modelfang/pkg/edit"
	"github.com/Sumatoshi-tech/modelfang/pkg/model"
	"github.com/Sumatoshi-tech/modelfang/pkg/modeljson"
	"github.com/Sumatoshi-tech/modelfang/pkg/observability"
	"github.com/Sumatoshi-tech/modelfang/pkg/scopes"
	"github.com/Sumatoshi-tech/modelfang/pkg/version"
)

// EditOptions holds the flag values of the edit command.
type EditOptions struct {
	PlanPath   string
	OutPath    string
	ConfigPath string
	ShowDiff   bool
	Force      bool
	NoColor    bool
}

// NewEditCommand creates the `edit` subcommand.
func NewEditCommand() *cobra.Command {
	opts := &EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <model.json>",
		Short: "Apply a modification plan to a model",
		Long: `Apply a YAML modification plan (delete patterns and fragment merges)
to a model interchange document.

Examples:
  modelfang edit model.json --plan changes.yaml
  modelfang edit model.json --plan changes.yaml --out patched.json --show-diff
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.PlanPath, "plan", "", "path to the YAML modification plan (required)")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "output path (default: overwrite the input model)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to a modelfang config file")
	cmd.Flags().BoolVar(&opts.ShowDiff, "show-diff", false, "print a diff of the model before and after")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "skip the replace-scope data loss guard")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func runEdit(ctx context.Context, modelPath string, opts *EditOptions, out io.Writer) error {
	if opts.NoColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	providers, err := observability.Init(observabilityConfig(cfg))
	if err != nil {
		return err
	}

	defer func() { _ = providers.Shutdown(context.Background()) }()

	base, err := modeljson.LoadAuto(modelPath)
	if err != nil {
		return err
	}

	plan, fragments, err := buildPlan(cfg, opts.PlanPath, filepath.Dir(opts.PlanPath))
	if err != nil {
		return err
	}

	err = guardReplacements(base, plan, fragments, cfg.Edit.GuardRatio, opts.Force)
	if err != nil {
		return err
	}

	spanCtx, span := providers.Tracer.Start(ctx, "edit.apply")
	start := time.Now()

	patched, stats, err := plan.Apply(base)

	elapsed := time.Since(start)

	span.End()

	if err != nil {
		suggestScopes(base, plan, err, cfg.Edit.SuggestLimit, out)

		return err
	}

	recordEditMetrics(spanCtx, providers, plan, stats, elapsed)
	providers.Logger.InfoContext(spanCtx, "plan applied",
		slog.Int("deleted", stats.Deleted),
		slog.Int("added", stats.Added),
		slog.Int("replaced", stats.Replaced),
		slog.Duration("duration", elapsed),
	)

	if opts.ShowDiff {
		diffErr := printModelDiff(out, base, patched)
		if diffErr != nil {
			return diffErr
		}
	}

	outPath := opts.OutPath
	if outPath == "" {
		outPath = modelPath
	}

	err = modeljson.Save(outPath, modeljson.CodecForPath(outPath), patched)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "Applied plan to %s\n", modelPath)
	fmt.Fprintf(out, "  deleted:  %s\n", humanize.Comma(int64(stats.Deleted)))
	fmt.Fprintf(out, "  added:    %s\n", humanize.Comma(int64(stats.Added)))
	fmt.Fprintf(out, "  replaced: %s\n", humanize.Comma(int64(stats.Replaced)))
	fmt.Fprintf(out, "  written:  %s\n", outPath)

	return nil
}

// buildPlan loads a plan file and resolves its fragment paths (relative to
// the plan file's directory) into parsed models.
func buildPlan(cfg *config.Config, planPath, planDir string) (*edit.Plan, map[string]*model.Model, error) {
	planFile, err := edit.LoadPlanFile(planPath)
	if err != nil {
		return nil, nil, err
	}

	plan, err := edit.NewPlan()
	if err != nil {
		return nil, nil, err
	}

	for _, text := range planFile.Deletes {
		addErr := plan.AddDelete(text)
		if addErr != nil {
			return nil, nil, addErr
		}
	}

	fragments := make(map[string]*model.Model, len(planFile.Merges))

	for _, op := range planFile.Merges {
		fragPath := op.Fragment
		if !filepath.IsAbs(fragPath) {
			fragPath = filepath.Join(planDir, fragPath)
		}

		fragment, loadErr := modeljson.LoadAuto(fragPath)
		if loadErr != nil {
			return nil, nil, fmt.Errorf("load fragment %s: %w", op.Fragment, loadErr)
		}

		fragments[op.Scope] = fragment

		plan.AddMerge(edit.MergeOp{
			Fragment:     fragment,
			TargetScope:  op.Scope,
			CreateScope:  op.CreateScope || cfg.Edit.CreateScope,
			ReplaceScope: op.ReplaceScope,
		})
	}

	return plan, fragments, nil
}

// guardReplacements runs the data loss guard over every replace-scope merge
// before anything is applied.
func guardReplacements(
	base *model.Model,
	plan *edit.Plan,
	fragments map[string]*model.Model,
	ratio float64,
	force bool,
) error {
	for _, op := range plan.Merges() {
		if !op.ReplaceScope {
			continue
		}

		fragment := fragments[op.TargetScope]
		if fragment == nil {
			continue
		}

		err := scopes.ReplaceGuard(base, op.TargetScope, len(fragment.Elements), ratio, force)
		if err != nil {
			return err
		}
	}

	return nil
}

// suggestScopes prints near-miss scope names when a merge target was not
// found, which usually means a typo in the plan.
func suggestScopes(base *model.Model, plan *edit.Plan, err error, limit int, out io.Writer) {
	if !errors.Is(err, edit.ErrScopeNotFound) {
		return
	}

	for _, op := range plan.Merges() {
		if op.CreateScope || base.Has(op.TargetScope) {
			continue
		}

		similar := scopes.FindSimilar(base, op.TargetScope, limit)
		if len(similar) == 0 {
			continue
		}

		color.New(color.FgYellow).Fprintf(out, "Scope %q not found. Did you mean:\n", op.TargetScope)

		for _, s := range similar {
			fmt.Fprintf(out, "  %s\n", s)
		}
	}
}

func recordEditMetrics(
	ctx context.Context,
	providers observability.Providers,
	plan *edit.Plan,
	stats edit.ApplyStats,
	elapsed time.Duration,
) {
	em, err := observability.NewEditMetrics(providers.Meter)
	if err != nil {
		return
	}

	hits, misses := plan.CacheStats()

	em.RecordPlan(ctx, observability.EditStats{
		Deleted:       stats.Deleted,
		Added:         stats.Added,
		Replaced:      stats.Replaced,
		MergeDuration: elapsed,
		CacheHits:     hits,
		CacheMisses:   misses,
	})
}

// printModelDiff renders a line-level diff between the canonical JSON of two
// models.
func printModelDiff(out io.Writer, before, after *model.Model) error {
	beforeJSON, err := canonicalJSON(before)
	if err != nil {
		return err
	}

	afterJSON, err := canonicalJSON(after)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(beforeJSON, afterJSON)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			color.New(color.FgRed).Fprint(out, prefixLines(d.Text, "- "))
		case diffmatchpatch.DiffInsert:
			color.New(color.FgGreen).Fprint(out, prefixLines(d.Text, "+ "))
		case diffmatchpatch.DiffEqual:
			// Unchanged regions are elided to keep the preview readable.
		}
	}

	return nil
}

func canonicalJSON(m *model.Model) (string, error) {
	var buf bytes.Buffer

	err := modeljson.NewJSONCodec().Encode(&buf, m)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func prefixLines(text, prefix string) string {
	var buf bytes.Buffer

	for line := range bytes.Lines([]byte(text)) {
		buf.WriteString(prefix)
		buf.Write(line)
	}

	return buf.String()
}

func observabilityConfig(cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = cfg.Telemetry.ServiceName
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.Endpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.Insecure
	obsCfg.LogJSON = cfg.Logging.Format == "json"
	obsCfg.LogLevel = parseLogLevel(cfg.Logging.Level)

	return obsCfg
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
