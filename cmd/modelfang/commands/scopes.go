package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/modelfang/pkg/model"
	"github.com/Sumatoshi-tech/modelfang/pkg/modeljson"
	"github.com/Sumatoshi-tech/modelfang/pkg/scopes"
)

// ScopesOptions holds the flag values of the scopes command.
type ScopesOptions struct {
	Find    string
	Limit   int
	NoColor bool
}

// NewScopesCommand creates the `scopes` subcommand.
func NewScopesCommand() *cobra.Command {
	opts := &ScopesOptions{}

	cmd := &cobra.Command{
		Use:   "scopes <model.json> [more models...]",
		Short: "Inspect the scopes of one or more models",
		Long: `List the scopes (packages, namespaces, libraries) of one or more model
interchange documents, or search for scopes similar to a qualified ID.

Examples:
  modelfang scopes model.json
  modelfang scopes model.json library.json.lz4
  modelfang scopes model.json --find Vehicle::Powertrian
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScopes(args, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Find, "find", "", "print scopes similar to this qualified ID")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of similar scopes to print")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	return cmd
}

func runScopes(paths []string, opts *ScopesOptions, out io.Writer) error {
	if opts.NoColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	models := make([]*model.Model, 0, len(paths))

	for _, path := range paths {
		m, err := modeljson.LoadAuto(path)
		if err != nil {
			return err
		}

		models = append(models, m)
	}

	if opts.Find != "" {
		return findScopes(models, opts, out)
	}

	listScopes(models, out)

	return nil
}

func findScopes(models []*model.Model, opts *ScopesOptions, out io.Writer) error {
	found := false

	for _, m := range models {
		for _, s := range scopes.FindSimilar(m, opts.Find, opts.Limit) {
			found = true

			fmt.Fprintf(out, "%s\n", s)
		}
	}

	if !found {
		color.New(color.FgYellow).Fprintf(out, "No scopes similar to %q\n", opts.Find)
	}

	return nil
}

func listScopes(models []*model.Model, out io.Writer) {
	all := scopes.ListAll(models...)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.AppendHeader(table.Row{"Scope", "Kind", "Direct children"})

	for _, id := range all {
		kind, children := scopeDetails(models, id)
		tbl.AppendRow(table.Row{id, kind, humanize.Comma(int64(children))})
	}

	tbl.Render()
}

// scopeDetails reports the kind and union child count of a scope across all
// loaded models.
func scopeDetails(models []*model.Model, id string) (model.Kind, int) {
	var kind model.Kind

	children := 0

	for _, m := range models {
		el, ok := m.Lookup(id)
		if !ok {
			continue
		}

		if kind == "" {
			kind = el.Kind
		}

		children += len(m.DirectChildren(id))
	}

	return kind, children
}
