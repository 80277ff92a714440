package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/modelfang/pkg/modeljson"
)

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

// ValidateOptions holds the flag values of the validate command.
type ValidateOptions struct {
	Quiet   bool
	NoColor bool
}

// NewValidateCommand creates the `validate` subcommand.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <model.json|->",
		Short: "Validate a model interchange document against the schema",
		Long: `Validate a model JSON document against the canonical interchange schema.

Examples:
  modelfang validate model.json
  modelfang validate - < model.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "suppress output for valid documents")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(inputPath string, opts *ValidateOptions, out io.Writer) error {
	if opts.NoColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	data, label, err := readInput(inputPath)
	if err != nil {
		return err
	}

	issues, err := modeljson.ValidateBytes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema validation error: %v\n", err)
		os.Exit(exitCodeValidationFailure)
	}

	if len(issues) == 0 {
		if !opts.Quiet {
			color.New(color.FgGreen).Fprintf(out, "Model is valid (%s)\n", label)
		}

		return nil
	}

	color.New(color.FgRed).Fprintf(out, "Model validation failed (%s)\n", label)
	fmt.Fprintf(out, "\nErrors:\n")

	for _, issue := range issues {
		color.New(color.FgRed).Fprintf(out, "  - %s\n", issue)
	}

	os.Exit(1)

	return nil
}

func readInput(inputPath string) ([]byte, string, error) {
	if inputPath == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}

	return data, inputPath, nil
}
