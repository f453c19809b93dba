package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
)

var bindCmd = &cobra.Command{
	Use:   "bind [flags] <file.ql>",
	Short: "Bind the variables of a quill source file",
	Long: `Bind runs the file's declarations, assignments and blocks against a scope
stack and prints the global bindings left at end of input.`,
	Args: cobra.ExactArgs(1),
	RunE: runBind,
}

func init() {
	bindCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	bindCmd.Flags().Bool("frames", false, "also print every exited frame")
	bindCmd.Flags().Bool("cache", false, "reuse the token stream from the on-disk cache")
	bindCmd.Flags().String("cache-dir", "", "token cache directory (default: $XDG_CACHE_HOME/quill)")
}

func runBind(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	s, err := resolveSettings(cmd, filePath)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())
	frames, err := cmd.Flags().GetBool("frames")
	if err != nil {
		return fmt.Errorf("failed to get frames flag: %w", err)
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}

	result, err := driver.Bind(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("binding failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:       useColorFor(cmd, os.Stderr),
			Context:     1,
			ShowNotes:   true,
			ShowFixes:   true,
			ShowPreview: true,
		})
	}

	out := cmd.OutOrStdout()
	switch s.format {
	case "pretty":
		err = diagfmt.FormatBindingsPretty(out, result.Bind, frames)
	default:
		payload := diagfmt.BuildBindingsOutput(filePath, result.Bind)
		if !frames {
			payload.Exited = nil
		}
		if s.format == "yaml" {
			err = diagfmt.FormatBindingsYAML(out, payload)
		} else {
			err = diagfmt.FormatBindingsJSON(out, payload)
		}
	}
	if err != nil {
		return err
	}

	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
