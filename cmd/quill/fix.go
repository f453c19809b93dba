package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.ql>",
	Short: "Apply available fixes to a quill source file",
	Long:  "Lex and bind the file, surface the fixes its diagnostics carry, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all non-conflicting fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed content instead of writing it")
}

func runFix(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID, DryRun: dryRun}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}

	s, err := resolveSettings(cmd, filePath)
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())
	driverOpts, err := s.driverOptions()
	if err != nil {
		return err
	}

	result, err := driver.Bind(cmd.Context(), filePath, driverOpts)
	if err != nil {
		return fmt.Errorf("fix: bind failed: %w", err)
	}
	res, applyErr := fix.Apply(result.FileSet, result.Bag.Items(), opts)
	return printApplyResult(cmd.OutOrStdout(), res, applyErr, dryRun)
}

func printApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		if dryRun {
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "== %s ==\n%s\n", change.Path, change.Content)
			}
		} else {
			fmt.Fprintln(out, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, skip.ID, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", skip.ID, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	return nil
}
