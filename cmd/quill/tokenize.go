package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diag"
	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/source"
	"quill/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.ql|dir>",
	Short: "Tokenize a quill source file or directory",
	Long: `Tokenize breaks quill sources into tokens. A directory is walked for *.ql
files which are tokenized in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	tokenizeCmd.Flags().String("query", "", "JSONPath expression evaluated over the JSON token dump")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0 = GOMAXPROCS)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams from the on-disk cache")
	tokenizeCmd.Flags().String("cache-dir", "", "token cache directory (default: $XDG_CACHE_HOME/quill)")
	tokenizeCmd.Flags().String("ui", "auto", "progress UI in directory mode (auto|on|off)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := args[0]

	s, err := resolveSettings(cmd, target)
	if err != nil {
		return err
	}
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return fmt.Errorf("failed to get query flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}
	defer s.printTimings(cmd.ErrOrStderr())

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	var (
		fileSet *source.FileSet
		units   []tokenUnit
	)
	if info.IsDir() {
		fileSet, units, err = tokenizeDir(cmd, target, opts, mode)
	} else {
		fileSet, units, err = tokenizeFile(cmd, target, opts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	hasErrors := printDiagnostics(cmd, fileSet, units)
	if err := writeTokens(cmd.OutOrStdout(), fileSet, units, s.format, query); err != nil {
		return err
	}
	if hasErrors {
		return errDiagnostics
	}
	return nil
}

// tokenUnit is one tokenized file ready for output.
type tokenUnit struct {
	path   string
	fileID source.FileID
	tokens []token.Token
	bag    *diag.Bag
}

func tokenizeFile(cmd *cobra.Command, path string, opts driver.Options) (*source.FileSet, []tokenUnit, error) {
	result, err := driver.Tokenize(cmd.Context(), path, opts)
	if err != nil {
		return nil, nil, err
	}
	return result.FileSet, []tokenUnit{{
		path:   path,
		fileID: result.File.ID,
		tokens: result.Tokens,
		bag:    result.Bag,
	}}, nil
}

func tokenizeDir(cmd *cobra.Command, dir string, opts driver.Options, mode uiMode) (*source.FileSet, []tokenUnit, error) {
	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	if shouldUseTUI(mode) {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return nil, nil, listErr
		}
		fileSet, results, err = runTokenizeDirWithUI(cmd.Context(), cmd.ErrOrStderr(), dir, files, opts)
	} else {
		fileSet, results, err = driver.TokenizeDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return nil, nil, err
	}

	units := make([]tokenUnit, 0, len(results))
	for _, r := range results {
		units = append(units, tokenUnit{path: r.Path, fileID: r.FileID, tokens: r.Tokens, bag: r.Bag})
	}
	return fileSet, units, nil
}

// printDiagnostics пишет диагностики всех файлов в stderr и сообщает, были ли ошибки.
func printDiagnostics(cmd *cobra.Command, fs *source.FileSet, units []tokenUnit) bool {
	all := diag.NewBag(0)
	for _, u := range units {
		all.Merge(u.bag)
	}
	if all.Len() == 0 {
		return false
	}
	all.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), all, fs, diagfmt.PrettyOpts{
		Color:     useColorFor(cmd, os.Stderr),
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	})
	return all.HasErrors()
}

func writeTokens(w io.Writer, fs *source.FileSet, units []tokenUnit, format, query string) error {
	if query == "" && format == "pretty" {
		for i, u := range units {
			if len(units) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "== %s ==\n", u.path)
			}
			if err := diagfmt.FormatTokensPretty(w, u.tokens, fs); err != nil {
				return err
			}
		}
		return nil
	}

	dumps := make([]diagfmt.TokenDump, 0, len(units))
	for _, u := range units {
		dumps = append(dumps, diagfmt.BuildTokenDump(fs, u.fileID, u.tokens, diagfmt.PathModeAuto))
	}
	switch {
	case query != "":
		return diagfmt.QueryTokens(w, dumps, query)
	case format == "yaml":
		return diagfmt.FormatTokensYAML(w, dumps)
	default:
		return diagfmt.FormatTokensJSON(w, dumps)
	}
}
