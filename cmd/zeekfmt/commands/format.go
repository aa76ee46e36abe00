// Package commands implements the zeekfmt command line interface.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/zeekfmt/internal/config"
	"github.com/Sumatoshi-tech/zeekfmt/internal/logging"
	"github.com/Sumatoshi-tech/zeekfmt/internal/walk"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/format"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/textutil"
)

var (
	// ErrUsage indicates an invalid flag or argument combination.
	ErrUsage = errors.New("usage error")

	// ErrFormattingFailed indicates one or more files could not be formatted.
	ErrFormattingFailed = errors.New("formatting failed")

	// ErrNoScriptFiles indicates no formattable files were found.
	ErrNoScriptFiles = errors.New("no script files found")
)

// FormatCommand holds the flags for the root formatting command.
type FormatCommand struct {
	configPath      string
	indent          string
	inplace         bool
	recursive       bool
	showDiff        bool
	summary         bool
	noColor         bool
	skipIdempotence bool
	tolerateErrors  bool
	verbose         bool
	workers         int

	log *slog.Logger
}

// NewRootCommand creates and configures the zeekfmt root command.
func NewRootCommand() *cobra.Command {
	cmd := &FormatCommand{}

	cobraCmd := &cobra.Command{
		Use:   "zeekfmt [files...]",
		Short: "Format Zeek scripts",
		Long: `zeekfmt reformats Zeek scripts to a canonical layout.

Examples:
  zeekfmt local.zeek              # Print the formatted script to stdout
  cat local.zeek | zeekfmt        # Format from stdin
  zeekfmt -i local.zeek scan.zeek # Rewrite files in place
  zeekfmt -i -r policy/           # Rewrite a directory tree in place
  zeekfmt -d local.zeek           # Show what would change`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "config file (default: .zeekfmt.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVar(&cmd.indent, "indent", config.DefaultIndent, "indentation unit")
	cobraCmd.Flags().BoolVarP(&cmd.inplace, "inplace", "i", false, "rewrite files instead of printing to stdout")
	cobraCmd.Flags().BoolVarP(&cmd.recursive, "recursive", "r", false, "descend into directories (requires --inplace)")
	cobraCmd.Flags().BoolVarP(&cmd.showDiff, "diff", "d", false, "print changes instead of rewriting")
	cobraCmd.Flags().BoolVarP(&cmd.summary, "summary", "s", false, "print a per-file result table")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "disable colored output")
	cobraCmd.Flags().BoolVar(&cmd.skipIdempotence, "skip-idempotence", false, "skip the output stability check")
	cobraCmd.Flags().BoolVar(&cmd.tolerateErrors, "tolerate-errors", false, "keep unparseable regions verbatim instead of failing")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "log per-file details to stderr")
	cobraCmd.Flags().IntVarP(&cmd.workers, "workers", "w", 0, "number of parallel workers (default: number of CPUs)")

	cobraCmd.AddCommand(newTreeCommand())
	cobraCmd.AddCommand(newVersionCommand())

	return cobraCmd
}

// Run executes the formatting command.
func (c *FormatCommand) Run(cobraCmd *cobra.Command, args []string) error {
	c.log = logging.New(cobraCmd.ErrOrStderr(), c.verbose)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	c.applyConfig(cobraCmd, cfg)

	lang, err := rules.Zeek()
	if err != nil {
		return err
	}

	opts := format.Options{
		Language:              lang,
		SkipIdempotence:       c.skipIdempotence,
		TolerateParsingErrors: c.tolerateErrors,
		IndentUnit:            c.indent,
	}

	if len(args) == 0 {
		if c.inplace || c.recursive {
			return fmt.Errorf("%w: --inplace and --recursive need file arguments", ErrUsage)
		}

		return c.formatStdin(cobraCmd.Context(), cobraCmd.InOrStdin(), cobraCmd.OutOrStdout(), opts)
	}

	if c.recursive && !c.inplace {
		return fmt.Errorf("%w: --recursive requires --inplace", ErrUsage)
	}

	files, err := c.gatherFiles(args, lang)
	if err != nil {
		return err
	}

	if len(files) > 1 && !c.inplace && !c.showDiff {
		return fmt.Errorf("%w: formatting multiple files requires --inplace or --diff", ErrUsage)
	}

	results := c.processFiles(cobraCmd.Context(), files, opts, cfg.MaxFileSizeBytes())

	return c.report(cobraCmd.OutOrStdout(), cobraCmd.ErrOrStderr(), results)
}

// applyConfig fills in settings the user did not override on the command line.
func (c *FormatCommand) applyConfig(cobraCmd *cobra.Command, cfg *config.Config) {
	flags := cobraCmd.Flags()

	if !flags.Changed("indent") {
		c.indent = cfg.Format.Indent
	}

	if !flags.Changed("skip-idempotence") {
		c.skipIdempotence = cfg.Format.SkipIdempotence
	}

	if !flags.Changed("tolerate-errors") {
		c.tolerateErrors = cfg.Format.TolerateErrors
	}
}

func (c *FormatCommand) formatStdin(ctx context.Context, in io.Reader, out io.Writer, opts format.Options) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	formatted, err := format.Format(ctx, source, opts)
	if err != nil {
		return fmt.Errorf("%w: <stdin>: %w", ErrFormattingFailed, err)
	}

	if c.showDiff {
		if !bytes.Equal(source, formatted) {
			fmt.Fprint(out, renderDiff("<stdin>", string(source), string(formatted), c.noColor))
		}

		return nil
	}

	_, err = out.Write(formatted)
	if err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	return nil
}

// gatherFiles expands the argument list, descending into directories when
// --recursive is set.
func (c *FormatCommand) gatherFiles(args []string, lang *rules.Language) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		if !c.recursive {
			return nil, fmt.Errorf("%w: %s is a directory (use --recursive)", ErrUsage, arg)
		}

		found, err := walk.Collect(arg, lang.Matches)
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, ErrNoScriptFiles
	}

	return files, nil
}

// fileResult records the outcome of formatting a single file.
type fileResult struct {
	path     string
	size     int
	lines    int
	changed  bool
	duration time.Duration
	output   []byte
	diff     string
	err      error
}

// processFiles formats the given files on a worker pool and returns results
// in argument order.
func (c *FormatCommand) processFiles(ctx context.Context, files []string, opts format.Options, maxSize uint64) []fileResult {
	workers := c.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(files) {
		workers = len(files)
	}

	type indexedFile struct {
		index int
		path  string
	}

	results := make([]fileResult, len(files))
	fileCh := make(chan indexedFile, workers)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for item := range fileCh {
				results[item.index] = c.formatFile(ctx, item.path, opts, maxSize)
			}
		}()
	}

	for idx, file := range files {
		fileCh <- indexedFile{index: idx, path: file}
	}

	close(fileCh)
	wg.Wait()

	return results
}

func (c *FormatCommand) formatFile(ctx context.Context, path string, opts format.Options, maxSize uint64) fileResult {
	result := fileResult{path: path}

	source, resolvedPath, err := safeReadFile(path, maxSize)
	if err != nil {
		result.err = err

		return result
	}

	result.size = len(source)
	result.lines = textutil.CountLines(source)

	start := time.Now()
	formatted, err := format.Format(ctx, source, opts)
	result.duration = time.Since(start)

	if err != nil {
		result.err = err

		return result
	}

	result.changed = !bytes.Equal(source, formatted)

	c.log.Debug("formatted",
		"file", resolvedPath,
		"bytes", result.size,
		"lines", result.lines,
		"changed", result.changed,
		"duration", result.duration)

	switch {
	case c.showDiff:
		if result.changed {
			result.diff = renderDiff(path, string(source), string(formatted), c.noColor)
		}
	case c.inplace:
		if result.changed {
			result.err = writeFileInPlace(resolvedPath, formatted)
		}
	default:
		result.output = formatted
	}

	return result
}

// report prints per-file outcomes and folds them into the final error.
func (c *FormatCommand) report(out, errOut io.Writer, results []fileResult) error {
	failed := 0

	for _, result := range results {
		if result.err != nil {
			failed++

			fmt.Fprintf(errOut, "%s: %v\n", result.path, result.err)

			continue
		}

		if result.diff != "" {
			fmt.Fprint(out, result.diff)
		}

		if result.output != nil {
			_, _ = out.Write(result.output)
		}
	}

	if c.summary {
		renderSummary(out, results)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrFormattingFailed, failed, len(results))
	}

	return nil
}
