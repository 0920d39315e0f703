package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/jsmangle/internal/config"
	"github.com/Sumatoshi-tech/jsmangle/pkg/jsparse"
	"github.com/Sumatoshi-tech/jsmangle/pkg/keepnames"
	"github.com/Sumatoshi-tech/jsmangle/pkg/semantic"
)

var (
	ErrNoSourceFiles = errors.New("no source files found in the codebase")
	ErrUnknownFormat = errors.New("unsupported format")
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatTable = "table"
	formatNone  = "none"
)

func keepNamesCmd() *cobra.Command {
	var lang, output, format string
	var workers int
	var all, stats bool

	cmd := &cobra.Command{
		Use:   "keep-names [files...]",
		Short: "Report bindings that must keep their names under renaming",
		Long: `Analyze JavaScript/TypeScript files and report the bindings whose textual
names a renaming minifier must preserve to keep function.name and class
names observable.

Examples:
  jsmangle keep-names app.js                # Analyze a single file
  jsmangle keep-names src/*.js              # Analyze several files
  jsmangle keep-names -l typescript main.x  # Force the language
  cat app.js | jsmangle keep-names -        # Analyze stdin
  jsmangle keep-names -f json app.js        # Output as JSON
  jsmangle keep-names --all -w 8            # Whole codebase, 8 workers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			setupLogging(cfg)

			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}

			if !cmd.Flags().Changed("workers") {
				workers = cfg.Analysis.Workers
			}

			opts := keepNamesOptions{
				lang:    lang,
				output:  output,
				format:  format,
				workers: workers,
				all:     all,
				stats:   stats,
				color:   cfg.Output.Color,
			}

			return runKeepNames(args, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&lang, "language", "l", "", "force language detection (javascript, typescript)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json, table, none)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&all, "all", false, "analyze all supported files in the codebase recursively")
	cmd.Flags().BoolVar(&stats, "stats", false, "include per-file node, symbol and size statistics")

	return cmd
}

type keepNamesOptions struct {
	lang    string
	output  string
	format  string
	workers int
	all     bool
	stats   bool
	color   bool
}

// fileReport is the analysis result for one source file.
type fileReport struct {
	Path       string        `json:"file"`
	Language   string        `json:"language"`
	KeepNames  []string      `json:"keep_names"`
	Nodes      int           `json:"nodes,omitempty"`
	Symbols    int           `json:"symbols,omitempty"`
	References int           `json:"references,omitempty"`
	Size       uint64        `json:"size_bytes,omitempty"`
	Elapsed    time.Duration `json:"-"`
}

func runKeepNames(files []string, opts keepNamesOptions, writer io.Writer) error {
	parser := jsparse.NewParser()

	if opts.all {
		var cerr error

		files, cerr = collectSourceFiles(".", parser)
		if cerr != nil {
			return fmt.Errorf("failed to collect source files: %w", cerr)
		}

		if len(files) == 0 {
			return ErrNoSourceFiles
		}
	}

	if len(files) == 0 || (len(files) == 1 && files[0] == "-") {
		report, err := analyzeStdin(parser, opts)
		if err != nil {
			return err
		}

		return renderReports([]fileReport{report}, opts, writer)
	}

	reports, err := analyzeFiles(parser, files, opts)
	if err != nil {
		return err
	}

	return renderReports(reports, opts, writer)
}

// analyzeFiles processes files concurrently using a worker pool. Each worker
// gets its own Parser instance to avoid contention on the tree-sitter pools.
func analyzeFiles(sharedParser *jsparse.Parser, files []string, opts keepNamesOptions) ([]fileReport, error) {
	workers := opts.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(files) {
		workers = len(files)
	}

	fileCh := make(chan indexedFile, workers)
	reports := make([]fileReport, len(files))

	var firstErr atomic.Value
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			workerParser := sharedParser
			if workers > 1 {
				workerParser = jsparse.NewParser()
			}

			for item := range fileCh {
				if firstErr.Load() != nil {
					return
				}

				report, aerr := analyzeFile(workerParser, item.path, opts)
				if aerr != nil {
					firstErr.CompareAndSwap(nil, fmt.Errorf("failed to analyze %s: %w", item.path, aerr))

					return
				}

				reports[item.index] = report
			}
		}()
	}

	for i, f := range files {
		if firstErr.Load() != nil {
			break
		}

		fileCh <- indexedFile{index: i, path: f}
	}

	close(fileCh)
	wg.Wait()

	if errVal := firstErr.Load(); errVal != nil {
		if err, ok := errVal.(error); ok {
			return nil, err
		}
	}

	return reports, nil
}

type indexedFile struct {
	index int
	path  string
}

func analyzeFile(parser *jsparse.Parser, file string, opts keepNamesOptions) (fileReport, error) {
	code, resolvedPath, err := safeReadFile(file)
	if err != nil {
		return fileReport{}, err
	}

	lang, err := resolveLanguage(resolvedPath, opts.lang)
	if err != nil {
		return fileReport{}, err
	}

	report, err := analyzeSource(parser, lang, code)
	if err != nil {
		return fileReport{}, err
	}

	report.Path = file

	return report, nil
}

func analyzeStdin(parser *jsparse.Parser, opts keepNamesOptions) (fileReport, error) {
	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fileReport{}, fmt.Errorf("failed to read stdin: %w", err)
	}

	lang := jsparse.LangJavaScript
	if opts.lang != "" {
		var ok bool

		lang, ok = jsparse.LanguageByName(opts.lang)
		if !ok {
			return fileReport{}, fmt.Errorf("%w: %s", jsparse.ErrUnknownLanguage, opts.lang)
		}
	}

	report, err := analyzeSource(parser, lang, code)
	if err != nil {
		return fileReport{}, err
	}

	report.Path = "stdin"

	return report, nil
}

// analyzeSource runs the full pipeline on one source buffer: parse, bind,
// collect preserved names.
func analyzeSource(parser *jsparse.Parser, lang jsparse.Language, code []byte) (fileReport, error) {
	start := time.Now()

	program, err := parser.ParseAs(context.Background(), lang, code)
	if err != nil {
		return fileReport{}, fmt.Errorf("parse error: %w", err)
	}

	sem := semantic.NewBuilder().Build(program)
	preserved := keepnames.Collect(sem.Scoping(), sem.Nodes())

	names := make([]string, 0, len(preserved))
	for id := range preserved {
		names = append(names, sem.Scoping().SymbolName(id))
	}

	sort.Strings(names)

	return fileReport{
		Language:   string(lang),
		KeepNames:  names,
		Nodes:      sem.Nodes().Len(),
		Symbols:    sem.Scoping().SymbolCount(),
		References: sem.Scoping().ReferenceCount(),
		Size:       uint64(len(code)),
		Elapsed:    time.Since(start),
	}, nil
}

func resolveLanguage(path, forced string) (jsparse.Language, error) {
	if forced != "" {
		lang, ok := jsparse.LanguageByName(forced)
		if !ok {
			return "", fmt.Errorf("%w: %s", jsparse.ErrUnknownLanguage, forced)
		}

		return lang, nil
	}

	lang, ok := jsparse.DetectLanguage(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", jsparse.ErrUnsupportedFile, path)
	}

	return lang, nil
}

func collectSourceFiles(dir string, parser *jsparse.Parser) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if isHiddenDir(filepath.Base(path)) || filepath.Base(path) == "node_modules" {
				return filepath.SkipDir
			}

			return nil
		}

		if parser.Supported(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// isHiddenDir returns true for directories that start with a dot (e.g. .git),
// except for "." and ".." which are filesystem navigation entries.
func isHiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
