package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txclean/internal/export"
	"github.com/cleared-dev/txclean/internal/importer"
	"github.com/cleared-dev/txclean/internal/mappings"
	"github.com/cleared-dev/txclean/internal/model"
	"github.com/cleared-dev/txclean/internal/pipeline"
	"github.com/cleared-dev/txclean/internal/runlog"
)

type cleanOptions struct {
	importFormat  string
	exportFormat  string
	outDir        string
	markProcessed bool
}

func newCleanCommand(a *app) *cobra.Command {
	var opts cleanOptions

	cmd := &cobra.Command{
		Use:   "clean [file.csv...]",
		Short: "Clean statement files and write one export",
		Long: "Clean the given CSV statements, or every CSV in the import directory " +
			"when none are given, and write the rows to a single CSV or XLSX export.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, a, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.importFormat, "format", "", "import format: auto, memo or chase (default from config)")
	cmd.Flags().StringVar(&opts.exportFormat, "to", "", "export format: xlsx or csv (default from config)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "export directory (default from config)")
	cmd.Flags().BoolVar(&opts.markProcessed, "mark-processed", false, "move scanned files to import/processed after a successful run")

	return cmd
}

// source is one input file and the rows cleaned from it.
type source struct {
	name    string
	scanned bool
	rows    []model.Row
}

func runClean(cmd *cobra.Command, a *app, args []string, opts cleanOptions) error {
	if opts.importFormat == "" {
		opts.importFormat = a.cfg.Import.Format
	}
	if opts.exportFormat == "" {
		opts.exportFormat = a.cfg.Export.Format
	}
	opts.exportFormat = strings.ToLower(opts.exportFormat)
	if opts.outDir == "" {
		opts.outDir = a.path(a.cfg.Export.Dir)
	}

	importDir := a.path(a.cfg.Import.Dir)
	paths := args
	scanned := len(args) == 0
	if scanned {
		files, err := importer.Scan(importDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CSV files in %s", importDir)
	}

	list, err := mappings.Load(a.path(a.cfg.Mappings))
	if err != nil {
		return err
	}

	registry := importer.DefaultRegistry()
	if !strings.EqualFold(opts.importFormat, importer.FormatAuto) && registry.Get(opts.importFormat) == nil {
		return fmt.Errorf("%w %q (have %s)", importer.ErrUnknownFormat, opts.importFormat, strings.Join(registry.Formats(), ", "))
	}
	processor := pipeline.New(a.cfg.Workers, a.logger)

	var sources []source
	var all []model.Row
	for _, p := range paths {
		name := filepath.Base(p)
		txns, err := registry.LoadFile(p, opts.importFormat)
		if err != nil {
			a.logger.Warn("skipping file", "file", name, "err", err)
			continue
		}
		if len(txns) == 0 {
			a.logger.Warn("no usable rows", "file", name)
			continue
		}

		rows, err := processor.Process(cmd.Context(), txns, list)
		if err != nil {
			return err
		}
		a.logger.Info("cleaned file", "file", name, "rows", len(rows))
		sources = append(sources, source{name: name, scanned: scanned, rows: rows})
		all = append(all, rows...)
	}
	if len(all) == 0 {
		return errors.New("no transactions to export")
	}

	now := time.Now()
	outPath, err := writeExport(opts.outDir, opts.exportFormat, now, all)
	if err != nil {
		return err
	}

	runID := runlog.NewRunID()
	entries := make([]runlog.Entry, 0, len(sources))
	for _, s := range sources {
		entries = append(entries, runlog.Entry{
			Timestamp: now.UTC(),
			RunID:     runID,
			Source:    s.name,
			Rows:      len(s.rows),
			Unparsed:  countUnparsed(s.rows),
			Output:    outPath,
		})
	}
	if err := runlog.Append(filepath.Dir(a.configPath), entries); err != nil {
		return err
	}

	if opts.markProcessed {
		for _, s := range sources {
			if !s.scanned {
				continue
			}
			if err := importer.MarkProcessed(importDir, s.name); err != nil {
				return err
			}
			a.logger.Debug("marked processed", "file", s.name)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleaned %d rows from %d file(s) -> %s\n", len(all), len(sources), outPath)
	return nil
}

func writeExport(dir, format string, now time.Time, rows []model.Row) (string, error) {
	if format != export.FormatCSV && format != export.FormatXLSX {
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, export.Filename(now, format))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export: %w", err)
	}
	if err := export.Write(f, format, rows); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export: %w", err)
	}
	return path, nil
}

func countUnparsed(rows []model.Row) int {
	n := 0
	for _, r := range rows {
		if !r.Amount.Valid {
			n++
		}
	}
	return n
}
