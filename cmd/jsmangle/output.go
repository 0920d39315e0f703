package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

func renderReports(reports []fileReport, opts keepNamesOptions, writer io.Writer) error {
	if opts.output != "" {
		outputFile, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	switch opts.format {
	case formatText:
		renderText(reports, opts, writer)

		return nil
	case formatJSON:
		return renderJSON(reports, opts, writer)
	case formatTable:
		renderTable(reports, opts, writer)

		return nil
	case formatNone:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, opts.format)
	}
}

func renderText(reports []fileReport, opts keepNamesOptions, writer io.Writer) {
	color.NoColor = !opts.color //nolint:reassign // intentional override of library global

	for _, report := range reports {
		if len(report.KeepNames) == 0 {
			color.New(color.FgGreen).Fprintf(writer, "%s: no names to preserve\n", report.Path)
		} else {
			color.New(color.FgYellow).Fprintf(writer, "%s: %d preserved name(s)\n", report.Path, len(report.KeepNames))

			for _, name := range report.KeepNames {
				color.New(color.FgCyan).Fprintf(writer, "  - %s\n", name)
			}
		}

		if opts.stats {
			fmt.Fprintf(writer, "  %s, %d nodes, %d symbols, %d references, %s\n",
				humanize.Bytes(report.Size), report.Nodes, report.Symbols, report.References, report.Elapsed)
		}
	}
}

func renderJSON(reports []fileReport, opts keepNamesOptions, writer io.Writer) error {
	if !opts.stats {
		for i := range reports {
			reports[i].Nodes = 0
			reports[i].Symbols = 0
			reports[i].References = 0
			reports[i].Size = 0
		}
	}

	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")

	err := enc.Encode(reports)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func renderTable(reports []fileReport, opts keepNamesOptions, writer io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)

	if opts.stats {
		tbl.AppendHeader(table.Row{"File", "Preserved", "Nodes", "Symbols", "Refs", "Size"})
	} else {
		tbl.AppendHeader(table.Row{"File", "Preserved"})
	}

	total := 0

	for _, report := range reports {
		names := "-"
		if len(report.KeepNames) > 0 {
			names = strings.Join(report.KeepNames, ", ")
		}

		total += len(report.KeepNames)

		if opts.stats {
			tbl.AppendRow(table.Row{
				report.Path, names, report.Nodes, report.Symbols, report.References, humanize.Bytes(report.Size),
			})
		} else {
			tbl.AppendRow(table.Row{report.Path, names})
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d files", len(reports)), fmt.Sprintf("%d names", total)})
	tbl.Render()
}
