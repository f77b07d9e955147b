package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/nao1215/markdown"

	"github.com/matzehuels/pydocs/pkg/results"
)

// Output names.
const (
	OutputDefault  = ""
	OutputPretty   = "pretty"
	OutputFile     = "file"
	OutputMarkdown = "markdown"
)

// TimestampFormat is used in CSV file names.
const TimestampFormat = "2006-01-02_15-04-05"

// Outputs lists the selectable output names, for flag help and completion.
func Outputs() []string {
	return []string{OutputPretty, OutputFile, OutputMarkdown}
}

// Options controls Render.
type Options struct {
	Output     string
	Mode       string // used in CSV file names
	ResultsDir string // directory for CSV files
	Stdout     io.Writer
	Now        func() time.Time
	Logger     *log.Logger
}

// Render writes set according to opts.Output. For file output it returns the
// written path; otherwise the path is empty.
func Render(set *results.Set, opts Options) (string, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	switch opts.Output {
	case OutputPretty:
		return "", WritePretty(opts.Stdout, set)
	case OutputMarkdown:
		return "", WriteMarkdown(opts.Stdout, set)
	case OutputFile:
		path, err := SaveCSV(set, opts.ResultsDir, opts.Mode, opts.Now())
		if err != nil {
			return "", err
		}
		opts.Logger.Info(fmt.Sprintf("Results file saved: %s", path))
		return path, nil
	default:
		return "", WriteLines(opts.Stdout, set)
	}
}

// WriteLines writes each row, header first, as space-separated values.
func WriteLines(w io.Writer, set *results.Set) error {
	for _, row := range set.All() {
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}

var prettyHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var prettyCellStyle = lipgloss.NewStyle().Padding(0, 1)

// WritePretty writes an aligned table with left-justified cells.
func WritePretty(w io.Writer, set *results.Set) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(set.Header()...).
		Rows(set.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return prettyHeaderStyle
			}
			return prettyCellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteMarkdown writes a markdown table.
func WriteMarkdown(w io.Writer, set *results.Set) error {
	return markdown.NewMarkdown(w).
		Table(markdown.TableSet{Header: set.Header(), Rows: set.Rows()}).
		Build()
}

// WriteCSV writes the header and rows as CSV with \n line endings.
func WriteCSV(w io.Writer, set *results.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(set.All()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// SaveCSV writes set to dir/<mode>_<timestamp>.csv, creating dir on demand.
func SaveCSV(set *results.Set, dir, mode string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", mode, now.Format(TimestampFormat)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results file: %w", err)
	}
	if err := WriteCSV(f, set); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close results file: %w", err)
	}
	return path, nil
}
