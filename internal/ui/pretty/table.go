package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mathdown/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, OUTPUT, HEADINGS, MATH, STATUS
	minFileWidth     = 20
	minCountWidth    = 8
	minStatusWidth   = 10
	heavySeparator   = "="
	defaultTermWidth = 100
)

// Build statuses shown in the STATUS column.
const (
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusUpToDate  = "up to date"
	StatusFailed    = "failed"
)

// TableRow represents a single row in the build table.
type TableRow struct {
	File     string
	Output   string
	Headings int
	Math     int
	Status   string
}

// TableFormatter formats build results as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// OutcomeToTableRow converts a file outcome to a table row.
func OutcomeToTableRow(file runner.FileOutcome) TableRow {
	row := TableRow{
		File:     file.Path,
		Output:   file.Output,
		Headings: file.Headings,
		Math:     file.MathSpans,
	}
	switch {
	case file.Error != nil:
		row.Status = StatusFailed
	case file.UpToDate:
		row.Status = StatusUpToDate
	case file.Written:
		row.Status = StatusWritten
	default:
		row.Status = StatusUnchanged
	}
	return row
}

// FormatTable formats build results as a styled table.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, OutcomeToTableRow(file))
	}
	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths) + "\n")
	return builder.String()
}

type columnWidths struct {
	file   int
	output int
}

// calculateColumnWidths sizes the path columns to their content, then
// shrinks them to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{file: minFileWidth, output: minFileWidth}
	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.output = max(widths.output, len(row.Output))
	}

	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.output = max(minFileWidth, widths.output-excess)
	}
	if excess := t.calculateTotalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}
	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.output + 2*minCountWidth + minStatusWidth + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		widths.file, "FILE",
		widths.output, "OUTPUT",
		minCountWidth, "HEADINGS",
		minCountWidth, "MATH",
		minStatusWidth, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	headings, math := strconv.Itoa(row.Headings), strconv.Itoa(row.Math)
	if row.Status == StatusFailed || row.Status == StatusUpToDate {
		headings, math = "-", "-"
	}

	content := fmt.Sprintf(" %-*s  %-*s  %*s  %*s  %-*s ",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.output, truncateFilePath(row.Output, widths.output),
		minCountWidth, headings,
		minCountWidth, math,
		minStatusWidth, row.Status,
	)
	return t.rowStyle(row.Status).Render(content)
}

func (t *TableFormatter) rowStyle(status string) lipgloss.Style {
	switch status {
	case StatusFailed:
		return t.styles.TableErrorRow
	case StatusWritten:
		return t.styles.TableWrittenRow
	default:
		return lipgloss.NewStyle()
	}
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files", stats.FilesDiscovered)}
	if stats.FilesWritten > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return t.styles.TableLegend.Render(" "+strings.Join(parts, " | ")) + "\n"
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
