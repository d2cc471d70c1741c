package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mathdown/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "12 files rendered, 3 written, 9 unchanged, 2 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := []string{
		fmt.Sprintf("%d %s rendered", stats.FilesRendered, plural(stats.FilesRendered, wordFile, wordFiles)),
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
	}
	if stats.FilesUpToDate > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d up to date", stats.FilesUpToDate)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats build statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files found", stats.FilesDiscovered, s.SummaryValue.Render)
	row("Files rendered", stats.FilesRendered, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", stats.FilesUnchanged, s.Dim.Render)
	}
	if stats.FilesUpToDate > 0 {
		row("Files up to date", stats.FilesUpToDate, s.Dim.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Headings", stats.Headings, s.SummaryValue.Render)
	row("Math spans", stats.MathSpans, s.SummaryValue.Render)
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Build failed"))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Warning.Render("Nothing to build"))
	default:
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileError formats one failed file for the error stream.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n", s.FilePath.Render(path), s.Error.Render("error"), s.Message.Render(err.Error()))
}

// FormatWarning formats a non-fatal message, such as a configuration warning.
func (s *Styles) FormatWarning(msg string) string {
	return s.Warning.Render("warning") + "  " + s.Message.Render(msg) + "\n"
}
