package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ConvertSummary mirrors converter.Result without importing it.
type ConvertSummary struct {
	Images      int
	Annotations int
	Categories  int
	OutputPath  string
	BOMPath     string
	DryRun      bool
	Duration    time.Duration

	UnrecognizedFiles   []string
	UnmatchedSidecars   []string
	EmptySidecars       []string
	MalformedSidecars   []string
	InvalidPolygons     []string
	DimensionMismatches []string
	DiscardedShapes     int
}

func (s ConvertSummary) hasWarnings() bool {
	return len(s.UnmatchedSidecars) > 0 || len(s.MalformedSidecars) > 0 ||
		len(s.InvalidPolygons) > 0 || len(s.DimensionMismatches) > 0
}

// CategoryRow is one line of the category table printed by inspect.
type CategoryRow struct {
	ID          int
	Name        string
	Annotations int
}

// ConvertUI renders the outcome of the convert and inspect commands.
type ConvertUI struct {
	writer io.Writer
	quiet  bool
}

// NewConvertUI creates a UI handler writing to w
func NewConvertUI(w io.Writer, quiet bool) *ConvertUI {
	return &ConvertUI{writer: w, quiet: quiet}
}

// LogStep prints a single status line
func (c *ConvertUI) LogStep(status, message string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.writer, FormatStatus(status, message))
}

// PrintSummary prints the final box plus any diagnostics.
func (c *ConvertUI) PrintSummary(s ConvertSummary) {
	if c.quiet {
		return
	}

	var b strings.Builder
	if s.DryRun {
		b.WriteString(Secondary.Bold(true).Render("Dry Run Complete"))
	} else {
		b.WriteString(Success.Bold(true).Render("Conversion Complete"))
	}
	b.WriteString("\n\n")
	b.WriteString(FormatKeyValue("Images", fmt.Sprintf("%d", s.Images)))
	b.WriteString("\n")
	b.WriteString(FormatKeyValue("Annotations", fmt.Sprintf("%d", s.Annotations)))
	b.WriteString("\n")
	b.WriteString(FormatKeyValue("Categories", fmt.Sprintf("%d", s.Categories)))
	if s.OutputPath != "" {
		b.WriteString("\n")
		b.WriteString(FormatKeyValue("Output", s.OutputPath))
	}
	if s.BOMPath != "" {
		b.WriteString("\n")
		b.WriteString(FormatKeyValue("Dataset BOM", s.BOMPath))
	}
	if s.Duration > 0 {
		b.WriteString("\n")
		b.WriteString(FormatKeyValue("Duration", s.Duration.Round(time.Millisecond).String()))
	}

	fmt.Fprintln(c.writer)
	if s.hasWarnings() {
		fmt.Fprintln(c.writer, WarningBox.Render(b.String()))
	} else {
		fmt.Fprintln(c.writer, SuccessBox.Render(b.String()))
	}

	c.PrintDiagnostics(s)
}

// PrintDiagnostics lists every file or annotation the run dropped.
func (c *ConvertUI) PrintDiagnostics(s ConvertSummary) {
	if c.quiet {
		return
	}
	c.printList("Unrecognized files", s.UnrecognizedFiles, Muted)
	c.printList("Sidecars without polygons", s.EmptySidecars, Muted)
	c.printList("Unmatched sidecars", s.UnmatchedSidecars, Warning)
	c.printList("Malformed sidecars (skipped)", s.MalformedSidecars, Warning)
	c.printList("Invalid polygons (skipped)", s.InvalidPolygons, Warning)
	c.printList("Dimension mismatches", s.DimensionMismatches, Warning)
	if s.DiscardedShapes > 0 {
		fmt.Fprintln(c.writer, FormatStatus("info", Dim.Render(fmt.Sprintf("%d non-polygon shape(s) ignored", s.DiscardedShapes))))
	}
}

func (c *ConvertUI) printList(title string, items []string, style styleWrapper) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(c.writer, style.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	for _, it := range items {
		fmt.Fprintf(c.writer, "  %s %s\n", GetBullet(), it)
	}
}

// PrintCategories prints the label → id table.
func (c *ConvertUI) PrintCategories(rows []CategoryRow) {
	if c.quiet {
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(c.writer, FormatStatus("warning", "no polygon labels found"))
		return
	}

	width := len("name")
	for _, r := range rows {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	var b strings.Builder
	b.WriteString(SectionHeader.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(Dim.Render(fmt.Sprintf("%4s  %-*s  %s", "id", width, "name", "annotations")))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%4d  %-*s  %d", r.ID, width, r.Name, r.Annotations))
	}
	fmt.Fprintln(c.writer, Box.Render(b.String()))
}
