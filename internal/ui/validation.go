package ui

import (
	"fmt"
	"io"
	"strings"
)

// ValidationReport mirrors validator.ValidationResult to avoid an import
// cycle.
type ValidationReport struct {
	Path        string
	Valid       bool
	Errors      []string
	Warnings    []string
	Images      int
	Annotations int
	Categories  int
}

// ValidationUI renders the validate command output
type ValidationUI struct {
	writer io.Writer
	quiet  bool
}

// NewValidationUI creates a new UI handler for the validation command
func NewValidationUI(w io.Writer, quiet bool) *ValidationUI {
	return &ValidationUI{writer: w, quiet: quiet}
}

// PrintReport renders the validation result in a box
func (v *ValidationUI) PrintReport(report ValidationReport) {
	if v.quiet {
		return
	}

	var out strings.Builder
	if report.Valid {
		out.WriteString(Success.Bold(true).Render("✓ Validation Passed"))
	} else {
		out.WriteString(Error.Bold(true).Render("✗ Validation Failed"))
	}
	out.WriteString("\n\n")

	if report.Path != "" {
		out.WriteString(FormatKeyValue("File", Highlight.Render(report.Path)))
		out.WriteString("\n")
	}
	out.WriteString(FormatKeyValue("Images", fmt.Sprintf("%d", report.Images)))
	out.WriteString("\n")
	out.WriteString(FormatKeyValue("Annotations", fmt.Sprintf("%d", report.Annotations)))
	out.WriteString("\n")
	out.WriteString(FormatKeyValue("Categories", fmt.Sprintf("%d", report.Categories)))

	if len(report.Errors) > 0 {
		out.WriteString("\n\n")
		out.WriteString(renderIssues(fmt.Sprintf("Errors (%d)", len(report.Errors)), report.Errors, Error))
	}
	if len(report.Warnings) > 0 {
		out.WriteString("\n\n")
		out.WriteString(renderIssues(fmt.Sprintf("Warnings (%d)", len(report.Warnings)), report.Warnings, Warning))
	}

	if report.Valid {
		fmt.Fprintln(v.writer, SuccessBox.Render(out.String()))
	} else {
		fmt.Fprintln(v.writer, ErrorBox.Render(out.String()))
	}
}

// issues beyond this count are summarised
const maxListedIssues = 20

func renderIssues(title string, issues []string, style styleWrapper) string {
	var sb strings.Builder
	sb.WriteString(style.Bold(true).Render(title))
	for i, issue := range issues {
		if i == maxListedIssues {
			sb.WriteString("\n  " + Dim.Render(fmt.Sprintf("… and %d more", len(issues)-maxListedIssues)))
			break
		}
		sb.WriteString("\n  " + GetBullet() + " " + style.Render(issue))
	}
	return sb.String()
}
