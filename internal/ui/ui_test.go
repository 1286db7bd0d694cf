package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorAppliesANSICodes(t *testing.T) {
	Init(false)
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorDisabledByInit(t *testing.T) {
	Init(true)
	t.Cleanup(func() { Init(false) })

	if got := Color("hello", FgRed); got != "hello" {
		t.Fatalf("Color() with color disabled = %q, want %q", got, "hello")
	}
}

func TestFormatStatus_Icons(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"success", "✓"},
		{"error", "✗"},
		{"warning", "⚠"},
		{"info", "ℹ"},
		{"other", "•"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := FormatStatus(tt.status, "msg")
			if !strings.Contains(got, tt.want) || !strings.Contains(got, "msg") {
				t.Fatalf("FormatStatus(%q) = %q, want icon %q and message", tt.status, got, tt.want)
			}
		})
	}
}

func TestConvertUI_PrintSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary ConvertSummary
		quiet   bool
		want    []string
	}{
		{
			name: "clean run",
			summary: ConvertSummary{
				Images:      3,
				Annotations: 7,
				Categories:  2,
				OutputPath:  "/out/annotations.json",
			},
			want: []string{"Conversion Complete", "Images", "3", "Annotations", "7", "/out/annotations.json"},
		},
		{
			name: "run with diagnostics",
			summary: ConvertSummary{
				Images:            2,
				Annotations:       1,
				Categories:        1,
				OutputPath:        "/out/annotations.json",
				BOMPath:           "/out/dataset.cdx.json",
				UnrecognizedFiles: []string{"notes.txt"},
				UnmatchedSidecars: []string{"orphan.json"},
				InvalidPolygons:   []string{"a.jpg#2: polygon has 2 vertices"},
			},
			want: []string{"Dataset BOM", "notes.txt", "orphan.json", "polygon has 2 vertices", "Unmatched sidecars (1)"},
		},
		{
			name:    "quiet mode produces no output",
			summary: ConvertSummary{Images: 1},
			quiet:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConvertUI(&buf, tt.quiet)
			c.PrintSummary(tt.summary)

			output := buf.String()
			if tt.quiet {
				if output != "" {
					t.Errorf("Expected no output in quiet mode, got: %q", output)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string %q.\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestValidationUI_PrintReport(t *testing.T) {
	var buf bytes.Buffer
	v := NewValidationUI(&buf, false)
	v.PrintReport(ValidationReport{
		Path:     "annotations.json",
		Valid:    false,
		Errors:   []string{"annotation 3: unknown image_id 9"},
		Warnings: []string{"image 0: file missing"},
		Images:   2,
	})

	out := buf.String()
	for _, want := range []string{"Validation Failed", "annotations.json", "unknown image_id 9", "file missing", "Errors (1)", "Warnings (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", want, out)
		}
	}
}

func TestWorkflow_TaskLifecycle(t *testing.T) {
	var buf bytes.Buffer
	wf := NewWorkflow(&buf, "")
	a := wf.AddTask("Classifying files")
	b := wf.AddTask("Writing output")

	wf.StartTask(a, "src")
	wf.CompleteTask(a, "4 image(s)")
	wf.SkipTask(b, "dry run")

	if wf.tasks[a].Status != TaskDone || wf.tasks[a].Details != "4 image(s)" {
		t.Fatalf("task a = %+v", *wf.tasks[a])
	}
	if wf.tasks[b].Status != TaskSkipped {
		t.Fatalf("task b status = %v, want skipped", wf.tasks[b].Status)
	}

	// out of range indices are ignored
	wf.StartTask(42, "x")
	wf.FailTask(-1, "x")

	wf.renderFinal()
	out := buf.String()
	if !strings.Contains(out, "4 image(s)") || !strings.Contains(out, "dry run") {
		t.Fatalf("final render missing details:\n%s", out)
	}
}
