package validator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name string
		res  ValidationResult
		want string
	}{
		{
			name: "passed",
			res:  ValidationResult{Valid: true, Images: 3, Annotations: 5, Categories: 2, Warnings: []string{"w"}},
			want: "Validation: ✅ PASSED | Images: 3 | Annotations: 5 | Categories: 2 | Errors: 0 | Warnings: 1",
		},
		{
			name: "failed",
			res:  ValidationResult{Valid: false, Errors: []string{"a", "b"}},
			want: "Validation: ❌ FAILED | Images: 0 | Annotations: 0 | Categories: 0 | Errors: 2 | Warnings: 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSummary(tt.res); got != tt.want {
				t.Fatalf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintReport(t *testing.T) {
	ui.Init(true)
	defer ui.Init(false)

	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	PrintReport(ValidationResult{Valid: false, Errors: []string{"boom"}, Warnings: []string{"hmm"}})
	out := buf.String()
	for _, want := range []string{"Validation Report: ❌ validation failed", "errors (1):", "  • boom", "warnings (1):", "  • hmm"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReport_NoWriter(t *testing.T) {
	SetLogger(nil)
	PrintReport(ValidationResult{Valid: true})
}
