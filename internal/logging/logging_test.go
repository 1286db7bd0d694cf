package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_Logf_WritesPrefixFileAndMessage(t *testing.T) {
	ui.Init(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", PrefixColor: ui.FgGreen}
	l.Logf("  cat_001.json  ", "polygons=%d", 3)

	out := buf.String()
	if out != "X: file=cat_001.json polygons=3\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestLogger_Logf_EmptyFile_UsesDash(t *testing.T) {
	ui.Init(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	if !strings.Contains(buf.String(), "file=- ") {
		t.Fatalf("expected placeholder file name, got %q", buf.String())
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	ui.Init(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("a.json", "x")

	if !strings.HasPrefix(buf.String(), "Log:") {
		t.Fatalf("expected default prefix, got %q", buf.String())
	}
}

func TestLogger_Logf_OmitFile(t *testing.T) {
	ui.Init(true)

	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitFile: true}
	l.Logf("a.json", "x")

	if out := buf.String(); out != "X: x\n" {
		t.Fatalf("output = %q, want %q", out, "X: x\\n")
	}
}

func TestLogger_Logf_NilReceiver_NoPanic(t *testing.T) {
	var l *Logger
	l.Logf("a.json", "x")
}
