package cmd

import (
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/idlab-discover/any2coco-cli/internal/apperr"
	"github.com/idlab-discover/any2coco-cli/internal/assembler"
	"github.com/idlab-discover/any2coco-cli/internal/builder"
	"github.com/idlab-discover/any2coco-cli/internal/category"
	"github.com/idlab-discover/any2coco-cli/internal/classifier"
	"github.com/idlab-discover/any2coco-cli/internal/converter"
	"github.com/idlab-discover/any2coco-cli/internal/datasetinfo"
	"github.com/idlab-discover/any2coco-cli/internal/imagemeta"
	bomio "github.com/idlab-discover/any2coco-cli/internal/io"
	"github.com/idlab-discover/any2coco-cli/internal/sidecar"
	"github.com/idlab-discover/any2coco-cli/internal/validator"
)

// resolveLogLevel reads <command>.log-level from flags, config or env.
func resolveLogLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLoggers sends internal package logs to w in debug mode.
func wireLoggers(w io.Writer, level string) {
	if level != "debug" {
		w = nil
	}
	classifier.SetLogger(w)
	sidecar.SetLogger(w)
	category.SetLogger(w)
	imagemeta.SetLogger(w)
	assembler.SetLogger(w)
	bomio.SetLogger(w)
	datasetinfo.SetLogger(w)
	builder.SetLogger(w)
	converter.SetLogger(w)
	validator.SetLogger(w)
}
