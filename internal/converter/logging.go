package converter

import (
	"io"

	"github.com/idlab-discover/any2coco-cli/internal/logging"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Convert:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for converter logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(file string, format string, args ...any) {
	logger.Logf(file, format, args...)
}
