package classifier

import (
	"io"

	"github.com/idlab-discover/any2coco-cli/internal/logging"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Classify:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for classifier logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(file string, format string, args ...any) {
	logger.Logf(file, format, args...)
}
