package assembler

import (
	"io"

	"github.com/idlab-discover/any2coco-cli/internal/logging"
	"github.com/idlab-discover/any2coco-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Assemble:", PrefixColor: ui.FgYellow}

// SetLogger sets an optional destination for assembler logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(file string, format string, args ...any) {
	logger.Logf(file, format, args...)
}
