package ui

// Basic ANSI color codes used by the internal/logging prefixes.
// Rich output goes through the lipgloss styles in styles.go instead.
const (
	Reset      = "\033[0m"
	LegacyBold = "\033[1m"
	FgCyan     = "\033[36m"
	FgGreen    = "\033[32m"
	FgMagenta  = "\033[35m"
	FgYellow   = "\033[33m"
	FgRed      = "\033[31m"
	FgBlue     = "\033[34m"
)

var noColor bool

// Init configures global output settings. With disable set, Color returns its
// input unchanged so log lines stay plain (useful for tests and pipes).
func Init(disable bool) { noColor = disable }

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	if noColor || code == "" {
		return s
	}
	return code + s + Reset
}
