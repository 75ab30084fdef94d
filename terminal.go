package catimg

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Fallback terminal size used when the real one cannot be queried
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// Bounds is the usable area of the terminal, measured in source pixels
type Bounds struct {
	Cols int
	Rows int
}

// TerminalBounds converts a terminal size to pixel bounds for a precision.
//
// With precision 2 every column holds one pixel and every row two. With
// precision 1 a pixel is two columns wide and one row tall.
func TerminalBounds(columns, rows, precision int) Bounds {
	if precision != 1 && precision != 2 {
		precision = 2
	}
	div := 2 / precision
	return Bounds{
		Cols: columns / div,
		Rows: rows * 2 / div,
	}
}

// TerminalSize returns the size of the terminal attached to f
func TerminalSize(f *os.File) (columns, rows int, err error) {
	return term.GetSize(int(f.Fd()))
}

// TerminalSizeOrDefault returns the size of the first of stdout, stderr or
// stdin that is a terminal, or 80x24 when none is
func TerminalSizeOrDefault() (columns, rows int) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		if !term.IsTerminal(int(f.Fd())) {
			continue
		}
		if w, h, err := TerminalSize(f); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultColumns, DefaultRows
}

// SupportsUTF8 checks the locale environment for UTF-8
func SupportsUTF8() bool {
	for _, key := range []string{"LC_ALL", "LANG", "LC_CTYPE"} {
		if v := strings.ToUpper(os.Getenv(key)); strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8") {
			return true
		}
	}
	return false
}

// SupportsTrueColor uses the usual environment hints for 24-bit color support
func SupportsTrueColor() bool {
	termName := strings.ToLower(os.Getenv("TERM"))
	switch {
	case os.Getenv("COLORTERM") == "truecolor":
		return true
	case os.Getenv("COLORTERM") == "24bit":
		return true
	case strings.Contains(termName, "truecolor"):
		return true
	case strings.Contains(termName, "24bit"):
		return true
	case strings.Contains(termName, "kitty"):
		return true
	case os.Getenv("TERM_PROGRAM") == "iTerm.app":
		return true
	case os.Getenv("TERM_PROGRAM") == "WezTerm":
		return true
	default:
		return false
	}
}
