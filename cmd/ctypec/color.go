package main

import (
	"os"

	"github.com/fatih/color"

	"ctypes/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// severityLabel renders a diag.Severity the way the CLI's diagnostic
// printer colors it, falling back to plain text when output isn't a
// terminal (color.NoColor already tracks that; resolveColorMode just lets
// --color force it either way).
func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}

// resolveColorMode applies the root --color flag (auto|on|off) on top of
// color's own NO_COLOR/isatty autodetection, the same precedence order the
// teacher's CLI gives an explicit flag over autodetection.
func resolveColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = color.NoColor || !isTerminal(os.Stdout)
	}
}
