package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Cipollino banner in onion shades.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text, color string
	}{
		{`   ___ _           _ _ _            `, "#f9a8d4"},
		{`  / __(_)_ __  ___| | (_)_ __   ___ `, "#f472b6"},
		{` | (__| | '_ \/ _ \ | | | '_ \ / _ \`, "#e879f9"},
		{`  \___|_| .__/\___/_|_|_|_| |_|\___/`, "#c084fc"},
		{`        |_|                         `, "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
