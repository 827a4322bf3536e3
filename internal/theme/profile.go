package theme

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// DetectTruecolor implements spec.md §6's environment rules and §8's
// Testable Property #7 (precedence): COLORTERM=truecolor/24bit wins
// outright; failing that, a TERM_PROGRAM naming a known truecolor terminal,
// or a TERM containing "truecolor"/"24bit"/"direct" (all case-insensitive),
// enables 24-bit color. With none of those set, termenv's own color
// profile detection is consulted as a fallback; if it also reports less
// than full color, truecolor is disabled.
func DetectTruecolor() bool {
	if detectTruecolorEnv(os.Getenv("COLORTERM"), os.Getenv("TERM_PROGRAM"), os.Getenv("TERM")) {
		return true
	}
	// No explicit rule matched; defer to termenv's own profile probing
	// (terminfo + further env heuristics) as a last resort.
	return termenv.EnvColorProfile() == termenv.TrueColor
}

// detectTruecolorEnv applies the explicit rules of spec.md §6 and §8's
// Testable Property #7 to caller-supplied environment values. It is pure
// (no env reads) so it can be tested without depending on the test
// runner's actual environment.
func detectTruecolorEnv(colorterm, termProgram, term string) bool {
	if ci := strings.ToLower(colorterm); ci == "truecolor" || ci == "24bit" {
		return true
	}

	switch strings.ToLower(termProgram) {
	case "iterm.app", "vscode", "wezterm", "hyper":
		return true
	}

	lowerTerm := strings.ToLower(term)
	for _, needle := range []string{"truecolor", "24bit", "direct"} {
		if strings.Contains(lowerTerm, needle) {
			return true
		}
	}

	return false
}

// CurrentUser resolves the running user's display name from the
// environment, preferring LOGNAME then USER, per spec.md §6.
func CurrentUser() string {
	if v := os.Getenv("LOGNAME"); v != "" {
		return v
	}
	return os.Getenv("USER")
}

// SnappedRoot reports whether BTOP_SNAPPED is set (any non-empty value),
// which shifts the preferred root-disk mount point to "/mnt".
func SnappedRoot() bool {
	return os.Getenv("BTOP_SNAPPED") != ""
}
