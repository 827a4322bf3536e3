package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersionAddsVPrefix(t *testing.T) {
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", formatVersion("v1.2.3"))
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "", formatVersion(""))
}

// TestVersionFlagSkipsDashboard confirms --version short-circuits before
// runDashboard ever touches the terminal, so it's safe to exercise outside
// an interactive TTY.
func TestVersionFlagSkipsDashboard(t *testing.T) {
	rootCmd.SetArgs([]string{"--version"})
	assert.Equal(t, 0, Execute())
}

// TestNoArgsRejectsPositionalArguments is spec.md §6's "unknown arguments
// exit 1" rule: vitals takes no positional arguments.
func TestNoArgsRejectsPositionalArguments(t *testing.T) {
	rootCmd.SetArgs([]string{"bogus"})
	assert.Equal(t, 1, Execute())
}
