// Package cli implements vitals' command-line surface: a single root
// command with --version/-v and the usual --help/-h, per spec.md §6.
//
// Grounded on the teacher's internal/cli/root.go (SilenceUsage/
// SilenceErrors, Execute()/run() exit-code plumbing) and version.go (the
// --version flag idiom), stripped of everything task/SSH-specific:
// vitals has no subcommands, no remote config discovery, and no JSON/
// machine mode.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osmet/vitals/internal/app"
	"github.com/osmet/vitals/internal/config"
	"github.com/osmet/vitals/internal/logger"
	"github.com/osmet/vitals/internal/term"
	"github.com/osmet/vitals/internal/theme"
)

// Version information, set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionFlag bool

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "A terminal resource monitor for CPU, memory, disk, network, and processes.",
	Long: `vitals is a dense, color-rich terminal dashboard showing live CPU,
memory, disk, network, and process activity, with tree-mode process
grouping, sortable columns, and a filterable process list.

Press q to quit once it's running.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			fmt.Println(formatVersion(version))
			return nil
		}
		return runDashboard()
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "print the version and exit")
}

// SetVersionInfo sets the version information the --version flag prints,
// called from main with ldflags-populated build variables.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

// GetRootCmd returns the root command, for tests that exercise flag
// parsing without going through main.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func formatVersion(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}

// runDashboard loads configuration and theme, opens the terminal, and
// runs the dashboard until the user quits or receives an interrupt/term
// signal.
func runDashboard() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	themeSource, err := loadThemeSource(cfg.Theme)
	if err != nil {
		return err
	}
	pal, err := theme.Build(themeSource, true, theme.DetectTruecolor())
	if err != nil {
		return err
	}

	t, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, t, pal, logger.NewEnvLogger("[vitals]"))
	return a.Run(ctx)
}

// loadThemeSource resolves a named theme file under the theme search
// path; "default" or an empty name means the built-in palette with no
// overrides.
func loadThemeSource(name string) (map[string]string, error) {
	if name == "" || name == "default" {
		return nil, nil
	}
	dir, err := config.ThemeSearchPath()
	if err != nil {
		return nil, err
	}
	return theme.ParseFile(filepath.Join(dir, name+".theme"))
}
