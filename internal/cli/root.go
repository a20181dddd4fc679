package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/idilsaglam/sheettracker/internal/config"
	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

// usageError marks bad invocations so Run exits with 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{msg: fmt.Sprintf(format, a...)} }

// Overridden in tests.
var (
	stdin     io.Reader = os.Stdin
	newLogger           = func(verbose bool) (*zap.Logger, error) {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		return cfg.Build()
	}
)

type rootFlags struct {
	configPath string
	dataDir    string
	backend    string
	server     string
	theme      string
	color      string
	verbose    bool
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(ui.Err, ui.Dim("Run `sheettracker --help` for usage."))
		return exitUsage
	}
	return exitErr
}

func NewRootCmd() *cobra.Command {
	var flags rootFlags
	a := &app{}

	root := &cobra.Command{
		Use:   "sheettracker",
		Short: "Track progress through coding-practice question lists",
		Long: `sheettracker imports question lists from spreadsheets (xlsx/csv) or
GitHub-hosted markdown, keeps them in one local list and tracks which
questions you have completed.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          groupRunE,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(ui.Out)
	root.SetErr(ui.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{msg: err.Error()} })

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default: ./"+config.ProjectConfigFile+")")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory holding the question list")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend: json or bolt")
	pf.StringVar(&flags.server, "server", "", "Import through the gateway at this URL instead of in-process")
	pf.StringVar(&flags.theme, "theme", "", "Theme: "+strings.Join(ui.Themes(), ", "))
	pf.StringVar(&flags.color, "color", "", "Color output: auto, always or never")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newServeCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newTUICmd(a),
	)
	return root
}

// usageArgs turns a failed positional-args check into a usage error.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{msg: err.Error()}
		}
		return nil
	}
}

// groupRunE serves commands that only hold subcommands: no args prints
// help, anything else is an unknown subcommand.
func groupRunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
}
