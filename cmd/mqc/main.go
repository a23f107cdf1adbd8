package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mqc/config"
	"mqc/emit"
	"mqc/misc"
	"mqc/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = prepareReport(env.Cfg, configFile); err != nil {
			return ctx, err
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// prepareReport creates debug report and stores processed configuration with
// breakpoint files it refers to.
func prepareReport(cfg *config.Config, configFile string) (*config.Report, error) {
	rpt, err := cfg.Reporting.Prepare()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare debug reporter: %w", err)
	}
	if len(configFile) > 0 {
		if data, err := config.Dump(cfg); err == nil {
			rpt.StoreData("config/"+filepath.Base(configFile), data)
		}
	}
	for _, f := range []string{cfg.Breakpoints.File, cfg.Tweakpoints.File} {
		if len(f) == 0 {
			continue
		}
		if err := rpt.StoreCopy("breakpoints/"+filepath.Base(f), f); err != nil {
			return nil, multierr.Append(fmt.Errorf("unable to store breakpoints in debug report: %w", err), rpt.Close())
		}
	}
	return rpt, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnecessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt, wrap --watch runs until then
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:                      misc.GetAppName(),
		Usage:                     "composes CSS media queries from named breakpoints",
		Version:                   misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		Before:                    initializeAppContext,
		After:                     destroyAppContext,
		OnUsageError:              usageErrorHandler,
		ExitErrHandler:            exitErrHandler,
		CommandNotFound:           subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "query",
				Usage:        "Prints media query composed from breakpoints",
				OnUsageError: usageErrorHandler,
				Action:       emit.Query,
				Flags:        emit.RequestFlags(),
				CustomHelpTemplate: fmt.Sprintf(`%s
BOUNDS:
    breakpoint name from configured registry or length in px or em,
    named upper bound is exclusive: "--until small" stops just before small.
`, cli.CommandHelpTemplate),
				DisableSliceFlagSeparator: true,
			},
			{
				Name:         "wrap",
				Usage:        "Places stylesheet under composed media query",
				OnUsageError: usageErrorHandler,
				Action:       emit.Wrap,
				Flags: append(emit.RequestFlags(), emit.StyleFlag(),
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "regenerate output when source or breakpoint files change"},
				),
				ArgsUsage: "[SOURCE] [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    stylesheet to wrap, if absent or "-" - STDIN
    nested @media blocks are merged with composed query

DESTINATION:
    file name to write result to, if absent - STDOUT
`, cli.CommandHelpTemplate),
				DisableSliceFlagSeparator: true,
			},
			{
				Name:         "active",
				Usage:        "Emits declarations naming active breakpoint for selector",
				OnUsageError: usageErrorHandler,
				Action:       emit.Active,
				Flags: append(emit.RequestFlags(), emit.StyleFlag(),
					&cli.StringFlag{Name: "inherited", Aliases: []string{"i"}, Usage: "breakpoint `NAME` active outside of the query (default: \"default\")"},
				),
				ArgsUsage:                 "SELECTOR [DESTINATION]",
				DisableSliceFlagSeparator: true,
			},
			{
				Name:         "export",
				Usage:        "Exports length breakpoints into stylesheet for scripts",
				OnUsageError: usageErrorHandler,
				Action:       emit.Export,
				Flags: []cli.Flag{
					emit.StyleFlag(),
					&cli.StringFlag{Name: "selector", Usage: "rule `SELECTOR` receiving exported data (default: from configuration)"},
					&cli.StringFlag{Name: "snapshot", Usage: "print snapshot (JSON) for a single breakpoint `NAME` instead of stylesheet"},
				},
				ArgsUsage: "[DESTINATION]",
			},
			{
				Name:         "breakpoints",
				Usage:        "Shows effective breakpoints registry",
				OnUsageError: usageErrorHandler,
				Action:       emit.Breakpoints,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yaml", Usage: "output registry as breakpoints file (YAML)"},
					&cli.BoolFlag{Name: "tiers", Usage: "output sorted length breakpoints with em values"},
					&cli.BoolFlag{Name: "validate", Usage: "fail if any breakpoint cannot be resolved"},
				},
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       emit.DumpConfig,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
