package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"gssc/compiler"
	"gssc/config"
	"gssc/gss"
	"gssc/misc"
	"gssc/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.Load(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("verbose") {
		env.Cfg.Logging.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()))

	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "GSS (extended CSS) to CSS compiler",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:         "compile",
				Usage:        "Compiles GSS file(s) to a single CSS output",
				OnUsageError: usageErrorHandler,
				Action:       compile,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write compiled CSS to `FILE` instead of STDOUT"},
					&cli.StringFlag{Name: "format", Usage: "output `FORMAT`: compressed, pretty or debug (overrides configuration)"},
					&cli.StringFlag{Name: "rename", Usage: "renaming `STRATEGY`: identity, debug or minimal (overrides configuration)"},
					&cli.StringFlag{Name: "rename-map", Usage: "write the renaming table to `FILE` (JSON)"},
					&cli.StringFlag{Name: "source-map", Usage: "write output-to-input mappings to `FILE` (JSON)"},
					&cli.StringSliceFlag{Name: "condition", Usage: "treat `NAME` as true when resolving @if chains (repeatable)"},
					&cli.BoolFlag{Name: "rtl", Usage: "flip the stylesheet for right-to-left rendering"},
					&cli.BoolFlag{Name: "fail-fast", Usage: "stop at the first syntax error"},
				},
				ArgsUsage: "SOURCE...",
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func compile(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no input files")
	}

	applyOverrides(env.Cfg, cmd)

	job, err := env.Cfg.Job()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	env.Job = job

	sources := make([]gss.Source, 0, cmd.Args().Len())
	for _, name := range cmd.Args().Slice() {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("unable to read input '%s': %w", name, err)
		}
		sources = append(sources, gss.Source{Name: name, Content: string(data)})
	}

	res, cerr := compiler.New(env.Log).Compile(job, sources)

	if res != nil {
		reportDiagnostics(res, job.MaxDiagnostics)
	}
	if cerr != nil {
		var pf *gss.ParseFailure
		if errors.As(cerr, &pf) {
			// already reported with the rest of the diagnostics
			return fmt.Errorf("compilation failed")
		}
		return cerr
	}

	if err := writeOutput(cmd.String("output"), []byte(res.CSS)); err != nil {
		return err
	}
	if fname := cmd.String("rename-map"); fname != "" && res.RenameMap != nil {
		if err := writeJSON(fname, res.RenameMap); err != nil {
			return fmt.Errorf("unable to write rename map: %w", err)
		}
	}
	if fname := cmd.String("source-map"); fname != "" {
		if err := writeJSON(fname, res.SourceMap); err != nil {
			return fmt.Errorf("unable to write source map: %w", err)
		}
	}

	if res.HasErrors() {
		return fmt.Errorf("compilation failed with %d error(s)", len(res.Errors))
	}
	return nil
}

// applyOverrides layers command line flags over the loaded configuration.
func applyOverrides(cfg *config.Config, cmd *cli.Command) {
	if v := cmd.String("format"); v != "" {
		cfg.Output.Format = v
	}
	if v := cmd.String("rename"); v != "" {
		cfg.Renaming.Strategy = v
	}
	if cmd.Bool("rtl") {
		cfg.Output.Orientation = "rtl"
	}
	if cmd.Bool("fail-fast") {
		cfg.Output.FailFast = true
	}
	if cmd.String("source-map") != "" {
		cfg.Output.SourceMap = true
	}
	cfg.Conditions = append(cfg.Conditions, cmd.StringSlice("condition")...)
}

func reportDiagnostics(res *compiler.Result, max int) {
	em := gss.NewErrorManager(false)
	for _, e := range res.Errors {
		em.Report(e)
	}
	for _, w := range res.Warnings {
		em.ReportWarning(w)
	}
	for _, line := range em.Drain(max) {
		fmt.Fprintln(os.Stderr, line)
	}
}

func writeOutput(fname string, data []byte) error {
	if fname == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write output '%s': %w", fname, err)
	}
	return nil
}

func writeJSON(fname string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fname, append(data, '\n'), 0644)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	fname := cmd.Args().Get(0)
	out := os.Stdout
	if len(fname) > 0 {
		var err error
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	data, err := yaml.Marshal(env.Cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}
