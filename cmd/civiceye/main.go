package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"civiceye/internal/config"
	"civiceye/internal/debug"
	"civiceye/internal/diagnostics"
	"civiceye/internal/domain"
	"civiceye/internal/ui"
	"civiceye/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	startupSpinnerDelay = 150 * time.Millisecond
	oneShotTimeout      = 30 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	version            bool
	debug              bool
	env                string
	apiURL             string
	theme              string
	autoRefreshSeconds int
	outputFormat       string
	check              string
	list               string
	summary            bool
	jsonOutput         bool

	visited map[string]struct{}
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("civiceye", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&f.version, "version", false, "Print version information and exit")
	fs.BoolVar(&f.debug, "debug", false, "Write a debug log to ~/.civiceye/debug.log")
	fs.StringVar(&f.env, "env", "", "Backend environment (development, production)")
	fs.StringVar(&f.apiURL, "api-url", "", "Backend base URL, overriding the environment default")
	fs.StringVar(&f.theme, "theme", "", "Color theme (civic, dracula, nord)")
	fs.IntVar(&f.autoRefreshSeconds, "auto-refresh-seconds", 0, "Auto-refresh interval in seconds (0 disables auto refresh)")
	fs.StringVar(&f.outputFormat, "output-format", "", "Issue detail markdown style (rich, light, plain)")
	fs.StringVar(&f.check, "check", "", "Run connectivity checks and exit (backend, storage, all)")
	fs.StringVar(&f.list, "list", "", "Print issues and exit (all, resolved, pending)")
	fs.BoolVar(&f.summary, "summary", false, "Print dashboard statistics and exit")
	fs.BoolVar(&f.jsonOutput, "json", false, "Print --check, --list and --summary output as JSON")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.visited = map[string]struct{}{}
	fs.Visit(func(fl *flag.Flag) {
		f.visited[fl.Name] = struct{}{}
	})
	return f, nil
}

func (f cliFlags) set(name string) bool {
	_, ok := f.visited[name]
	return ok
}

func (f cliFlags) interactive() bool {
	return !f.set("check") && !f.set("list") && !f.summary
}

// configOverrides maps explicitly set flags onto config keys so they win over
// files and environment variables.
func configOverrides(f cliFlags) map[string]any {
	overrides := map[string]any{}
	if f.set("env") {
		overrides[config.KeyEnvironment] = strings.TrimSpace(f.env)
	}
	if f.set("api-url") {
		overrides[config.KeyAPIBaseURL] = strings.TrimSpace(f.apiURL)
	}
	if f.set("theme") {
		overrides[config.KeyTheme] = strings.TrimSpace(f.theme)
	}
	if f.set("auto-refresh-seconds") {
		overrides[config.KeyRefreshSeconds] = f.autoRefreshSeconds
	}
	if f.set("output-format") {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(f.outputFormat)
	}
	return overrides
}

type runMode int

const (
	modeInteractive runMode = iota
	modeCheck
	modeList
	modeSummary
)

type runtimeOptions struct {
	mode            runMode
	refreshInterval time.Duration
	autoRefresh     bool
	outputFormat    string
	probes          []diagnostics.Probe
	filter          domain.StatusFilter
	jsonOutput      bool
}

func computeRuntimeOptions(f cliFlags, cfg *config.Config) (runtimeOptions, error) {
	seconds := sanitizeAutoRefreshSeconds(cfg.RefreshSeconds)
	rt := runtimeOptions{
		refreshInterval: time.Duration(seconds) * time.Second,
		autoRefresh:     seconds > 0,
		outputFormat:    strings.TrimSpace(cfg.OutputFormat),
		jsonOutput:      f.jsonOutput,
	}

	switch {
	case f.set("check"):
		probes, err := parseChecks(f.check)
		if err != nil {
			return rt, err
		}
		rt.mode, rt.probes = modeCheck, probes
	case f.set("list"):
		filter, err := domain.ParseStatusFilter(f.list)
		if err != nil {
			return rt, err
		}
		rt.mode, rt.filter = modeList, filter
	case f.summary:
		rt.mode = modeSummary
	}
	return rt, nil
}

func sanitizeAutoRefreshSeconds(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if flags.version {
		printVersion(stdout)
		return 0
	}

	var spinner startupAnimator
	if flags.interactive() {
		spinner = ui.NewStartupSpinner(stderr, startupSpinnerDelay)
		defer spinner.Stop()
		spinner.Stage(ui.StartupStageLoadingConfig, "")
	}

	cfg, err := config.Load(config.WithOverrides(configOverrides(flags)))
	if err != nil {
		stopSpinner(spinner)
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	rt, err := computeRuntimeOptions(flags, cfg)
	if err != nil {
		stopSpinner(spinner)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := debug.Init(flags.debug); err != nil {
		fmt.Fprintf(stderr, "Warning: debug logging disabled: %v\n", err)
	}
	defer debug.Close()
	if err := debug.InitSentry(cfg.SentryDSN, cfg.Environment, Version); err != nil {
		debug.Error("main: error reporting disabled", err)
	}
	defer debug.Flush()
	debug.Info("starting", "version", Version, "environment", cfg.Environment, "sources", cfg.Sources)

	if name := strings.TrimSpace(cfg.Theme); name != "" && !theme.SetTheme(name) {
		debug.Logf("main: unknown theme %q, using %s", name, theme.CurrentName())
	}

	ctx := context.Background()
	if spinner != nil {
		spinner.Stage(ui.StartupStageOpeningJournal, "")
	}
	workingDir, _ := os.Getwd()
	svc := buildServices(ctx, cfg, workingDir, stdout)
	defer svc.Close()

	err = runWithRuntime(ctx, rt, svc, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	}, spinner, stdout)
	if err != nil {
		stopSpinner(spinner)
		if !errors.Is(err, errChecksFailed) {
			debug.CaptureError(err)
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// startupAnimator reports startup stages until the TUI takes over the screen.
type startupAnimator interface {
	ui.StartupReporter
	Stop()
}

func stopSpinner(s startupAnimator) {
	if s != nil {
		s.Stop()
	}
}

// runWithRuntime dispatches to a one-shot printer or starts the TUI.
func runWithRuntime(ctx context.Context, rt runtimeOptions, svc *services, builder appBuilder, factory programFactory, spinner startupAnimator, out io.Writer) error {
	if rt.mode != modeInteractive {
		ctx, cancel := context.WithTimeout(ctx, oneShotTimeout)
		defer cancel()
		switch rt.mode {
		case modeCheck:
			return runChecks(ctx, out, svc.client, svc.journal, rt.probes, rt.jsonOutput)
		case modeList:
			return printIssues(ctx, out, svc.client, rt.filter, rt.jsonOutput)
		default:
			return printSummary(ctx, out, svc.client, rt.jsonOutput)
		}
	}

	appCfg := ui.Config{
		Client:          svc.client,
		Locations:       svc.locations,
		Images:          svc.images,
		Journal:         svc.journal,
		Haptics:         svc.haptics,
		RefreshInterval: rt.refreshInterval,
		AutoRefresh:     rt.autoRefresh,
		OutputFormat:    rt.outputFormat,
		SaveTheme:       svc.saveTheme,
		Version:         Version,
	}
	if spinner != nil {
		appCfg.StartupReporter = spinner
	}

	started := time.Now()
	app, err := runProgram(appCfg, builder, factory, func() { stopSpinner(spinner) })
	if err != nil {
		return err
	}
	printExitSummary(out, ExitSummary{
		Version:  Version,
		Stats:    app.Stats(),
		Duration: time.Since(started),
	})
	return nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type (
	appBuilder     func(ui.Config) (*ui.App, error)
	programFactory func(*ui.App) programRunner
)

// runProgram builds the app and runs it. beforeRun is called once the app is
// built or has failed, before anything else is written to the terminal.
func runProgram(cfg ui.Config, builder appBuilder, factory programFactory, beforeRun func()) (*ui.App, error) {
	app, err := builder(cfg)
	if beforeRun != nil {
		beforeRun()
	}
	if err != nil {
		return nil, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	if done, ok := final.(*ui.App); ok && done != nil {
		return done, nil
	}
	return app, nil
}
