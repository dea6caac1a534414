// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package app provides the main application logic for the SnowFlake overlay.
// It manages initialization, configuration, logging, environment variables, the snow overlay and the system tray UI.
// The Application struct encapsulates the application's error channel, metadata, settings and library functions.
// Key features include:
//   - Command-line flag parsing for logging, verbosity, version display, tuning file, particle count and shape.
//   - Environment variable handling for debugging and runtime configuration.
//   - Logger setup with support for file output and log rotation.
//   - System tray integration with menu items for shape selection, pausing, news, feedback, about information, and quitting.
//   - Global hotkey registration for pausing the snowfall.
//   - Theme watching so the tray icon stays visible on light and dark taskbars.
//   - Dialog utilities for error and information messages.
//   - Console management for verbose output and debugging.
//
// The overlay window runs on the main goroutine; the tray runs on its own locked OS thread.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/getlantern/systray"
	"github.com/kamaranl/snowflake/internal/config"
	"github.com/kamaranl/snowflake/internal/console"
	"github.com/kamaranl/snowflake/internal/feedback"
	"github.com/kamaranl/snowflake/internal/overlay"
	"github.com/kamaranl/snowflake/internal/snow"
	"github.com/kamaranl/snowflake/internal/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.design/x/hotkey"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Env names read at startup.
const (
	envDebug   = "DEBUG"
	envCLIArgs = "SNOWFLAKE_CLI_ARGS"
)

// LogFormatter is a custom log formatter that embeds logrus.TextFormatter,
// allowing for additional customization of log output formatting.
type LogFormatter struct{ logrus.TextFormatter }

// Format formats a logrus.Entry by replacing all double quotes in the message with single quotes,
// then delegates formatting to the embedded TextFormatter. Returns the formatted log entry as a byte slice.
// If formatting fails, an error is returned.
func (f *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Message = strings.ReplaceAll(entry.Message, `"`, `'`)
	b, err := f.TextFormatter.Format(entry)
	if err != nil {
		return nil, err
	}

	return b, nil
}

// Flags holds the parsed command line.
type Flags struct {
	LogFile  string
	LogLevel string
	Verbose  bool
	Version  bool
	Config   string
	Count    int
	Shape    string
	Args     []string
}

// Application represents the main application structure, containing channels for error handling,
// a Library instance for tray actions, the overlay, and metadata such as the application's name, version, and license.
type Application struct {
	ErrCh   chan error
	Lib     *Library
	Log     *logrus.Logger
	State   *state.Store
	Flags   Flags
	Config  config.Config
	Overlay *overlay.Overlay
	Meta    struct {
		License string
		Name    string
		Version string
	}

	con    *console.Console
	env    map[string]string
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
}

// New creates a new Application instance with the specified name.
// It captures the environment, prepares the console binding and associates a Library with the application.
func New(name string) *Application {
	app := &Application{
		ErrCh:  make(chan error),
		Log:    logrus.New(),
		State:  state.New(),
		env:    make(map[string]string),
		exited: make(chan struct{}),
	}
	app.Meta.Name = name
	app.Lib = &Library{App: app}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, key := range []string{envDebug, envCLIArgs} {
		if value, exists := os.LookupEnv(key); exists {
			app.env[key] = value
		}
	}
	app.con = console.New(app.debug())

	return app
}

func (a *Application) debug() bool {
	return strings.EqualFold(a.env[envDebug], "true")
}

// args returns the command line, replaced by SNOWFLAKE_CLI_ARGS when debugging.
func (a *Application) args() []string {
	if a.debug() && a.env[envCLIArgs] != "" {
		return strings.Split(a.env[envCLIArgs], ";")
	}
	return os.Args[1:]
}

// ParseFlags parses args into a.Flags.
func (a *Application) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet(a.Meta.Name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	fs.SortFlags = false
	fs.StringVar(&a.Flags.LogLevel, "log-level", "INFO", "Log level: DEBUG|INFO|WARN|ERROR|FATAL|PANIC")
	fs.StringVar(&a.Flags.LogFile, "log", "", "File path to save log output")
	fs.BoolVarP(&a.Flags.Verbose, "verbose", "v", false, "Allocates a new console for verbose output")
	fs.BoolVar(&a.Flags.Version, "version", false, "Prints version")
	fs.StringVarP(&a.Flags.Config, "config", "c", "", "Tuning file (YAML)")
	fs.IntVarP(&a.Flags.Count, "count", "n", 0, fmt.Sprintf("Number of particles (%d-%d), overrides the tuning file", config.MinCount, config.MaxCount))
	fs.StringVarP(&a.Flags.Shape, "shape", "s", "", "Start with this shape: "+shapeNames())

	if err := fs.Parse(args); err != nil {
		return err
	}
	a.Flags.Args = fs.Args()
	return nil
}

func shapeNames() string {
	names := make([]string, len(snow.Profiles))
	for i, p := range snow.Profiles {
		names[i] = p.Name
	}
	return strings.Join(names, "|")
}

// Run starts the main execution flow of the Application.
// It attaches the console, parses command-line arguments, handles version display,
// sets up logging, loads the tuning file and settings, starts the system tray and
// finally runs the overlay window until the user quits.
func (a *Application) Run() {
	_ = a.con.Attach()

	if err := a.ParseFlags(a.args()); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(a.Flags.Args) > 0 {
		if !strings.EqualFold(a.Flags.Args[0], "help") && a.Flags.Args[0] != "?" {
			fmt.Fprintf(os.Stderr, "unknown arg: %s\n", a.Flags.Args[0])
		}
		os.Exit(2)
	}
	if a.Flags.Version {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(a.Meta.Version))
		os.Exit(0)
	}

	a.setLogger()
	a.Log.Debug("Application ready")

	if err := a.configure(); err != nil {
		a.fatal(err.Error())
	}

	go func() {
		runtime.LockOSThread()
		systray.Run(a.onReady, a.onExit)
	}()

	if err := a.Overlay.Run(); err != nil {
		a.fatal(fmt.Sprintf("Overlay stopped: %v", err))
	}

	a.Log.Debug("Overlay closed")
	systray.Quit()
	select {
	case <-a.exited:
	case <-time.After(2 * time.Second):
		a.Log.Warn("Tray did not shut down in time")
	}
}

// configure loads the tuning file and settings, applies flag overrides and
// creates the overlay and the feedback sender.
func (a *Application) configure() error {
	cfg, source, err := config.Load(a.Flags.Config)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if source != "" {
		a.Log.Infof("Loaded configuration from %q", source)
	}
	if a.Flags.Count != 0 {
		cfg.Count = a.Flags.Count
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --count: %w", err)
		}
	}
	a.Config = cfg

	path, err := config.SettingsPath()
	if err != nil {
		a.Log.Warnf("Settings will not persist: %v", err)
	}
	a.Lib.SettingsPath = path

	var settings config.Settings
	if path != "" {
		if settings, err = config.LoadSettings(path); err != nil {
			a.Log.Warnf("Ignoring settings: %v", err)
		}
	}
	if a.Flags.Shape != "" {
		p, ok := snow.LookupName(a.Flags.Shape)
		if !ok {
			return fmt.Errorf("unknown shape %q, want one of %s", a.Flags.Shape, shapeNames())
		}
		settings.ShapeIndex = p.Index
	}
	state.Set(a.State, "shape_index", settings.ShapeIndex)

	a.Overlay = overlay.New(overlay.Options{
		Title:    a.Meta.Name,
		Count:    cfg.Count,
		Profile:  settings.Profile(),
		Clock:    cfg.ClockMode(),
		Interval: cfg.IntervalDuration(),
		Opacity:  cfg.Opacity,
	}, a.Log)
	a.Lib.Snow = a.Overlay

	if m := cfg.Feedback; m.Enabled() {
		sender, err := feedback.NewSMTPSender(m.Host, m.Port, m.Username, m.Password, m.From, m.To)
		if err != nil {
			return err
		}
		a.Lib.Sender = sender
	}
	a.Lib.Clipboard = copyToClipboard

	return nil
}

// onReady builds the tray menu once the tray is up, registers the global hotkey,
// starts the theme watcher and the news fetch, and then handles menu clicks and
// background errors until the process ends.
func (a *Application) onReady() {
	a.Log.Info("Application started")

	mShape := systray.AddMenuItem("Shape", "Choose the falling shape")
	shapes := make([]*systray.MenuItem, len(snow.Profiles))
	for i, p := range snow.Profiles {
		shapes[i] = mShape.AddSubMenuItem(p.Name, "")
	}
	state.Set(a.State, "menu_shapes", shapes)

	mPause := systray.AddMenuItem("", "Ctrl+Shift+S")
	state.Set(a.State, "menu_pause", mPause)

	systray.AddSeparator()
	mNews := systray.AddMenuItem("", "")
	mNews.Disable()
	mNews.Hide()
	state.Set(a.State, "menu_news", mNews)

	mFeedback := systray.AddMenuItem("Feedback…", "Send a comment to the developers")
	mAbout := systray.AddMenuItem("About", "")
	mQuit := systray.AddMenuItem("Quit", "")

	state.Set(a.State, "tray_ready", true)
	a.Lib.RefreshIcon()
	a.Lib.RefreshSystray()
	a.Lib.WatchTheme(a.ctx)
	a.Lib.FetchNews(a.ctx)
	a.registerHotkey()

	picked := make(chan int)
	for i, item := range shapes {
		go func() {
			for range item.ClickedCh {
				picked <- i
			}
		}()
	}

	for {
		select {
		case i := <-picked:
			a.Log.Debugf("*Clicked %s*", snow.Profiles[i].Name)
			a.Lib.SelectShape(i)

		case <-mPause.ClickedCh:
			a.Log.Debug("*Clicked Pause*")
			a.Lib.TogglePause()

		case <-mFeedback.ClickedCh:
			a.Log.Debug("*Clicked Feedback*")
			go a.Lib.PromptFeedback(a.ctx)

		case <-mAbout.ClickedCh:
			a.Log.Debug("*Clicked About*")
			a.msgbox("About",
				a.Meta.Name+", version "+strings.TrimSpace(a.Meta.Version)+" ("+runtime.GOOS+"-"+runtime.GOARCH+")"+a.Meta.License,
				dialogInfo, -1)

		case <-mQuit.ClickedCh:
			a.Log.Debug("*Clicked Quit*")
			a.Overlay.Stop()

		case err := <-a.ErrCh:
			a.Log.Error(err)
		}
	}
}

// registerHotkey binds Ctrl+Shift+S to the pause toggle. A failure only costs the
// shortcut, so it is logged rather than fatal.
func (a *Application) registerHotkey() {
	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyS)
	if err := hk.Register(); err != nil {
		a.Log.Warnf("Error registering global hotkey: %v", err)
		return
	}

	go func() {
		for {
			select {
			case <-hk.Keydown():
				a.Log.Debug("Hotkey activated")
				a.Lib.TogglePause()
			case <-a.ctx.Done():
				_ = hk.Unregister()
				return
			}
		}
	}()
}

// onExit handles cleanup operations when the tray is stopping.
// It stops background work, clears the application state,
// and if verbose mode is enabled, prints a countdown before exiting.
func (a *Application) onExit() {
	defer close(a.exited)

	a.cancel()
	a.Overlay.Stop()
	a.Log.Info("Application stopped")
	a.State.Clear()

	if a.Flags.Verbose {
		fmt.Println("This console will exit in")
		for i := 3; i > 0; i-- {
			fmt.Printf("%d...\n", i)
			time.Sleep(1 * time.Second)
		}
	}
}

// setLogger configures a.Log.
// It sets the log formatter, log level, and output destinations based on the application name and flag values.
// If a log file is specified, it validates the file path and configures log rotation using lumberjack.
// The logger output is set to both stderr and the log file (if valid).
// If verbose mode is enabled, it attempts to spawn a console window for logging output.
// Any errors encountered during setup are reported to stderr and, if applicable, via a dialog.
func (a *Application) setLogger() {
	log := a.Log
	log.SetFormatter(&LogFormatter{logrus.TextFormatter{DisableColors: false, FullTimestamp: true}})

	if lvl, err := logrus.ParseLevel(a.Flags.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
	} else {
		log.SetLevel(lvl)
	}

	writers := []io.Writer{}
	if a.Flags.LogFile != "" {
		if logF, ok := resolveLogFile(a.Flags.LogFile, a.Meta.Name); ok {
			writers = append(writers, &lumberjack.Logger{
				Filename:   logF,
				MaxSize:    10,
				MaxBackups: 4,
				MaxAge:     28,
			})
			state.Set(a.State, "log_file", logF)
		}
	}

	_ = a.con.Detach()

	if a.Flags.Verbose {
		if err := a.con.Spawn(); err != nil {
			msg := fmt.Sprintf("Failed to spawn: %v", err)
			fmt.Fprintln(os.Stderr, msg)
			a.msgbox("Error", msg, dialogError, 1)
		}
	}

	writers = append([]io.Writer{os.Stderr}, writers...)
	log.SetOutput(io.MultiWriter(writers...))
}

// resolveLogFile turns the --log value into a file path. A directory gets a file
// named after the application. The path is probed by creating and removing a
// temporary sibling; problems are reported to stderr and disable file logging.
func resolveLogFile(logF, logName string) (string, bool) {
	var logD, logN string

	info, err := os.Stat(logF)
	if err == nil && info.IsDir() {
		logD = logF
		logN = logName + ".log"
	} else {
		logD = filepath.Dir(logF)
		logN = filepath.Base(logF)
	}

	logF = filepath.Join(logD, logN)
	logT := logF + ".TMP"
	valid := true

	f, err := os.Create(logT)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log file: %v\n", err)
		return "", false
	}
	if err = f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close %q: %v\n", logT, err)
		valid = false
	}
	if err = os.Remove(logT); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to remove %q: %v\n", logT, err)
		valid = false
	}

	return logF, valid
}

// fatal logs msg, shows it in an error dialog and exits with status 1.
func (a *Application) fatal(msg string) {
	a.Log.Error(msg)
	showDialog("Fatal Error", msg, dialogError)
	os.Exit(1)
}
