package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/treykane/dyntext/internal/app"
	"github.com/treykane/dyntext/internal/config"
	"github.com/treykane/dyntext/internal/logging"
)

// options holds the parsed command line. Fields mirror config.Config; only
// flags given explicitly override the config file.
type options struct {
	configPath string
	logFile    string
	noColor    bool
	noDraft    bool

	placeholder   string
	maxLines      int
	lineSpacing   int
	font          string
	pixelWidth    float64
	submitOnEnter bool

	set map[string]bool
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)

	if opts.noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logging.SetOutput(f)
		defer logging.SetOutput(nil)
	}

	draftPath := ""
	if !opts.noDraft {
		draftPath, err = config.DraftPath()
		if err != nil {
			return err
		}
	}

	m, err := app.New(app.Options{Config: cfg, DraftPath: draftPath})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dyntext", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configPath, "config", "", "config file (default ~/.dyntext/config.json)")
	fs.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	fs.BoolVar(&opts.noDraft, "no-draft", false, "do not save or restore the composer draft")

	fs.StringVar(&opts.placeholder, "placeholder", "", "placeholder shown in the empty composer")
	fs.IntVar(&opts.maxLines, "max-lines", 0, "maximum visible composer lines")
	fs.IntVar(&opts.lineSpacing, "line-spacing", 0, "blank rows between composer lines")
	fs.StringVar(&opts.font, "font", "", `font for the pixel estimate, e.g. "gomono 12pt @96dpi"`)
	fs.Float64Var(&opts.pixelWidth, "pixel-width", 0, "container width in pixels for the pixel estimate")
	fs.BoolVar(&opts.submitOnEnter, "submit-on-enter", true, "enter submits; alt+enter inserts a newline")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig reads the config file, falling back to defaults when none
// exists.
func loadConfig(path string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(path)
	}
	if errors.Is(err, config.ErrNotConfigured) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// apply overrides cfg with the flags given on the command line.
func (o options) apply(cfg config.Config) config.Config {
	if o.set["placeholder"] {
		cfg.Placeholder = o.placeholder
	}
	if o.set["max-lines"] {
		cfg.MaxLines = o.maxLines
	}
	if o.set["line-spacing"] {
		cfg.LineSpacing = o.lineSpacing
	}
	if o.set["font"] {
		cfg.Font = o.font
	}
	if o.set["pixel-width"] {
		cfg.PixelWidth = o.pixelWidth
	}
	if o.set["submit-on-enter"] {
		cfg.SubmitOnEnter = o.submitOnEnter
	}
	return cfg
}
