package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/bgunnarsson/askcourses/internal/app"
	"github.com/bgunnarsson/askcourses/internal/config"
	"github.com/bgunnarsson/askcourses/internal/logging"
	"github.com/bgunnarsson/askcourses/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	_ = godotenv.Load() // loads .env if present, silently ignores if not

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	fs, verbose := newFlagSet(&cfg, stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *verbose {
		cfg.Log.Level = zapcore.DebugLevel
	}

	log := logging.New(stderr, cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// An explicit argument, even "", is the question as given.
	question := questionFromArgs(positional)
	if len(positional) == 0 {
		if !isTerminal(os.Stdin) || !isTerminal(stderr) {
			fs.Usage()
			return 2
		}
		question, err = ui.AskQuestion(ctx, os.Stdin, stderr)
		if errors.Is(err, ui.ErrCancelled) {
			return 1
		}
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
	}

	p, err := app.New(cfg, app.Streams{Out: stdout, Err: stderr}, log)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	defer p.Close()

	p.Verbose = *verbose
	if !*verbose && isTerminal(stderr) {
		p.Progress = func(ctx context.Context, label string, work func() error) error {
			return ui.Spin(ctx, stderr, label, work)
		}
	}

	if err := p.Ask(ctx, question); err != nil {
		log.Debug("run failed", zap.Error(err))
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseArgs lets flags appear before or after the question. Everything after
// a bare "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// newFlagSet binds flags straight onto cfg, so environment values act as
// defaults and explicit flags win.
func newFlagSet(cfg *config.Config, usageOut io.Writer) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet("askcourses", flag.ContinueOnError)
	fs.SetOutput(usageOut)

	verbose := new(bool)
	fs.StringVar(&cfg.Database.DSN, "db", cfg.Database.DSN, "database path (sqlite) or DSN, opened read-only")
	fs.StringVar(&cfg.Database.Driver, "driver", cfg.Database.Driver, "database driver: sqlite, postgres, mysql or mssql")
	fs.StringVar(&cfg.AI.Model, "model", cfg.AI.Model, "chat completion model")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "schema descriptor file (default: built in)")
	fs.BoolVar(verbose, "v", false, "print the generated SQL to stderr")
	fs.BoolVar(verbose, "verbose", false, "print the generated SQL to stderr")

	fs.Usage = func() {
		fmt.Fprintln(usageOut, "usage: askcourses [flags] <question> [flags]")
		fs.PrintDefaults()
	}
	return fs, verbose
}

// questionFromArgs accepts the question as one quoted argument or as
// several words.
func questionFromArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return strings.Join(args, " ")
}
