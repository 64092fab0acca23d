// Command catlog-demo configures a logger from flags, a config file and
// $CATLOG, publishes it, and logs from a handful of categories at every
// level so the effect of the filters can be seen.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/catlog/config"
	"github.com/philipp01105/catlog/core"
	"github.com/philipp01105/catlog/handler"
	"github.com/philipp01105/catlog/handler/cborhandler"
	"github.com/philipp01105/catlog/handler/consolehandler"
	"github.com/philipp01105/catlog/handler/filehandler"
	"github.com/philipp01105/catlog/handler/logrushandler"
	"github.com/philipp01105/catlog/handler/sloghandler"
	"github.com/philipp01105/catlog/handler/zaphandler"
	"github.com/philipp01105/catlog/handler/zerologhandler"
	"github.com/philipp01105/catlog/logger"
)

const (
	ExitOk    = 0
	ExitError = 1
)

// publish is a variable to allow running the demo more than once in tests
var publish = logger.Publish

type options struct {
	Subsystem string   `short:"s" long:"subsystem" default:"com.example.test" description:"subsystem handles are opened under"`
	Level     string   `short:"l" long:"level" default:"info" description:"default level for categories without a rule"`
	Filters   []string `short:"f" long:"filter" value-name:"DIRECTIVE" description:"filter directive such as foo=warn (repeatable)"`
	Config    string   `short:"c" long:"config" value-name:"FILE" description:"YAML or TOML filter configuration"`
	Sink      string   `long:"sink" default:"console" choice:"console" choice:"file" choice:"cbor" choice:"zap" choice:"zerolog" choice:"logrus" choice:"slog" description:"where events go"`
	Output    string   `short:"o" long:"output" default:"catlog-demo.out" description:"directory for --sink=file, file for --sink=cbor"`
	Stderr    bool     `long:"stderr" description:"also mirror every event to stderr"`
	NoEnv     bool     `long:"no-env" description:"ignore $CATLOG"`
	Caller    bool     `long:"caller" description:"include the caller in each payload"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(ExitOk)
		}
		os.Exit(ExitError)
	}

	diag, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
	defer diag.Sync()

	if err := run(opts, diag); err != nil {
		diag.Error("catlog-demo failed", zap.Error(err))
		os.Exit(ExitError)
	}
}

func run(opts options, diag *zap.Logger) (err error) {
	b := logger.NewBuilder(opts.Subsystem).
		WithCaller(opts.Caller).
		WithStderr(opts.Stderr).
		WithErrorHandler(func(err error) {
			diag.Warn("event dropped", zap.Error(err))
		})

	level, err := core.ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	b.WithLevel(level)

	if opts.Config != "" {
		cfg, err := config.LoadFile(opts.Config)
		if err != nil {
			return err
		}
		b.WithConfig(cfg)
	}
	for _, f := range opts.Filters {
		cfg, err := config.ParseDirectives(f)
		if err != nil {
			return err
		}
		b.WithConfig(cfg)
	}
	if !opts.NoEnv {
		b.FromEnv()
	}

	sink, err := newSink(opts, diag)
	if err != nil {
		return err
	}
	b.WithSink(sink)

	if err := b.Err(); err != nil {
		return multierr.Append(err, sink.Close())
	}
	log := b.Build()
	if err := publish(log); err != nil {
		return multierr.Append(err, log.Close())
	}
	defer func() {
		err = multierr.Append(err, log.Close())
	}()

	diag.Debug("logger published",
		zap.String("subsystem", log.Subsystem()),
		zap.Stringer("default", log.Filters().Default()),
		zap.Int("rules", len(log.Filters().Rules())),
	)

	emitAll(log, "main", "Outer")
	foo(log)
	fooBar(log)
	fooBaz(log)

	diag.Debug("categories opened", zap.Int("handles", log.Handles()))
	if sp, ok := sink.(handler.StatsProvider); ok {
		s := sp.Stats()
		diag.Debug("sink stats", zap.Uint64("emitted", s.EmittedTotal), zap.Uint64("failed", s.Failed))
	}
	return nil
}

func newSink(opts options, diag *zap.Logger) (handler.Sink, error) {
	switch opts.Sink {
	case "file":
		return filehandler.NewFileSink(filehandler.FileConfig{Dir: opts.Output})
	case "cbor":
		return cborhandler.NewCBORFileSink(opts.Output)
	case "zap":
		return zaphandler.NewZapSink(diag), nil
	case "zerolog":
		return zerologhandler.NewZerologSink(zerolog.New(os.Stdout).With().Timestamp().Logger()), nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(os.Stdout)
		l.SetLevel(logrus.TraceLevel)
		return logrushandler.NewLogrusSink(l), nil
	case "slog":
		h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: sloghandler.LevelTrace})
		return sloghandler.NewSlogSink(slog.New(h)), nil
	default:
		return consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{Writer: os.Stdout}), nil
	}
}

func emitAll(log *logger.Logger, category, msg string) {
	c := log.Category(category)
	c.Trace(msg)
	c.Debug(msg)
	c.Info(msg)
	c.Warn(msg)
	c.Error(msg)
}

func foo(log *logger.Logger) { emitAll(log, "foo", "foo") }
func fooBar(log *logger.Logger) { emitAll(log, "foo.bar", "bar") }
func fooBaz(log *logger.Logger) { emitAll(log, "foo.baz", "baz") }
