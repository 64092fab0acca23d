package logger_test

import (
	"fmt"
	"os"

	"github.com/philipp01105/catlog/config"
	"github.com/philipp01105/catlog/handler/consolehandler"
	"github.com/philipp01105/catlog/logger"
)

// Create a Logger with per-category levels and log through it.
func ExampleNewBuilder() {
	log := logger.NewBuilder("com.example.app").
		WithLevel(logger.InfoLevel).
		WithCategoryLevel("db", logger.WarnLevel).
		WithCategoryLevel("db.pool", logger.TraceLevel).
		WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{Writer: os.Stdout})).
		Build()
	defer log.Close()

	log.Log("db", logger.InfoLevel, "connected")
	log.Log("db", logger.WarnLevel, "slow query", logger.Int("ms", 250))
	log.Log("db.pool", logger.DebugLevel, "conn acquired")
	log.Log("http", logger.InfoLevel, "listening", logger.String("addr", ":8080"))
	// Output:
	// WARN  com.example.app [db] slow query ms=250
	// DEBUG com.example.app [db.pool] conn acquired
	// INFO  com.example.app [http] listening addr=:8080
}

// A CategoryLogger is the usual way to log from one component.
func ExampleLogger_Category() {
	log := logger.NewBuilder("svc").
		WithLevel(logger.DebugLevel).
		WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{
			Writer:        os.Stdout,
			OmitSubsystem: true,
		})).
		Build()

	cache := log.Category("cache")
	cache.Trace("not shown")
	cache.Debugf("evicted %d entries", 12)
	cache.Info("warm", logger.Bool("hit", true))
	// Output:
	// DEBUG [cache] evicted 12 entries
	// INFO  [cache] warm hit=true
}

// Filters can be given as directives, the same syntax $CATLOG uses.
func ExampleBuilder_WithConfig() {
	cfg, err := config.ParseDirectives("error,net=debug")
	if err != nil {
		fmt.Println(err)
		return
	}

	log := logger.NewBuilder("svc").WithConfig(cfg).Build()
	fmt.Println(log.Enabled("net.tcp", logger.DebugLevel))
	fmt.Println(log.Enabled("ui", logger.WarnLevel))
	// Output:
	// true
	// false
}

// Use With to create a child logger with persistent context fields.
func ExampleLogger_With() {
	log := logger.NewBuilder("svc").
		WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{
			Writer:        os.Stdout,
			OmitSubsystem: true,
		})).
		Build()

	reqLog := log.With(
		logger.String("request_id", "req-12345"),
		logger.String("method", "GET"),
	)

	reqLog.Category("http").Info("request completed", logger.Int("status", 200))
	// Output:
	// INFO  [http] request completed request_id=req-12345 method=GET status=200
}

// Route log/slog calls into a category.
func ExampleLogger_Slog() {
	log := logger.NewBuilder("svc").
		WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{
			Writer:        os.Stdout,
			OmitSubsystem: true,
		})).
		Build()

	sl := log.Slog("jobs")
	sl.Info("ran", "job", "cleanup", "removed", 3)
	// Output:
	// INFO  [jobs] ran job=cleanup removed=3
}
