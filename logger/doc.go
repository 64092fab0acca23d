// Package logger is the public API of catlog. Most users only need to
// import this package.
//
// Every event belongs to a category, a plain case-sensitive string such
// as "db.pool". A Logger holds a table of category prefixes and their
// minimum levels; the longest matching prefix decides, and categories
// no prefix matches use the default level. Note that matching is on raw
// string prefixes: a rule for "db" also covers "dbx".
//
// A Logger is configured through a Builder and is immutable once built.
// Its filter table is frozen, so the read path never locks:
//
//	log := logger.NewBuilder("com.example.app").
//	    WithLevel(logger.InfoLevel).
//	    WithCategoryLevel("db", logger.WarnLevel).
//	    WithCategoryLevel("db.pool", logger.TraceLevel).
//	    WithSink(consolehandler.NewConsoleSink(consolehandler.ConsoleConfig{})).
//	    Build()
//
// The first enabled event for a category opens that category's handle
// from the sink. The handle is cached for the life of the Logger, and
// concurrent first events share a single Open call. Filtered events
// cost a level comparison and a prefix scan, nothing more.
//
// One Logger can be published for the whole process. Publish succeeds
// exactly once; the package-level Log, Enabled and Category use the
// published logger, or a stderr console logger at InfoLevel before
// anything is published:
//
//	if err := logger.Publish(log); err != nil { ... }
//	db := logger.Category("db")
//	db.Warn("slow query", logger.Duration("took", d))
//
// CategoryLogger methods have no error result. A handle that cannot be
// opened, or an Emit that fails, is passed to the error handler set with
// Builder.WithErrorHandler, which prints to stderr by default.
//
// Filters can also come from configuration: Builder.WithConfig takes a
// config.Config loaded from YAML or TOML, and Builder.FromEnv reads
// directives like "info,db=warn" from $CATLOG.
package logger
