// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is an immutable value: options are applied when it is created
// with [Make] or derived with [Logger.Wrap], and attributes are added with
// [Logger.With]. The zero Logger discards everything, so libraries can accept
// one through an option and log unconditionally.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expansion complete", slog.Int("result_count", 4))
//	logger.Error("failed to parse template", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [Error], …) write to a default
// logger, which [Config] reconfigures.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] for step-by-step diagnostics of the template pipeline.
//
// # Output Formats
//
// [FormatText] and [FormatJSON] are both available in a plain form, which
// matches the [log/slog] handlers, and a pretty form with ANSI colors
// enabled by [WithPretty].
package log
