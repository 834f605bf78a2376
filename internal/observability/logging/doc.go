// Package logging builds the slog loggers used by the catalog binaries and
// carries them through request contexts.
//
// New takes its format ("json" or "text") and level from the app config;
// ParseLevel falls back to info for anything it does not recognise.
//
//	logger := logging.New(logging.Options{
//	    Format: cfg.Log.Format,
//	    Level:  cfg.Log.Level,
//	    Output: os.Stdout,
//	})
//	slog.SetDefault(logger)
//
// Inside a request the catalog service resolves its logger with FromContext
// and tags it with WithRequestID, so every line it writes can be joined to the
// access log entry for the same request.
package logging
