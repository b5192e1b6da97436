// Package logging provides structured logging for the trace query service.
//
// The Logger wraps log/slog with level and format parsing, optional rotating
// file output, and helpers for carrying request-scoped fields (request_id,
// session_id, project_id) through context. It satisfies the advisory engine's
// EventLogger interface, so the same logger serves both application logging
// and the engine's best-effort observability events.
//
// # Basic Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Shutdown()
//
//	logger.Info("server starting", "address", addr)
package logging
