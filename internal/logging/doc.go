// Package logging provides structured logging for rfpdesk.
//
// Logs are JSON lines produced by log/slog and written to
// {logging.dir}/rfpdesk.log. The file is rotated by lumberjack according
// to logging.max_size_mb and logging.max_backups. While the TUI owns the
// terminal nothing is written to stderr.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, logging.Options{Level: "INFO", MaxSizeMB: 10})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	opLog := logger.WithOperation("upload_rfp").With("request_id", id)
//	opLog.Info("request completed", "status", 200, "duration_ms", 812)
//
// # Reading Logs Back
//
// [ReadLogs] parses the file and [FilterLogs] narrows entries by level,
// time, operation, request id, session id or message text. The `rfpdesk
// logs` command is built on these.
package logging
