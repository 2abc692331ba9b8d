// Package logger provides structured logging for igcomments.
//
// It wraps zerolog behind the Logger interface. Console output is written
// to stderr so that the comment listing on stdout stays machine readable;
// when a log file is configured, JSON lines are appended to it instead.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("page_id", pageID).Debug("Resolving business account")
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to discard them.
package logger
