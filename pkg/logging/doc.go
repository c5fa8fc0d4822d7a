// Package logging provides structured logging utilities for flight-delay components.
//
// # Overview
//
// This package wraps the standard library slog package with service-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
// Package logging configures log/slog for the flightd server and the
// flightctl CLI.
//
// Both binaries install one JSON handler on stderr as the slog default and
// then log through the package-level slog functions. Every record carries
// the binary name under "module" and the build version under "version":
//
//	logging.SetDefaultStructuredLogger("flightd", version)          // level from LOG_LEVEL
//	logging.SetDefaultStructuredLoggerWithLevel("flightctl", v, lvl) // level from --log-level
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any case;
// anything else is info. At debug the handler also records the source
// location of each call.
//
// NewLogLogger bridges the default handler to a *log.Logger so that
// net/http server errors land in the same JSON stream.
//
// # What gets logged where
//
// Training (pkg/model) logs the split sizes, scale_pos_weight and the
// validation accuracy at info, and the artifact path and digest on save.
// The predictor logs each model load and a warning when an artifact has no
// digest to verify.
//
// Serving (pkg/inference) logs one warning per rejected flight with its
// batch index and the lookup or validation error. Clients only ever see
// "Invalid flight"; the log is where the reason is kept. Failed predictions
// and model loads are logged at error with the request id so they can be
// matched to the ErrorResponse the client received:
//
//	{"level":"WARN","msg":"invalid flight","module":"flightd","index":2,
//	 "flight":"Grupo LATAM/I/1","code":"NOT_FOUND","error":"..."}
package logging
