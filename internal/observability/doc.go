// Package observability provides structured logging and dispatch metrics
// for the AI proxy.
//
// This package implements:
//   - Logger construction from LOG_LEVEL / LOG_FORMAT (zap-based)
//   - Context-aware logging with request ID propagation
//   - Dispatch hooks that log and count every provider call
//   - In-process counters per provider and outcome
package observability
