// Package logger wraps zap to provide:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - key-value convenience functions (InfoKV, DebugKV, ...).
//
// Commands put a named logger into the context and services extract it from
// there.
package logger
