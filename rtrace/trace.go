// Package rtrace is the construction-time trace/warn plumbing for the
// placer and its callers. It is deliberately thin: a package-level
// switch over log.Printf. Tracing exists to make a misbehaving
// construction inspectable, not to be a log stream, so it stays off
// unless a developer flips Verbose.
package rtrace

import "log"

// Verbose enables Trace output. Off by default: construction tracing
// is a debugging aid, not a normal-path log stream.
var Verbose = false

// Trace logs a construction-time diagnostic when Verbose is enabled.
func Trace(format string, args ...any) {
	if Verbose {
		log.Printf("ssaform: "+format, args...)
	}
}

// Warn always logs — used for recoverable-but-noteworthy conditions
// such as an unsupported (e.g. floating-point) sub-register access.
func Warn(format string, args ...any) {
	log.Printf("ssaform: warning: "+format, args...)
}
