package diag

import "fmt"

// Target marks whether an Issue's message is safe to surface to a consumer
// that should never see user data (logs, telemetry) or is only safe to show
// a trusted operator (a CLI operating on its own input).
type Target uint8

const (
	// Release messages never embed user data and are safe to log verbatim.
	Release Target = iota
	// Debug messages may embed values drawn from the schema or the data
	// being generated; only surface them to a trusted caller.
	Debug
)

// Issue is a single immutable diagnostic. Construct one with [New] and the
// With* fluent methods; all fields are unexported so callers cannot
// construct a malformed value that skips Kind/Severity.
//
// Issue implements error, so it can be returned directly from fallible
// operations; the boundary (compiler, sampler, an eventual CLI) decides
// whether to call Message or SafeMessage when surfacing it.
type Issue struct {
	kind     Kind
	severity Severity
	target   Target
	message  string
	path     string // canonical Address/FieldRef string, if applicable
	hint     string // e.g. a closest-name suggestion
	cause    error
}

// New creates an Issue. Most call sites prefer one of the per-kind
// constructors below, which pick a sensible default Severity and Target.
func New(kind Kind, severity Severity, target Target, message string) Issue {
	return Issue{kind: kind, severity: severity, target: target, message: message}
}

// NotFoundf builds a Release-safe NotFound Issue at Error severity.
func NotFoundf(format string, args ...any) Issue {
	return New(NotFound, Error, Release, fmt.Sprintf(format, args...))
}

// BadRequestf builds a Debug BadRequest Issue at Error severity: the message
// typically echoes back the offending schema fragment.
func BadRequestf(format string, args ...any) Issue {
	return New(BadRequest, Error, Debug, fmt.Sprintf(format, args...))
}

// Compilationf builds a Compilation Issue at Error severity.
func Compilationf(format string, args ...any) Issue {
	return New(Compilation, Error, Debug, fmt.Sprintf(format, args...))
}

// Serializationf builds a Serialization Issue at Error severity.
func Serializationf(format string, args ...any) Issue {
	return New(Serialization, Error, Debug, fmt.Sprintf(format, args...))
}

// Inferencef builds an Inference Issue at Error severity.
func Inferencef(format string, args ...any) Issue {
	return New(Inference, Error, Debug, fmt.Sprintf(format, args...))
}

// Optionalisef builds an Optionalise Issue at Error severity.
func Optionalisef(format string, args ...any) Issue {
	return New(Optionalise, Error, Release, fmt.Sprintf(format, args...))
}

// Overridef builds an Override Issue at Error severity.
func Overridef(format string, args ...any) Issue {
	return New(Override, Error, Release, fmt.Sprintf(format, args...))
}

// Conflictf builds a Conflict Issue at Error severity: uniqueness exhausted.
func Conflictf(format string, args ...any) Issue {
	return New(Conflict, Error, Release, fmt.Sprintf(format, args...))
}

// Unspecifiedf builds a Fatal Unspecified Issue: numeric overflow (and
// anything else unanticipated) is fatal rather than silently wrapping.
func Unspecifiedf(format string, args ...any) Issue {
	return New(Unspecified, Fatal, Release, fmt.Sprintf(format, args...))
}

// WithPath attaches a canonical Address/FieldRef string for context.
func (i Issue) WithPath(path string) Issue {
	i.path = path
	return i
}

// WithHint attaches a resolution suggestion, e.g. a closest-name match.
func (i Issue) WithHint(hint string) Issue {
	i.hint = hint
	return i
}

// WithCause wraps an underlying error, reachable via Unwrap.
func (i Issue) WithCause(cause error) Issue {
	i.cause = cause
	return i
}

// Kind returns the stable taxonomy kind.
func (i Issue) Kind() Kind { return i.kind }

// Severity returns the severity level.
func (i Issue) Severity() Severity { return i.severity }

// Target returns whether the message is Debug- or Release-safe.
func (i Issue) Target() Target { return i.target }

// Path returns the canonical path context, or "" if none was attached.
func (i Issue) Path() string { return i.path }

// Hint returns the resolution suggestion, or "" if none was attached.
func (i Issue) Hint() string { return i.hint }

// Message returns the full human-readable message, which may embed user data
// when Target() == Debug.
func (i Issue) Message() string { return i.message }

// SafeMessage returns Message() when Target() == Release, and a generic,
// data-free placeholder otherwise. Use this when logging or emitting
// telemetry for an untrusted audience.
func (i Issue) SafeMessage() string {
	if i.target == Release {
		return i.message
	}
	return fmt.Sprintf("%s: detail withheld (debug-only)", i.kind)
}

// Error implements the error interface using the full message, with path
// and hint appended when present.
func (i Issue) Error() string {
	msg := i.message
	if i.path != "" {
		msg = fmt.Sprintf("%s: %s", i.path, msg)
	}
	if i.hint != "" {
		msg = fmt.Sprintf("%s (%s)", msg, i.hint)
	}
	return msg
}

// Unwrap returns the wrapped cause, or nil.
func (i Issue) Unwrap() error { return i.cause }
