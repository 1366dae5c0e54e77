// Package trace provides optional operation-boundary logging shared across
// the compiler and sampling driver.
//
// It is distinct from [diag.Result] (soft, user-facing content diagnostics)
// and plain error returns (hard failures): trace is developer observability
// only — when a compile or sampling round started, how long it took, and
// whether it failed.
//
// # Design principles
//
//   - Near-zero cost when disabled: a nil logger or a disabled level costs a
//     single check (a few ns). The Lazy variants guarantee no allocation
//     from attribute construction when disabled.
//   - Stdlib only: [log/slog], preserving dependency hygiene for a package
//     every core tier package can import.
//   - Logger injection: loggers arrive via functional options at API
//     boundaries, never via globals or the environment.
//   - Foundation tier exclusion: this package may be imported by core
//     packages (content, namespace, gen, compile, sample) but not by
//     foundation packages (diag, location, value).
//
// # Usage patterns
//
//   - [Begin]/[Op.End]: operation boundaries, with automatic duration
//     measurement.
//   - [Debug], [Info], [Warn], [Error]: simple, pre-computed attributes.
//   - [DebugLazy], [InfoLazy], [WarnLazy], [ErrorLazy]: computed attributes,
//     whose builder function is skipped entirely when disabled.
//   - [Enabled]: for multi-level control flow.
//
// [Begin] returns nil when logging is disabled, and every [Op] method is
// safe to call on a nil receiver, so callers can unconditionally write:
//
//	op := trace.Begin(ctx, logger, "synthgen.compile.build", slog.String("namespace", name))
//	defer func() { op.End(err) }()
//
// Operation names follow synthgen.<package>.<operation>, e.g.
// "synthgen.compile.build", "synthgen.sample.run". Names are an
// implementation detail and may change without notice.
package trace
