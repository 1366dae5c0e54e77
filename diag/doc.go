// Package diag provides the engine's diagnostic taxonomy.
//
// An Issue is a single immutable diagnostic: a stable [Kind] drawn from the
// taxonomy of the engine's error-handling design, a [Severity], a
// [Target] marking whether the message is safe to surface to untrusted
// consumers, and a human-readable message. Issues double as Go errors (via
// Error/Unwrap) for hard failures and as collected entries (via [Collector])
// for soft warnings such as the sampler's livelock notice.
package diag
