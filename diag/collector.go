package diag

// Collector accumulates Issues up to an optional limit, then reports a
// [Result]. A zero limit means unlimited.
//
// Callers Collect throughout a traversal and read the Result once at the
// end, rather than returning on the first Issue.
type Collector struct {
	limit  int
	issues []Issue
}

// NewCollector creates a Collector that stops accepting Issues after limit
// are collected. Pass 0 for unlimited.
func NewCollector(limit int) *Collector {
	return &Collector{limit: limit}
}

// NewCollectorUnlimited creates a Collector with no limit.
func NewCollectorUnlimited() *Collector {
	return NewCollector(0)
}

// Collect records an Issue. Once the limit is reached, further Issues are
// dropped (check [Collector.LimitReached]).
func (c *Collector) Collect(issue Issue) {
	if c.limit > 0 && len(c.issues) >= c.limit {
		return
	}
	c.issues = append(c.issues, issue)
}

// LimitReached reports whether the collector stopped accepting Issues.
func (c *Collector) LimitReached() bool {
	return c.limit > 0 && len(c.issues) >= c.limit
}

// Result returns the accumulated Issues as an immutable Result.
func (c *Collector) Result() Result {
	issues := make([]Issue, len(c.issues))
	copy(issues, c.issues)
	return Result{issues: issues}
}

// Result is an immutable snapshot of diagnostics produced by one operation.
type Result struct {
	issues []Issue
}

// Issues returns all collected Issues in collection order.
func (r Result) Issues() []Issue {
	out := make([]Issue, len(r.issues))
	copy(out, r.issues)
	return out
}

// OK reports whether no Issue in the result IsFailure.
func (r Result) OK() bool {
	return !r.HasErrors()
}

// HasErrors reports whether any collected Issue is Fatal or Error severity.
func (r Result) HasErrors() bool {
	for _, i := range r.issues {
		if i.Severity().IsFailure() {
			return true
		}
	}
	return false
}
