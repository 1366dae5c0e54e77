package namespace

import (
	"strconv"

	"github.com/halvard-io/synthgen/address"
	"github.com/halvard-io/synthgen/content"
	"github.com/halvard-io/synthgen/diag"
	"github.com/halvard-io/synthgen/internal/ident"
	"github.com/halvard-io/synthgen/value"
)

// Namespace is an ordered mapping from collection name to a root content
// tree. Collection names must satisfy ident.ValidName; Put rejects
// duplicates, so overwriting goes through Delete + Put or TryMerge.
//
// Namespace is a mutable builder owned by a single caller; it is not safe
// for concurrent use and is never shared between sampling runs (the
// compiler reads it, the resulting graph owns no reference back).
type Namespace struct {
	names       []string
	collections map[string]content.Content
}

// New returns an empty Namespace.
func New() *Namespace {
	return &Namespace{collections: make(map[string]content.Content)}
}

// Names returns collection names in insertion order. The returned slice is
// a defensive copy.
func (n *Namespace) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// Len returns the number of collections.
func (n *Namespace) Len() int { return len(n.names) }

// Get returns the collection named name, or a NotFound diag.Issue carrying
// the closest existing name as a hint.
func (n *Namespace) Get(name string) (content.Content, error) {
	c, ok := n.collections[name]
	if !ok {
		return nil, n.notFound(name)
	}
	return c, nil
}

// Put adds a new collection. It rejects invalid names with BadRequest and
// existing names with Override; replacing an existing collection must be
// an explicit Delete + Put.
func (n *Namespace) Put(name string, c content.Content) error {
	if !ident.ValidName(name) {
		return diag.BadRequestf("collection name %q does not match %s", name, ident.NamePattern)
	}
	if _, exists := n.collections[name]; exists {
		return diag.Overridef("collection %q already exists", name)
	}
	n.names = append(n.names, name)
	n.collections[name] = c
	return nil
}

// Delete removes a collection, or returns NotFound if absent.
func (n *Namespace) Delete(name string) error {
	if _, ok := n.collections[name]; !ok {
		return n.notFound(name)
	}
	delete(n.collections, name)
	for i, existing := range n.names {
		if existing == name {
			n.names = append(n.names[:i], n.names[i+1:]...)
			break
		}
	}
	return nil
}

// TryMerge folds the example value v into the collection named name using
// strategy. A missing collection is created from v alone (so the first
// example bootstraps the schema); a merge failure leaves the namespace
// unchanged.
func (n *Namespace) TryMerge(strategy content.MergeStrategy, name string, v value.Value) error {
	existing, ok := n.collections[name]
	if !ok {
		return n.Put(name, content.FromValue(v))
	}
	merged, err := strategy.Merge(existing, v)
	if err != nil {
		if issue, isIssue := err.(diag.Issue); isIssue {
			path := name
			if p := issue.Path(); p != "" {
				path = name + "." + p
			}
			return issue.WithPath(path)
		}
		return err
	}
	n.collections[name] = merged
	return nil
}

// TryUpdate replaces the content node at ref with the node inferred from
// v, bounded by the given merge depth. It is the mutation surface behind
// a daemon's PATCH-style schema edits.
func (n *Namespace) TryUpdate(strategy content.MergeStrategy, ref address.FieldRef, v value.Value) error {
	collection := ref.Collection()
	root, err := n.Get(collection)
	if err != nil {
		return err
	}
	updated, err := content.Update(root, ref.Descent(), func(c content.Content) (content.Content, error) {
		return strategy.Merge(c, v)
	})
	if err != nil {
		if issue, isIssue := err.(diag.Issue); isIssue && issue.Path() == "" {
			return issue.WithPath(ref.String())
		}
		return err
	}
	n.collections[collection] = updated
	return nil
}

// Optionalise toggles the optional flag of the object field ref names.
// Toggling to the current state is a no-op, so applying the same toggle
// twice equals applying it once, and a true/false round trip restores the
// prior namespace.
func (n *Namespace) Optionalise(ref address.FieldRef, optional bool) error {
	collection := ref.Collection()
	root, err := n.Get(collection)
	if err != nil {
		return err
	}
	descent := ref.Descent()
	if len(descent) == 0 {
		return diag.Optionalisef("%q names a collection, not a field of an object", ref)
	}
	updated, err := content.UpdateField(root, descent, func(f content.FieldContent) (content.FieldContent, error) {
		f.Optional = optional
		return f, nil
	})
	if err != nil {
		if issue, isIssue := err.(diag.Issue); isIssue && issue.Path() == "" {
			return issue.WithPath(ref.String())
		}
		return err
	}
	n.collections[collection] = updated
	return nil
}

// Find resolves ref to the content node it names.
func (n *Namespace) Find(ref address.FieldRef) (content.Content, error) {
	root, err := n.Get(ref.Collection())
	if err != nil {
		return nil, err
	}
	c, err := content.Find(root, ref.Descent())
	if err != nil {
		if issue, isIssue := err.(diag.Issue); isIssue && issue.Path() == "" {
			return nil, issue.WithPath(ref.String())
		}
		return nil, err
	}
	return c, nil
}

// Validate walks every collection and collects structural issues the
// constructors cannot catch on their own — OneOf weight totals and SameAs
// targets that do not resolve — into collector. It reports only; nothing
// is repaired.
func (n *Namespace) Validate(collector *diag.Collector) {
	for _, name := range n.names {
		n.validateNode(collector, address.New(name), n.collections[name])
	}
}

func (n *Namespace) validateNode(collector *diag.Collector, at address.Address, c content.Content) {
	switch node := c.(type) {
	case content.Object:
		for _, field := range node.Names() {
			f, _ := node.Field(field)
			n.validateNode(collector, at.At(field), f.Content)
		}
	case content.Array:
		n.validateNode(collector, at.At(address.ArrayLength), node.Length)
		n.validateNode(collector, at.At(address.ArrayContent), node.Elem)
	case content.OneOf:
		if err := node.Validate(); err != nil {
			if issue, ok := err.(diag.Issue); ok {
				collector.Collect(issue.WithPath(at.String()))
			}
		}
		for i, variant := range node.Variants {
			n.validateNode(collector, at.At(strconv.Itoa(i)), variant.Content)
		}
	case content.Unique:
		n.validateNode(collector, at, node.Inner)
	case content.Hidden:
		n.validateNode(collector, at, node.Inner)
	case content.SameAs:
		if _, err := n.Find(node.Ref); err != nil {
			if issue, ok := err.(diag.Issue); ok {
				collector.Collect(issue.WithPath(at.String()))
			}
		}
	}
}

func (n *Namespace) notFound(name string) diag.Issue {
	issue := diag.NotFoundf("no collection named %q", name)
	if hint := ident.Closest(name, n.names); hint != "" {
		issue = issue.WithHint(hint)
	}
	return issue
}
