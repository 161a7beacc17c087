package resolve

import "github.com/swaggertools/swagger2requests/internal/spec"

// SchemaTyper derives a type expression for a schema fragment. Implementations
// may register named declarations (enums, nested objects) into the registry
// as a side effect, keyed by a name derived from the (key, parentKey) hints.
// The return value must depend only on the arguments; the registry is the
// only mutable state.
type SchemaTyper interface {
	Resolve(reg *Registry, s *spec.Schema, key, parentKey string) string
}

// Registry accumulates named declarations discovered during one resolution
// pass. Insertion order is preserved; that order is the emission order.
// It is written during the walk and read only after the walk completes.
type Registry struct {
	entries map[string]*spec.Schema
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*spec.Schema)}
}

// Add registers a declaration under name. The first registration wins;
// re-registering an existing name is a no-op so a schema referenced by many
// operations yields exactly one declaration.
func (r *Registry) Add(name string, s *spec.Schema) bool {
	if _, ok := r.entries[name]; ok {
		return false
	}
	r.entries[name] = s
	r.order = append(r.order, name)
	return true
}

func (r *Registry) Get(name string) (*spec.Schema, bool) {
	s, ok := r.entries[name]
	return s, ok
}

// Names returns registered names in insertion order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Context threads the shared registry, the schema typer, and the issue
// accumulator through one resolution pass. It is passed explicitly rather
// than held in package state so collaborators stay testable in isolation.
type Context struct {
	Registry *Registry
	Typer    SchemaTyper
	issues   []Issue
}

func NewContext(typer SchemaTyper) *Context {
	return &Context{Registry: NewRegistry(), Typer: typer}
}

func (c *Context) report(i Issue) {
	c.issues = append(c.issues, i)
}

// Issues returns everything reported so far, in report order.
func (c *Context) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

// typeOf runs the schema typer, tolerating a nil typer (derives nothing).
func (c *Context) typeOf(s *spec.Schema, key, parentKey string) string {
	if c.Typer == nil || s == nil {
		return ""
	}
	return c.Typer.Resolve(c.Registry, s, key, parentKey)
}
