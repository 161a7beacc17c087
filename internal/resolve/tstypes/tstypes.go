// Package tstypes derives TypeScript type expressions from schema
// fragments. Enumerations discovered during derivation are registered into
// the shared registry as named union types and referenced by name in the
// returned expression; schema references register the referenced component
// so its declaration is emitted alongside the requests.
package tstypes

import (
	"fmt"
	"strings"

	"github.com/swaggertools/swagger2requests/internal/resolve"
	"github.com/swaggertools/swagger2requests/internal/spec"
)

// Typer implements resolve.SchemaTyper for TypeScript output.
type Typer struct {
	components map[string]*spec.Schema
}

func New() *Typer { return &Typer{} }

// NewWithComponents returns a Typer that can register the bodies of named
// component schemas when a reference to them is resolved. References to
// names absent from components still resolve to the bare name.
func NewWithComponents(components map[string]*spec.Schema) *Typer {
	return &Typer{components: components}
}

// Resolve returns the TypeScript type expression for s. The registry is the
// only state touched; the same arguments always produce the same expression.
func (t *Typer) Resolve(reg *resolve.Registry, s *spec.Schema, key, parentKey string) string {
	if s == nil {
		return ""
	}
	switch {
	case s.Ref != "":
		t.registerComponent(reg, s.Ref)
		return s.Ref
	case len(s.Enum) > 0:
		name := declName(key, parentKey)
		reg.Add(name, s)
		return name
	case s.Type == "array" || s.Items != nil:
		elem := t.Resolve(reg, s.Items, key, parentKey)
		if elem == "" {
			elem = "any"
		}
		return elem + "[]"
	case s.Type == "object" || len(s.Properties) > 0:
		return t.objectLiteral(reg, s, key)
	default:
		return scalarType(s)
	}
}

// registerComponent records the body of a referenced component schema under
// its component name, then walks the body so nested enums and transitively
// referenced components register too. The Add guard stops the walk on names
// already registered, which also breaks reference cycles.
func (t *Typer) registerComponent(reg *resolve.Registry, name string) {
	comp, ok := t.components[name]
	if !ok {
		return
	}
	if !reg.Add(name, comp) {
		return
	}
	if len(comp.Enum) > 0 {
		return
	}
	t.Resolve(reg, comp, name, name)
}

// objectLiteral renders an inline object type, resolving each property in
// declared order with the property name as the key hint and the enclosing
// key as the parent hint.
func (t *Typer) objectLiteral(reg *resolve.Registry, s *spec.Schema, key string) string {
	if len(s.PropOrder) == 0 {
		return "Record<string, any>"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for i, name := range s.PropOrder {
		if i > 0 {
			b.WriteString("; ")
		}
		prop := s.Properties[name]
		expr := t.Resolve(reg, prop, name, key)
		if expr == "" {
			expr = "any"
		}
		marker := ""
		if !s.IsRequired(name) {
			marker = "?"
		}
		fmt.Fprintf(&b, "%s%s: %s", name, marker, expr)
	}
	b.WriteString(" }")
	return b.String()
}

func scalarType(s *spec.Schema) string {
	switch s.Type {
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "string":
		if s.Format == "binary" {
			return "File"
		}
		return "string"
	case "file":
		return "File"
	default:
		return s.Type
	}
}

// UnionType renders a registered enum schema as a TypeScript union of its
// literal values. Non-string members are rendered with their default
// formatting.
func UnionType(s *spec.Schema) string {
	parts := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		switch val := v.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%q", val))
		default:
			parts = append(parts, fmt.Sprintf("%v", val))
		}
	}
	return strings.Join(parts, " | ")
}
