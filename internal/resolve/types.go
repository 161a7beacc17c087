package resolve

import (
	"fmt"

	"github.com/swaggertools/swagger2requests/internal/spec"
)

// Field is one named entry of a derived request type. Fields are accumulated
// in insertion order as explicit records rather than merged maps so name
// collisions stay deterministic and visible.
type Field struct {
	Name     string
	Optional bool
	Type     string
}

// RequestType carries the derived type entries per parameter group.
type RequestType struct {
	Path  []Field
	Query []Field
	Body  []Field
	Form  []Field
}

// Empty reports whether no entry was derived for any group.
func (rt RequestType) Empty() bool {
	return len(rt.Path) == 0 && len(rt.Query) == 0 && len(rt.Body) == 0 && len(rt.Form) == 0
}

// deriveRequestType turns each parameter group into named type entries.
//
// Path parameters use the primitive mapping (integer becomes number,
// anything else passes through). Query parameters always go through the
// schema typer, even when declared with a bare primitive type, because they
// may carry enum or format metadata the primitive mapping would lose. Body
// parameters go through the typer with the parameter name as both naming
// hints. Form-data parameters go through the typer when they carry a
// schema, otherwise "file" maps to File and the declared type passes
// through.
func deriveRequestType(ctx *Context, op *spec.Operation, g groups) RequestType {
	var rt RequestType
	for _, p := range g.Path {
		rt.Path = append(rt.Path, Field{Name: p.Name, Optional: !p.Required, Type: primitiveType(p.Type)})
	}
	for _, p := range g.Query {
		s := p.Schema
		if s == nil {
			s = &spec.Schema{Type: p.Type}
		}
		rt.Query = append(rt.Query, Field{Name: p.Name, Optional: !p.Required, Type: ctx.typeOf(s, p.Name, op.ID)})
	}
	for _, p := range g.Body {
		rt.Body = append(rt.Body, Field{Name: p.Name, Optional: !p.Required, Type: ctx.typeOf(p.Schema, p.Name, p.Name)})
	}
	for _, p := range g.Form {
		f := Field{Name: p.Name, Optional: !p.Required}
		switch {
		case p.Schema != nil:
			f.Type = ctx.typeOf(p.Schema, p.Name, p.Name)
		case p.Type == "file":
			f.Type = "File"
		default:
			f.Type = p.Type
		}
		rt.Form = append(rt.Form, f)
	}
	return rt
}

// deriveResponseType derives the response type expression from the first
// successful response: "200", falling back to "201". No other code is ever
// consulted; when neither is present the response type is empty.
func deriveResponseType(ctx *Context, path string, method spec.HTTPMethod, op *spec.Operation) string {
	for _, code := range []string{"200", "201"} {
		resp, ok := op.Responses[code]
		if !ok || resp == nil {
			continue
		}
		if resp.Schema == nil {
			if resp.Ref != "" {
				ctx.report(Issue{
					Code:        UnresolvedReference,
					Severity:    SeverityError,
					Path:        path,
					Method:      method,
					OperationID: op.ID,
					Message:     fmt.Sprintf("response %s is a reference (%s) that was not dereferenced", code, resp.Ref),
				})
			}
			return ""
		}
		return ctx.typeOf(resp.Schema, "response", op.ID)
	}
	return ""
}

// primitiveType maps a declared parameter type token to its emitted type
// name: integer becomes number, everything else passes through unchanged.
func primitiveType(t string) string {
	if t == "integer" {
		return "number"
	}
	return t
}
