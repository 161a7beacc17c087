package resolve

import (
	"fmt"
	"strings"

	"github.com/swaggertools/swagger2requests/internal/spec"
)

// Operation is one resolved (path, method) pair: everything the emitter
// needs to render a request declaration.
type Operation struct {
	// URL is the absolute request URL template. Path placeholders are
	// rewritten to $name interpolation markers ("/v1/pets/$id").
	URL    string
	Method spec.HTTPMethod
	ID     string

	PathParams  []spec.Parameter
	QueryParams []spec.Parameter
	BodyParams  []spec.Parameter
	FormParams  []spec.Parameter

	Request  RequestType
	Response string
}

// ParamNames returns the combined parameter-name list in the fixed order
// path, query, body, formData.
func (o Operation) ParamNames() []string {
	return groups{Path: o.PathParams, Query: o.QueryParams, Body: o.BodyParams, Form: o.FormParams}.names()
}

// Result is the outcome of one resolution pass: the resolved operations in
// walk order, the shared registry of discovered declarations, and every
// issue collected along the way.
type Result struct {
	Operations []Operation
	Registry   *Registry
	Issues     []Issue
}

// Resolve walks every path template and every recognized HTTP operation on
// it, producing one resolved record per (path, method) pair. The registry
// is shared across the whole walk and must not be read until Resolve
// returns: a later operation may register a declaration that an earlier
// operation's type expression references.
func Resolve(desc *spec.Description, typer SchemaTyper) (*Result, error) {
	if desc == nil {
		return nil, fmt.Errorf("nil description")
	}

	ctx := NewContext(typer)

	basePath, issue := deriveBasePathFromServer(desc.Servers)
	if issue != nil {
		ctx.report(*issue)
	}

	var ops []Operation
	for _, path := range desc.PathOrder {
		item := desc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range spec.Methods {
			op, ok := item.Operations[method]
			if !ok || op == nil {
				continue
			}
			ops = append(ops, resolveOperation(ctx, basePath, path, method, op))
		}
	}

	return &Result{Operations: ops, Registry: ctx.Registry, Issues: ctx.Issues()}, nil
}

func resolveOperation(ctx *Context, basePath, path string, method spec.HTTPMethod, op *spec.Operation) Operation {
	g := classify(op.Parameters)
	for _, p := range g.Dropped {
		ctx.report(Issue{
			Code:        UnknownParameterLocation,
			Severity:    SeverityWarning,
			Path:        path,
			Method:      method,
			OperationID: op.ID,
			Message:     fmt.Sprintf("parameter %q has location %q and was dropped from generation", p.Name, p.In),
		})
	}

	return Operation{
		URL:         joinURL(basePath, rewriteTemplate(path)),
		Method:      method,
		ID:          op.ID,
		PathParams:  g.Path,
		QueryParams: g.Query,
		BodyParams:  g.Body,
		FormParams:  g.Form,
		Request:     deriveRequestType(ctx, op, g),
		Response:    deriveResponseType(ctx, path, method, op),
	}
}

// rewriteTemplate rewrites each brace-delimited path segment into an
// interpolation marker for the same name: /pets/{id} -> /pets/$id. Segments
// that are plain text pass through unchanged, so rewriting is idempotent.
func rewriteTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			segments[i] = "$" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}

// joinURL concatenates the base path and the rewritten template. When the
// template is exactly "/" and a base path exists, the trailing slash is
// dropped to avoid a doubled separator.
func joinURL(basePath, template string) string {
	if template == "/" && basePath != "" {
		return basePath
	}
	return basePath + template
}
