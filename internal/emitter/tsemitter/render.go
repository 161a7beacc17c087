package tsemitter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/swaggertools/swagger2requests/internal/resolve"
	"github.com/swaggertools/swagger2requests/internal/resolve/tstypes"
	"github.com/swaggertools/swagger2requests/internal/spec"
)

// Fragments renders the ordered list of source-text fragments: one request
// declaration per operation sorted by operationId, followed by one
// declaration per registry entry in registry insertion order.
//
// Operations without an operationId are skipped with a warning. A duplicate
// operationId would collide in the emitted module, so the first occurrence
// wins and later ones are skipped with an error issue.
func Fragments(ops []resolve.Operation, reg *resolve.Registry) ([]string, []resolve.Issue) {
	sorted := append([]resolve.Operation(nil), ops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var issues []resolve.Issue
	seen := make(map[string]bool, len(sorted))
	fragments := make([]string, 0, len(sorted)+reg.Len())
	for _, op := range sorted {
		if op.ID == "" {
			issues = append(issues, resolve.Issue{
				Code:     resolve.MissingOperationID,
				Severity: resolve.SeverityWarning,
				Method:   op.Method,
				Message:  fmt.Sprintf("operation %s %s has no operationId and was not emitted", op.Method, op.URL),
			})
			continue
		}
		if seen[op.ID] {
			issues = append(issues, resolve.Issue{
				Code:        resolve.DuplicateOperationID,
				Severity:    resolve.SeverityError,
				Method:      op.Method,
				OperationID: op.ID,
				Message:     fmt.Sprintf("duplicate operationId %q; only the first occurrence was emitted", op.ID),
			})
			continue
		}
		seen[op.ID] = true
		fragments = append(fragments, renderRequestDecl(op))
	}

	for _, name := range reg.Names() {
		s, _ := reg.Get(name)
		fragments = append(fragments, renderRegistryDecl(name, s))
	}

	return fragments, issues
}

// renderRequestDecl renders one exported request declaration bound to the
// operationId. The function parameters are the combined parameter names in
// the fixed order path, query, body, formData. The data field binds the
// first body parameter, falling back to the first form-data parameter; the
// params field is present only when query parameters exist; the
// Content-Type header is present only when a body payload exists.
func renderRequestDecl(op resolve.Operation) string {
	args := renderArgs(op.Request)

	payload, fromForm := bodyPayload(op)

	respType := op.Response
	if respType == "" {
		respType = "void"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "export const %s = (%s): Promise<%s> =>\n", op.ID, args, respType)
	b.WriteString("  request({\n")
	fmt.Fprintf(&b, "    url: `%s`,\n", interpolate(op.URL))
	fmt.Fprintf(&b, "    method: '%s',\n", op.Method)
	if payload != "" {
		fmt.Fprintf(&b, "    data: %s,\n", payload)
	}
	if len(op.QueryParams) > 0 {
		names := make([]string, 0, len(op.QueryParams))
		for _, p := range op.QueryParams {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "    params: { %s },\n", strings.Join(names, ", "))
	}
	if payload != "" {
		contentType := "application/json"
		if fromForm {
			contentType = "multipart/form-data"
		}
		fmt.Fprintf(&b, "    headers: { 'Content-Type': '%s' },\n", contentType)
	}
	b.WriteString("  });")
	return b.String()
}

// bodyPayload selects the request payload name: the first body parameter if
// present, else the first form-data parameter. The second return reports
// whether the payload came from the form-data group.
func bodyPayload(op resolve.Operation) (string, bool) {
	if len(op.BodyParams) > 0 {
		return op.BodyParams[0].Name, false
	}
	if len(op.FormParams) > 0 {
		return op.FormParams[0].Name, true
	}
	return "", false
}

func renderArgs(rt resolve.RequestType) string {
	var parts []string
	for _, set := range [][]resolve.Field{rt.Path, rt.Query, rt.Body, rt.Form} {
		for _, f := range set {
			marker := ""
			if f.Optional {
				marker = "?"
			}
			typ := f.Type
			if typ == "" {
				typ = "any"
			}
			parts = append(parts, fmt.Sprintf("%s%s: %s", f.Name, marker, typ))
		}
	}
	return strings.Join(parts, ", ")
}

var markerRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

// interpolate turns $name markers into template-literal interpolations.
// The replacement template escapes the literal dollar-brace so the marker
// name is substituted inside it.
func interpolate(url string) string {
	return markerRe.ReplaceAllString(url, "$${${1}}")
}

// renderRegistryDecl renders a standalone declaration for a registry entry:
// enum schemas become union type aliases, object schemas become interfaces.
func renderRegistryDecl(name string, s *spec.Schema) string {
	if s == nil {
		return fmt.Sprintf("export type %s = unknown;", name)
	}
	if len(s.Enum) > 0 {
		return fmt.Sprintf("export type %s = %s;", name, tstypes.UnionType(s))
	}
	if len(s.PropOrder) > 0 {
		// A scratch registry keeps rendering from mutating the shared one
		// after the resolution pass has completed.
		typer := tstypes.New()
		scratch := resolve.NewRegistry()
		var b strings.Builder
		fmt.Fprintf(&b, "export interface %s {\n", name)
		for _, prop := range s.PropOrder {
			expr := typer.Resolve(scratch, s.Properties[prop], prop, name)
			if expr == "" {
				expr = "any"
			}
			marker := ""
			if !s.IsRequired(prop) {
				marker = "?"
			}
			fmt.Fprintf(&b, "  %s%s: %s;\n", prop, marker, expr)
		}
		b.WriteString("}")
		return b.String()
	}
	// Array and scalar aliases render as the expression they resolve to.
	expr := tstypes.New().Resolve(resolve.NewRegistry(), s, name, name)
	if expr == "" {
		expr = "Record<string, any>"
	}
	return fmt.Sprintf("export type %s = %s;", name, expr)
}

// renderRequestsFile assembles the generated module from the fragments.
func renderRequestsFile(title, version string, fragments []string) string {
	var b strings.Builder
	b.WriteString("// Generated request declarations")
	if title != "" {
		fmt.Fprintf(&b, " for %s", title)
		if version != "" {
			fmt.Fprintf(&b, " %s", version)
		}
	}
	b.WriteString(".\n// Do not edit by hand.\n\n")
	b.WriteString("import { request } from './client';\n\n")
	b.WriteString(strings.Join(fragments, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

func renderClientFile() string {
	return `// Minimal request runtime used by the generated declarations.

export interface RequestConfig {
  url: string;
  method: string;
  data?: unknown;
  params?: Record<string, unknown>;
  headers?: Record<string, string>;
}

export async function request<T>(config: RequestConfig): Promise<T> {
  const url = new URL(config.url, globalThis.location?.origin ?? 'http://localhost');
  for (const [key, value] of Object.entries(config.params ?? {})) {
    if (value !== undefined) {
      url.searchParams.set(key, String(value));
    }
  }
  const isForm = config.headers?.['Content-Type'] === 'multipart/form-data';
  const body =
    config.data === undefined
      ? undefined
      : isForm
        ? toFormData(config.data)
        : JSON.stringify(config.data);
  // The browser sets the multipart boundary itself.
  const headers = isForm ? undefined : config.headers;
  const res = await fetch(url.toString(), { method: config.method.toUpperCase(), headers, body });
  if (!res.ok) {
    throw new Error('request failed: ' + res.status + ' ' + res.statusText);
  }
  const text = await res.text();
  return (text ? JSON.parse(text) : undefined) as T;
}

function toFormData(data: unknown): FormData {
  if (data instanceof FormData) {
    return data;
  }
  const form = new FormData();
  for (const [key, value] of Object.entries(data as Record<string, unknown>)) {
    form.set(key, value instanceof Blob ? value : String(value));
  }
  return form;
}
`
}
