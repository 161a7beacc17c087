package spec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Describe flattens a validated OpenAPI v3 document into the Description
// consumed by the resolver. Path templates are walked in sorted order so the
// result is identical regardless of map iteration order; path-level
// parameters are merged into every operation with operation-level entries
// taking precedence.
func Describe(doc *openapi3.T) (*Description, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}

	desc := &Description{
		Paths: make(map[string]*PathItem),
	}
	if doc.Info != nil {
		desc.Title = safeStr(doc.Info.Title)
		desc.Version = safeStr(doc.Info.Version)
	}

	for _, s := range doc.Servers {
		if s == nil {
			continue
		}
		desc.Servers = append(desc.Servers, Server{URL: safeStr(s.URL)})
	}

	if doc.Components != nil && len(doc.Components.Schemas) > 0 {
		desc.Components = make(map[string]*Schema, len(doc.Components.Schemas))
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if s := toSchema(doc.Components.Schemas[name]); s != nil {
				// Component bodies are stored by name; a self reference
				// would otherwise shadow the definition.
				s.Ref = ""
				desc.Components[name] = s
			}
		}
	}

	if doc.Paths == nil {
		return desc, nil
	}

	pathKeys := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, p := range pathKeys {
		item := doc.Paths[p]
		if item == nil {
			continue
		}

		// Path-level parameters apply to every operation unless shadowed.
		baseParams := make(map[string]Parameter)
		var baseOrder []string
		for _, pref := range item.Parameters {
			pm, ok := toParameter(pref)
			if !ok {
				continue
			}
			k := paramKey(pm.In, pm.Name)
			if _, seen := baseParams[k]; !seen {
				baseOrder = append(baseOrder, k)
			}
			baseParams[k] = pm
		}

		ops := []struct {
			m HTTPMethod
			o *openapi3.Operation
		}{
			{GET, item.Get},
			{PUT, item.Put},
			{POST, item.Post},
			{DELETE, item.Delete},
			{OPTIONS, item.Options},
			{HEAD, item.Head},
			{PATCH, item.Patch},
			{TRACE, item.Trace},
		}

		pi := &PathItem{Operations: make(map[HTTPMethod]*Operation)}
		for _, pair := range ops {
			if pair.o == nil {
				continue
			}
			pi.Operations[pair.m] = toOperation(pair.o, baseParams, baseOrder)
		}
		if len(pi.Operations) == 0 {
			continue
		}
		desc.Paths[p] = pi
		desc.PathOrder = append(desc.PathOrder, p)
	}

	return desc, nil
}

func toOperation(op *openapi3.Operation, baseParams map[string]Parameter, baseOrder []string) *Operation {
	out := &Operation{ID: safeStr(op.OperationID)}

	merged := make(map[string]Parameter, len(baseParams))
	order := append([]string(nil), baseOrder...)
	for k, v := range baseParams {
		merged[k] = v
	}
	for _, pref := range op.Parameters {
		pm, ok := toParameter(pref)
		if !ok {
			continue
		}
		k := paramKey(pm.In, pm.Name)
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = pm
	}
	for _, k := range order {
		out.Parameters = append(out.Parameters, merged[k])
	}

	// Swagger 2.0 body parameters survive conversion as a request body;
	// fold it back into the parameter list so classification sees one shape.
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if body := bodyParameter(op.RequestBody.Value); body != nil {
			out.Parameters = append(out.Parameters, *body)
		}
	}

	if op.Responses != nil {
		out.Responses = make(map[string]*Response, len(op.Responses))
		for code, rref := range op.Responses {
			if rref == nil {
				continue
			}
			resp := &Response{Ref: refName(rref.Ref)}
			if rref.Value != nil {
				resp.Schema = responseSchema(rref.Value)
			}
			out.Responses[code] = resp
		}
	}

	return out
}

// bodyParameter reduces an OpenAPI request body to a single body parameter,
// preferring JSON content and falling back to formData for form encodings.
func bodyParameter(rb *openapi3.RequestBody) *Parameter {
	if len(rb.Content) == 0 {
		return nil
	}
	mimes := make([]string, 0, len(rb.Content))
	for m := range rb.Content {
		mimes = append(mimes, m)
	}
	sort.Strings(mimes)

	for _, mime := range mimes {
		mt := rb.Content[mime]
		if mt == nil || mt.Schema == nil {
			continue
		}
		in := "body"
		if strings.HasPrefix(mime, "multipart/") || mime == "application/x-www-form-urlencoded" {
			in = "formData"
		}
		return &Parameter{
			Name:     "body",
			In:       in,
			Required: rb.Required,
			Schema:   toSchema(mt.Schema),
		}
	}
	return nil
}

func responseSchema(resp *openapi3.Response) *Schema {
	if len(resp.Content) == 0 {
		return nil
	}
	mimes := make([]string, 0, len(resp.Content))
	for m := range resp.Content {
		mimes = append(mimes, m)
	}
	sort.Strings(mimes)
	for _, mime := range mimes {
		mt := resp.Content[mime]
		if mt == nil || mt.Schema == nil {
			continue
		}
		return toSchema(mt.Schema)
	}
	return nil
}

func toParameter(pref *openapi3.ParameterRef) (Parameter, bool) {
	if pref == nil || pref.Value == nil {
		return Parameter{}, false
	}
	p := pref.Value
	pm := Parameter{
		Name:     safeStr(p.Name),
		In:       safeStr(p.In),
		Required: p.Required,
	}
	if p.Schema != nil {
		s := toSchema(p.Schema)
		// A bare primitive schema on a parameter is carried as the declared
		// type token; anything structured stays a schema.
		if s != nil && s.Ref == "" && len(s.Enum) == 0 && s.Items == nil && len(s.Properties) == 0 && s.Format == "" {
			pm.Type = s.Type
		} else {
			pm.Schema = s
		}
	}
	return pm, true
}

func toSchema(ref *openapi3.SchemaRef) *Schema {
	if ref == nil {
		return nil
	}
	if ref.Ref != "" {
		return &Schema{Ref: refName(ref.Ref)}
	}
	if ref.Value == nil {
		return nil
	}
	v := ref.Value
	s := &Schema{
		Type:        safeStr(v.Type),
		Format:      safeStr(v.Format),
		Description: safeStr(v.Description),
		Required:    append([]string(nil), v.Required...),
	}
	if len(v.Enum) > 0 {
		s.Enum = append([]any(nil), v.Enum...)
	}
	if v.Items != nil {
		s.Items = toSchema(v.Items)
	}
	if len(v.Properties) > 0 {
		s.Properties = make(map[string]*Schema, len(v.Properties))
		names := make([]string, 0, len(v.Properties))
		for name := range v.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if ps := toSchema(v.Properties[name]); ps != nil {
				s.Properties[name] = ps
				s.PropOrder = append(s.PropOrder, name)
			}
		}
	}
	return s
}

// refName extracts the component name from a JSON reference, e.g.
// "#/components/schemas/Pet" -> "Pet".
func refName(ref string) string {
	if ref == "" {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

func paramKey(in, name string) string { return in + ":" + name }

func safeStr(s string) string { return strings.TrimSpace(s) }
