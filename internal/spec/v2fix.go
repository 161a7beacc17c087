package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// fixV2ForConversion rewrites non-compliant Swagger v2 operations so
// kin-openapi can convert them to v3. An operation with multiple body
// parameters is rewritten to carry a single body parameter whose schema is
// an object with one property per original parameter. On parse failure the
// original bytes are returned unchanged.
func fixV2ForConversion(data []byte) ([]byte, bool) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return data, false
	}
	paths, ok := doc["paths"].(map[string]any)
	if !ok || len(paths) == 0 {
		return data, false
	}

	changed := false
	for _, pv := range paths {
		pathItem, ok := pv.(map[string]any)
		if !ok {
			continue
		}
		for method, ov := range pathItem {
			switch strings.ToLower(method) {
			case "get", "put", "post", "delete", "options", "head", "patch", "trace":
			default:
				continue
			}
			op, ok := ov.(map[string]any)
			if !ok {
				continue
			}
			params, ok := op["parameters"].([]any)
			if !ok || len(params) == 0 {
				continue
			}
			if countBodyParams(params) < 2 {
				continue
			}
			op["parameters"] = mergeBodyParams(params)
			changed = true
		}
	}

	if !changed {
		return data, false
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return data, false
	}
	return out, true
}

func countBodyParams(params []any) int {
	n := 0
	for _, p := range params {
		if pm, ok := p.(map[string]any); ok && paramIn(pm) == "body" {
			n++
		}
	}
	return n
}

// mergeBodyParams folds every body parameter into one object-typed body
// parameter named "body"; non-body parameters are kept as-is.
func mergeBodyParams(params []any) []any {
	props := map[string]any{}
	var required []any
	kept := make([]any, 0, len(params))
	for _, p := range params {
		pm, ok := p.(map[string]any)
		if !ok || paramIn(pm) != "body" {
			kept = append(kept, p)
			continue
		}
		name, _ := pm["name"].(string)
		if name == "" {
			name = "field"
		}
		schema, ok := pm["schema"].(map[string]any)
		if !ok {
			schema = map[string]any{"type": "string"}
			if t, ok := pm["type"].(string); ok && t != "" {
				schema["type"] = t
			}
		}
		props[name] = schema
		if req, _ := pm["required"].(bool); req {
			required = append(required, name)
		}
	}
	body := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		body["required"] = required
	}
	merged := map[string]any{"in": "body", "name": "body", "schema": body}
	return append([]any{merged}, kept...)
}

func paramIn(pm map[string]any) string {
	in, _ := pm["in"].(string)
	return strings.ToLower(strings.TrimSpace(in))
}
