package resolve

import "github.com/swaggertools/swagger2requests/internal/spec"

// Transmission location tokens. The form-encoded group keeps the Swagger 2.0
// "formData" token; see classify.
const (
	inPath     = "path"
	inQuery    = "query"
	inBody     = "body"
	inFormData = "formData"
)

// groups is the partition of an operation's parameters by transmission
// location. The four slices are disjoint; no parameter lands in two.
type groups struct {
	Path  []spec.Parameter
	Query []spec.Parameter
	Body  []spec.Parameter
	Form  []spec.Parameter
	// Dropped holds parameters whose location matched no group, for the
	// caller to surface as warnings.
	Dropped []spec.Parameter
}

// classify partitions parameters by their `in` location: path, query, body,
// and formData. Any other token (header, cookie, unknown) is dropped from
// generation and recorded in Dropped. Relative order inside each group
// follows the input order.
func classify(params []spec.Parameter) groups {
	var g groups
	for _, p := range params {
		switch p.In {
		case inPath:
			g.Path = append(g.Path, p)
		case inQuery:
			g.Query = append(g.Query, p)
		case inBody:
			g.Body = append(g.Body, p)
		case inFormData:
			g.Form = append(g.Form, p)
		default:
			g.Dropped = append(g.Dropped, p)
		}
	}
	return g
}

// names returns the combined parameter-name list in the fixed order path,
// query, body, formData.
func (g groups) names() []string {
	out := make([]string, 0, len(g.Path)+len(g.Query)+len(g.Body)+len(g.Form))
	for _, set := range [][]spec.Parameter{g.Path, g.Query, g.Body, g.Form} {
		for _, p := range set {
			out = append(out, p.Name)
		}
	}
	return out
}
