package spec

// Flattened document model consumed by the resolver and emitter.

// HTTPMethod is a lowercase HTTP method token.
type HTTPMethod string

const (
	GET     HTTPMethod = "get"
	PUT     HTTPMethod = "put"
	POST    HTTPMethod = "post"
	DELETE  HTTPMethod = "delete"
	OPTIONS HTTPMethod = "options"
	HEAD    HTTPMethod = "head"
	PATCH   HTTPMethod = "patch"
	TRACE   HTTPMethod = "trace"
)

// Methods lists the recognized method tokens in walk order. Tokens outside
// this set are ignored when walking a PathItem.
var Methods = []HTTPMethod{GET, PUT, POST, DELETE, OPTIONS, HEAD, PATCH, TRACE}

// Description is the declarative API description: an ordered mapping from
// path template to PathItem, plus the configured servers.
type Description struct {
	Title   string
	Version string
	Servers []Server
	// Paths maps a path template (e.g. /pets/{id}) to its item. PathOrder
	// fixes iteration order; Paths alone is never ranged over.
	Paths     map[string]*PathItem
	PathOrder []string
	// Components holds the named schemas defined by the document, keyed by
	// component name. Reference schemas point into this map via Ref.
	Components map[string]*Schema
}

// Server carries the base URL of a configured server.
type Server struct {
	URL string
}

// PathItem maps recognized HTTP method tokens to operations.
type PathItem struct {
	Operations map[HTTPMethod]*Operation
}

// Operation is one HTTP verb bound to a path.
type Operation struct {
	// ID is the operationId. Global uniqueness is expected but not
	// guaranteed by the input; conflicts are detected at emission.
	ID         string
	Parameters []Parameter
	// Responses maps a response-code string ("200", "default") to the
	// response. A nil schema on an entry marks a response that is only
	// described by reference.
	Responses map[string]*Response
}

// Parameter describes one operation parameter. Either Type (a bare
// primitive token) or Schema is set; both may be empty for malformed input.
type Parameter struct {
	Name     string
	In       string
	Required bool
	Type     string
	Schema   *Schema
}

// Response carries the response schema, nil when absent or unresolved.
type Response struct {
	Schema *Schema
	Ref    string
}

// Schema is a structural type description: primitive, object, array, enum,
// or reference.
type Schema struct {
	Type        string
	Format      string
	Ref         string // referenced component name, e.g. "Pet"
	Description string
	Properties  map[string]*Schema
	PropOrder   []string
	Required    []string
	Items       *Schema
	Enum        []any
}

// IsRequired reports whether the named property appears in the schema's
// required list.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
