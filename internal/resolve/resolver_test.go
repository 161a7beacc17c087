package resolve

import (
	"fmt"
	"testing"

	"github.com/swaggertools/swagger2requests/internal/spec"
)

// stubTyper is a minimal SchemaTyper: primitives map to their TS names,
// refs return their name, enums register under the derived hint name.
type stubTyper struct{}

func (stubTyper) Resolve(reg *Registry, s *spec.Schema, key, parentKey string) string {
	if s == nil {
		return ""
	}
	if s.Ref != "" {
		return s.Ref
	}
	if len(s.Enum) > 0 {
		name := key + "Enum"
		reg.Add(name, s)
		return name
	}
	switch s.Type {
	case "integer", "number":
		return "number"
	case "":
		return ""
	default:
		return s.Type
	}
}

func singlePathDesc(path string, method spec.HTTPMethod, op *spec.Operation, servers ...spec.Server) *spec.Description {
	return &spec.Description{
		Servers:   servers,
		Paths:     map[string]*spec.PathItem{path: {Operations: map[spec.HTTPMethod]*spec.Operation{method: op}}},
		PathOrder: []string{path},
	}
}

func TestDeriveBasePath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		url  string
		want string
	}{
		{"https://api.example.com/v1", "/v1"},
		{"https://api.example.com/v1/", "/v1"},
		{"https://api.example.com", ""},
		{"https://api.example.com/", ""},
		{"http://localhost:8080/api/v2", "/api/v2"},
	}
	for _, tc := range cases {
		got, issue := deriveBasePathFromServer([]spec.Server{{URL: tc.url}})
		if issue != nil {
			t.Fatalf("%s: unexpected issue %v", tc.url, issue)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.url, got, tc.want)
		}
	}
}

func TestDeriveBasePath_MissingServer(t *testing.T) {
	t.Parallel()
	got, issue := deriveBasePathFromServer(nil)
	if got != "" {
		t.Fatalf("expected empty base path, got %q", got)
	}
	if issue == nil || issue.Code != MissingServer || issue.Severity != SeverityError {
		t.Fatalf("expected MissingServer error issue, got %+v", issue)
	}
}

func TestDeriveBasePath_MalformedURL(t *testing.T) {
	t.Parallel()
	got, issue := deriveBasePathFromServer([]spec.Server{{URL: "not-a-url"}})
	if got != "" {
		t.Fatalf("expected empty base path, got %q", got)
	}
	if issue == nil || issue.Code != MalformedServerURL {
		t.Fatalf("expected MalformedServerURL issue, got %+v", issue)
	}
}

func TestDeriveBasePath_OnlyFirstServerConsulted(t *testing.T) {
	t.Parallel()
	got, issue := deriveBasePathFromServer([]spec.Server{
		{URL: "https://api.example.com/v1"},
		{URL: "https://api.example.com/v2"},
	})
	if issue != nil || got != "/v1" {
		t.Fatalf("expected /v1 from first server, got %q (%v)", got, issue)
	}
}

func TestRewriteTemplate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"/pets/{id}", "/pets/$id"},
		{"/pets/{id}/toys/{toyId}", "/pets/$id/toys/$toyId"},
		{"/pets", "/pets"},
		{"/", "/"},
		{"/{a}", "/$a"},
	}
	for _, tc := range cases {
		if got := rewriteTemplate(tc.in); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRewriteTemplate_Idempotent(t *testing.T) {
	t.Parallel()
	once := rewriteTemplate("/pets/{id}")
	if twice := rewriteTemplate(once); twice != once {
		t.Fatalf("rewrite not idempotent: %q then %q", once, twice)
	}
}

func TestClassify_Partition(t *testing.T) {
	t.Parallel()
	params := []spec.Parameter{
		{Name: "id", In: "path"},
		{Name: "limit", In: "query"},
		{Name: "pet", In: "body"},
		{Name: "file", In: "formData"},
		{Name: "auth", In: "header"},
	}
	g := classify(params)
	if len(g.Path) != 1 || g.Path[0].Name != "id" {
		t.Fatalf("path group: %+v", g.Path)
	}
	if len(g.Query) != 1 || g.Query[0].Name != "limit" {
		t.Fatalf("query group: %+v", g.Query)
	}
	if len(g.Body) != 1 || g.Body[0].Name != "pet" {
		t.Fatalf("body group: %+v", g.Body)
	}
	if len(g.Form) != 1 || g.Form[0].Name != "file" {
		t.Fatalf("form group: %+v", g.Form)
	}
	if len(g.Dropped) != 1 || g.Dropped[0].Name != "auth" {
		t.Fatalf("dropped group: %+v", g.Dropped)
	}
	// The union of the four groups partitions the recognized parameters.
	total := len(g.Path) + len(g.Query) + len(g.Body) + len(g.Form) + len(g.Dropped)
	if total != len(params) {
		t.Fatalf("groups are not a partition: %d of %d", total, len(params))
	}
	seen := map[string]int{}
	for _, name := range g.names() {
		seen[name]++
		if seen[name] > 1 {
			t.Fatalf("name %q appears in two groups", name)
		}
	}
}

// Pins the exact location-token mapping: the fourth recognized token is
// "formData", and header/cookie parameters are not classified.
func TestClassify_FormDataToken(t *testing.T) {
	t.Parallel()
	g := classify([]spec.Parameter{
		{Name: "upload", In: "formData"},
		{Name: "session", In: "cookie"},
	})
	if len(g.Form) != 1 || g.Form[0].Name != "upload" {
		t.Fatalf("formData token must map to the form group: %+v", g.Form)
	}
	if len(g.Dropped) != 1 || g.Dropped[0].Name != "session" {
		t.Fatalf("cookie must be dropped: %+v", g.Dropped)
	}
}

// Scenario: GET /pets/{id} with a required path parameter and a string
// response resolves to /pets/$id with the string response type.
func TestResolve_PathParameterOperation(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets/{id}", spec.GET, &spec.Operation{
		ID:         "getPet",
		Parameters: []spec.Parameter{{Name: "id", In: "path", Required: true, Type: "string"}},
		Responses:  map[string]*spec.Response{"200": {Schema: &spec.Schema{Type: "string"}}},
	}, spec.Server{URL: "https://api.example.com"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}
	if len(res.Operations) != 1 {
		t.Fatalf("expected one operation, got %d", len(res.Operations))
	}
	op := res.Operations[0]
	if op.URL != "/pets/$id" {
		t.Fatalf("url: got %q", op.URL)
	}
	if op.Method != spec.GET || op.ID != "getPet" {
		t.Fatalf("method/id: %+v", op)
	}
	if len(op.PathParams) != 1 || len(op.QueryParams) != 0 || len(op.BodyParams) != 0 || len(op.FormParams) != 0 {
		t.Fatalf("groups: %+v", op)
	}
	if len(op.Request.Path) != 1 || op.Request.Path[0].Name != "id" || op.Request.Path[0].Optional || op.Request.Path[0].Type != "string" {
		t.Fatalf("path field: %+v", op.Request.Path)
	}
	if op.Response != "string" {
		t.Fatalf("response type: %q", op.Response)
	}
}

// Scenario: one required and one optional query parameter of the same
// primitive type derive one entry without and one with the optional marker.
func TestResolve_QueryOptionalMarkers(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets", spec.GET, &spec.Operation{
		ID: "listPets",
		Parameters: []spec.Parameter{
			{Name: "limit", In: "query", Required: true, Type: "integer"},
			{Name: "offset", In: "query", Required: false, Type: "integer"},
		},
	}, spec.Server{URL: "https://api.example.com"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	op := res.Operations[0]
	q := op.Request.Query
	if len(q) != 2 {
		t.Fatalf("query fields: %+v", q)
	}
	if q[0].Name != "limit" || q[0].Optional {
		t.Fatalf("required entry gained optional marker: %+v", q[0])
	}
	if q[1].Name != "offset" || !q[1].Optional {
		t.Fatalf("optional entry lost optional marker: %+v", q[1])
	}
	if q[0].Type != q[1].Type || q[0].Type != "number" {
		t.Fatalf("primitive query types: %+v", q)
	}
}

func TestResolve_IntegerPathParamMapsToNumber(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets/{id}", spec.GET, &spec.Operation{
		ID:         "getPet",
		Parameters: []spec.Parameter{{Name: "id", In: "path", Required: true, Type: "integer"}},
	}, spec.Server{URL: "https://api.example.com"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := res.Operations[0].Request.Path[0].Type; got != "number" {
		t.Fatalf("integer path param: got %q", got)
	}
}

func TestResolve_BasePathJoin(t *testing.T) {
	t.Parallel()
	op := &spec.Operation{ID: "root"}
	cases := []struct {
		path string
		want string
	}{
		{"/", "/v1"},
		{"/pets", "/v1/pets"},
	}
	for _, tc := range cases {
		desc := singlePathDesc(tc.path, spec.GET, op, spec.Server{URL: "https://api.example.com/v1"})
		res, err := Resolve(desc, stubTyper{})
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got := res.Operations[0].URL; got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.path, got, tc.want)
		}
	}
}

// Scenario: responses with only "404" derive an empty response type; "201"
// is the only fallback for a missing "200".
func TestResolve_ResponseSelection(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		responses map[string]*spec.Response
		want      string
	}{
		{"only404", map[string]*spec.Response{"404": {Schema: &spec.Schema{Type: "string"}}}, ""},
		{"fallback201", map[string]*spec.Response{"201": {Schema: &spec.Schema{Type: "boolean"}}}, "boolean"},
		{"prefers200", map[string]*spec.Response{
			"200": {Schema: &spec.Schema{Type: "string"}},
			"201": {Schema: &spec.Schema{Type: "boolean"}},
		}, "string"},
		{"none", nil, ""},
	}
	for _, tc := range cases {
		desc := singlePathDesc("/x", spec.GET, &spec.Operation{ID: "op", Responses: tc.responses},
			spec.Server{URL: "https://api.example.com"})
		res, err := Resolve(desc, stubTyper{})
		if err != nil {
			t.Fatalf("%s: resolve: %v", tc.name, err)
		}
		if got := res.Operations[0].Response; got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolve_ReferenceOnlyResponseReported(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets", spec.GET, &spec.Operation{
		ID:        "listPets",
		Responses: map[string]*spec.Response{"200": {Ref: "PetList"}},
	}, spec.Server{URL: "https://api.example.com"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Operations[0].Response != "" {
		t.Fatalf("expected empty response type, got %q", res.Operations[0].Response)
	}
	if len(res.Issues) != 1 || res.Issues[0].Code != UnresolvedReference {
		t.Fatalf("expected UnresolvedReference issue, got %v", res.Issues)
	}
}

func TestResolve_UnknownLocationWarns(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets", spec.GET, &spec.Operation{
		ID:         "listPets",
		Parameters: []spec.Parameter{{Name: "auth", In: "header", Type: "string"}},
	}, spec.Server{URL: "https://api.example.com"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Issues) != 1 || res.Issues[0].Code != UnknownParameterLocation || res.Issues[0].Severity != SeverityWarning {
		t.Fatalf("expected UnknownParameterLocation warning, got %v", res.Issues)
	}
	if got := len(res.Operations[0].ParamNames()); got != 0 {
		t.Fatalf("dropped parameter leaked into groups: %d", got)
	}
}

func TestResolve_MissingServerContinues(t *testing.T) {
	t.Parallel()
	desc := singlePathDesc("/pets", spec.GET, &spec.Operation{ID: "listPets"})

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Issues) != 1 || res.Issues[0].Code != MissingServer {
		t.Fatalf("expected MissingServer issue, got %v", res.Issues)
	}
	if got := res.Operations[0].URL; got != "/pets" {
		t.Fatalf("expected bare template url, got %q", got)
	}
	if !HasErrors(res.Issues) {
		t.Fatalf("MissingServer should be error severity")
	}
}

func TestResolve_OneRecordPerRecognizedMethod(t *testing.T) {
	t.Parallel()
	desc := &spec.Description{
		Servers: []spec.Server{{URL: "https://api.example.com"}},
		Paths: map[string]*spec.PathItem{
			"/pets": {Operations: map[spec.HTTPMethod]*spec.Operation{
				spec.GET:  {ID: "listPets"},
				spec.POST: {ID: "createPet"},
			}},
		},
		PathOrder: []string{"/pets"},
	}

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Operations) != 2 {
		t.Fatalf("expected 2 records, got %d", len(res.Operations))
	}
	// Walk order is fixed: GET before POST regardless of map iteration.
	if res.Operations[0].ID != "listPets" || res.Operations[1].ID != "createPet" {
		t.Fatalf("walk order: %v", []string{res.Operations[0].ID, res.Operations[1].ID})
	}
}

func TestResolve_RegistrySharedAcrossOperations(t *testing.T) {
	t.Parallel()
	status := &spec.Schema{Type: "string", Enum: []any{"ok", "bad"}}
	desc := &spec.Description{
		Servers: []spec.Server{{URL: "https://api.example.com"}},
		Paths: map[string]*spec.PathItem{
			"/a": {Operations: map[spec.HTTPMethod]*spec.Operation{
				spec.GET: {ID: "a", Responses: map[string]*spec.Response{"200": {Schema: status}}},
			}},
			"/b": {Operations: map[spec.HTTPMethod]*spec.Operation{
				spec.GET: {ID: "b", Responses: map[string]*spec.Response{"200": {Schema: status}}},
			}},
		},
		PathOrder: []string{"/a", "/b"},
	}

	res, err := Resolve(desc, stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// The stub registers under key+"Enum" and Add is first-write-wins, so
	// two operations sharing the schema yield exactly one entry.
	if res.Registry.Len() != 1 {
		t.Fatalf("expected one registry entry, got %v", res.Registry.Names())
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()
	build := func() *spec.Description {
		paths := map[string]*spec.PathItem{}
		var order []string
		for i := 0; i < 5; i++ {
			p := fmt.Sprintf("/r%d/{id}", i)
			paths[p] = &spec.PathItem{Operations: map[spec.HTTPMethod]*spec.Operation{
				spec.GET: {
					ID:         fmt.Sprintf("get%d", i),
					Parameters: []spec.Parameter{{Name: "id", In: "path", Required: true, Type: "string"}},
				},
			}}
			order = append(order, p)
		}
		return &spec.Description{Servers: []spec.Server{{URL: "https://x.example.com/v2"}}, Paths: paths, PathOrder: order}
	}

	first, err := Resolve(build(), stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := Resolve(build(), stubTyper{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(first.Operations) != len(second.Operations) {
		t.Fatalf("lengths differ")
	}
	for i := range first.Operations {
		if first.Operations[i].URL != second.Operations[i].URL || first.Operations[i].ID != second.Operations[i].ID {
			t.Fatalf("run differs at %d: %+v vs %+v", i, first.Operations[i], second.Operations[i])
		}
	}
}
