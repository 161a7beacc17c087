package resolve

import (
	"fmt"
	"strings"

	"github.com/swaggertools/swagger2requests/internal/spec"
)

// deriveBasePathFromServer computes the URL prefix prepended to every
// generated request URL from the first configured server. Only servers[0]
// is ever consulted. The server URL must carry a scheme and host
// ("https://api.example.com/v1"); the first three slash-separated segments
// (scheme, empty, host) are dropped and the remainder becomes the prefix
// ("/v1"). A root-only server URL yields an empty prefix.
//
// A missing or malformed server is reported as an issue and resolution
// continues with an empty prefix.
func deriveBasePathFromServer(servers []spec.Server) (string, *Issue) {
	if len(servers) == 0 {
		return "", &Issue{
			Code:     MissingServer,
			Severity: SeverityError,
			Message:  "no servers configured; request URLs will have no base path",
		}
	}
	raw := strings.TrimSpace(servers[0].URL)
	segments := strings.Split(raw, "/")
	if len(segments) < 3 || !strings.HasSuffix(segments[0], ":") || segments[1] != "" {
		return "", &Issue{
			Code:     MalformedServerURL,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("server url %q has no scheme and host; using empty base path", raw),
		}
	}
	rest := segments[3:]
	if len(rest) == 0 {
		return "", nil
	}
	base := "/" + strings.Join(rest, "/")
	if base == "/" {
		return "", nil
	}
	return strings.TrimSuffix(base, "/"), nil
}
