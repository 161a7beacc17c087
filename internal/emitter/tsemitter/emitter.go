package tsemitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/swaggertools/swagger2requests/internal/resolve"
)

// Options controls how the TypeScript emitter renders its output.
type Options struct {
	OutDir  string // required; target directory to write into
	Title   string // API title for the generated header
	Version string // API version for the generated header
	Force   bool   // overwrite existing files
	DryRun  bool   // don't write, only plan
	Verbose bool
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and any emission-time issues.
type Result struct {
	Planned []PlannedFile
	Issues  []resolve.Issue
}

// Emit renders request and registry declarations from a resolution result
// into requests.ts plus its client.ts runtime. Emission-time issues
// (duplicate or missing operation ids) are returned on the Result, not as
// an error: output is always best-effort.
func Emit(ctx context.Context, res *resolve.Result, opts Options) (*Result, error) {
	_ = ctx
	if res == nil {
		return nil, fmt.Errorf("tsemitter: nil resolution result")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("tsemitter: OutDir is required")
	}

	fragments, issues := Fragments(res.Operations, res.Registry)

	files := map[string][]byte{
		"requests.ts": []byte(renderRequestsFile(opts.Title, opts.Version, fragments)),
		"client.ts":   []byte(renderClientFile()),
	}

	// Plan in deterministic order.
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{Planned: planned, Issues: issues}, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	// Refuse to clobber a populated directory unless forced.
	if st, err := os.Stat(abs); err == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("tsemitter: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
