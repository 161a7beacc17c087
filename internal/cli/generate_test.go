package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestGenerate_RequiresInput(t *testing.T) {
	t.Parallel()
	err := runRoot(t, "generate")
	if err == nil || !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "--input is required") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestGenerate_UnknownFlag(t *testing.T) {
	t.Parallel()
	err := runRoot(t, "generate", "--nope")
	if err == nil || !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error for unknown flag, got %v", err)
	}
}

func TestGenerate_ConfigFileMergeAndOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "input: spec.yaml\nout: ./from-config\ndry-run: true\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var got *GenerateConfig
	old := generateRunner
	generateRunner = func(ctx context.Context, cfg *GenerateConfig) error {
		got = cfg
		return nil
	}
	defer func() { generateRunner = old }()

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--config", cfgPath, "generate", "--out", "./from-flag"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got == nil {
		t.Fatalf("runner not invoked")
	}
	if got.Input != "spec.yaml" {
		t.Fatalf("config input not applied: %+v", got)
	}
	if got.Out != "./from-flag" {
		t.Fatalf("flag should override config: %+v", got)
	}
	if !got.DryRun {
		t.Fatalf("config dry-run not applied: %+v", got)
	}
}

func TestGenerate_ConfigFileUnknownField(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("inptu: oops\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := runRoot(t, "--config", cfgPath, "generate")
	if err == nil || !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("unexpected message: %v", err)
	}
}
