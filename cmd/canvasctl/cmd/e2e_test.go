package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenarioFile(t *testing.T, dir, script string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write scenario file: %v", err)
	}
	return path
}

func execRoot(t *testing.T, args []string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRunE2EProducesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeScenarioFile(t, dir, `{"steps": [{"action": "wait", "frames": 1}]}`)

	out, err := execRoot(t, []string{"run", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\"nodes\"") {
		t.Errorf("expected snapshot JSON in output, got %q", out)
	}
}

func TestRunE2EWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScenarioFile(t, dir, `{"steps": [{"action": "wait", "frames": 1}]}`)
	outPath := filepath.Join(dir, "out.json")

	if _, err := execRoot(t, []string{"run", path, "--output", outPath}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file written: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty snapshot written to --output")
	}
}

func TestRunE2EMissingScenarioFileErrors(t *testing.T) {
	if _, err := execRoot(t, []string{"run", "does-not-exist.json"}); err == nil {
		t.Error("expected an error for a missing scenario file")
	}
}

func TestInspectE2ESummarizesSnapshot(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := writeScenarioFile(t, dir, `{"steps": [{"action": "wait", "frames": 1}]}`)
	snapPath := filepath.Join(dir, "snap.json")

	if _, err := execRoot(t, []string{"run", scenarioPath, "--output", snapPath}); err != nil {
		t.Fatalf("unexpected error producing snapshot: %v", err)
	}

	out, err := execRoot(t, []string{"inspect", snapPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "nodes: 0") {
		t.Errorf("expected an empty-canvas summary, got %q", out)
	}
}

func TestInspectE2EMissingFileErrors(t *testing.T) {
	if _, err := execRoot(t, []string{"inspect", "does-not-exist.json"}); err == nil {
		t.Error("expected an error for a missing snapshot file")
	}
}
