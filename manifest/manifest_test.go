package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "mrusty.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const sampleManifest = `
[instance]
name = "demo"
verbosity = 2

[[data_types]]
name = "Session"
class = "Session"

[[data_types]]
name = "Widget"
class = "UI::Widget"

[chunks]
store = "chunks.db"
preload = ["abc123"]
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Instance.Name != "demo" {
		t.Errorf("Name = %q, want demo", m.Instance.Name)
	}
	if m.Instance.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", m.Instance.Verbosity)
	}
	if len(m.DataTypes) != 2 || m.DataTypes[1].Class != "UI::Widget" {
		t.Errorf("DataTypes = %+v", m.DataTypes)
	}
	if len(m.Chunks.Preload) != 1 || m.Chunks.Preload[0] != "abc123" {
		t.Errorf("Preload = %v", m.Chunks.Preload)
	}
	if got := m.StorePath(); got != filepath.Join(m.Dir, "chunks.db") {
		t.Errorf("StorePath = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Instance.Name != "mrusty" {
		t.Errorf("default Name = %q, want mrusty", m.Instance.Name)
	}
	if m.StorePath() != "" {
		t.Errorf("StorePath = %q, want empty", m.StorePath())
	}
}

func TestLoadRejectsDuplicateDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[data_types]]
name = "Session"

[[data_types]]
name = "Session"
`)
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate descriptor") {
		t.Errorf("Load = %v, want duplicate descriptor error", err)
	}
}

func TestLoadRejectsUnnamedDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[[data_types]]
class = "Session"
`)
	if _, err := Load(dir); err == nil {
		t.Error("Load accepted a descriptor without a name")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, sampleManifest)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil || m.Instance.Name != "demo" {
		t.Errorf("FindAndLoad = %+v", m)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m != nil {
		t.Errorf("FindAndLoad = %+v, want nil", m)
	}
}
