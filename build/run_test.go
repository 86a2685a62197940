package build

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cssel/config"
	"cssel/state"
)

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zap.NewNop()
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestProcess_SingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "site.yaml")
	writeFile(t, src, siteDefinition)
	dst := filepath.Join(dir, "out")

	env := testEnv(t)
	if err := process(context.Background(), src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "site.css"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"div#main.container.draggable, a[href$=\".png\"]:focus {\n  color: red;\n}\n",
		"div#main.container.draggable + table#data ~ tr:nth-of-type(even)   td:nth-of-type(even) {",
		"@media print {\n  ::selection {\n    display: none;\n  }\n}\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output does not contain %q:\n%s", want, text)
		}
	}
}

func TestProcess_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "site.yaml")
	writeFile(t, src, siteDefinition)
	writeFile(t, filepath.Join(dir, "site.css"), "existing")

	env := testEnv(t)
	if err := process(context.Background(), src, dir, env, env.Log); err == nil {
		t.Fatal("expected error for existing output")
	}

	env.Overwrite = true
	if err := process(context.Background(), src, dir, env, env.Log); err != nil {
		t.Fatalf("process() with overwrite error = %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "site.css"))
	if string(data) == "existing" {
		t.Error("output was not overwritten")
	}
}

func TestProcess_Directory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "defs")
	writeFile(t, filepath.Join(src, "good.yaml"), "rules:\n  - selectors: [{parts: [{element: p}]}]\n    properties: {margin: '0'}\n")
	writeFile(t, filepath.Join(src, "nested", "more.yml"), "rules:\n  - selectors: [{parts: [{class: x}]}]\n    properties: {color: blue}\n")
	writeFile(t, filepath.Join(src, "bad.yaml"), "rules:\n  - selectors: [{parts: [{id: x}, {element: y}]}]\n")
	writeFile(t, filepath.Join(src, "README.txt"), "not a definition")
	dst := filepath.Join(dir, "out")

	core, logs := observer.New(zap.ErrorLevel)
	env := testEnv(t)
	env.Log = zap.New(core)

	err := process(context.Background(), src, dst, env, env.Log)
	if err == nil {
		t.Fatal("expected error for bad definition")
	}
	if n := len(multierr.Errors(err)); n != 1 {
		t.Errorf("expected 1 error, got %d: %v", n, err)
	}
	if logs.Len() != 1 {
		t.Errorf("expected 1 logged error, got %d", logs.Len())
	}

	for _, name := range []string{"good.css", "more.css"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dst, "bad.css")); err == nil {
		t.Error("bad.css must not be written")
	}
}

func TestProcess_Archive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "defs.zip")

	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range map[string]string{
		"site.yaml":       siteDefinition,
		"themes/dark.yml": "rules:\n  - selectors: [{parts: [{element: body}]}]\n    properties: {background: black}\n",
		"broken.yaml":     "rules:\n  - selectors: [{parts: [{class: a}, {id: b}]}]\n",
		"notes.txt":       "ignored",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	dst := filepath.Join(dir, "out")
	env := testEnv(t)
	err = process(context.Background(), src, dst, env, env.Log)
	if n := len(multierr.Errors(err)); n != 1 {
		t.Fatalf("expected 1 error for broken entry, got %d: %v", n, err)
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error does not name broken entry: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "dark.css"))
	if err != nil {
		t.Fatalf("dark.css not written: %v", err)
	}
	if string(data) != "body {\n  background: black;\n}\n" {
		t.Errorf("dark.css = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dst, "site.css")); err != nil {
		t.Errorf("site.css not written: %v", err)
	}
	for _, name := range []string{"broken.css", "notes.css"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err == nil {
			t.Errorf("%s must not be written", name)
		}
	}
}

func TestProcess_Cancelled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "site.yaml")
	writeFile(t, src, siteDefinition)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := testEnv(t)
	if err := process(ctx, src, dir, env, env.Log); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestProcess_LintWarnings(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty-rule.yaml")
	writeFile(t, src, "rules:\n  - selectors: [{parts: [{element: p}]}]\n")

	core, logs := observer.New(zap.WarnLevel)
	env := testEnv(t)
	env.Log = zap.New(core)

	if err := process(context.Background(), src, dir, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if logs.FilterMessage("Generated CSS problem").Len() != 1 {
		t.Errorf("expected lint warning for empty rule, got %v", logs.All())
	}
}

func TestDumpSelectors(t *testing.T) {
	sheet, err := Load([]byte(siteDefinition))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	text := string(dumpSelectors("site.yaml", sheet))

	for _, want := range []string{
		"# site.yaml\n",
		"div#main.container.draggable\ncompound \"div#main.container.draggable\"\n  element: \"div\"\n",
		"combined \"+\"\n  left: compound \"div#main.container.draggable\"\n",
		"    right: combined \" \"\n",
		"@media print ::selection\ncompound \"::selection\"\n  pseudoElement: \"selection\"\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump does not contain %q:\n%s", want, text)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		src           string
		transliterate bool
		want          string
	}{
		{"/defs/site.yaml", false, "/out/site.css"},
		{"/defs/My Site.yaml", true, "/out/my-site.css"},
		{"/defs/My Site.yaml", false, "/out/My Site.css"},
		{"/defs/.yaml", false, "/out/_stylesheet_.css"},
	}
	for _, tt := range tests {
		got := outputPath(tt.src, "/out", ".css", tt.transliterate)
		if got != filepath.FromSlash(tt.want) {
			t.Errorf("outputPath(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
