package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/kinship/internal/config"
	"github.com/matzehuels/kinship/pkg/cache"
	"github.com/matzehuels/kinship/pkg/graph"
	kio "github.com/matzehuels/kinship/pkg/io"
)

const familyTOML = `
root = "anna"

[[people]]
id = "anna"
name = "Anna"
birth = "1960-03-01"
relations = [{ label = "Husband", target = "karl" }]

[[people]]
id = "karl"
name = "Karl"

[[people]]
id = "lena"
name = "Lena"
relations = [
  { label = "Mother", target = "anna" },
  { label = "Father", target = "karl" },
]
`

// sandbox isolates config lookup and status output and returns a directory
// holding family.toml.
func sandbox(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir = t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "family.toml"), []byte(familyTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	out = &bytes.Buffer{}
	old := stdout
	stdout = out
	t.Cleanup(func() { stdout = old })
	return dir, out
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"dot", []string{"dot"}},
		{"svg, TXT,,json", []string{"svg", "txt", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{"derived from input", "data/family.toml", "", []string{"svg", "txt"},
			map[string]string{"svg": "data/family.svg", "txt": "data/family.txt"}},
		{"json never overwrites input", "family.json", "", []string{"json"},
			map[string]string{"json": "family.layout.json"}},
		{"layout input", "family.layout.json", "", []string{"dot"},
			map[string]string{"dot": "family.dot"}},
		{"single explicit output", "family.toml", "out/tree.png", []string{"svg"},
			map[string]string{"svg": "out/tree.png"}},
		{"explicit base strips format extension", "family.toml", "out/tree.svg", []string{"svg", "dot"},
			map[string]string{"svg": "out/tree.svg", "dot": "out/tree.dot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestNewCacheSelection(t *testing.T) {
	dir := t.TempDir()
	c := New(io.Discard, LogInfo)
	c.config = config.Default()
	c.config.Cache.Dir = dir
	ctx := context.Background()

	ch, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("--no-cache selected %T", ch)
	}

	ch, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := ch.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("default selected %T", ch)
	}

	c.config.Cache.Redis.Addr = "127.0.0.1:1"
	ch, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(*cache.FileCache); !ok {
		t.Errorf("unreachable redis selected %T, want file cache fallback", ch)
	}

	c.config.Cache.Disabled = true
	if ch, _ = c.newCache(ctx, false); ch == nil {
		t.Fatal("nil cache")
	} else if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("disabled cache selected %T", ch)
	}
}

func TestNewRunnerKeyPrefix(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.config = config.Default()
	c.config.Cache.Disabled = true

	r, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Keyer.(cache.DefaultKeyer); !ok {
		t.Errorf("keyer = %T, want DefaultKeyer", r.Keyer)
	}

	c.config.Cache.Prefix = "kinship:test:"
	r, err = c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.LayoutKey("h", cache.LayoutKeyOpts{Root: "anna"})
	if !strings.HasPrefix(key, "kinship:test:") {
		t.Errorf("layout key %q lacks prefix", key)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir, out := sandbox(t)
	cacheDir := filepath.Join(dir, "cache")

	if err := execute(t, "layout", "family.toml", "--cache-dir", cacheDir); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(filepath.Join(dir, "family.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Root != "anna" || len(l.Nodes) != 3 {
		t.Errorf("layout root=%q nodes=%d", l.Root, len(l.Nodes))
	}
	if !strings.Contains(out.String(), "fresh") {
		t.Errorf("first run output = %q", out.String())
	}

	out.Reset()
	if err := execute(t, "layout", "family.toml", "--cache-dir", cacheDir, "-o", "again.json"); err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !strings.Contains(out.String(), "cached") {
		t.Errorf("second run output = %q, want cache hit", out.String())
	}
}

func TestLayoutCommandLanguageFlag(t *testing.T) {
	dir, _ := sandbox(t)

	if err := execute(t, "layout", "family.toml", "--no-cache", "--language", "de"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := graph.ReadLayoutFile(filepath.Join(dir, "family.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Language != "de" {
		t.Errorf("language = %q, want de", l.Language)
	}

	if err := execute(t, "layout", "family.toml", "--no-cache", "--min-spacing", "-5"); err == nil {
		t.Error("negative spacing flag should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	dir, _ := sandbox(t)

	if err := execute(t, "render", "family.toml", "--no-cache", "-f", "dot,txt"); err != nil {
		t.Fatalf("render: %v", err)
	}
	dot, err := os.ReadFile(filepath.Join(dir, "family.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(dot, []byte(`"anna"`)) {
		t.Errorf("dot output missing root: %s", dot)
	}
	txt, err := os.ReadFile(filepath.Join(dir, "family.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(txt, []byte("Lena")) {
		t.Errorf("text output = %q", txt)
	}

	if err := execute(t, "layout", "family.toml", "--no-cache", "--snapshots"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "render", "family.layout.json", "--no-cache", "-f", "txt", "--frame", "1", "-o", "first.txt"); err != nil {
		t.Fatalf("render layout file: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "first.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(first, []byte("Anna")) || bytes.Contains(first, []byte("Lena")) {
		t.Errorf("first frame = %q, want only the root", first)
	}

	if err := execute(t, "render", "family.toml", "-f", "pdf"); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestConvertCommand(t *testing.T) {
	dir, out := sandbox(t)

	if err := execute(t, "convert", "family.toml", "family.yaml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Converted 3 persons") {
		t.Errorf("convert output = %q", out.String())
	}
	doc, err := kio.ImportPeople(filepath.Join(dir, "family.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root != "anna" || len(doc.People) != 3 {
		t.Errorf("converted root %q with %d people", doc.Root, len(doc.People))
	}

	for _, args := range [][]string{
		{"convert", "family.toml", "family.toml"},
		{"convert", "family.toml", "family.txt"},
		{"convert", "missing.toml", "out.json"},
	} {
		if err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir, out := sandbox(t)
	cacheDir := filepath.Join(dir, "cache")

	if err := execute(t, "cache", "path", "--cache-dir", cacheDir); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != cacheDir {
		t.Errorf("cache path = %q, want %q", out.String(), cacheDir)
	}

	if err := execute(t, "layout", "family.toml", "--cache-dir", cacheDir); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := execute(t, "cache", "clear", "--cache-dir", cacheDir); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out.String())
	}
}
