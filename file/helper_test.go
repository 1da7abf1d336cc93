package file

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHelper_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	mustWrite(t, path, "hello world")

	h := NewHelper()
	got, err := h.Read(path, 0)
	if err != nil {
		t.Fatalf("Read error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Read = %q", got)
	}

	got, err = h.Read(path, 5)
	if err != nil {
		t.Fatalf("Read(size) error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Read(size=5) = %q, want hello", got)
	}

	got, err = h.Read(path, 100)
	if err != nil {
		t.Fatalf("Read(large size) error = %v", err)
	}
	if got != "hello world" {
		t.Errorf("Read(size=100) = %q", got)
	}

	if _, err := h.Read(filepath.Join(dir, "missing"), 3); err == nil {
		t.Error("expected error reading missing file")
	}
}

func TestHelper_ReadHugeSizeIsBoundedByFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	mustWrite(t, path, "hello")

	got, err := NewHelper().Read(path, 1e15)
	if err != nil {
		t.Fatalf("Read error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Read(size=1e15) = %q, want hello", got)
	}
}

func TestHelper_ReadLimitSplitsCharacter(t *testing.T) {
	dir := t.TempDir()
	utf8Path := filepath.Join(dir, "utf8.txt")
	mustWrite(t, utf8Path, "café au lait")
	bomPath := filepath.Join(dir, "bom.txt")
	mustWrite(t, bomPath, "\xEF\xBB\xBFcafé")
	// "a😀" in UTF-16LE with BOM: FF FE | 61 00 | 3D D8 00 DE
	utf16Path := filepath.Join(dir, "utf16.txt")
	mustWrite(t, utf16Path, "\xFF\xFE\x61\x00\x3D\xD8\x00\xDE")
	cp1252Path := filepath.Join(dir, "cp1252.txt")
	mustWrite(t, cp1252Path, "caf\xE9s")

	tests := []struct {
		name string
		path string
		size int
		want string
	}{
		{"utf-8 cut inside character", utf8Path, 4, "caf"},
		{"utf-8 limit after character", utf8Path, 5, "café"},
		{"utf-8 bom cut inside character", bomPath, 7, "caf"},
		{"utf-16 odd byte count", utf16Path, 5, "a"},
		{"utf-16 cut inside surrogate pair", utf16Path, 6, "a"},
		{"utf-16 whole pair", utf16Path, 8, "a😀"},
		{"windows-1252 kept", cp1252Path, 5, "cafés"},
	}

	h := NewHelper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Read(tt.path, tt.size)
			if err != nil {
				t.Fatalf("Read error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Read(size=%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}

func TestHelper_LocateFile(t *testing.T) {
	root := t.TempDir()
	editorFile := filepath.Join(root, "site", "pages", "index.html")
	mustWrite(t, editorFile, "")
	mustWrite(t, filepath.Join(root, "site", "css", "style.css"), "")
	mustWrite(t, filepath.Join(root, "site", "pages", "img.png"), "")

	h := &Helper{}
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"relative to editor dir", "img.png", filepath.Join(root, "site", "pages", "img.png")},
		{"absolute found in ancestor", "/css/style.css", filepath.Join(root, "site", "css", "style.css")},
		{"backslash found in ancestor", `\css/style.css`, filepath.Join(root, "site", "css", "style.css")},
		{"relative missing", "nope.png", ""},
		{"absolute missing", "/nope/style.css", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.LocateFile(editorFile, tt.fileName); got != tt.want {
				t.Errorf("LocateFile(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}

	if got := h.LocateFile("", "a"); got != "" {
		t.Errorf("LocateFile with empty editor file = %q, want empty", got)
	}
}

func TestHelper_CreatePath(t *testing.T) {
	dir := t.TempDir()
	editorFile := filepath.Join(dir, "index.html")
	mustWrite(t, editorFile, "")

	h := &Helper{}
	if got, want := h.CreatePath(editorFile, "out.css"), filepath.Join(dir, "out.css"); got != want {
		t.Errorf("CreatePath(file) = %q, want %q", got, want)
	}
	if got, want := h.CreatePath(dir, "sub/out.css"), filepath.Join(dir, "sub", "out.css"); got != want {
		t.Errorf("CreatePath(dir) = %q, want %q", got, want)
	}
}

func TestHelper_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.html")

	h := &Helper{}
	if err := h.Save(path, "<p></p>"); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<p></p>" {
		t.Errorf("saved content = %q", data)
	}
}

func TestHelper_GetExt(t *testing.T) {
	h := &Helper{}
	tests := map[string]string{
		"index.HTML":       "html",
		"/a/b/style.css":   "css",
		"archive.tar.gz":   "gz",
		"Makefile":         "",
		"/dir.with.dots/a": "",
	}
	for in, want := range tests {
		if got := h.GetExt(in); got != want {
			t.Errorf("GetExt(%q) = %q, want %q", in, got, want)
		}
	}
}
