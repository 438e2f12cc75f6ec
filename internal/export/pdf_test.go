package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"LocalNotes/internal/state"
)

func sampleRequest() Request {
	items := []state.Item{
		&state.Stroke{Points: []state.Point{{X: 0, Y: 0}, {X: 80, Y: 40}}, Color: "#336699", Width: 3},
		&state.Stroke{Points: []state.Point{{X: 10, Y: 10}}, Color: "red", Width: 6},
		&state.TextBox{X: 20, Y: 60, W: 120, H: 40, Text: "Hello world, wrapped", Font: "14px sans-serif", Color: "black", Align: state.AlignCenter},
	}
	return Request{Title: "Sample", Items: items, Crop: ContentBounds(items)}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PDF{}).WriteTo(&buf, sampleRequest()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestExportWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := (&PDF{Dir: dir}).Export(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(dir, "Sample.pdf") {
		t.Fatalf("path = %q", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("stat %s: %v", path, err)
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&PDF{Dir: t.TempDir()}).Export(ctx, sampleRequest()); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"Meeting notes":   "Meeting_notes",
		"  a/b\\c:d  ":    "abcd",
		"":                "untitled",
		"???":             "untitled",
		"plan-2026_draft": "plan-2026_draft",
	}
	for in, want := range tests {
		if got := fileName(in); got != want {
			t.Errorf("fileName(%q) = %q, want %q", in, got, want)
		}
	}
}
