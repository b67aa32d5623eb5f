package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPaletteDefault(t *testing.T) {
	labels, points, err := loadPalette("")
	if err != nil {
		t.Fatalf("loadPalette failed: %v", err)
	}
	if len(labels) != 13 || len(points) != 13 {
		t.Fatalf("default palette = %d labels / %d points, want 13/13", len(labels), len(points))
	}
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.tsv")
	content := "# test palette\n" +
		"crimson\t190\t0\t50\n" +
		"\n" +
		"sea\t0\t103\t165\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	labels, points, err := loadPalette(path)
	if err != nil {
		t.Fatalf("loadPalette failed: %v", err)
	}
	if len(labels) != 2 || labels[0] != "crimson" || labels[1] != "sea" {
		t.Fatalf("labels = %v", labels)
	}
	if points[0].X != 190 || points[0].Y != 0 || points[0].Z != 50 {
		t.Errorf("first point = %v", points[0])
	}
}

func TestLoadPaletteMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.tsv")
	if err := os.WriteFile(path, []byte("crimson\t190\t0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadPalette(path); err == nil {
		t.Fatal("expected error for short palette line")
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("yellow-green"); got != "yellow-green" {
		t.Errorf("sanitize = %q", got)
	}
	if got := sanitize("dark red/2"); got != "dark_red_2" {
		t.Errorf("sanitize = %q", got)
	}
}
