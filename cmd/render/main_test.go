package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "z5.png")
	err := run([]string{"-func", "z5", "-width", "40", "-height", "20", "-region", "unit", "-workers", "2", "-out", out})
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("bounds %v", b)
	}
}

func TestRunRejectsBadRegion(t *testing.T) {
	out := filepath.Join(t.TempDir(), "never.png")
	if err := run([]string{"-region", "1,-1,0,1", "-out", out}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written for invalid region: %v", err)
	}
}
