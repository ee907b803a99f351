package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gogpu/contour"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	orig := contour.Logger()
	t.Cleanup(func() { contour.SetLogger(orig) })

	var stdout, stderr bytes.Buffer
	cmd := newCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeInput(t *testing.T, w, h int, p contour.Pixel) string {
	t.Helper()
	img, err := contour.NewImage(w, h)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(p)
	path := filepath.Join(t.TempDir(), "in.ppm")
	if err := contour.SaveImage(img, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommand_Usage(t *testing.T) {
	tests := [][]string{
		{},
		{"in.ppm"},
		{"in.ppm", "out.ppm"},
	}

	for _, args := range tests {
		_, err := execute(t, args...)
		if !errors.Is(err, errUsage) {
			t.Errorf("args %v: error = %v, want usage error", args, err)
		}
	}
}

func TestCommand_InvalidWorkers(t *testing.T) {
	in := writeInput(t, 16, 16, contour.Pixel{R: 255, G: 255, B: 255})
	out := filepath.Join(t.TempDir(), "out.ppm")

	for _, p := range []string{"0", "-2", "four"} {
		_, err := execute(t, "--contours", builtinTiles, "--", in, out, p)
		if !errors.Is(err, contour.ErrInvalidWorkers) {
			t.Errorf("P=%q: error = %v, want ErrInvalidWorkers", p, err)
		}
	}
}

func TestCommand_Run(t *testing.T) {
	in := writeInput(t, 24, 16, contour.Pixel{})
	out := filepath.Join(t.TempDir(), "out.png")

	stdout, err := execute(t, in, out, "3", "--contours", builtinTiles)
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !strings.Contains(stdout, "24x16") || !strings.Contains(stdout, "3 workers") {
		t.Errorf("unexpected summary: %q", stdout)
	}

	got, err := contour.LoadImage(out)
	if err != nil {
		t.Fatalf("LoadImage(out) = %v", err)
	}
	if w, h := got.Bounds(); w != 24 || h != 16 {
		t.Errorf("output = %dx%d, want 24x16", w, h)
	}
}

func TestCommand_TileDirectory(t *testing.T) {
	tiles, err := contour.SynthesizeTiles(contour.DefaultStep)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for k := range uint8(16) {
		path := filepath.Join(dir, strconv.Itoa(int(k))+".ppm")
		if err := contour.SaveImage(tiles.Tile(k), path); err != nil {
			t.Fatal(err)
		}
	}

	in := writeInput(t, 16, 16, contour.Pixel{})
	out := filepath.Join(t.TempDir(), "out.ppm")
	if _, err := execute(t, in, out, "2", "--contours", dir); err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestCommand_MissingTiles(t *testing.T) {
	in := writeInput(t, 16, 16, contour.Pixel{})
	out := filepath.Join(t.TempDir(), "out.ppm")

	_, err := execute(t, in, out, "1", "--contours", t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output written despite missing tiles")
	}
}

func TestCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, filepath.Join(dir, "nope.ppm"), filepath.Join(dir, "out.ppm"), "1")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
