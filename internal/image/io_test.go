package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// newPattern creates a small image with distinct pixel values.
func newPattern(t *testing.T, width, height int) *Image {
	t.Helper()
	m, err := NewImage(width, height)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	for row := range height {
		for col := range width {
			_ = m.Set(row, col, Pixel{R: uint8(col * 30), G: uint8(row * 40), B: uint8((row + col) * 10)})
		}
	}
	return m
}

func TestCodecForPath(t *testing.T) {
	tests := []struct {
		path           string
		wantCodec      Codec
		wantCompressed bool
	}{
		{"in.ppm", CodecPPM, false},
		{"IN.PNM", CodecPPM, false},
		{"a/b/out.png", CodecPNG, false},
		{"x.jpg", CodecJPEG, false},
		{"x.jpeg", CodecJPEG, false},
		{"x.bmp", CodecBMP, false},
		{"x.tif", CodecTIFF, false},
		{"x.tiff", CodecTIFF, false},
		{"x.ppm.zst", CodecPPM, true},
		{"x.PNG.ZST", CodecPNG, true},
		{"x.webp", CodecAuto, false},
		{"noext", CodecAuto, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			codec, compressed := CodecForPath(tt.path)
			if codec != tt.wantCodec || compressed != tt.wantCompressed {
				t.Errorf("CodecForPath(%q) = (%v, %v), want (%v, %v)",
					tt.path, codec, compressed, tt.wantCodec, tt.wantCompressed)
			}
		})
	}
}

// TestSaveLoad_Lossless tests a save/load cycle through every lossless codec.
func TestSaveLoad_Lossless(t *testing.T) {
	want := newPattern(t, 7, 5)
	dir := t.TempDir()

	for _, name := range []string{"a.ppm", "a.png", "a.bmp", "a.tiff", "a.ppm.zst", "a.png.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := want.Save(path); err != nil {
				t.Fatalf("Save(%q) failed: %v", name, err)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%q) failed: %v", name, err)
			}
			if !got.Equal(want) {
				t.Errorf("Load(%q) differs from saved image", name)
			}
		})
	}
}

func TestSaveLoad_JPEG(t *testing.T) {
	m, _ := NewImage(16, 16)
	m.Fill(Pixel{R: 128, G: 128, B: 128})

	path := filepath.Join(t.TempDir(), "gray.jpg")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w, h := got.Bounds(); w != 16 || h != 16 {
		t.Fatalf("Bounds() = (%d, %d), want (16, 16)", w, h)
	}

	// JPEG is lossy; a flat field stays within a few levels.
	p := got.At(8, 8)
	for _, c := range []uint8{p.R, p.G, p.B} {
		if c < 124 || c > 132 {
			t.Errorf("At(8, 8) = %v, want ~128 gray", p)
			break
		}
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	m, _ := NewImage(2, 2)
	err := m.Save(filepath.Join(t.TempDir(), "out.xyz"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ppm"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

// TestLoad_SniffsUnknownExtension tests content detection for PPM and PNG.
func TestLoad_SniffsUnknownExtension(t *testing.T) {
	want := newPattern(t, 3, 3)
	dir := t.TempDir()

	var ppmBuf bytes.Buffer
	if err := want.EncodePPM(&ppmBuf); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, want.ToStdImage()); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	for name, data := range map[string][]byte{"ppm.data": ppmBuf.Bytes(), "png.data": pngBuf.Bytes()} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", name, err)
		}
		if !got.Equal(want) {
			t.Errorf("Load(%q) differs from source", name)
		}
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), CodecAuto)
	if err == nil {
		t.Error("Decode(garbage) should fail")
	}
}

func TestFromStdImage_DropsAlpha(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	nrgba.Set(1, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 7})

	m := FromStdImage(nrgba)
	if got := m.At(2, 1); got != (Pixel{200, 100, 50}) {
		t.Errorf("At(2, 1) = %v, want {200 100 50}", got)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	gray.SetGray(2, 0, color.Gray{Y: 77})

	m := FromStdImage(gray)
	if got := m.At(0, 2); got != (Pixel{77, 77, 77}) {
		t.Errorf("At(0, 2) = %v, want {77 77 77}", got)
	}
}

func TestFromStdImage_SubImageOrigin(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	nrgba.Set(5, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	sub := nrgba.SubImage(image.Rect(4, 4, 8, 8))
	m := FromStdImage(sub)

	if w, h := m.Bounds(); w != 4 || h != 4 {
		t.Fatalf("Bounds() = (%d, %d), want (4, 4)", w, h)
	}
	if got := m.At(2, 1); got != (Pixel{1, 2, 3}) {
		t.Errorf("At(2, 1) = %v, want {1 2 3}", got)
	}
}

func TestToStdImage_Opaque(t *testing.T) {
	m := newPattern(t, 3, 2)
	std := m.ToStdImage()

	for row := range 2 {
		for col := range 3 {
			c := std.NRGBAAt(col, row)
			p := m.At(row, col)
			if c.R != p.R || c.G != p.G || c.B != p.B || c.A != 255 {
				t.Errorf("NRGBAAt(%d, %d) = %v, want %v opaque", col, row, c, p)
			}
		}
	}
}
