package image

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	// Registered for content sniffing in Decode.
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Codec identifies an on-disk pixel file format.
type Codec uint8

const (
	// CodecAuto sniffs the format from the stream content (decode only).
	CodecAuto Codec = iota

	// CodecPPM is binary (P6) or ASCII (P3) portable pixmap.
	CodecPPM

	// CodecPNG is Portable Network Graphics.
	CodecPNG

	// CodecJPEG is baseline JPEG.
	CodecJPEG

	// CodecBMP is Windows bitmap.
	CodecBMP

	// CodecTIFF is Tagged Image File Format.
	CodecTIFF
)

// String returns a string representation of the codec.
func (c Codec) String() string {
	switch c {
	case CodecAuto:
		return "Auto"
	case CodecPPM:
		return "PPM"
	case CodecPNG:
		return "PNG"
	case CodecJPEG:
		return "JPEG"
	case CodecBMP:
		return "BMP"
	case CodecTIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// zstdSuffix marks a file whose payload is zstd-compressed.
const zstdSuffix = ".zst"

// jpegQuality is used for all JPEG output.
const jpegQuality = 95

// CodecForPath picks a codec from the file extension, ignoring a trailing
// ".zst". The second result reports whether the file is zstd-compressed.
// Unknown extensions map to CodecAuto.
func CodecForPath(path string) (Codec, bool) {
	lower := strings.ToLower(path)
	compressed := strings.HasSuffix(lower, zstdSuffix)
	if compressed {
		lower = strings.TrimSuffix(lower, zstdSuffix)
	}

	switch filepath.Ext(lower) {
	case ".ppm", ".pnm":
		return CodecPPM, compressed
	case ".png":
		return CodecPNG, compressed
	case ".jpg", ".jpeg":
		return CodecJPEG, compressed
	case ".bmp":
		return CodecBMP, compressed
	case ".tif", ".tiff":
		return CodecTIFF, compressed
	default:
		return CodecAuto, compressed
	}
}

// Load reads an image from the given file path. The format is picked from
// the extension; a ".zst" suffix is decompressed transparently.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	codec, compressed := CodecForPath(path)

	var r io.Reader = bufio.NewReader(f)
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("image: zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	img, err := Decode(r, codec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Save writes the image to the given file path using the codec implied by
// the extension. A ".zst" suffix compresses the encoded stream.
func (m *Image) Save(path string) error {
	codec, compressed := CodecForPath(path)
	if codec == CodecAuto {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	bw := bufio.NewWriter(f)
	var w io.Writer = bw

	var enc *zstd.Encoder
	if compressed {
		enc, err = zstd.NewWriter(bw)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("image: zstd writer: %w", err)
		}
		w = enc
	}

	if err := m.Encode(w, codec); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		_ = f.Close()
		return err
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			_ = f.Close()
			return fmt.Errorf("image: zstd close: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: flush: %w", err)
	}

	return f.Close()
}

// Decode decodes an image from r using the given codec.
// CodecAuto sniffs the format; PPM, PNG, JPEG, BMP, TIFF and WebP are recognised.
func Decode(r io.Reader, codec Codec) (*Image, error) {
	var (
		img image.Image
		err error
	)

	switch codec {
	case CodecPPM:
		return DecodePPM(r)
	case CodecPNG:
		img, err = png.Decode(r)
	case CodecJPEG:
		img, err = jpeg.Decode(r)
	case CodecBMP:
		img, err = bmp.Decode(r)
	case CodecTIFF:
		img, err = tiff.Decode(r)
	case CodecAuto:
		br := bufio.NewReader(r)
		if magic, perr := br.Peek(2); perr == nil && isPPMMagic(magic) {
			return DecodePPM(br)
		}
		img, _, err = image.Decode(br)
	default:
		return nil, ErrUnsupportedFormat
	}

	if err != nil {
		return nil, fmt.Errorf("image: decode %s: %w", codec, err)
	}
	return FromStdImage(img), nil
}

// Encode encodes the image to w using the given codec.
func (m *Image) Encode(w io.Writer, codec Codec) error {
	var err error

	switch codec {
	case CodecPPM:
		return m.EncodePPM(w)
	case CodecPNG:
		err = png.Encode(w, m.ToStdImage())
	case CodecJPEG:
		err = jpeg.Encode(w, m.ToStdImage(), &jpeg.Options{Quality: jpegQuality})
	case CodecBMP:
		err = bmp.Encode(w, m.ToStdImage())
	case CodecTIFF:
		err = tiff.Encode(w, m.ToStdImage(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return ErrUnsupportedFormat
	}

	if err != nil {
		return fmt.Errorf("image: encode %s: %w", codec, err)
	}
	return nil
}

// FromStdImage creates an Image from a standard library image.Image.
// Alpha is discarded.
func FromStdImage(img image.Image) *Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	m := &Image{width: width, height: height, pix: make([]Pixel, width*height)}

	// Fast path for NRGBA images
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	nb := nrgba.Bounds()
	for y := range height {
		src := nrgba.Pix[nrgba.PixOffset(nb.Min.X, nb.Min.Y+y):]
		row := m.pix[y*width : (y+1)*width]
		for x := range row {
			row[x] = Pixel{R: src[x*4], G: src[x*4+1], B: src[x*4+2]}
		}
	}

	return m
}

// ToStdImage converts the Image to an opaque *image.NRGBA.
func (m *Image) ToStdImage() *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x, p := range m.pix[y*m.width : (y+1)*m.width] {
			dst[x*4] = p.R
			dst[x*4+1] = p.G
			dst[x*4+2] = p.B
			dst[x*4+3] = 255 // Opaque
		}
	}
	return nrgba
}
