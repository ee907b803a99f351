package image

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrMalformedPPM is returned when a PPM header or body cannot be parsed.
var ErrMalformedPPM = errors.New("image: malformed PPM")

// maxPPMDimension bounds the width and height accepted from a PPM header.
const maxPPMDimension = 1 << 16

// isPPMMagic reports whether b starts with a P3 or P6 magic number.
func isPPMMagic(b []byte) bool {
	return len(b) >= 2 && b[0] == 'P' && (b[1] == '3' || b[1] == '6')
}

// DecodePPM decodes a binary (P6) or ASCII (P3) portable pixmap.
// Header comments introduced by '#' are skipped. A maxval below 255 is
// rescaled to the full 8-bit range; maxval above 255 is rejected.
func DecodePPM(r io.Reader) (*Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	magic, err := readToken(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyData
		}
		return nil, err
	}
	if len(magic) != 2 || !isPPMMagic([]byte(magic)) {
		return nil, fmt.Errorf("%w: magic %q", ErrMalformedPPM, magic)
	}

	width, err := readHeaderInt(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readHeaderInt(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := readHeaderInt(br, "maxval")
	if err != nil {
		return nil, err
	}

	if width > maxPPMDimension || height > maxPPMDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if maxval > 255 {
		return nil, fmt.Errorf("%w: 16-bit maxval %d", ErrUnsupportedFormat, maxval)
	}

	m, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}

	if magic == "P6" {
		err = readBinaryPixels(br, m, maxval)
	} else {
		err = readASCIIPixels(br, m, maxval)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// EncodePPM encodes the image as binary P6 with maxval 255.
func (m *Image) EncodePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", m.width, m.height); err != nil {
		return fmt.Errorf("image: encode PPM: %w", err)
	}

	row := make([]byte, m.width*3)
	for y := range m.height {
		for x, p := range m.pix[y*m.width : (y+1)*m.width] {
			row[x*3] = p.R
			row[x*3+1] = p.G
			row[x*3+2] = p.B
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("image: encode PPM: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("image: encode PPM: %w", err)
	}
	return nil
}

func readBinaryPixels(br *bufio.Reader, m *Image, maxval int) error {
	row := make([]byte, m.width*3)
	for y := range m.height {
		if _, err := io.ReadFull(br, row); err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrMalformedPPM, y, err)
		}
		dst := m.pix[y*m.width : (y+1)*m.width]
		for x := range dst {
			dst[x] = Pixel{
				R: scaleSample(int(row[x*3]), maxval),
				G: scaleSample(int(row[x*3+1]), maxval),
				B: scaleSample(int(row[x*3+2]), maxval),
			}
		}
	}
	return nil
}

func readASCIIPixels(br *bufio.Reader, m *Image, maxval int) error {
	var rgb [3]int
	for i := range m.pix {
		for c := range rgb {
			v, err := readHeaderInt(br, "sample")
			if err != nil {
				return err
			}
			if v > maxval {
				return fmt.Errorf("%w: sample %d exceeds maxval %d", ErrMalformedPPM, v, maxval)
			}
			rgb[c] = v
		}
		m.pix[i] = Pixel{
			R: scaleSample(rgb[0], maxval),
			G: scaleSample(rgb[1], maxval),
			B: scaleSample(rgb[2], maxval),
		}
	}
	return nil
}

// scaleSample maps v in [0, maxval] to [0, 255].
func scaleSample(v, maxval int) uint8 {
	if maxval == 255 {
		return uint8(v)
	}
	v = min(v, maxval)
	return uint8((v*255 + maxval/2) / maxval)
}

// readHeaderInt reads one positive decimal token.
func readHeaderInt(br *bufio.Reader, field string) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformedPPM, field, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 || (v == 0 && field != "sample") {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedPPM, field, tok)
	}
	return v, nil
}

// readToken skips whitespace and '#' comments and returns the next
// whitespace-delimited token. Exactly one whitespace byte after the token
// is consumed, so the binary raster of a P6 file starts right after it.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}

		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
