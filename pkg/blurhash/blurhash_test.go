package blurhash

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return buf.Bytes()
}

func TestFromBytesImage(t *testing.T) {
	data := encodePNG(t, 640, 480)

	p := FromBytes(data, false)
	if p.Width != 640 || p.Height != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", p.Width, p.Height)
	}

	if p.Hash == "" {
		t.Error("hash should not be empty")
	}

	if p.Hash == FallbackHash {
		t.Error("valid image should not yield fallback hash")
	}
}

func TestFromBytesVideo(t *testing.T) {
	data := encodePNG(t, 100, 100)

	p := FromBytes(data, true)
	if p != Fallback() {
		t.Errorf("video should yield fallback, got %+v", p)
	}
}

func TestFromBytesUndecodable(t *testing.T) {
	p := FromBytes([]byte("not an image at all"), false)
	if p != Fallback() {
		t.Errorf("undecodable input should yield fallback, got %+v", p)
	}
}

func TestFallbackValues(t *testing.T) {
	p := Fallback()
	if p.Hash != FallbackHash {
		t.Errorf("hash = %q, want %q", p.Hash, FallbackHash)
	}

	if p.Width != FallbackDimension || p.Height != FallbackDimension {
		t.Errorf("dimensions = %dx%d, want %dx%d", p.Width, p.Height, FallbackDimension, FallbackDimension)
	}
}

func TestFromBytesDeterministic(t *testing.T) {
	data := encodePNG(t, 320, 240)

	a := FromBytes(data, false)
	b := FromBytes(data, false)
	if a != b {
		t.Errorf("same input should yield same placeholder: %+v vs %+v", a, b)
	}
}
