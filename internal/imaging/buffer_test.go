package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	buf, err := NewBuffer(2, 1, pix)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	if buf.Width() != 2 || buf.Height() != 1 {
		t.Errorf("dimensions: got %dx%d, want 2x1", buf.Width(), buf.Height())
	}

	// The buffer owns a copy of the samples
	pix[0] = 99
	if r, _, _, _ := buf.RGB(0, 0); r != 1 {
		t.Errorf("buffer changed after caller mutated its slice: got %d, want 1", r)
	}

	// Samples returns a copy too
	samples := buf.Samples()
	samples[0] = 77
	if r, _, _, _ := buf.RGB(0, 0); r != 1 {
		t.Errorf("buffer changed after mutating Samples(): got %d, want 1", r)
	}
}

func TestNewBuffer_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pix           []uint8
	}{
		{"zero width", 0, 1, nil},
		{"zero height", 1, 0, nil},
		{"negative", -1, 2, nil},
		{"short samples", 2, 2, make([]uint8, 11)},
		{"long samples", 1, 1, make([]uint8, 4)},
		{"four channels", 1, 1, []uint8{1, 2, 3, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuffer(tt.width, tt.height, tt.pix)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("got %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestBuffer_ValidateNil(t *testing.T) {
	var buf *Buffer
	if err := buf.Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("nil buffer: got %v, want ErrInvalidImage", err)
	}
	if err := (&Buffer{}).Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("zero buffer: got %v, want ErrInvalidImage", err)
	}
}

func TestFromImage_DropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(1, 0, color.NRGBA{40, 50, 60, 7})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	want := []uint8{10, 20, 30, 40, 50, 60}
	got := buf.Samples()
	if len(got) != len(want) {
		t.Fatalf("sample count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.Set(5, 5, color.RGBA{1, 2, 3, 255})
	img.Set(7, 6, color.RGBA{4, 5, 6, 255})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if buf.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds: got %v, want (0,0)-(3,2)", buf.Bounds())
	}
	if r, g, b, _ := buf.RGB(0, 0); r != 1 || g != 2 || b != 3 {
		t.Errorf("top-left: got (%d,%d,%d), want (1,2,3)", r, g, b)
	}
	if r, g, b, _ := buf.RGB(2, 1); r != 4 || g != 5 || b != 6 {
		t.Errorf("bottom-right: got (%d,%d,%d), want (4,5,6)", r, g, b)
	}
}

func TestFromImage_Invalid(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("nil image: got %v, want ErrInvalidImage", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 10))
	if _, err := FromImage(empty); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("empty image: got %v, want ErrInvalidImage", err)
	}
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 77})

	buf, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r, g, b, _ := buf.RGB(0, 0); r != 77 || g != 77 || b != 77 {
		t.Errorf("got (%d,%d,%d), want (77,77,77)", r, g, b)
	}
}

func TestBuffer_CloneAndEqual(t *testing.T) {
	buf, _ := NewBuffer(1, 2, []uint8{1, 2, 3, 4, 5, 6})
	clone := buf.Clone()

	if clone == buf {
		t.Fatal("Clone returned the same pointer")
	}
	if !clone.Equal(buf) {
		t.Error("Clone is not Equal to its source")
	}

	other, _ := NewBuffer(2, 1, []uint8{1, 2, 3, 4, 5, 6})
	if other.Equal(buf) {
		t.Error("buffers with different dimensions reported Equal")
	}

	var nilBuf *Buffer
	if nilBuf.Equal(buf) || buf.Equal(nil) {
		t.Error("nil buffer reported Equal to a non-nil buffer")
	}
}

func TestBuffer_Map(t *testing.T) {
	pix := make([]uint8, 4*3*Channels)
	for i := range pix {
		pix[i] = uint8(i)
	}
	buf, _ := NewBuffer(4, 3, pix)

	out := buf.Map(func(dst, src []uint8) {
		if len(dst) != len(src) || len(src)%Channels != 0 {
			t.Errorf("band slices: dst %d, src %d", len(dst), len(src))
		}
		for i, v := range src {
			dst[i] = v + 1
		}
	})

	got := out.Samples()
	for i := range pix {
		if got[i] != pix[i]+1 {
			t.Fatalf("sample %d: got %d, want %d", i, got[i], pix[i]+1)
		}
	}
	// Source untouched
	if !buf.Equal(mustBuffer(t, 4, 3, pix)) {
		t.Error("Map modified its receiver")
	}
}

func TestBuffer_ImageInterface(t *testing.T) {
	buf, _ := NewBuffer(1, 1, []uint8{9, 8, 7})

	var img image.Image = buf
	if img.At(0, 0) != (color.RGBA{9, 8, 7, 255}) {
		t.Errorf("At: got %v, want {9 8 7 255}", img.At(0, 0))
	}
	if img.At(1, 0) != (color.RGBA{}) {
		t.Errorf("At outside bounds: got %v, want transparent", img.At(1, 0))
	}

	nrgba := buf.NRGBA()
	if nrgba.NRGBAAt(0, 0) != (color.NRGBA{9, 8, 7, 255}) {
		t.Errorf("NRGBA: got %v, want {9 8 7 255}", nrgba.NRGBAAt(0, 0))
	}
}

func mustBuffer(t *testing.T, width, height int, pix []uint8) *Buffer {
	t.Helper()
	buf, err := NewBuffer(width, height, pix)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	return buf
}
