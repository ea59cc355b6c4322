package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
	if result.Alpha != 255 {
		t.Errorf("Alpha: got %d, want 255", result.Alpha)
	}
	if result.X != 50 || result.Y != 50 {
		t.Errorf("coordinates: got (%d,%d), want (50,50)", result.X, result.Y)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantH   int
		wantS   int
		wantL   int
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", 0, 100, 50},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", 120, 100, 50},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", 240, 100, 50},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", 0, 0, 100},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", 0, 0, 0},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080", 0, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if abs(result.HSL.H-tt.wantH) > 1 {
				t.Errorf("H: got %d, want %d", result.HSL.H, tt.wantH)
			}
			if abs(result.HSL.S-tt.wantS) > 1 {
				t.Errorf("S: got %d, want %d", result.HSL.S, tt.wantS)
			}
			if abs(result.HSL.L-tt.wantL) > 1 {
				t.Errorf("L: got %d, want %d", result.HSL.L, tt.wantL)
			}
		})
	}
}

func TestSampleColor_NonPremultiplied(t *testing.T) {
	// Half-transparent orange stored premultiplied
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{200, 100, 50, 128})

	result, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Alpha != 128 {
		t.Errorf("Alpha: got %d, want 128", result.Alpha)
	}
	if abs(int(result.RGB.R)-200) > 1 || abs(int(result.RGB.G)-100) > 1 || abs(int(result.RGB.B)-50) > 1 {
		t.Errorf("RGB: got (%d,%d,%d), want about (200,100,50)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
}

func TestSampleColor_Buffer(t *testing.T) {
	buf, err := NewBuffer(2, 1, []uint8{10, 20, 30, 245, 235, 225})
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}

	result, err := SampleColor(buf, 1, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#F5EBE1" {
		t.Errorf("Hex: got %s, want #F5EBE1", result.Hex)
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 20, 20))
	img.Set(10, 10, color.RGBA{1, 2, 3, 255})

	result, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.RGB != (RGBColor{R: 1, G: 2, B: 3}) {
		t.Errorf("RGB: got %+v, want {1 2 3}", result.RGB)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name    string
		x, y    int
		wantHex string
	}{
		{"top-left", 0, 0, "#FF0000"},
		{"top-right", 99, 0, "#00FF00"},
		{"bottom-left", 0, 99, "#0000FF"},
		{"bottom-right", 99, 99, "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Fatalf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
