//go:build opencv

package negative

import (
	"gocv.io/x/gocv"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
)

// invertSamples runs OpenCV's bitwise_not over one band of packed RGB
// samples. The band is viewed as a single row of 3-channel pixels.
func invertSamples(dst, src []uint8) {
	src8, err := gocv.NewMatFromBytes(1, len(src)/imaging.Channels, gocv.MatTypeCV8UC3, src)
	if err != nil {
		invertLoop(dst, src)
		return
	}
	defer src8.Close()

	out := gocv.NewMat()
	defer out.Close()

	gocv.BitwiseNot(src8, &out)
	if out.Empty() {
		invertLoop(dst, src)
		return
	}
	copy(dst, out.ToBytes())
}

func invertLoop(dst, src []uint8) {
	for i, v := range src {
		dst[i] = 255 - v
	}
}
