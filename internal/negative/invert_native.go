//go:build !opencv

package negative

func invertSamples(dst, src []uint8) {
	for i, v := range src {
		dst[i] = 255 - v
	}
}
