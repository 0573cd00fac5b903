// planes.go contains the low-level row blit primitives used by the
// specialized copy paths.

package imagecopy

// copyPlane copies rows x rowBytes from src to dst, each side with its own
// row stride.
func copyPlane(
	dst []byte, dstStride int,
	src []byte, srcStride int,
	rowBytes, rows int,
) {
	for row := 0; row < rows; row++ {
		copy(dst[row*dstStride:row*dstStride+rowBytes], src[row*srcStride:])
	}
}

// swapInterleaved copies an interleaved chroma plane while swapping each
// sample pair (Cb/Cr <-> Cr/Cb).
func swapInterleaved(
	dst []byte, dstStride int,
	src []byte, srcStride int,
	pairs, rows int,
) {
	for row := 0; row < rows; row++ {
		d := dst[row*dstStride:]
		s := src[row*srcStride:]
		for i := 0; i < pairs; i++ {
			d[2*i] = s[2*i+1]
			d[2*i+1] = s[2*i]
		}
	}
}

// deinterleave splits an interleaved chroma plane into two planar ones;
// the leading sample of each pair goes to dstA.
func deinterleave(
	dstA []byte, strideA int,
	dstB []byte, strideB int,
	src []byte, srcStride int,
	samples, rows int,
) {
	for row := 0; row < rows; row++ {
		a := dstA[row*strideA:]
		b := dstB[row*strideB:]
		s := src[row*srcStride:]
		for i := 0; i < samples; i++ {
			a[i] = s[2*i]
			b[i] = s[2*i+1]
		}
	}
}

// interleave merges two planar chroma planes into an interleaved one;
// srcA provides the leading sample of each pair.
func interleave(
	dst []byte, dstStride int,
	srcA []byte, strideA int,
	srcB []byte, strideB int,
	samples, rows int,
) {
	for row := 0; row < rows; row++ {
		d := dst[row*dstStride:]
		a := srcA[row*strideA:]
		b := srcB[row*strideB:]
		for i := 0; i < samples; i++ {
			d[2*i] = a[i]
			d[2*i+1] = b[i]
		}
	}
}
