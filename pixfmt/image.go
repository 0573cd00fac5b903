// image.go classifies layout descriptors (rather than native views).
//
// A descriptor carries no root-plane information, so the semiplanar
// predicates infer plane sharing from the chroma offsets instead.

package pixfmt

import (
	"github.com/xaionaro-go/mediaimage/types"
)

// IsYUV420Image reports whether the descriptor describes a standard 8-bit
// 4:2:0 YUV image.
func IsYUV420Image(img *types.Image) bool {
	return img.Type == types.ImageTypeYUV &&
		img.NumPlanes == 3 &&
		img.BitDepth == 8 &&
		img.AllocatedDepth == 8 &&
		img.Planes[0].HorizSubsampling == 1 &&
		img.Planes[0].VertSubsampling == 1 &&
		img.Planes[1].HorizSubsampling == 2 &&
		img.Planes[1].VertSubsampling == 2 &&
		img.Planes[2].HorizSubsampling == 2 &&
		img.Planes[2].VertSubsampling == 2
}

// IsNV12Image reports whether the descriptor describes semiplanar 4:2:0
// with Cb leading.
func IsNV12Image(img *types.Image) bool {
	if !IsYUV420Image(img) {
		return false
	}
	return img.Planes[1].ColInc == 2 &&
		img.Planes[2].ColInc == 2 &&
		img.Planes[2].Offset == img.Planes[1].Offset+1
}

// IsNV21Image reports whether the descriptor describes semiplanar 4:2:0
// with Cr leading.
func IsNV21Image(img *types.Image) bool {
	if !IsYUV420Image(img) {
		return false
	}
	return img.Planes[1].ColInc == 2 &&
		img.Planes[2].ColInc == 2 &&
		img.Planes[1].Offset == img.Planes[2].Offset+1
}

// IsI420Image reports whether the descriptor describes fully planar 4:2:0.
func IsI420Image(img *types.Image) bool {
	if !IsYUV420Image(img) {
		return false
	}
	return img.Planes[1].ColInc == 1 &&
		img.Planes[2].ColInc == 1 &&
		img.Planes[2].Offset > img.Planes[1].Offset
}
