// image.go defines the declarative layout descriptor of a multi-plane image.

package types

import "fmt"

type ImageType int

const (
	ImageTypeUnknown ImageType = iota
	ImageTypeYUV
	ImageTypeYUVA
	ImageTypeRGB
	ImageTypeRGBA
	ImageTypeY
)

func (t ImageType) String() string {
	switch t {
	case ImageTypeUnknown:
		return "unknown"
	case ImageTypeYUV:
		return "YUV"
	case ImageTypeYUVA:
		return "YUVA"
	case ImageTypeRGB:
		return "RGB"
	case ImageTypeRGBA:
		return "RGBA"
	case ImageTypeY:
		return "Y"
	default:
		return "ImageType(" + fmt.Sprintf("%d", int(t)) + ")"
	}
}

// ImagePlane describes one plane of an Image: a byte offset from the image
// base, byte strides between adjacent samples/rows and the subsampling
// factors relative to the full image resolution.
type ImagePlane struct {
	Offset           int
	ColInc           int
	RowInc           int
	HorizSubsampling int
	VertSubsampling  int
}

// Image is a declarative description of how a multi-plane image is laid out
// inside a flat byte buffer. It does not own pixel data; it only allows a
// consumer to interpret a buffer without re-deriving its layout.
//
// Plane order is fixed by Type: index 0 is luma (or red), index 1 is
// Cb (or green), index 2 is Cr (or blue), index 3 is alpha.
type Image struct {
	Type      ImageType
	NumPlanes int

	// Width and Height are the post-crop pixel dimensions.
	Width  int
	Height int

	BitDepth       int
	AllocatedDepth int

	Planes [MaxPlanes]ImagePlane
}

// NewYUV420PlanarImage returns the standard fully-planar 8-bit 4:2:0
// descriptor (I420) for the given dimensions and strides. stride is the
// luma row stride in bytes, vStride the amount of rows allocated per plane
// group.
func NewYUV420PlanarImage(width, height, stride, vStride int) *Image {
	return &Image{
		Type:           ImageTypeYUV,
		NumPlanes:      3,
		Width:          width,
		Height:         height,
		BitDepth:       8,
		AllocatedDepth: 8,
		Planes: [MaxPlanes]ImagePlane{
			{
				Offset:           0,
				ColInc:           1,
				RowInc:           stride,
				HorizSubsampling: 1,
				VertSubsampling:  1,
			},
			{
				Offset:           stride * vStride,
				ColInc:           1,
				RowInc:           stride / 2,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			},
			{
				Offset:           stride * vStride * 5 / 4,
				ColInc:           1,
				RowInc:           stride / 2,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			},
		},
	}
}

// NewYUV420SemiPlanarImage returns the standard semiplanar 8-bit 4:2:0
// descriptor (NV12) for the given dimensions and strides.
func NewYUV420SemiPlanarImage(width, height, stride, vStride int) *Image {
	return &Image{
		Type:           ImageTypeYUV,
		NumPlanes:      3,
		Width:          width,
		Height:         height,
		BitDepth:       8,
		AllocatedDepth: 8,
		Planes: [MaxPlanes]ImagePlane{
			{
				Offset:           0,
				ColInc:           1,
				RowInc:           stride,
				HorizSubsampling: 1,
				VertSubsampling:  1,
			},
			{
				Offset:           stride * vStride,
				ColInc:           2,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			},
			{
				Offset:           stride*vStride + 1,
				ColInc:           2,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			},
		},
	}
}
