// planar_layout.go describes the plane arrangement of a native graphic buffer.

package types

import "fmt"

type LayoutType int

const (
	LayoutTypeUnknown LayoutType = iota
	LayoutTypeYUV
	LayoutTypeYUVA
	LayoutTypeRGB
	LayoutTypeRGBA
)

func (t LayoutType) String() string {
	switch t {
	case LayoutTypeUnknown:
		return "unknown"
	case LayoutTypeYUV:
		return "YUV"
	case LayoutTypeYUVA:
		return "YUVA"
	case LayoutTypeRGB:
		return "RGB"
	case LayoutTypeRGBA:
		return "RGBA"
	default:
		return "LayoutType(" + fmt.Sprintf("%d", int(t)) + ")"
	}
}

// MaxPlanes is the maximum amount of planes a layout may carry (RGBA).
const MaxPlanes = 4

// Plane indexes within a PlanarLayout. The index determines the channel
// role: for YUV layouts index 0 is luma, for RGB(A) layouts index 0 is red.
const (
	PlaneY = 0
	PlaneU = 1
	PlaneV = 2

	PlaneR = 0
	PlaneG = 1
	PlaneB = 2
	PlaneA = 3
)

// PlanarLayout describes the geometry of all planes of a graphic buffer.
type PlanarLayout struct {
	Type      LayoutType
	NumPlanes int

	// RootPlanes is the amount of independently allocated planes;
	// a semiplanar chroma pair counts as one root plane.
	RootPlanes int

	Planes [MaxPlanes]PlaneInfo
}
