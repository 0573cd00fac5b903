// pixfmt.go classifies native graphic views against the standard
// 4:2:0 layout families.

// Package pixfmt provides stateless predicates identifying whether a plane
// layout matches a named standard pixel format. None of the predicates
// allocate or mutate their input.
package pixfmt

import (
	"github.com/xaionaro-go/mediaimage/types"
)

// IsYUV420 reports whether the view carries a standard 8-bit 4:2:0 YUV
// layout: full-resolution luma and both chroma planes decimated by 2 in
// both directions, 8 bits allocated per sample with no right shift.
func IsYUV420(view *types.GraphicView) bool {
	layout := &view.Layout
	y := layout.Planes[types.PlaneY]
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.NumPlanes == 3 &&
		layout.Type == types.LayoutTypeYUV &&
		y.Channel == types.ChannelY &&
		y.AllocatedDepth == 8 &&
		y.BitDepth == 8 &&
		y.RightShift == 0 &&
		y.ColSampling == 1 &&
		y.RowSampling == 1 &&
		u.Channel == types.ChannelCb &&
		u.AllocatedDepth == 8 &&
		u.BitDepth == 8 &&
		u.RightShift == 0 &&
		u.ColSampling == 2 &&
		u.RowSampling == 2 &&
		v.Channel == types.ChannelCr &&
		v.AllocatedDepth == 8 &&
		v.BitDepth == 8 &&
		v.RightShift == 0 &&
		v.ColSampling == 2 &&
		v.RowSampling == 2
}

// IsYUV42010Bit reports whether the view carries a 4:2:0 layout with
// 10 significant bits stored in 16-bit samples.
func IsYUV42010Bit(view *types.GraphicView) bool {
	layout := &view.Layout
	y := layout.Planes[types.PlaneY]
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.NumPlanes == 3 &&
		layout.Type == types.LayoutTypeYUV &&
		y.Channel == types.ChannelY &&
		y.AllocatedDepth == 16 &&
		y.BitDepth == 10 &&
		y.ColSampling == 1 &&
		y.RowSampling == 1 &&
		u.Channel == types.ChannelCb &&
		u.AllocatedDepth == 16 &&
		u.BitDepth == 10 &&
		u.ColSampling == 2 &&
		u.RowSampling == 2 &&
		v.Channel == types.ChannelCr &&
		v.AllocatedDepth == 16 &&
		v.BitDepth == 10 &&
		v.ColSampling == 2 &&
		v.RowSampling == 2
}

// IsNV12 reports whether the view is semiplanar 4:2:0 with Cb leading.
func IsNV12(view *types.GraphicView) bool {
	if !IsYUV420(view) {
		return false
	}
	layout := &view.Layout
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.RootPlanes == 2 &&
		u.ColInc == 2 &&
		u.RootIdx == types.PlaneU &&
		u.Offset == 0 &&
		v.ColInc == 2 &&
		v.RootIdx == types.PlaneU &&
		v.Offset == 1
}

// IsNV21 reports whether the view is semiplanar 4:2:0 with Cr leading.
func IsNV21(view *types.GraphicView) bool {
	if !IsYUV420(view) {
		return false
	}
	layout := &view.Layout
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.RootPlanes == 2 &&
		u.ColInc == 2 &&
		u.RootIdx == types.PlaneV &&
		u.Offset == 1 &&
		v.ColInc == 2 &&
		v.RootIdx == types.PlaneV &&
		v.Offset == 0
}

// IsI420 reports whether the view is fully planar 4:2:0.
func IsI420(view *types.GraphicView) bool {
	if !IsYUV420(view) {
		return false
	}
	layout := &view.Layout
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.RootPlanes == 3 &&
		u.ColInc == 1 &&
		u.RootIdx == types.PlaneU &&
		u.Offset == 0 &&
		v.ColInc == 1 &&
		v.RootIdx == types.PlaneV &&
		v.Offset == 0
}

// IsP010 reports whether the view is semiplanar 10-bit-in-16 4:2:0 with
// the significant bits MSB-justified (right shift 6).
func IsP010(view *types.GraphicView) bool {
	if !IsYUV42010Bit(view) {
		return false
	}
	layout := &view.Layout
	y := layout.Planes[types.PlaneY]
	u := layout.Planes[types.PlaneU]
	v := layout.Planes[types.PlaneV]
	return layout.RootPlanes == 2 &&
		u.ColInc == 4 &&
		u.RootIdx == types.PlaneU &&
		u.Offset == 0 &&
		v.ColInc == 4 &&
		v.RootIdx == types.PlaneU &&
		v.Offset == 2 &&
		y.RightShift == 6 &&
		u.RightShift == 6 &&
		v.RightShift == 6
}
