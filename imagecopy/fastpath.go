// fastpath.go dispatches copies between recognized standard 4:2:0 layouts
// to row-contiguous blit routines. These paths exist purely for throughput:
// for any input they must produce output byte-identical to the generic
// strided walk in imagecopy.go.

package imagecopy

import (
	"fmt"

	"github.com/xaionaro-go/mediaimage/pixfmt"
	"github.com/xaionaro-go/mediaimage/types"
)

type yuvFamily int

const (
	familyNone yuvFamily = iota
	familyI420
	familyNV12
	familyNV21
)

func (f yuvFamily) String() string {
	switch f {
	case familyI420:
		return "I420"
	case familyNV12:
		return "NV12"
	case familyNV21:
		return "NV21"
	default:
		return "yuvFamily(" + fmt.Sprintf("%d", int(f)) + ")"
	}
}

func (f yuvFamily) isInterleaved() bool {
	return f == familyNV12 || f == familyNV21
}

// yuvPlanes is the canonical form both sides of a fast-path copy are
// brought into: the luma plane plus either one interleaved chroma plane
// (uv, leading sample Cb for NV12 and Cr for NV21) or two planar ones.
type yuvPlanes struct {
	family yuvFamily

	y       []byte
	yStride int

	u       []byte
	uStride int
	v       []byte
	vStride int

	uv       []byte
	uvStride int
}

func planeFits(buf []byte, stride, rowBytes, rows int) bool {
	if rows == 0 {
		return true
	}
	return stride >= 0 && (rows-1)*stride+rowBytes <= len(buf)
}

// planeAt returns the sub-slice of buf starting at off, or nil when off is
// outside buf. Slicing must not be attempted before this check: a
// recognized layout over a short buffer has to fall through to the generic
// path's validation instead of faulting here.
func planeAt(buf []byte, off int) []byte {
	if off < 0 || off > len(buf) {
		return nil
	}
	return buf[off:]
}

// viewYUVPlanes classifies a view and returns its canonical plane set, or
// nil if the view does not match a recognized family or its buffer cannot
// hold the classified geometry.
func viewYUVPlanes(view *types.GraphicView) *yuvPlanes {
	width, height := view.Crop.Width, view.Crop.Height
	layout := &view.Layout
	switch {
	case pixfmt.IsNV12(view):
		p := &yuvPlanes{
			family:   familyNV12,
			y:        planeAt(view.Buffer, view.PlaneOffsets[types.PlaneY]),
			yStride:  layout.Planes[types.PlaneY].RowInc,
			uv:       planeAt(view.Buffer, view.PlaneOffsets[types.PlaneU]),
			uvStride: layout.Planes[types.PlaneU].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.uv, p.uvStride, width, height/2) {
			return nil
		}
		return p
	case pixfmt.IsNV21(view):
		p := &yuvPlanes{
			family:   familyNV21,
			y:        planeAt(view.Buffer, view.PlaneOffsets[types.PlaneY]),
			yStride:  layout.Planes[types.PlaneY].RowInc,
			uv:       planeAt(view.Buffer, view.PlaneOffsets[types.PlaneV]),
			uvStride: layout.Planes[types.PlaneV].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.uv, p.uvStride, width, height/2) {
			return nil
		}
		return p
	case pixfmt.IsI420(view):
		p := &yuvPlanes{
			family:  familyI420,
			y:       planeAt(view.Buffer, view.PlaneOffsets[types.PlaneY]),
			yStride: layout.Planes[types.PlaneY].RowInc,
			u:       planeAt(view.Buffer, view.PlaneOffsets[types.PlaneU]),
			uStride: layout.Planes[types.PlaneU].RowInc,
			v:       planeAt(view.Buffer, view.PlaneOffsets[types.PlaneV]),
			vStride: layout.Planes[types.PlaneV].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.u, p.uStride, width/2, height/2) ||
			!planeFits(p.v, p.vStride, width/2, height/2) {
			return nil
		}
		return p
	}
	return nil
}

// imageYUVPlanes classifies a descriptor+buffer pair the same way.
func imageYUVPlanes(img *types.Image, imgBase []byte) *yuvPlanes {
	width, height := img.Width, img.Height
	switch {
	case pixfmt.IsNV12Image(img):
		p := &yuvPlanes{
			family:   familyNV12,
			y:        planeAt(imgBase, img.Planes[0].Offset),
			yStride:  img.Planes[0].RowInc,
			uv:       planeAt(imgBase, img.Planes[1].Offset),
			uvStride: img.Planes[1].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.uv, p.uvStride, width, height/2) {
			return nil
		}
		return p
	case pixfmt.IsNV21Image(img):
		p := &yuvPlanes{
			family:   familyNV21,
			y:        planeAt(imgBase, img.Planes[0].Offset),
			yStride:  img.Planes[0].RowInc,
			uv:       planeAt(imgBase, img.Planes[2].Offset),
			uvStride: img.Planes[2].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.uv, p.uvStride, width, height/2) {
			return nil
		}
		return p
	case pixfmt.IsI420Image(img):
		p := &yuvPlanes{
			family:  familyI420,
			y:       planeAt(imgBase, img.Planes[0].Offset),
			yStride: img.Planes[0].RowInc,
			u:       planeAt(imgBase, img.Planes[1].Offset),
			uStride: img.Planes[1].RowInc,
			v:       planeAt(imgBase, img.Planes[2].Offset),
			vStride: img.Planes[2].RowInc,
		}
		if !planeFits(p.y, p.yStride, width, height) ||
			!planeFits(p.u, p.uStride, width/2, height/2) ||
			!planeFits(p.v, p.vStride, width/2, height/2) {
			return nil
		}
		return p
	}
	return nil
}

// blit copies src into dst for any combination of recognized families.
func blit(dst, src *yuvPlanes, width, height int) {
	copyPlane(dst.y, dst.yStride, src.y, src.yStride, width, height)

	chromaWidth := width / 2
	chromaHeight := height / 2
	switch {
	case src.family.isInterleaved() && dst.family.isInterleaved():
		if src.family == dst.family {
			copyPlane(dst.uv, dst.uvStride, src.uv, src.uvStride, width, chromaHeight)
		} else {
			swapInterleaved(dst.uv, dst.uvStride, src.uv, src.uvStride, chromaWidth, chromaHeight)
		}
	case src.family.isInterleaved():
		firstDst, firstStride := dst.u, dst.uStride
		secondDst, secondStride := dst.v, dst.vStride
		if src.family == familyNV21 {
			firstDst, firstStride, secondDst, secondStride =
				secondDst, secondStride, firstDst, firstStride
		}
		deinterleave(
			firstDst, firstStride, secondDst, secondStride,
			src.uv, src.uvStride, chromaWidth, chromaHeight,
		)
	case dst.family.isInterleaved():
		firstSrc, firstStride := src.u, src.uStride
		secondSrc, secondStride := src.v, src.vStride
		if dst.family == familyNV21 {
			firstSrc, firstStride, secondSrc, secondStride =
				secondSrc, secondStride, firstSrc, firstStride
		}
		interleave(
			dst.uv, dst.uvStride,
			firstSrc, firstStride, secondSrc, secondStride,
			chromaWidth, chromaHeight,
		)
	default:
		copyPlane(dst.u, dst.uStride, src.u, src.uStride, chromaWidth, chromaHeight)
		copyPlane(dst.v, dst.vStride, src.v, src.vStride, chromaWidth, chromaHeight)
	}
}
