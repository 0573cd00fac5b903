// imagecopy.go performs pixel data transfer between a native graphic view
// and a described image buffer.

// Package imagecopy copies all planes of a graphic view into a flat byte
// buffer described by a layout descriptor, or the reverse. Recognized
// standard 4:2:0 pairs go through row-contiguous fast paths; everything
// else goes through a fully generic strided walk.
//
// All preconditions are validated before any byte is written: on error the
// destination is untouched.
package imagecopy

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/mediaimage/logger"
	"github.com/xaionaro-go/mediaimage/types"
)

type copyDirection int

const (
	copyToImage copyDirection = iota
	copyFromImage
)

func (d copyDirection) String() string {
	switch d {
	case copyToImage:
		return "to-image"
	case copyFromImage:
		return "from-image"
	default:
		return "copyDirection(" + fmt.Sprintf("%d", int(d)) + ")"
	}
}

// ToImage copies all planes of view into the buffer described by img,
// rooted at imgBase.
func ToImage(
	ctx context.Context,
	imgBase []byte,
	img *types.Image,
	view *types.GraphicView,
) error {
	if img == nil || imgBase == nil {
		return fmt.Errorf("nil image descriptor or buffer: %w", types.ErrBadValue)
	}
	if view.Crop.Width != img.Width || view.Crop.Height != img.Height {
		return fmt.Errorf(
			"view crop %dx%d does not match image %dx%d: %w",
			view.Crop.Width, view.Crop.Height, img.Width, img.Height,
			types.ErrBadValue,
		)
	}
	if src := viewYUVPlanes(view); src != nil {
		if dst := imageYUVPlanes(img, imgBase); dst != nil {
			logger.Tracef(ctx, "ImageCopy: %s -> %s", src.family, dst.family)
			blit(dst, src, img.Width, img.Height)
			return nil
		}
	}
	logger.Tracef(ctx, "ImageCopy: generic (%s)", copyToImage)
	return imageCopy(ctx, copyToImage, view, img, imgBase)
}

// FromImage copies the buffer described by img, rooted at imgBase, into
// the planes of view.
func FromImage(
	ctx context.Context,
	view *types.GraphicView,
	imgBase []byte,
	img *types.Image,
) error {
	if img == nil || imgBase == nil {
		return fmt.Errorf("nil image descriptor or buffer: %w", types.ErrBadValue)
	}
	if view.Crop.Width != img.Width || view.Crop.Height != img.Height {
		return fmt.Errorf(
			"view crop %dx%d does not match image %dx%d: %w",
			view.Crop.Width, view.Crop.Height, img.Width, img.Height,
			types.ErrBadValue,
		)
	}
	if src := imageYUVPlanes(img, imgBase); src != nil {
		if dst := viewYUVPlanes(view); dst != nil {
			logger.Tracef(ctx, "ImageCopy: %s -> %s", src.family, dst.family)
			blit(dst, src, img.Width, img.Height)
			return nil
		}
	}
	logger.Tracef(ctx, "ImageCopy: generic (%s)", copyFromImage)
	return imageCopy(ctx, copyFromImage, view, img, imgBase)
}

// planeStrategy is the copy tier chosen for one plane during validation.
type planeStrategy int

const (
	strategyByPlane planeStrategy = iota
	strategyByRow
	strategyBySample
)

type planePlan struct {
	strategy planeStrategy
	planeW   int
	planeH   int
	rowBytes int
}

// imageCopy is the generic strided copy. A single routine parameterized by
// direction keeps the traversal logic in one place; the two directions
// only swap copy source and destination.
func imageCopy(
	ctx context.Context,
	dir copyDirection,
	view *types.GraphicView,
	img *types.Image,
	imgBase []byte,
) error {
	layout := &view.Layout
	bpp := (img.AllocatedDepth + 7) / 8

	// Validate every plane (and pick its copy tier) before touching any
	// memory, so that a failure on plane i leaves planes 0..i-1 unwritten.
	plans := make([]planePlan, layout.NumPlanes)
	for i := 0; i < layout.NumPlanes; i++ {
		plane := &layout.Planes[i]
		imgPlane := &img.Planes[i]
		if plane.ColSampling != imgPlane.HorizSubsampling ||
			plane.RowSampling != imgPlane.VertSubsampling ||
			plane.AllocatedDepth != img.AllocatedDepth ||
			plane.AllocatedDepth < plane.BitDepth ||
			plane.RightShift != plane.AllocatedDepth-plane.BitDepth ||
			(bpp > 1 && plane.Endianness != types.EndiannessNative) {
			return fmt.Errorf(
				"plane %d does not match the image descriptor: %w",
				i, types.ErrBadValue,
			)
		}

		plan := planePlan{
			planeW: img.Width / plane.ColSampling,
			planeH: img.Height / plane.RowSampling,
		}
		canCopyByRow := plane.ColInc == bpp && imgPlane.ColInc == bpp &&
			plane.RowInc > 0 && imgPlane.RowInc > 0
		canCopyByPlane := canCopyByRow && plane.RowInc == imgPlane.RowInc
		switch {
		case canCopyByPlane:
			plan.strategy = strategyByPlane
			plan.rowBytes = plane.RowInc
		case canCopyByRow:
			plan.strategy = strategyByRow
			plan.rowBytes = min(plane.RowInc, imgPlane.RowInc)
		default:
			plan.strategy = strategyBySample
		}
		if err := checkPlaneBounds(view, img, imgBase, i, bpp, plan); err != nil {
			return err
		}
		plans[i] = plan
	}

	for i := 0; i < layout.NumPlanes; i++ {
		plane := &layout.Planes[i]
		imgPlane := &img.Planes[i]
		plan := plans[i]
		viewBase := view.PlaneOffsets[i]
		imgOff := imgPlane.Offset

		switch plan.strategy {
		case strategyByPlane:
			n := plan.rowBytes * plan.planeH
			if dir == copyToImage {
				copy(imgBase[imgOff:imgOff+n], view.Buffer[viewBase:])
			} else {
				copy(view.Buffer[viewBase:viewBase+n], imgBase[imgOff:])
			}
		case strategyByRow:
			for row := 0; row < plan.planeH; row++ {
				viewPos := viewBase + row*plane.RowInc
				imgPos := imgOff + row*imgPlane.RowInc
				if dir == copyToImage {
					copy(imgBase[imgPos:imgPos+plan.rowBytes], view.Buffer[viewPos:])
				} else {
					copy(view.Buffer[viewPos:viewPos+plan.rowBytes], imgBase[imgPos:])
				}
			}
		case strategyBySample:
			for row := 0; row < plan.planeH; row++ {
				for col := 0; col < plan.planeW; col++ {
					viewPos := viewBase + row*plane.RowInc + col*plane.ColInc
					imgPos := imgOff + row*imgPlane.RowInc + col*imgPlane.ColInc
					if dir == copyToImage {
						copy(imgBase[imgPos:imgPos+bpp], view.Buffer[viewPos:])
					} else {
						copy(view.Buffer[viewPos:viewPos+bpp], imgBase[imgPos:])
					}
				}
			}
		}
	}
	logger.Tracef(ctx, "ImageCopy: done (%s, %d planes)", dir, layout.NumPlanes)
	return nil
}

// extent returns the [lo, hi) byte range addressed by a strided walk of
// w x h samples of bpp bytes starting at off.
func extent(off, colInc, rowInc, w, h, bpp int) (lo, hi int) {
	lo, hi = off, off+bpp
	if w > 0 {
		if colInc > 0 {
			hi += colInc * (w - 1)
		} else {
			lo += colInc * (w - 1)
		}
	}
	if h > 0 {
		if rowInc > 0 {
			hi += rowInc * (h - 1)
		} else {
			lo += rowInc * (h - 1)
		}
	}
	return lo, hi
}

// checkPlaneBounds verifies that the planned walk over plane i stays
// within both the view's buffer and the image buffer.
func checkPlaneBounds(
	view *types.GraphicView,
	img *types.Image,
	imgBase []byte,
	i, bpp int,
	plan planePlan,
) error {
	plane := &view.Layout.Planes[i]
	imgPlane := &img.Planes[i]

	var viewLo, viewHi, imgLo, imgHi int
	switch plan.strategy {
	case strategyByPlane:
		viewLo = view.PlaneOffsets[i]
		viewHi = viewLo + plan.rowBytes*plan.planeH
		imgLo = imgPlane.Offset
		imgHi = imgLo + plan.rowBytes*plan.planeH
	case strategyByRow:
		viewLo = view.PlaneOffsets[i]
		viewHi = viewLo + (plan.planeH-1)*plane.RowInc + plan.rowBytes
		imgLo = imgPlane.Offset
		imgHi = imgLo + (plan.planeH-1)*imgPlane.RowInc + plan.rowBytes
	case strategyBySample:
		viewLo, viewHi = extent(
			view.PlaneOffsets[i], plane.ColInc, plane.RowInc,
			plan.planeW, plan.planeH, bpp,
		)
		imgLo, imgHi = extent(
			imgPlane.Offset, imgPlane.ColInc, imgPlane.RowInc,
			plan.planeW, plan.planeH, bpp,
		)
	}
	if viewLo < 0 || viewHi > len(view.Buffer) {
		return fmt.Errorf(
			"plane %d walk [%d, %d) escapes the view buffer of %d bytes: %w",
			i, viewLo, viewHi, len(view.Buffer), types.ErrBadValue,
		)
	}
	if imgLo < 0 || imgHi > len(imgBase) {
		return fmt.Errorf(
			"plane %d walk [%d, %d) escapes the image buffer of %d bytes: %w",
			i, imgLo, imgHi, len(imgBase), types.ErrBadValue,
		)
	}
	return nil
}
