// converter.go derives an image layout descriptor from a native graphic
// view and decides whether the source memory can be wrapped zero-copy.

// Package mediaimage negotiates the layout of multi-plane pixel buffers.
//
// Given a native graphic view (a mapped, potentially hardware-backed,
// multi-plane buffer with per-plane strides) and a requested client color
// format, a Converter produces a declarative types.Image descriptor and
// either exposes the source memory directly (zero-copy wrap) or copies it
// through a caller-supplied back buffer.
package mediaimage

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/mediaimage/imagecopy"
	"github.com/xaionaro-go/mediaimage/internal"
	"github.com/xaionaro-go/mediaimage/internal/xmath"
	"github.com/xaionaro-go/mediaimage/logger"
	"github.com/xaionaro-go/mediaimage/types"
)

// Config parameterizes a conversion request.
type Config struct {
	// ClientColorFormat is the color format the client asked for; the
	// zero value means the generic flexible 4:2:0 format.
	ClientColorFormat types.ColorFormat

	// ComponentColorFormat is the color format the producing component
	// reported; it is carried for diagnostics only.
	ComponentColorFormat types.ColorFormat

	// ForceCopy disables wrapping even when the source layout would
	// allow it.
	ForceCopy bool
}

// Converter negotiates a layout between a graphic view and a client color
// format. A Converter is built, queried and consumed within one call
// stack; it is not safe for concurrent use. Construction either fully
// succeeds or fails with a terminal error.
type Converter struct {
	view  *types.GraphicView
	image *types.Image

	clientColorFormat    types.ColorFormat
	componentColorFormat types.ColorFormat

	width          int
	height         int
	allocatedDepth int
	backBufferSize int

	// wrapped is the zero-copy window over the view's buffer, nil when a
	// copy is required.
	wrapped []byte

	backBuffer []byte
}

// New validates the view against the requested format and derives the
// layout descriptor. On any structural mismatch it returns
// types.ErrBadValue; on an entirely unrecognized layout shape it returns
// types.ErrNoInit.
func New(
	ctx context.Context,
	view *types.GraphicView,
	cfg Config,
) (_ *Converter, _err error) {
	defer func() {
		if _err != nil {
			logger.Debugf(ctx, "converter: %v", _err)
		}
	}()

	c := &Converter{
		view:                 view,
		clientColorFormat:    cfg.ClientColorFormat,
		componentColorFormat: cfg.ComponentColorFormat,
		width:                view.Width,
		height:               view.Height,
	}
	if c.clientColorFormat == types.ColorFormatUnset {
		c.clientColorFormat = types.ColorFormatYUV420Flexible
	}
	if c.componentColorFormat == types.ColorFormatUnset {
		c.componentColorFormat = types.ColorFormatYUV420Flexible
	}
	if view.Err != nil {
		return nil, fmt.Errorf("the view carries an error (%v): %w", view.Err, types.ErrBadValue)
	}

	layout := &view.Layout
	if layout.NumPlanes == 0 {
		return nil, fmt.Errorf("0 planes: %w", types.ErrBadValue)
	}
	internal.Assert(ctx, layout.NumPlanes <= types.MaxPlanes, layout.NumPlanes)
	logger.Tracef(ctx, "converter layout: %s", spew.Sdump(layout))

	img := &types.Image{}
	c.image = img
	c.allocatedDepth = layout.Planes[0].AllocatedDepth
	bitDepth := layout.Planes[0].BitDepth

	// align width and height to support subsampling cleanly
	stride := xmath.Align(view.Crop.Width, 2) * xmath.DivUp(c.allocatedDepth, 8)
	vStride := xmath.Align(view.Crop.Height, 2)

	tryWrapping := !cfg.ForceCopy

	switch layout.Type {
	case types.LayoutTypeYUV:
		img.Type = types.ImageTypeYUV
		if layout.NumPlanes != 3 {
			return nil, fmt.Errorf("%d planes for a YUV layout: %w", layout.NumPlanes, types.ErrBadValue)
		}

		clientBitDepth := 0
		switch c.clientColorFormat {
		case types.ColorFormatYUVP010:
			clientBitDepth = 10
		case types.ColorFormatYUV411PackedPlanar,
			types.ColorFormatYUV411Planar,
			types.ColorFormatYUV420Flexible,
			types.ColorFormatYUV420PackedPlanar,
			types.ColorFormatYUV420PackedSemiPlanar,
			types.ColorFormatYUV420Planar,
			types.ColorFormatYUV420SemiPlanar,
			types.ColorFormatYUV422Flexible,
			types.ColorFormatYUV422PackedPlanar,
			types.ColorFormatYUV422PackedSemiPlanar,
			types.ColorFormatYUV422Planar,
			types.ColorFormatYUV422SemiPlanar,
			types.ColorFormatYUV444Flexible,
			types.ColorFormatYUV444Interleaved:
			clientBitDepth = 8
		}
		// conversion fails if the client bit depth and the source bit
		// depth differ: there is no implicit bit-depth conversion
		if clientBitDepth != 0 && bitDepth != clientBitDepth {
			return nil, fmt.Errorf(
				"bit depth of client (%d) and component (%d) differ: %w",
				clientBitDepth, bitDepth, types.ErrBadValue,
			)
		}

		yPlane := layout.Planes[types.PlaneY]
		uPlane := layout.Planes[types.PlaneU]
		vPlane := layout.Planes[types.PlaneV]
		if yPlane.Channel != types.ChannelY ||
			uPlane.Channel != types.ChannelCb ||
			vPlane.Channel != types.ChannelCr {
			return nil, fmt.Errorf("channel roles do not form a YUV layout: %w", types.ErrBadValue)
		}

		yuv420888 := yPlane.RowSampling == 1 && yPlane.ColSampling == 1 &&
			uPlane.RowSampling == 2 && uPlane.ColSampling == 2 &&
			vPlane.RowSampling == 2 && vPlane.ColSampling == 2
		if yuv420888 {
			for i := 0; i < 3; i++ {
				plane := &layout.Planes[i]
				if plane.AllocatedDepth != 8 || plane.BitDepth != 8 {
					yuv420888 = false
					break
				}
			}
			yuv420888 = yuv420888 && yPlane.ColInc == 1 && uPlane.RowInc == vPlane.RowInc
		}
		copyFormat := c.clientColorFormat
		if yuv420888 && c.clientColorFormat == types.ColorFormatYUV420Flexible {
			if uPlane.ColInc == 2 && vPlane.ColInc == 2 &&
				yPlane.RowInc == uPlane.RowInc {
				copyFormat = types.ColorFormatYUV420PackedSemiPlanar
			} else if uPlane.ColInc == 1 && vPlane.ColInc == 1 &&
				yPlane.RowInc == uPlane.RowInc*2 {
				copyFormat = types.ColorFormatYUV420PackedPlanar
			}
		}
		logger.Debugf(ctx,
			"client_fmt=%v y:{colInc=%d rowInc=%d} u:{colInc=%d rowInc=%d} v:{colInc=%d rowInc=%d}",
			c.clientColorFormat,
			yPlane.ColInc, yPlane.RowInc,
			uPlane.ColInc, uPlane.RowInc,
			vPlane.ColInc, vPlane.RowInc,
		)

		switch copyFormat {
		case types.ColorFormatYUV420Flexible,
			types.ColorFormatYUV420Planar,
			types.ColorFormatYUV420PackedPlanar:
			img.Planes[types.PlaneY] = types.ImagePlane{
				Offset:           0,
				ColInc:           1,
				RowInc:           stride,
				HorizSubsampling: 1,
				VertSubsampling:  1,
			}
			img.Planes[types.PlaneU] = types.ImagePlane{
				Offset:           stride * vStride,
				ColInc:           1,
				RowInc:           stride / 2,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			img.Planes[types.PlaneV] = types.ImagePlane{
				Offset:           stride * vStride * 5 / 4,
				ColInc:           1,
				RowInc:           stride / 2,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			if tryWrapping && c.clientColorFormat != types.ColorFormatYUV420Flexible {
				tryWrapping = yuv420888 && uPlane.ColInc == 1 && vPlane.ColInc == 1 &&
					yPlane.RowInc == uPlane.RowInc*2 &&
					view.PlaneOffsets[0] < view.PlaneOffsets[1] &&
					view.PlaneOffsets[1] < view.PlaneOffsets[2]
			}

		case types.ColorFormatYUV420SemiPlanar,
			types.ColorFormatYUV420PackedSemiPlanar:
			img.Planes[types.PlaneY] = types.ImagePlane{
				Offset:           0,
				ColInc:           1,
				RowInc:           stride,
				HorizSubsampling: 1,
				VertSubsampling:  1,
			}
			img.Planes[types.PlaneU] = types.ImagePlane{
				Offset:           stride * vStride,
				ColInc:           2,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			img.Planes[types.PlaneV] = types.ImagePlane{
				Offset:           stride*vStride + 1,
				ColInc:           2,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			if tryWrapping && c.clientColorFormat != types.ColorFormatYUV420Flexible {
				tryWrapping = yuv420888 && uPlane.ColInc == 2 && vPlane.ColInc == 2 &&
					yPlane.RowInc == uPlane.RowInc &&
					view.PlaneOffsets[0] < view.PlaneOffsets[1] &&
					view.PlaneOffsets[1] < view.PlaneOffsets[2]
			}

		case types.ColorFormatYUVP010:
			// stride is in bytes
			img.Planes[types.PlaneY] = types.ImagePlane{
				Offset:           0,
				ColInc:           2,
				RowInc:           stride,
				HorizSubsampling: 1,
				VertSubsampling:  1,
			}
			img.Planes[types.PlaneU] = types.ImagePlane{
				Offset:           stride * vStride,
				ColInc:           4,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			img.Planes[types.PlaneV] = types.ImagePlane{
				Offset:           stride*vStride + 2,
				ColInc:           4,
				RowInc:           stride,
				HorizSubsampling: 2,
				VertSubsampling:  2,
			}
			if tryWrapping {
				tryWrapping = yPlane.AllocatedDepth == 16 &&
					uPlane.AllocatedDepth == 16 &&
					vPlane.AllocatedDepth == 16 &&
					yPlane.BitDepth == 10 &&
					uPlane.BitDepth == 10 &&
					vPlane.BitDepth == 10 &&
					yPlane.RightShift == 6 &&
					uPlane.RightShift == 6 &&
					vPlane.RightShift == 6 &&
					yPlane.RowSampling == 1 && yPlane.ColSampling == 1 &&
					uPlane.RowSampling == 2 && uPlane.ColSampling == 2 &&
					vPlane.RowSampling == 2 && vPlane.ColSampling == 2 &&
					yPlane.ColInc == 2 &&
					uPlane.ColInc == 4 &&
					vPlane.ColInc == 4 &&
					yPlane.RowInc == uPlane.RowInc &&
					yPlane.RowInc == vPlane.RowInc
			}

		default:
			// default to the fully planar format; overridden if wrapping
			colInc := xmath.DivUp(c.allocatedDepth, 8)
			rowInc := stride * colInc / yPlane.ColSampling
			img.Planes[types.PlaneY] = types.ImagePlane{
				Offset:           0,
				ColInc:           colInc,
				RowInc:           rowInc,
				HorizSubsampling: yPlane.ColSampling,
				VertSubsampling:  yPlane.RowSampling,
			}
			offset := rowInc * vStride / yPlane.RowSampling

			rowInc = stride * colInc / uPlane.ColSampling
			img.Planes[types.PlaneU] = types.ImagePlane{
				Offset:           offset,
				ColInc:           colInc,
				RowInc:           rowInc,
				HorizSubsampling: uPlane.ColSampling,
				VertSubsampling:  uPlane.RowSampling,
			}
			offset += rowInc * vStride / uPlane.RowSampling

			rowInc = stride * colInc / vPlane.ColSampling
			img.Planes[types.PlaneV] = types.ImagePlane{
				Offset:           offset,
				ColInc:           colInc,
				RowInc:           rowInc,
				HorizSubsampling: vPlane.ColSampling,
				VertSubsampling:  vPlane.RowSampling,
			}
		}

	case types.LayoutTypeYUVA:
		return nil, fmt.Errorf(
			"YUVA layout (client %v, component %v): %w",
			c.clientColorFormat, c.componentColorFormat, types.ErrNoInit,
		)

	case types.LayoutTypeRGB:
		img.Type = types.ImageTypeRGB
		// Plane geometry for RGB layouts is not synthesized.
		switch c.clientColorFormat {
		case types.ColorFormatSurface,
			types.ColorFormatRGBFlexible,
			types.ColorFormat24BitBGR888,
			types.ColorFormat24BitRGB888:
		default:
			return nil, fmt.Errorf(
				"unrecognized color format (client %v, component %v) for an RGB layout: %w",
				c.clientColorFormat, c.componentColorFormat, types.ErrBadValue,
			)
		}
		if layout.NumPlanes != 3 {
			return nil, fmt.Errorf("%d planes for an RGB layout: %w", layout.NumPlanes, types.ErrBadValue)
		}

	case types.LayoutTypeRGBA:
		img.Type = types.ImageTypeRGBA
		// Plane geometry for RGBA layouts is not synthesized.
		switch c.clientColorFormat {
		case types.ColorFormatSurface,
			types.ColorFormatRGBAFlexible,
			types.ColorFormat32BitABGR8888,
			types.ColorFormat32BitARGB8888,
			types.ColorFormat32BitBGRA8888:
		default:
			return nil, fmt.Errorf(
				"unrecognized color format (client %v, component %v) for an RGBA layout: %w",
				c.clientColorFormat, c.componentColorFormat, types.ErrBadValue,
			)
		}
		if layout.NumPlanes != 4 {
			return nil, fmt.Errorf("%d planes for an RGBA layout: %w", layout.NumPlanes, types.ErrBadValue)
		}

	default:
		img.Type = types.ImageTypeUnknown
		if layout.NumPlanes != 1 {
			return nil, fmt.Errorf(
				"unrecognized layout (client %v, component %v): %w",
				c.clientColorFormat, c.componentColorFormat, types.ErrNoInit,
			)
		}
		plane := layout.Planes[0]
		if plane.ColInc < 0 || plane.RowInc < 0 {
			// copy-only: wrapping a reverse-order buffer is unsupported
			tryWrapping = false
		}
		img.Planes[0] = types.ImagePlane{
			Offset:           0,
			ColInc:           xmath.Abs(plane.ColInc),
			RowInc:           xmath.Abs(plane.RowInc),
			HorizSubsampling: plane.ColSampling,
			VertSubsampling:  plane.RowSampling,
		}
	}

	if tryWrapping {
		c.tryWrap(ctx)
	}

	img.NumPlanes = layout.NumPlanes
	img.Width = view.Crop.Width
	img.Height = view.Crop.Height
	img.BitDepth = bitDepth
	img.AllocatedDepth = c.allocatedDepth

	bufferSize := 0
	for i := 0; i < layout.NumPlanes; i++ {
		plane := &layout.Planes[i]
		if plane.AllocatedDepth < plane.BitDepth ||
			plane.RightShift != plane.AllocatedDepth-plane.BitDepth {
			return nil, fmt.Errorf("right shift of %d is unsupported: %w", plane.RightShift, types.ErrBadValue)
		}
		if plane.AllocatedDepth > 8 && plane.Endianness != types.EndiannessNative {
			return nil, fmt.Errorf("endianness %v is unsupported: %w", plane.Endianness, types.ErrBadValue)
		}
		if plane.AllocatedDepth != c.allocatedDepth || plane.BitDepth != bitDepth {
			return nil, fmt.Errorf("differing allocatedDepth/bitDepth per plane are unsupported: %w", types.ErrBadValue)
		}
		// stride is in bytes
		bufferSize += stride * vStride / plane.RowSampling / plane.ColSampling
	}
	c.backBufferSize = bufferSize
	return c, nil
}

// tryWrap checks whether all planes live within one contiguous span of the
// view's buffer and, if so, re-points the descriptor at the source memory.
func (c *Converter) tryWrap(ctx context.Context) {
	view := c.view
	layout := &view.Layout

	// check if the planes are near one another
	minOff := view.PlaneOffsets[0]
	maxOff := view.PlaneOffsets[0]
	planeSize := 0
	for i := 0; i < layout.NumPlanes; i++ {
		plane := &layout.Planes[i]
		planeStride := xmath.Abs(plane.RowInc / plane.ColInc)
		lo := view.PlaneOffsets[i] + plane.MinOffset(
			c.width/plane.ColSampling, c.height/plane.RowSampling)
		hi := view.PlaneOffsets[i] + plane.MaxOffset(
			c.width/plane.ColSampling, c.height/plane.RowSampling)
		if minOff > lo {
			minOff = lo
		}
		if maxOff < hi {
			maxOff = hi
		}
		planeSize += planeStride * xmath.DivUp(c.allocatedDepth, 8) *
			xmath.Align(c.height, 64) / plane.RowSampling
	}

	if minOff != view.PlaneOffsets[0] || maxOff-minOff > planeSize {
		return
	}
	if minOff < 0 || maxOff > len(view.Buffer) {
		// the span heuristic accepted a layout the buffer cannot hold
		logger.Debugf(ctx, "converter: wrap span [%d, %d) escapes the buffer of %d bytes",
			minOff, maxOff, len(view.Buffer))
		return
	}
	for i := 0; i < layout.NumPlanes; i++ {
		plane := &layout.Planes[i]
		c.image.Planes[i] = types.ImagePlane{
			Offset:           view.PlaneOffsets[i] - minOff,
			ColInc:           plane.ColInc,
			RowInc:           plane.RowInc,
			HorizSubsampling: plane.ColSampling,
			VertSubsampling:  plane.RowSampling,
		}
	}
	c.wrapped = view.Buffer[minOff:maxOff]
	logger.Debugf(ctx, "converter: wrapped (capacity=%d)", len(c.wrapped))
}

// Image returns the derived layout descriptor.
func (c *Converter) Image() *types.Image { return c.image }

// ClientColorFormat returns the effective requested client format.
func (c *Converter) ClientColorFormat() types.ColorFormat { return c.clientColorFormat }

// BackBufferSize returns the capacity a back buffer must have for a copy.
func (c *Converter) BackBufferSize() int { return c.backBufferSize }

// NeedsCopy reports whether the source memory could not be wrapped.
func (c *Converter) NeedsCopy() bool { return c.wrapped == nil }

// Wrap returns the zero-copy window over the source memory, or nil if the
// layout requires a copy or a back buffer has been attached.
func (c *Converter) Wrap() []byte {
	if c.backBuffer == nil {
		return c.wrapped
	}
	return nil
}

// BackBuffer returns the attached back buffer (trimmed to BackBufferSize),
// or nil.
func (c *Converter) BackBuffer() []byte { return c.backBuffer }

// SetBackBuffer attaches the destination buffer for a copy. On failure the
// previously attached buffer (if any) is left unchanged.
func (c *Converter) SetBackBuffer(backBuffer []byte) error {
	if backBuffer == nil {
		return fmt.Errorf("nil back buffer: %w", types.ErrBadValue)
	}
	if len(backBuffer) < c.backBufferSize {
		return fmt.Errorf(
			"back buffer of %d bytes is smaller than the required %d: %w",
			len(backBuffer), c.backBufferSize, types.ErrNoMemory,
		)
	}
	c.backBuffer = backBuffer[:c.backBufferSize]
	return nil
}

// CopyToImage copies the view's pixel data into the attached back buffer.
func (c *Converter) CopyToImage(ctx context.Context) error {
	if c.backBuffer == nil {
		return fmt.Errorf("no back buffer attached: %w", types.ErrNoInit)
	}
	return imagecopy.ToImage(ctx, c.backBuffer, c.image, c.view)
}

// CopyFromImage copies the attached back buffer into the view's planes.
func (c *Converter) CopyFromImage(ctx context.Context) error {
	if c.backBuffer == nil {
		return fmt.Errorf("no back buffer attached: %w", types.ErrNoInit)
	}
	return imagecopy.FromImage(ctx, c.view, c.backBuffer, c.image)
}
