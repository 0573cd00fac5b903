// graphic_view_builders.go constructs GraphicViews over tightly packed
// buffers in the common standard layouts. These are convenience wrappers
// for callers that receive raw frames rather than hardware mappings.

package types

import "fmt"

func yuv420PlaneInfo(channel Channel, sampling, colInc, rowInc, rootIdx, offset int) PlaneInfo {
	return PlaneInfo{
		Channel:        channel,
		ColInc:         colInc,
		RowInc:         rowInc,
		ColSampling:    sampling,
		RowSampling:    sampling,
		AllocatedDepth: 8,
		BitDepth:       8,
		RightShift:     0,
		Endianness:     EndiannessNative,
		RootIdx:        rootIdx,
		Offset:         offset,
	}
}

func checkYUV420BufferSize(buf []byte, width, height, bytesPerSample int) error {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("dimensions %dx%d are not positive even numbers: %w", width, height, ErrBadValue)
	}
	need := width * height * 3 / 2 * bytesPerSample
	if len(buf) < need {
		return fmt.Errorf("buffer of %d bytes is smaller than the required %d: %w", len(buf), need, ErrNoMemory)
	}
	return nil
}

// NewI420GraphicView wraps a tightly packed I420 buffer
// (Y plane, then U, then V; luma stride == width).
func NewI420GraphicView(buf []byte, width, height int) (*GraphicView, error) {
	if err := checkYUV420BufferSize(buf, width, height, 1); err != nil {
		return nil, err
	}
	v := &GraphicView{
		Buffer: buf,
		Layout: PlanarLayout{
			Type:       LayoutTypeYUV,
			NumPlanes:  3,
			RootPlanes: 3,
		},
		Width:  width,
		Height: height,
		Crop:   Rect{Width: width, Height: height},
	}
	v.Layout.Planes[PlaneY] = yuv420PlaneInfo(ChannelY, 1, 1, width, PlaneY, 0)
	v.Layout.Planes[PlaneU] = yuv420PlaneInfo(ChannelCb, 2, 1, width/2, PlaneU, 0)
	v.Layout.Planes[PlaneV] = yuv420PlaneInfo(ChannelCr, 2, 1, width/2, PlaneV, 0)
	v.PlaneOffsets[PlaneY] = 0
	v.PlaneOffsets[PlaneU] = width * height
	v.PlaneOffsets[PlaneV] = width * height * 5 / 4
	return v, nil
}

// NewNV12GraphicView wraps a tightly packed NV12 buffer
// (Y plane, then interleaved Cb/Cr).
func NewNV12GraphicView(buf []byte, width, height int) (*GraphicView, error) {
	if err := checkYUV420BufferSize(buf, width, height, 1); err != nil {
		return nil, err
	}
	v := &GraphicView{
		Buffer: buf,
		Layout: PlanarLayout{
			Type:       LayoutTypeYUV,
			NumPlanes:  3,
			RootPlanes: 2,
		},
		Width:  width,
		Height: height,
		Crop:   Rect{Width: width, Height: height},
	}
	v.Layout.Planes[PlaneY] = yuv420PlaneInfo(ChannelY, 1, 1, width, PlaneY, 0)
	v.Layout.Planes[PlaneU] = yuv420PlaneInfo(ChannelCb, 2, 2, width, PlaneU, 0)
	v.Layout.Planes[PlaneV] = yuv420PlaneInfo(ChannelCr, 2, 2, width, PlaneU, 1)
	v.PlaneOffsets[PlaneY] = 0
	v.PlaneOffsets[PlaneU] = width * height
	v.PlaneOffsets[PlaneV] = width*height + 1
	return v, nil
}

// NewNV21GraphicView wraps a tightly packed NV21 buffer
// (Y plane, then interleaved Cr/Cb).
func NewNV21GraphicView(buf []byte, width, height int) (*GraphicView, error) {
	if err := checkYUV420BufferSize(buf, width, height, 1); err != nil {
		return nil, err
	}
	v := &GraphicView{
		Buffer: buf,
		Layout: PlanarLayout{
			Type:       LayoutTypeYUV,
			NumPlanes:  3,
			RootPlanes: 2,
		},
		Width:  width,
		Height: height,
		Crop:   Rect{Width: width, Height: height},
	}
	v.Layout.Planes[PlaneY] = yuv420PlaneInfo(ChannelY, 1, 1, width, PlaneY, 0)
	v.Layout.Planes[PlaneU] = yuv420PlaneInfo(ChannelCb, 2, 2, width, PlaneV, 1)
	v.Layout.Planes[PlaneV] = yuv420PlaneInfo(ChannelCr, 2, 2, width, PlaneV, 0)
	v.PlaneOffsets[PlaneY] = 0
	v.PlaneOffsets[PlaneU] = width*height + 1
	v.PlaneOffsets[PlaneV] = width * height
	return v, nil
}

// NewP010GraphicView wraps a tightly packed P010 buffer: 16-bit samples
// with 10 significant bits stored MSB-justified, Y plane followed by an
// interleaved Cb/Cr plane.
func NewP010GraphicView(buf []byte, width, height int) (*GraphicView, error) {
	if err := checkYUV420BufferSize(buf, width, height, 2); err != nil {
		return nil, err
	}
	p010Plane := func(channel Channel, sampling, colInc, rootIdx, offset int) PlaneInfo {
		return PlaneInfo{
			Channel:        channel,
			ColInc:         colInc,
			RowInc:         width * 2,
			ColSampling:    sampling,
			RowSampling:    sampling,
			AllocatedDepth: 16,
			BitDepth:       10,
			RightShift:     6,
			Endianness:     EndiannessNative,
			RootIdx:        rootIdx,
			Offset:         offset,
		}
	}
	v := &GraphicView{
		Buffer: buf,
		Layout: PlanarLayout{
			Type:       LayoutTypeYUV,
			NumPlanes:  3,
			RootPlanes: 2,
		},
		Width:  width,
		Height: height,
		Crop:   Rect{Width: width, Height: height},
	}
	v.Layout.Planes[PlaneY] = p010Plane(ChannelY, 1, 2, PlaneY, 0)
	v.Layout.Planes[PlaneU] = p010Plane(ChannelCb, 2, 4, PlaneU, 0)
	v.Layout.Planes[PlaneV] = p010Plane(ChannelCr, 2, 4, PlaneU, 2)
	v.PlaneOffsets[PlaneY] = 0
	v.PlaneOffsets[PlaneU] = width * height * 2
	v.PlaneOffsets[PlaneV] = width*height*2 + 2
	return v, nil
}
