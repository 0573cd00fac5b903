package mediaimage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/mediaimage/types"
)

func fillPattern(buf []byte) {
	for i := range buf {
		buf[i] = byte((i*131 + 7) % 251)
	}
}

func TestConverterNV12AsFlexibleWraps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	buf := make([]byte, width*height*3/2)
	fillPattern(buf)
	view, err := types.NewNV12GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUV420Flexible,
	})
	require.NoError(t, err)

	img := conv.Image()
	require.Equal(t, types.ImageTypeYUV, img.Type)
	require.Equal(t, 3, img.NumPlanes)
	require.Equal(t, width, img.Width)
	require.Equal(t, height, img.Height)
	require.Equal(t, 8, img.BitDepth)
	require.Equal(t, 8, img.AllocatedDepth)

	require.Equal(t, types.ImagePlane{
		Offset: 0, ColInc: 1, RowInc: 64,
		HorizSubsampling: 1, VertSubsampling: 1,
	}, img.Planes[types.PlaneY])
	require.Equal(t, types.ImagePlane{
		Offset: 4096, ColInc: 2, RowInc: 64,
		HorizSubsampling: 2, VertSubsampling: 2,
	}, img.Planes[types.PlaneU])
	require.Equal(t, types.ImagePlane{
		Offset: 4097, ColInc: 2, RowInc: 64,
		HorizSubsampling: 2, VertSubsampling: 2,
	}, img.Planes[types.PlaneV])

	require.False(t, conv.NeedsCopy())
	wrapped := conv.Wrap()
	require.Len(t, wrapped, 64*64*3/2)
	require.Equal(t, buf, wrapped)
	require.Equal(t, 6144, conv.BackBufferSize())
}

func TestConverterForceCopyReproducesSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	buf := make([]byte, width*height*3/2)
	fillPattern(buf)
	view, err := types.NewNV12GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUV420Flexible,
		ForceCopy:         true,
	})
	require.NoError(t, err)
	require.True(t, conv.NeedsCopy())
	require.Nil(t, conv.Wrap())

	back := make([]byte, conv.BackBufferSize())
	require.NoError(t, conv.SetBackBuffer(back))
	require.NoError(t, conv.CopyToImage(ctx))

	// the promoted semiplanar geometry matches the source exactly, so the
	// copy is byte-identical to the original mapping
	require.Equal(t, buf, conv.BackBuffer())
}

func TestConverterBackBufferSizeFormula(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name   string
		build  func([]byte, int, int) (*types.GraphicView, error)
		bps    int
		format types.ColorFormat
	}{
		{name: "nv12", build: types.NewNV12GraphicView, bps: 1},
		{name: "i420", build: types.NewI420GraphicView, bps: 1},
		{name: "p010", build: types.NewP010GraphicView, bps: 2, format: types.ColorFormatYUVP010},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const width, height = 48, 32
			buf := make([]byte, width*height*3/2*tt.bps)
			view, err := tt.build(buf, width, height)
			require.NoError(t, err)

			conv, err := New(ctx, view, Config{ClientColorFormat: tt.format})
			require.NoError(t, err)

			stride := width * tt.bps
			vStride := height
			want := 0
			for i := 0; i < view.Layout.NumPlanes; i++ {
				plane := &view.Layout.Planes[i]
				want += stride * vStride / plane.RowSampling / plane.ColSampling
			}
			require.Equal(t, want, conv.BackBufferSize())
		})
	}
}

func TestConverterNegativeStrideForcesCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 8, 8
	buf := make([]byte, width*height)
	fillPattern(buf)

	// a bottom-up single-plane buffer of unknown type
	view := &types.GraphicView{
		Buffer: buf,
		Layout: types.PlanarLayout{
			Type:       types.LayoutTypeUnknown,
			NumPlanes:  1,
			RootPlanes: 1,
		},
		Width:  width,
		Height: height,
		Crop:   types.Rect{Width: width, Height: height},
	}
	view.Layout.Planes[0] = types.PlaneInfo{
		Channel:        types.ChannelY,
		ColInc:         1,
		RowInc:         -width,
		ColSampling:    1,
		RowSampling:    1,
		AllocatedDepth: 8,
		BitDepth:       8,
	}
	view.PlaneOffsets[0] = width * (height - 1)

	conv, err := New(ctx, view, Config{})
	require.NoError(t, err)
	require.True(t, conv.NeedsCopy())
	require.Nil(t, conv.Wrap())
	require.Equal(t, types.ImagePlane{
		Offset: 0, ColInc: 1, RowInc: width,
		HorizSubsampling: 1, VertSubsampling: 1,
	}, conv.Image().Planes[0])

	back := make([]byte, conv.BackBufferSize())
	require.NoError(t, conv.SetBackBuffer(back))
	require.NoError(t, conv.CopyToImage(ctx))

	// the copy walks the source bottom-up, flipping it vertically
	for row := 0; row < height; row++ {
		require.Equal(t,
			buf[(height-1-row)*width:(height-row)*width],
			conv.BackBuffer()[row*width:(row+1)*width],
		)
	}
}

func TestConverterP010RequestAgainst8BitSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 32, 32
	buf := make([]byte, width*height*3/2)
	view, err := types.NewNV12GraphicView(buf, width, height)
	require.NoError(t, err)

	_, err = New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUVP010,
	})
	require.ErrorIs(t, err, types.ErrBadValue)
}

func TestConverterP010Wraps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	buf := make([]byte, width*height*3)
	fillPattern(buf)
	view, err := types.NewP010GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUVP010,
	})
	require.NoError(t, err)
	require.False(t, conv.NeedsCopy())
	require.Equal(t, buf, conv.Wrap())
}

func TestConverterYUVARejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	buf := make([]byte, 64*64*4)
	view := &types.GraphicView{
		Buffer: buf,
		Layout: types.PlanarLayout{
			Type:       types.LayoutTypeYUVA,
			NumPlanes:  4,
			RootPlanes: 4,
		},
		Width:  64,
		Height: 64,
		Crop:   types.Rect{Width: 64, Height: 64},
	}

	for _, format := range []types.ColorFormat{
		types.ColorFormatUnset,
		types.ColorFormatYUV420Flexible,
		types.ColorFormatYUVP010,
	} {
		_, err := New(ctx, view, Config{ClientColorFormat: format})
		require.ErrorIs(t, err, types.ErrNoInit)
	}
}

func TestConverterRejectsViewErrorAndZeroPlanes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	broken := &types.GraphicView{
		Err:  types.ErrBadValue,
		Crop: types.Rect{Width: 2, Height: 2},
	}
	_, err := New(ctx, broken, Config{})
	require.ErrorIs(t, err, types.ErrBadValue)

	empty := &types.GraphicView{
		Crop: types.Rect{Width: 2, Height: 2},
	}
	_, err = New(ctx, empty, Config{})
	require.ErrorIs(t, err, types.ErrBadValue)
}

func TestConverterBackBufferTooSmall(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 32, 32
	buf := make([]byte, width*height*3/2)
	view, err := types.NewNV12GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{ForceCopy: true})
	require.NoError(t, err)

	err = conv.SetBackBuffer(make([]byte, conv.BackBufferSize()-1))
	require.ErrorIs(t, err, types.ErrNoMemory)
	require.Nil(t, conv.BackBuffer())

	// still attachable with a correctly sized buffer afterwards
	require.NoError(t, conv.SetBackBuffer(make([]byte, conv.BackBufferSize())))
	require.Len(t, conv.BackBuffer(), conv.BackBufferSize())
}

func TestConverterCopyWithoutBackBuffer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 32, 32
	buf := make([]byte, width*height*3/2)
	view, err := types.NewNV12GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{ForceCopy: true})
	require.NoError(t, err)
	require.ErrorIs(t, conv.CopyToImage(ctx), types.ErrNoInit)
	require.ErrorIs(t, conv.CopyFromImage(ctx), types.ErrNoInit)
}

// A layout that passes the per-format structural checks must still be
// refused wrapping when its planes are not actually contiguous.
func TestConverterWrapRefusedForScatteredPlanes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	const gap = 4096
	bufSize := width*height + width*height/4 + gap + width*height/4
	buf := make([]byte, bufSize)
	fillPattern(buf)

	view := &types.GraphicView{
		Buffer: buf,
		Layout: types.PlanarLayout{
			Type:       types.LayoutTypeYUV,
			NumPlanes:  3,
			RootPlanes: 3,
		},
		Width:  width,
		Height: height,
		Crop:   types.Rect{Width: width, Height: height},
	}
	plane := func(channel types.Channel, sampling, rowInc, rootIdx int) types.PlaneInfo {
		return types.PlaneInfo{
			Channel:        channel,
			ColInc:         1,
			RowInc:         rowInc,
			ColSampling:    sampling,
			RowSampling:    sampling,
			AllocatedDepth: 8,
			BitDepth:       8,
			RootIdx:        rootIdx,
		}
	}
	view.Layout.Planes[types.PlaneY] = plane(types.ChannelY, 1, width, types.PlaneY)
	view.Layout.Planes[types.PlaneU] = plane(types.ChannelCb, 2, width/2, types.PlaneU)
	view.Layout.Planes[types.PlaneV] = plane(types.ChannelCr, 2, width/2, types.PlaneV)
	view.PlaneOffsets[types.PlaneY] = 0
	view.PlaneOffsets[types.PlaneU] = width * height
	view.PlaneOffsets[types.PlaneV] = width*height + width*height/4 + gap

	conv, err := New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUV420PackedPlanar,
	})
	require.NoError(t, err)
	require.True(t, conv.NeedsCopy())
	require.Nil(t, conv.Wrap())
}

// The same layout without the gap is wrapped.
func TestConverterI420PackedPlanarWraps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	buf := make([]byte, width*height*3/2)
	fillPattern(buf)
	view, err := types.NewI420GraphicView(buf, width, height)
	require.NoError(t, err)

	conv, err := New(ctx, view, Config{
		ClientColorFormat: types.ColorFormatYUV420PackedPlanar,
	})
	require.NoError(t, err)
	require.False(t, conv.NeedsCopy())
	require.Equal(t, buf, conv.Wrap())

	// attaching a back buffer hides the wrap
	require.NoError(t, conv.SetBackBuffer(make([]byte, conv.BackBufferSize())))
	require.Nil(t, conv.Wrap())
}

func TestConverterRGBWhitelist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newRGBView := func() *types.GraphicView {
		const width, height = 16, 16
		buf := make([]byte, width*height*3)
		view := &types.GraphicView{
			Buffer: buf,
			Layout: types.PlanarLayout{
				Type:       types.LayoutTypeRGB,
				NumPlanes:  3,
				RootPlanes: 1,
			},
			Width:  width,
			Height: height,
			Crop:   types.Rect{Width: width, Height: height},
		}
		channels := []types.Channel{types.ChannelR, types.ChannelG, types.ChannelB}
		for i := 0; i < 3; i++ {
			view.Layout.Planes[i] = types.PlaneInfo{
				Channel:        channels[i],
				ColInc:         3,
				RowInc:         width * 3,
				ColSampling:    1,
				RowSampling:    1,
				AllocatedDepth: 8,
				BitDepth:       8,
				RootIdx:        0,
				Offset:         i,
			}
			view.PlaneOffsets[i] = i
		}
		return view
	}

	conv, err := New(ctx, newRGBView(), Config{
		ClientColorFormat: types.ColorFormat24BitRGB888,
	})
	require.NoError(t, err)
	require.Equal(t, types.ImageTypeRGB, conv.Image().Type)

	_, err = New(ctx, newRGBView(), Config{
		ClientColorFormat: types.ColorFormatYUV420Planar,
	})
	require.ErrorIs(t, err, types.ErrBadValue)
}
