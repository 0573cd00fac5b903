package imagecopy

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

func newNV21Image(width, height, stride, vStride int) *types.Image {
	img := types.NewYUV420SemiPlanarImage(width, height, stride, vStride)
	img.Planes[1].Offset = stride*vStride + 1
	img.Planes[2].Offset = stride * vStride
	return img
}

// The specialized paths exist purely for throughput: for the same input
// they must produce output byte-identical to the generic strided walk.
func TestFastPathMatchesGenericPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	const bufSize = width * height * 3 / 2

	tests := []struct {
		name  string
		build func([]byte, int, int) (*types.GraphicView, error)
		img   *types.Image
	}{
		{
			name:  "NV12 to NV12",
			build: types.NewNV12GraphicView,
			img:   types.NewYUV420SemiPlanarImage(width, height, width, height),
		},
		{
			name:  "NV12 to I420",
			build: types.NewNV12GraphicView,
			img:   types.NewYUV420PlanarImage(width, height, width, height),
		},
		{
			name:  "I420 to NV21",
			build: types.NewI420GraphicView,
			img:   newNV21Image(width, height, width, height),
		},
		{
			name:  "NV21 to NV12",
			build: types.NewNV21GraphicView,
			img:   types.NewYUV420SemiPlanarImage(width, height, width, height),
		},
		{
			name:  "I420 to I420",
			build: types.NewI420GraphicView,
			img:   types.NewYUV420PlanarImage(width, height, width, height),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := make([]byte, bufSize)
			fillPattern(src)
			view, err := tt.build(src, width, height)
			require.NoError(t, err)

			fast := make([]byte, bufSize)
			require.NoError(t, ToImage(ctx, fast, tt.img, view))

			generic := make([]byte, bufSize)
			require.NoError(t, imageCopy(ctx, copyToImage, view, tt.img, generic))

			require.Equal(t, generic, fast)
		})
	}
}

func TestI420RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, dims := range []struct{ width, height int }{
		{16, 16},
		{64, 64},
		{128, 96},
	} {
		size := dims.width * dims.height * 3 / 2
		src := make([]byte, size)
		fillPattern(src)
		srcView, err := types.NewI420GraphicView(src, dims.width, dims.height)
		require.NoError(t, err)

		img := types.NewYUV420PlanarImage(dims.width, dims.height, dims.width, dims.height)
		imgBuf := make([]byte, size)
		require.NoError(t, ToImage(ctx, imgBuf, img, srcView))

		back := make([]byte, size)
		backView, err := types.NewI420GraphicView(back, dims.width, dims.height)
		require.NoError(t, err)
		require.NoError(t, FromImage(ctx, backView, imgBuf, img))

		require.Equal(t, src, back)
	}
}

func TestCrossFamilyRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	const size = width * height * 3 / 2

	src := make([]byte, size)
	fillPattern(src)
	srcView, err := types.NewNV12GraphicView(src, width, height)
	require.NoError(t, err)

	// NV12 -> I420 buffer -> NV12 again
	img := types.NewYUV420PlanarImage(width, height, width, height)
	imgBuf := make([]byte, size)
	require.NoError(t, ToImage(ctx, imgBuf, img, srcView))

	back := make([]byte, size)
	backView, err := types.NewNV12GraphicView(back, width, height)
	require.NoError(t, err)
	require.NoError(t, FromImage(ctx, backView, imgBuf, img))

	require.Equal(t, src, back)
}

func TestDimensionMismatchRejectedBeforeWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	src := make([]byte, width*height*3/2)
	fillPattern(src)
	view, err := types.NewNV12GraphicView(src, width, height)
	require.NoError(t, err)

	img := types.NewYUV420PlanarImage(32, 32, 32, 32)
	dst := make([]byte, width*height*3/2)
	err = ToImage(ctx, dst, img, view)
	require.ErrorIs(t, err, types.ErrBadValue)
	require.Equal(t, make([]byte, len(dst)), dst)
}

// A validation failure on any plane must leave the whole destination
// untouched, including the planes that would have validated.
func TestGenericCopyIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	src := make([]byte, width*height*3/2)
	fillPattern(src)
	view, err := types.NewNV12GraphicView(src, width, height)
	require.NoError(t, err)

	img := types.NewYUV420SemiPlanarImage(width, height, width, height)
	img.Planes[2].VertSubsampling = 4 // breaks only the last plane

	dst := make([]byte, width*height*3/2)
	err = imageCopy(ctx, copyToImage, view, img, dst)
	require.ErrorIs(t, err, types.ErrBadValue)
	require.Equal(t, make([]byte, len(dst)), dst)
}

func TestGenericCopyRejectsEscapingWalk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	src := make([]byte, width*height*3/2)
	view, err := types.NewNV12GraphicView(src, width, height)
	require.NoError(t, err)

	img := types.NewYUV420SemiPlanarImage(width, height, width, height)
	dst := make([]byte, width*height) // too small for the chroma plane
	err = imageCopy(ctx, copyToImage, view, img, dst)
	require.ErrorIs(t, err, types.ErrBadValue)
}

// A recognized layout over a buffer too small to hold it must error out of
// the validation pass, not fault while slicing up the planes.
func TestUndersizedBuffersRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 64, 64
	const size = width * height * 3 / 2

	src := make([]byte, size)
	fillPattern(src)
	view, err := types.NewNV12GraphicView(src, width, height)
	require.NoError(t, err)
	img := types.NewYUV420SemiPlanarImage(width, height, width, height)

	t.Run("image buffer smaller than a plane offset", func(t *testing.T) {
		t.Parallel()

		short := make([]byte, 100)
		require.ErrorIs(t, ToImage(ctx, short, img, view), types.ErrBadValue)
		require.Equal(t, make([]byte, len(short)), short)
		require.ErrorIs(t, FromImage(ctx, view, short, img), types.ErrBadValue)
	})

	t.Run("view buffer smaller than a plane offset", func(t *testing.T) {
		t.Parallel()

		truncated, err := types.NewNV12GraphicView(make([]byte, size), width, height)
		require.NoError(t, err)
		truncated.Buffer = truncated.Buffer[:100]

		dst := make([]byte, size)
		require.ErrorIs(t, ToImage(ctx, dst, img, truncated), types.ErrBadValue)
		require.Equal(t, make([]byte, len(dst)), dst)
		require.ErrorIs(t, FromImage(ctx, truncated, make([]byte, size), img), types.ErrBadValue)
	})
}

func TestCopyExactCapacityDoesNotOverrun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const width, height = 48, 48
	const size = width * height * 3 / 2
	src := make([]byte, size)
	fillPattern(src)
	view, err := types.NewI420GraphicView(src, width, height)
	require.NoError(t, err)

	img := types.NewYUV420PlanarImage(width, height, width, height)
	dst := make([]byte, size) // exactly the required capacity
	require.NoError(t, ToImage(ctx, dst, img, view))
	require.Equal(t, src, dst)
}
