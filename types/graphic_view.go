// graphic_view.go models a mapped multi-plane pixel buffer.

package types

// Rect is a crop rectangle in pixels.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// GraphicView is a read/write window over a mapped multi-plane pixel
// buffer. The mapping itself (Buffer) is owned by the caller; the view only
// describes its geometry. Unlike the raw per-plane pointers a hardware
// mapping hands out, each plane is addressed as an offset into the single
// bounds-checked Buffer slice.
type GraphicView struct {
	Buffer []byte
	Layout PlanarLayout

	// PlaneOffsets holds the byte offset of each plane's base sample
	// within Buffer. The base sample is the one at the crop origin: a
	// mapping with a non-zero Crop.Left/Crop.Top must fold that origin
	// into the offsets, the plane walks never apply it again.
	PlaneOffsets [MaxPlanes]int

	// Width and Height are the full (pre-crop) pixel dimensions of the
	// underlying allocation.
	Width  int
	Height int

	// Crop bounds the pixels addressed through PlaneOffsets; its origin
	// is informational (see PlaneOffsets).
	Crop Rect

	// Err carries a mapping error, if any. A view with a non-nil Err is
	// rejected by the converter.
	Err error
}

// PlaneData returns the buffer starting at the base sample of plane i.
// It is only meaningful for planes with non-negative strides; strided
// walks over planes with negative increments must index Buffer through
// PlaneOffsets directly.
func (v *GraphicView) PlaneData(i int) []byte {
	return v.Buffer[v.PlaneOffsets[i]:]
}
