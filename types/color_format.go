// color_format.go defines the client-facing color format constant space.

package types

import (
	"fmt"
	"strings"
)

// ColorFormat is a client-requested color format, drawn from the fixed
// integer space used by codec clients. The zero value means "unset" and is
// treated by the converter as ColorFormatYUV420Flexible.
type ColorFormat int32

const (
	ColorFormatUnset ColorFormat = 0

	ColorFormat24BitRGB888            ColorFormat = 11
	ColorFormat24BitBGR888            ColorFormat = 12
	ColorFormat32BitBGRA8888          ColorFormat = 15
	ColorFormat32BitARGB8888          ColorFormat = 16
	ColorFormatYUV411Planar           ColorFormat = 17
	ColorFormatYUV411PackedPlanar     ColorFormat = 18
	ColorFormatYUV420Planar           ColorFormat = 19
	ColorFormatYUV420PackedPlanar     ColorFormat = 20
	ColorFormatYUV420SemiPlanar       ColorFormat = 21
	ColorFormatYUV422Planar           ColorFormat = 22
	ColorFormatYUV422PackedPlanar     ColorFormat = 23
	ColorFormatYUV422SemiPlanar       ColorFormat = 24
	ColorFormatYUV444Interleaved      ColorFormat = 29
	ColorFormatYUV420PackedSemiPlanar ColorFormat = 39
	ColorFormatYUV422PackedSemiPlanar ColorFormat = 40
	ColorFormatYUVP010                ColorFormat = 54

	ColorFormatSurface        ColorFormat = 0x7F000789
	ColorFormat32BitABGR8888  ColorFormat = 0x7F00A000
	ColorFormatRGBAFlexible   ColorFormat = 0x7F36A888
	ColorFormatRGBFlexible    ColorFormat = 0x7F36B888
	ColorFormatYUV420Flexible ColorFormat = 0x7F420888
	ColorFormatYUV422Flexible ColorFormat = 0x7F422888
	ColorFormatYUV444Flexible ColorFormat = 0x7F444888
)

func (f ColorFormat) String() string {
	switch f {
	case ColorFormatUnset:
		return "unset"
	case ColorFormat24BitRGB888:
		return "rgb888"
	case ColorFormat24BitBGR888:
		return "bgr888"
	case ColorFormat32BitBGRA8888:
		return "bgra8888"
	case ColorFormat32BitARGB8888:
		return "argb8888"
	case ColorFormat32BitABGR8888:
		return "abgr8888"
	case ColorFormatYUV411Planar:
		return "yuv411-planar"
	case ColorFormatYUV411PackedPlanar:
		return "yuv411-packed-planar"
	case ColorFormatYUV420Planar:
		return "yuv420-planar"
	case ColorFormatYUV420PackedPlanar:
		return "yuv420-packed-planar"
	case ColorFormatYUV420SemiPlanar:
		return "yuv420-semiplanar"
	case ColorFormatYUV420PackedSemiPlanar:
		return "yuv420-packed-semiplanar"
	case ColorFormatYUV422Planar:
		return "yuv422-planar"
	case ColorFormatYUV422PackedPlanar:
		return "yuv422-packed-planar"
	case ColorFormatYUV422SemiPlanar:
		return "yuv422-semiplanar"
	case ColorFormatYUV422PackedSemiPlanar:
		return "yuv422-packed-semiplanar"
	case ColorFormatYUV444Interleaved:
		return "yuv444-interleaved"
	case ColorFormatYUVP010:
		return "p010"
	case ColorFormatSurface:
		return "surface"
	case ColorFormatRGBAFlexible:
		return "rgba-flexible"
	case ColorFormatRGBFlexible:
		return "rgb-flexible"
	case ColorFormatYUV420Flexible:
		return "yuv420-flexible"
	case ColorFormatYUV422Flexible:
		return "yuv422-flexible"
	case ColorFormatYUV444Flexible:
		return "yuv444-flexible"
	default:
		return "ColorFormat(" + fmt.Sprintf("%d", int32(f)) + ")"
	}
}

func ColorFormatFromString(s string) (ColorFormat, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "yuv420-planar", "i420":
		return ColorFormatYUV420Planar, nil
	case "yuv420-packed-planar":
		return ColorFormatYUV420PackedPlanar, nil
	case "yuv420-semiplanar", "nv12":
		return ColorFormatYUV420SemiPlanar, nil
	case "yuv420-packed-semiplanar":
		return ColorFormatYUV420PackedSemiPlanar, nil
	case "yuv420-flexible", "flexible":
		return ColorFormatYUV420Flexible, nil
	case "p010", "yuvp010":
		return ColorFormatYUVP010, nil
	case "rgb888":
		return ColorFormat24BitRGB888, nil
	case "bgr888":
		return ColorFormat24BitBGR888, nil
	case "rgba-flexible":
		return ColorFormatRGBAFlexible, nil
	case "rgb-flexible":
		return ColorFormatRGBFlexible, nil
	}
	return ColorFormatUnset, fmt.Errorf("unsupported color format '%s'", s)
}

// Set implements pflag.Value.
func (f *ColorFormat) Set(s string) error {
	v, err := ColorFormatFromString(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Type implements pflag.Value.
func (f *ColorFormat) Type() string {
	return "color-format"
}
