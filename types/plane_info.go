// plane_info.go describes the geometry of a single color plane.

package types

import "fmt"

type Channel int

const (
	ChannelY Channel = iota
	ChannelCb
	ChannelCr
	ChannelR
	ChannelG
	ChannelB
	ChannelA
)

func (c Channel) String() string {
	switch c {
	case ChannelY:
		return "Y"
	case ChannelCb:
		return "Cb"
	case ChannelCr:
		return "Cr"
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	case ChannelA:
		return "A"
	default:
		return "Channel(" + fmt.Sprintf("%d", int(c)) + ")"
	}
}

type Endianness int

const (
	EndiannessNative Endianness = iota
	EndiannessBig
	EndiannessLittle
)

func (e Endianness) String() string {
	switch e {
	case EndiannessNative:
		return "native"
	case EndiannessBig:
		return "big"
	case EndiannessLittle:
		return "little"
	default:
		return "Endianness(" + fmt.Sprintf("%d", int(e)) + ")"
	}
}

// PlaneInfo describes how the samples of one plane are laid out in memory.
//
// ColInc and RowInc are byte strides between adjacent samples and adjacent
// rows; both may be negative for reverse-order buffers. ColSampling and
// RowSampling are chroma decimation factors (>= 1) relative to the full
// image resolution.
type PlaneInfo struct {
	Channel     Channel
	ColInc      int
	RowInc      int
	ColSampling int
	RowSampling int

	// AllocatedDepth is the number of bits physically stored per sample,
	// BitDepth the number of significant bits. The only supported packing
	// is MSB-justified: RightShift == AllocatedDepth - BitDepth.
	AllocatedDepth int
	BitDepth       int
	RightShift     int
	Endianness     Endianness

	// RootIdx is the index of the root plane this plane is stored in:
	// an interleaved chroma pair shares one root plane.
	RootIdx int
	// Offset is the byte offset of this plane's first sample inside its
	// root plane (e.g. 1 for the V samples of NV12).
	Offset int
}

func (p PlaneInfo) BytesPerSample() int {
	return (p.AllocatedDepth + 7) / 8
}

// MinOffset returns the lowest byte offset (relative to the plane's base
// sample) addressed when walking width x height samples of this plane.
func (p PlaneInfo) MinOffset(width, height int) int {
	offs := 0
	if width > 0 && p.ColInc < 0 {
		offs += p.ColInc * (width - 1)
	}
	if height > 0 && p.RowInc < 0 {
		offs += p.RowInc * (height - 1)
	}
	return offs
}

// MaxOffset returns the offset one past the highest addressed byte
// (relative to the plane's base sample) for width x height samples.
func (p PlaneInfo) MaxOffset(width, height int) int {
	offs := p.BytesPerSample()
	if width > 0 && p.ColInc > 0 {
		offs += p.ColInc * (width - 1)
	}
	if height > 0 && p.RowInc > 0 {
		offs += p.RowInc * (height - 1)
	}
	return offs
}
