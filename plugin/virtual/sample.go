package plugin_virtual

import "m7s.live/camera/v5/pkg"

// frameBuffer is reclaimed as soon as the delivering callback returns.
// Later locks fail the way a recycled device buffer would.
type frameBuffer struct {
	data     []byte
	locked   bool
	released bool
}

func (b *frameBuffer) Lock() ([]byte, error) {
	if b.released || b.locked {
		return nil, pkg.ErrLockBuffer
	}
	b.locked = true
	return b.data, nil
}

func (b *frameBuffer) Unlock() error {
	if !b.locked {
		return pkg.ErrInvalidOperation
	}
	b.locked = false
	return nil
}

type frameSample struct {
	ticks int64
	buf   *frameBuffer
}

func (s *frameSample) Time() (int64, error) {
	return s.ticks, nil
}

func (s *frameSample) ContiguousBuffer() (pkg.MediaBuffer, error) {
	if s.buf.released {
		return nil, pkg.ErrLockBuffer
	}
	return s.buf, nil
}

// bars paints eight vertical BGRA color bars scrolled by frame.
func bars(dst []byte, width, height int, frame uint64) {
	colors := [8][4]byte{
		{0xFF, 0xFF, 0xFF, 0xFF}, {0x00, 0xFF, 0xFF, 0xFF}, {0xFF, 0xFF, 0x00, 0xFF}, {0x00, 0xFF, 0x00, 0xFF},
		{0xFF, 0x00, 0xFF, 0xFF}, {0x00, 0x00, 0xFF, 0xFF}, {0xFF, 0x00, 0x00, 0xFF}, {0x10, 0x10, 0x10, 0xFF},
	}
	barWidth := max(width/8, 1)
	shift := int(frame % uint64(width))
	row := dst[:width*4]
	for x := 0; x < width; x++ {
		copy(row[x*4:], colors[((x+shift)/barWidth)%8][:])
	}
	for y := 1; y < height; y++ {
		copy(dst[y*width*4:(y+1)*width*4], row)
	}
}
