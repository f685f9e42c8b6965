package util

import (
	"bytes"
	"io"
)

type GolombBitReader struct {
	R    io.Reader
	buf  [1]byte
	left byte
}

func (r *GolombBitReader) ReadBit() (res uint, err error) {
	if r.left == 0 {
		if _, err = r.R.Read(r.buf[:]); err != nil {
			return
		}
		r.left = 8
	}
	r.left--
	res = uint(r.buf[0]>>r.left) & 1
	return
}

func (r *GolombBitReader) ReadBits(n int) (res uint, err error) {
	for i := 0; i < n; i++ {
		var bit uint
		if bit, err = r.ReadBit(); err != nil {
			return
		}
		res |= bit << uint(n-i-1)
	}
	return
}

func (r *GolombBitReader) ReadExponentialGolombCode() (res uint, err error) {
	i := 0
	for {
		var bit uint
		if bit, err = r.ReadBit(); err != nil {
			return
		}
		if !(bit == 0 && i < 32) {
			break
		}
		i++
	}
	if res, err = r.ReadBits(i); err != nil {
		return
	}
	res += (1 << uint(i)) - 1
	return
}

func (r *GolombBitReader) ReadSE() (res int, err error) {
	var code uint
	if code, err = r.ReadExponentialGolombCode(); err != nil {
		return
	}
	if code&0x01 != 0 {
		res = int((code + 1) / 2)
	} else {
		res = -int(code / 2)
	}
	return
}

// GolombBitWriter is the MSB-first counterpart of GolombBitReader.
type GolombBitWriter struct {
	buf  bytes.Buffer
	cur  byte
	used byte
}

func (w *GolombBitWriter) WriteBit(bit uint) {
	w.cur = w.cur<<1 | byte(bit&1)
	if w.used++; w.used == 8 {
		w.buf.WriteByte(w.cur)
		w.cur, w.used = 0, 0
	}
}

func (w *GolombBitWriter) WriteBits(v uint, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(v >> uint(i))
	}
}

func (w *GolombBitWriter) WriteExponentialGolombCode(v uint) {
	v++
	n := 0
	for t := v; t > 1; t >>= 1 {
		n++
	}
	w.WriteBits(0, n)
	w.WriteBits(v, n+1)
}

func (w *GolombBitWriter) WriteSE(v int) {
	if v > 0 {
		w.WriteExponentialGolombCode(uint(2*v - 1))
	} else {
		w.WriteExponentialGolombCode(uint(-2 * v))
	}
}

// Aligned reports whether the next bit starts a byte.
func (w *GolombBitWriter) Aligned() bool {
	return w.used == 0
}

// WriteBytes requires an aligned writer.
func (w *GolombBitWriter) WriteBytes(p []byte) {
	if !w.Aligned() {
		for _, b := range p {
			w.WriteBits(uint(b), 8)
		}
		return
	}
	w.buf.Write(p)
}

// WriteTrailingBits appends the stop bit and zero pads to a byte boundary.
func (w *GolombBitWriter) WriteTrailingBits() {
	w.WriteBit(1)
	for !w.Aligned() {
		w.WriteBit(0)
	}
}

// Bytes returns the written bytes, zero padding a partial last byte.
func (w *GolombBitWriter) Bytes() []byte {
	out := bytes.Clone(w.buf.Bytes())
	if w.used > 0 {
		out = append(out, w.cur<<(8-w.used))
	}
	return out
}
