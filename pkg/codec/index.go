package codec

import "encoding/binary"

type ICodecCtx interface {
	FourCC() FourCC
	GetInfo() string
	GetBase() ICodecCtx
}

type FourCC [4]byte

var (
	FourCC_H264 = FourCC{'a', 'v', 'c', '1'}
	FourCC_MP4A = FourCC{'m', 'p', '4', 'a'}
)

func (f *FourCC) String() string {
	return string(f[:])
}

func (f *FourCC) Uint32() uint32 {
	return binary.BigEndian.Uint32(f[:])
}
