package codec

import (
	"bytes"
	"fmt"

	"github.com/deepch/vdk/codec/h264parser"
)

type H264NALUType byte

func ParseH264NALUType(b byte) H264NALUType {
	return H264NALUType(b & 0x1F)
}

const (
	NALU_Non_IDR_Picture       H264NALUType = 1
	NALU_IDR_Picture           H264NALUType = 5
	NALU_SEI                   H264NALUType = 6
	NALU_SPS                   H264NALUType = 7
	NALU_PPS                   H264NALUType = 8
	NALU_Access_Unit_Delimiter H264NALUType = 9
)

var (
	NALU_Delimiter1 = []byte{0x00, 0x00, 0x01}
	NALU_Delimiter2 = []byte{0x00, 0x00, 0x00, 0x01}
)

// SplitH264 splits an Annex-B byte stream into NAL units without start codes.
func SplitH264(payload []byte) (nalus [][]byte) {
	for _, v := range bytes.SplitN(payload, NALU_Delimiter2, -1) {
		if len(v) == 0 {
			continue
		}
		for _, nalu := range bytes.SplitN(v, NALU_Delimiter1, -1) {
			if len(nalu) > 0 {
				nalus = append(nalus, nalu)
			}
		}
	}
	return
}

type H264Ctx struct {
	h264parser.CodecData
}

// NewH264Ctx validates a parameter set pair.
func NewH264Ctx(sps, pps []byte) (*H264Ctx, error) {
	data, err := h264parser.NewCodecDataFromSPSAndPPS(sps, pps)
	if err != nil {
		return nil, err
	}
	return &H264Ctx{data}, nil
}

// FindH264Ctx returns the codec context of the first SPS/PPS pair in an
// Annex-B access unit, or nil when the unit carries none.
func FindH264Ctx(annexB []byte) (*H264Ctx, error) {
	var sps, pps []byte
	for _, nalu := range SplitH264(annexB) {
		switch ParseH264NALUType(nalu[0]) {
		case NALU_SPS:
			sps = nalu
		case NALU_PPS:
			pps = nalu
		}
		if sps != nil && pps != nil {
			return NewH264Ctx(sps, pps)
		}
	}
	return nil, nil
}

func IsH264KeyFrame(annexB []byte) bool {
	for _, nalu := range SplitH264(annexB) {
		if ParseH264NALUType(nalu[0]) == NALU_IDR_Picture {
			return true
		}
	}
	return false
}

func (*H264Ctx) FourCC() FourCC {
	return FourCC_H264
}

func (ctx *H264Ctx) GetInfo() string {
	return fmt.Sprintf("resolution: %dx%d", ctx.Width(), ctx.Height())
}

func (ctx *H264Ctx) GetBase() ICodecCtx {
	return ctx
}
