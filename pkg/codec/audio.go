package codec

import (
	"fmt"

	"github.com/deepch/vdk/codec/aacparser"
)

// AACSamplesPerFrame is the number of PCM samples coded by one AAC-LC frame.
const AACSamplesPerFrame = 1024

const adtsHeaderLength = 7

var aacSampleRates = []int{96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050, 16000, 12000, 11025, 8000, 7350}

// silent raw_data_block for a single channel element
var aacSilentPayload = []byte{0x01, 0x40, 0x20, 0x07}

type AACCtx struct {
	aacparser.CodecData
}

// NewAACCtx builds an AAC-LC configuration. Only the MPEG-4 standard sample
// rates and one or two channels are accepted.
func NewAACCtx(sampleRate, channels int) (*AACCtx, error) {
	index := -1
	for i, rate := range aacSampleRates {
		if rate == sampleRate {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("unsupported aac sample rate %d", sampleRate)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported aac channel count %d", channels)
	}
	data, err := aacparser.NewCodecDataFromMPEG4AudioConfig(aacparser.MPEG4AudioConfig{
		ObjectType:      aacparser.AOT_AAC_LC,
		SampleRateIndex: uint(index),
		ChannelConfig:   uint(channels),
	})
	if err != nil {
		return nil, err
	}
	return &AACCtx{data}, nil
}

// ParseADTS reads the configuration of the first ADTS frame in b.
func ParseADTS(b []byte) (ctx *AACCtx, frameLen int, err error) {
	config, _, frameLen, _, err := aacparser.ParseADTSHeader(b)
	if err != nil {
		return
	}
	data, err := aacparser.NewCodecDataFromMPEG4AudioConfig(config)
	if err != nil {
		return
	}
	return &AACCtx{data}, frameLen, nil
}

// ADTS wraps one raw AAC frame in an ADTS header.
func (ctx *AACCtx) ADTS(raw []byte) []byte {
	frame := make([]byte, adtsHeaderLength+len(raw))
	aacparser.FillADTSHeader(frame, ctx.Config, AACSamplesPerFrame, len(raw))
	copy(frame[adtsHeaderLength:], raw)
	return frame
}

// SilentFrame returns one ADTS frame of silence.
func (ctx *AACCtx) SilentFrame() []byte {
	return ctx.ADTS(aacSilentPayload)
}

// FrameDuration is the length of one frame in microseconds.
func (ctx *AACCtx) FrameDuration() int64 {
	return int64(AACSamplesPerFrame) * 1_000_000 / int64(ctx.SampleRate())
}

func (ctx *AACCtx) GetChannels() int {
	return ctx.ChannelLayout().Count()
}

func (ctx *AACCtx) GetSampleRate() int {
	return ctx.SampleRate()
}

func (ctx *AACCtx) GetBase() ICodecCtx {
	return ctx
}

func (ctx *AACCtx) GetInfo() string {
	return fmt.Sprintf("sample rate: %d, channels: %d, object type: %d", ctx.SampleRate(), ctx.GetChannels(), ctx.Config.ObjectType)
}

func (*AACCtx) FourCC() FourCC {
	return FourCC_MP4A
}
