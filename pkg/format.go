package pkg

import (
	"fmt"
	"maps"
)

type (
	MajorType    string
	Subtype      string
	AttributeKey string
)

const (
	MajorTypeVideo MajorType = "video"
	MajorTypeAudio MajorType = "audio"
)

const (
	SubtypeH264   Subtype = "H264"
	SubtypeHEVC   Subtype = "HEVC"
	SubtypeRGB32  Subtype = "RGB32"
	SubtypeARGB32 Subtype = "ARGB32"
	SubtypeNV12   Subtype = "NV12"
	SubtypeYUY2   Subtype = "YUY2"
	SubtypeMJPG   Subtype = "MJPG"
	SubtypeAAC    Subtype = "AAC"
	SubtypePCM    Subtype = "PCM"
)

func (s Subtype) Compressed() bool {
	switch s {
	case SubtypeH264, SubtypeHEVC, SubtypeMJPG, SubtypeAAC:
		return true
	}
	return false
}

const (
	AttrMajorType             AttributeKey = "major_type"
	AttrSubtype               AttributeKey = "subtype"
	AttrFrameSize             AttributeKey = "frame_size"
	AttrFrameRate             AttributeKey = "frame_rate"
	AttrAvgBitrate            AttributeKey = "avg_bitrate"
	AttrAllSamplesIndependent AttributeKey = "all_samples_independent"
	AttrAudioSampleRate       AttributeKey = "audio_samples_per_second"
	AttrAudioChannels         AttributeKey = "audio_num_channels"
	AttrAudioBytesPerSecond   AttributeKey = "audio_avg_bytes_per_second"
)

type (
	Size struct {
		Width, Height uint32
	}
	Ratio struct {
		Numerator, Denominator uint32
	}
)

func (r Ratio) Float() float64 {
	if r.Denominator == 0 {
		return 0
	}
	return float64(r.Numerator) / float64(r.Denominator)
}

// MediaType is a format descriptor: a bag of well-known attributes.
// It is not safe for concurrent mutation; sinks receive their own clone.
type MediaType struct {
	attrs map[AttributeKey]any
}

func NewMediaType(major MajorType, subtype Subtype) *MediaType {
	mt := &MediaType{attrs: make(map[AttributeKey]any)}
	mt.attrs[AttrMajorType] = major
	mt.attrs[AttrSubtype] = subtype
	return mt
}

func NewVideoType(subtype Subtype, width, height, fps uint32) *MediaType {
	mt := NewMediaType(MajorTypeVideo, subtype)
	mt.SetFrameSize(width, height)
	mt.SetFrameRate(fps, 1)
	return mt
}

func NewAudioType(subtype Subtype, sampleRate, channels, bytesPerSecond uint32) *MediaType {
	mt := NewMediaType(MajorTypeAudio, subtype)
	mt.attrs[AttrAudioSampleRate] = sampleRate
	mt.attrs[AttrAudioChannels] = channels
	mt.SetAudioBytesPerSecond(bytesPerSecond)
	return mt
}

// Clone copies every attribute into a new descriptor.
func (mt *MediaType) Clone() *MediaType {
	if mt == nil {
		return nil
	}
	return &MediaType{attrs: maps.Clone(mt.attrs)}
}

func (mt *MediaType) Get(key AttributeKey) (v any, ok bool) {
	if mt == nil {
		return nil, false
	}
	v, ok = mt.attrs[key]
	return
}

func (mt *MediaType) Set(key AttributeKey, v any) {
	if mt.attrs == nil {
		mt.attrs = make(map[AttributeKey]any)
	}
	mt.attrs[key] = v
}

func (mt *MediaType) MajorType() MajorType {
	v, _ := mt.Get(AttrMajorType)
	major, _ := v.(MajorType)
	return major
}

func (mt *MediaType) Subtype() Subtype {
	v, _ := mt.Get(AttrSubtype)
	subtype, _ := v.(Subtype)
	return subtype
}

func (mt *MediaType) SetSubtype(subtype Subtype) {
	mt.Set(AttrSubtype, subtype)
}

func (mt *MediaType) FrameSize() (width, height uint32) {
	v, _ := mt.Get(AttrFrameSize)
	size, _ := v.(Size)
	return size.Width, size.Height
}

func (mt *MediaType) SetFrameSize(width, height uint32) {
	mt.Set(AttrFrameSize, Size{width, height})
}

func (mt *MediaType) FrameRate() Ratio {
	v, _ := mt.Get(AttrFrameRate)
	r, _ := v.(Ratio)
	return r
}

func (mt *MediaType) SetFrameRate(numerator, denominator uint32) {
	mt.Set(AttrFrameRate, Ratio{numerator, denominator})
}

func (mt *MediaType) Bitrate() uint32 {
	v, _ := mt.Get(AttrAvgBitrate)
	b, _ := v.(uint32)
	return b
}

func (mt *MediaType) SetBitrate(bitrate uint32) {
	mt.Set(AttrAvgBitrate, bitrate)
}

func (mt *MediaType) AllSamplesIndependent() bool {
	v, _ := mt.Get(AttrAllSamplesIndependent)
	b, _ := v.(bool)
	return b
}

func (mt *MediaType) SetAllSamplesIndependent(independent bool) {
	mt.Set(AttrAllSamplesIndependent, independent)
}

func (mt *MediaType) SampleRate() uint32 {
	v, _ := mt.Get(AttrAudioSampleRate)
	r, _ := v.(uint32)
	return r
}

func (mt *MediaType) Channels() uint32 {
	v, _ := mt.Get(AttrAudioChannels)
	c, _ := v.(uint32)
	return c
}

func (mt *MediaType) AudioBytesPerSecond() uint32 {
	v, _ := mt.Get(AttrAudioBytesPerSecond)
	b, _ := v.(uint32)
	return b
}

func (mt *MediaType) SetAudioBytesPerSecond(bytesPerSecond uint32) {
	mt.Set(AttrAudioBytesPerSecond, bytesPerSecond)
}

func (mt *MediaType) String() string {
	if mt == nil {
		return "<nil>"
	}
	if mt.MajorType() == MajorTypeAudio {
		return fmt.Sprintf("%s %dHz %dch", mt.Subtype(), mt.SampleRate(), mt.Channels())
	}
	w, h := mt.FrameSize()
	return fmt.Sprintf("%s %dx%d@%.2f", mt.Subtype(), w, h, mt.FrameRate().Float())
}
