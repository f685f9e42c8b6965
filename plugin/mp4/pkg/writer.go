package mp4

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/bluenviron/mediacommon/pkg/codecs/h264"
	"github.com/deepch/vdk/codec/aacparser"
	gocodec "github.com/yapingcat/gomedia/go-codec"
	"m7s.live/camera/v5/pkg/codec"
	"m7s.live/camera/v5/pkg/util"
)

// Timescale of every track written by FileWriter.
const Timescale = 1000

// fragments are cut once they span this many track ticks
const fragmentSpan = 1000

var ErrWriterClosed = errors.New("mp4 writer closed")

type TrackContext struct {
	TrackId  uint32
	fragment *mp4.Fragment
	ts       uint32 // start of the open fragment
	abs      uint32 // first timestamp of the track
	absSet   bool
	last     uint32
	dur      uint32
}

func (m *TrackContext) push(w *FileWriter, dt uint32, data []byte, flags uint32) (err error) {
	if !m.absSet {
		m.abs = dt
		m.absSet = true
	}
	dt -= m.abs
	if m.fragment != nil && dt > m.last {
		m.dur = dt - m.last
	}
	if m.fragment != nil && dt-m.ts > fragmentSpan {
		if err = m.flush(w); err != nil {
			return
		}
	}
	if m.fragment == nil {
		w.seqNumber++
		if m.fragment, err = mp4.CreateFragment(w.seqNumber, m.TrackId); err != nil {
			return
		}
		m.ts = dt
	}
	m.fragment.AddFullSample(mp4.FullSample{
		Data:       data,
		DecodeTime: uint64(dt),
		Sample: mp4.Sample{
			Flags: flags,
			Dur:   m.dur,
			Size:  uint32(len(data)),
		},
	})
	m.last = dt
	return
}

func (m *TrackContext) flush(w io.Writer) (err error) {
	if m.fragment == nil {
		return
	}
	err = m.fragment.Encode(w)
	m.fragment = nil
	return
}

// FileWriter writes H.264 and AAC into a fragmented MP4 file. Fragments are
// self contained so a file cut short by a crash stays playable up to the
// last flushed fragment.
type FileWriter struct {
	path         string
	file         *os.File
	buf          *bufio.Writer
	seqNumber    uint32
	video, audio *TrackContext
	closed       bool
}

// NewFileWriter creates path and writes the init segment. audio may be nil.
func NewFileWriter(path string, video *codec.H264Ctx, audio *codec.AACCtx, fps int) (w *FileWriter, err error) {
	if video == nil {
		return nil, fmt.Errorf("mp4 %s: no video track", path)
	}
	initSegment := mp4.CreateEmptyInit()
	initSegment.Moov.Mvhd.NextTrackID = 1
	w = &FileWriter{path: path}
	moov := initSegment.Moov
	vtrak := w.addTrack(moov, "video", &w.video)
	if err = vtrak.SetAVCDescriptor("avc1", video.RecordInfo.SPS, video.RecordInfo.PPS, true); err != nil {
		return nil, err
	}
	w.video.dur = uint32(Timescale / max(fps, 1))
	if audio != nil {
		atrak := w.addTrack(moov, "audio", &w.audio)
		if err = atrak.SetAACDescriptor(byte(audio.Config.ObjectType), audio.SampleRate()); err != nil {
			return nil, err
		}
		w.audio.dur = uint32(codec.AACSamplesPerFrame * Timescale / audio.SampleRate())
	}
	if w.file, err = os.Create(path); err != nil {
		return nil, err
	}
	w.buf = bufio.NewWriter(w.file)
	if err = initSegment.Encode(w.buf); err != nil {
		w.file.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWriter) addTrack(moov *mp4.MoovBox, mediaType string, track **TrackContext) *mp4.TrakBox {
	trackID := moov.Mvhd.NextTrackID
	moov.Mvhd.NextTrackID++
	trak := mp4.CreateEmptyTrak(trackID, Timescale, mediaType, "und")
	moov.AddChild(trak)
	moov.Mvex.AddChild(mp4.CreateTrex(trackID))
	*track = &TrackContext{TrackId: trackID}
	return trak
}

func (w *FileWriter) Path() string {
	return w.path
}

// WriteVideo appends one Annex-B access unit. Parameter sets are dropped
// since they live in the avcC box.
func (w *FileWriter) WriteVideo(annexB []byte, ts time.Duration) error {
	if w.closed {
		return ErrWriterClosed
	}
	var au [][]byte
	gocodec.SplitFrame(annexB, func(nalu []byte) bool {
		switch gocodec.H264_NAL_TYPE(nalu[0] & 0x1F) {
		case gocodec.H264_NAL_SPS, gocodec.H264_NAL_PPS, gocodec.H264_NAL_AUD:
		default:
			au = append(au, nalu)
		}
		return true
	})
	if len(au) == 0 {
		return nil
	}
	sample, err := h264.AVCCMarshal(au)
	if err != nil {
		return err
	}
	flags := util.Conditional(h264.IDRPresent(au), mp4.SyncSampleFlags, mp4.NonSyncSampleFlags)
	return w.video.push(w, uint32(ts/time.Millisecond), sample, flags)
}

// WriteAudio appends one ADTS frame.
func (w *FileWriter) WriteAudio(adts []byte, ts time.Duration) error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.audio == nil {
		return nil
	}
	_, hdrlen, framelen, _, err := aacparser.ParseADTSHeader(adts)
	if err != nil {
		return err
	}
	if framelen > len(adts) || hdrlen >= framelen {
		return fmt.Errorf("mp4 %s: truncated adts frame", w.path)
	}
	raw := append([]byte(nil), adts[hdrlen:framelen]...)
	return w.audio.push(w, uint32(ts/time.Millisecond), raw, mp4.SyncSampleFlags)
}

// Write is used by the tracks to encode fragments.
func (w *FileWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close flushes the open fragments and closes the file.
func (w *FileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	errs := []error{w.video.flush(w)}
	if w.audio != nil {
		errs = append(errs, w.audio.flush(w))
	}
	errs = append(errs, w.buf.Flush(), w.file.Close())
	return errors.Join(errs...)
}
