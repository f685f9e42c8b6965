package mp4

import (
	"fmt"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

type TrackInfo struct {
	ID         uint32
	Handler    string
	Codec      string
	Timescale  uint32
	Duration   time.Duration
	Samples    int
	Width      uint16
	Height     uint16
	SampleRate uint16
	Channels   uint16
}

// Info summarizes a finished recording.
type Info struct {
	Fragmented bool
	Duration   time.Duration
	Tracks     []TrackInfo
}

// Video returns the first video track, or nil.
func (i *Info) Video() *TrackInfo {
	for n := range i.Tracks {
		if i.Tracks[n].Handler == "vide" {
			return &i.Tracks[n]
		}
	}
	return nil
}

// Probe reads the track layout and duration of an MP4 file. Both
// progressive and fragmented files are understood.
func Probe(path string) (info *Info, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	file, err := mp4.DecodeFile(f)
	if err != nil {
		return nil, fmt.Errorf("mp4 %s: %w", path, err)
	}
	moov := file.Moov
	info = &Info{}
	if moov == nil && file.Init != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("mp4 %s: no moov box", path)
	}
	info.Fragmented = moov.Mvex != nil || len(file.Segments) > 0
	index := make(map[uint32]int, len(moov.Traks))
	for _, trak := range moov.Traks {
		track := TrackInfo{ID: trak.Tkhd.TrackID}
		if mdia := trak.Mdia; mdia != nil {
			if mdia.Hdlr != nil {
				track.Handler = mdia.Hdlr.HandlerType
			}
			if mdia.Mdhd != nil {
				track.Timescale = mdia.Mdhd.Timescale
				track.Duration = ticksToDuration(mdia.Mdhd.Duration, track.Timescale)
			}
			if stsd := mdia.Minf.Stbl.Stsd; stsd != nil {
				switch {
				case stsd.AvcX != nil:
					track.Codec = stsd.AvcX.Type()
					track.Width, track.Height = stsd.AvcX.Width, stsd.AvcX.Height
				case stsd.Mp4a != nil:
					track.Codec = stsd.Mp4a.Type()
					track.SampleRate, track.Channels = stsd.Mp4a.SampleRate, stsd.Mp4a.ChannelCount
				}
			}
			if stsz := mdia.Minf.Stbl.Stsz; stsz != nil {
				track.Samples = int(stsz.SampleNumber)
			}
		}
		index[track.ID] = len(info.Tracks)
		info.Tracks = append(info.Tracks, track)
	}
	if info.Fragmented && moov.Mvex != nil {
		ends := make(map[uint32]uint64)
		for _, seg := range file.Segments {
			for _, frag := range seg.Fragments {
				traf := frag.Moof.Traf
				if traf == nil {
					continue
				}
				trackID := traf.Tfhd.TrackID
				var trex *mp4.TrexBox
				for _, t := range moov.Mvex.Trexs {
					if t.TrackID == trackID {
						trex = t
					}
				}
				if trex == nil {
					continue
				}
				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("mp4 %s: fragment %d: %w", path, frag.Moof.Mfhd.SequenceNumber, err)
				}
				if n := len(samples); n > 0 {
					last := samples[n-1]
					ends[trackID] = max(ends[trackID], last.DecodeTime+uint64(last.Dur))
				}
				if i, ok := index[trackID]; ok {
					info.Tracks[i].Samples += len(samples)
				}
			}
		}
		for id, end := range ends {
			if i, ok := index[id]; ok {
				info.Tracks[i].Duration = ticksToDuration(end, info.Tracks[i].Timescale)
			}
		}
	}
	for _, track := range info.Tracks {
		info.Duration = max(info.Duration, track.Duration)
	}
	return
}

func ticksToDuration(ticks uint64, timescale uint32) time.Duration {
	if timescale == 0 {
		return 0
	}
	return time.Duration(ticks) * time.Second / time.Duration(timescale)
}
