package config

import (
	"errors"
	"fmt"
	"time"
)

// Record tunes recorded video. Zero values mean "keep the source value".
type Record struct {
	RecordDir    string `default:"recordings" desc:"directory for recordings started over http"`
	RecordAudio  bool   `default:"true" desc:"record audio track into the file"`
	FPS          uint32 `yaml:"fps" desc:"frame rate override"`
	VideoBitrate uint32 `desc:"video encoding bit rate"`
	AudioBitrate uint32 `desc:"audio encoding bytes per second"`
}

type Preview struct {
	Width  uint32 `default:"640" desc:"preview width"`
	Height uint32 `default:"480" desc:"preview height"`
	FPS    uint32 `yaml:"fps" default:"30" desc:"preview frame rate"`
}

type Log struct {
	Level     string `default:"info" desc:"log level (trace, debug, info, warn, error)"`
	Path      string `desc:"rotated log directory, empty disables file logging"`
	Size      uint64 `default:"1048576" desc:"log file size in bytes"`
	Formatter string `default:"2006-01-02T15" desc:"log file name layout"`
	MaxFiles  uint64 `default:"7" desc:"rotated files to keep"`
}

type Catalog struct {
	DBType string `default:"sqlite" desc:"database type"`
	DSN    string `default:"camera.db" desc:"database dsn, empty disables the catalog"`
}

type HTTP struct {
	ListenAddr   string        `default:":8080" desc:"image stream listen address"`
	GRPCAddr     string        `default:":50051" desc:"grpc listen address, empty to disable"`
	WriteTimeout time.Duration `default:"5s" desc:"websocket write timeout"`
}

// Virtual describes the software capture device.
type Virtual struct {
	Width      uint32 `default:"640" desc:"native frame width"`
	Height     uint32 `default:"480" desc:"native frame height"`
	FPS        uint32 `yaml:"fps" default:"30" desc:"native frame rate"`
	Audio      bool   `default:"true" desc:"offer an aac encoder"`
	SampleRate uint32 `default:"48000" desc:"aac sample rate"`
	Channels   uint32 `default:"2" desc:"aac channels"`
}

func (v *Virtual) Validate() error {
	if v.Width == 0 || v.Height == 0 || v.FPS == 0 {
		return fmt.Errorf("invalid virtual device %dx%d@%d", v.Width, v.Height, v.FPS)
	}
	return nil
}

type Engine struct {
	Device       string        `default:"virtual" desc:"capture device id"`
	StartTimeout time.Duration `default:"10s" desc:"wait for start/stop confirmation"`
	Virtual      Virtual
	Record       Record
	Preview      Preview
	Log          Log
	Catalog      Catalog
	HTTP         HTTP
}

func (p *Preview) Validate() error {
	if p.Width == 0 || p.Height == 0 {
		return fmt.Errorf("invalid preview size %dx%d", p.Width, p.Height)
	}
	if p.FPS == 0 {
		return fmt.Errorf("invalid preview fps %d", p.FPS)
	}
	return nil
}

func (e *Engine) Validate() error {
	if e.StartTimeout <= 0 {
		return fmt.Errorf("invalid start timeout %v", e.StartTimeout)
	}
	return errors.Join(e.Virtual.Validate(), e.Preview.Validate())
}
