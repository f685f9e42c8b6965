package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/gorm"
	camera "m7s.live/camera/v5"
	"m7s.live/camera/v5/pkg/config"
	"m7s.live/camera/v5/pkg/db"
	mp4 "m7s.live/camera/v5/plugin/mp4/pkg"
)

var _ camera.RecordStore = (*Catalog)(nil)

// Catalog keeps one row per finished file recording.
type Catalog struct {
	*slog.Logger
	DB *gorm.DB
}

func Open(conf config.Catalog, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gdb, err := db.Open(conf.DBType, conf.DSN, nil)
	if err != nil {
		return nil, err
	}
	if err = gdb.AutoMigrate(&RecordStream{}); err != nil {
		return nil, err
	}
	return &Catalog{Logger: logger.With("catalog", conf.DSN), DB: gdb}, nil
}

// SaveRecording stores info. The file must exist; codec details are taken
// from the file itself when it can be probed.
func (c *Catalog) SaveRecording(ctx context.Context, info *camera.RecordingInfo) error {
	if info == nil || info.Path == "" {
		return errors.New("recording without path")
	}
	stream := &RecordStream{
		StartTime:  info.StartTime,
		EndTime:    info.EndTime,
		FilePath:   info.Path,
		VideoCodec: info.Codec,
		Width:      info.Width,
		Height:     info.Height,
		Duration:   info.Duration,
		Timed:      info.Timed,
	}
	stat, err := os.Stat(info.Path)
	if err != nil {
		return fmt.Errorf("recording file: %w", err)
	}
	stream.Size = stat.Size()
	if probe, err := mp4.Probe(info.Path); err != nil {
		c.Warn("probe recording", "path", info.Path, "error", err)
	} else {
		for _, track := range probe.Tracks {
			switch track.Handler {
			case "vide":
				stream.VideoCodec = track.Codec
				if stream.Width == 0 {
					stream.Width, stream.Height = uint32(track.Width), uint32(track.Height)
				}
			case "soun":
				stream.AudioCodec = track.Codec
			}
		}
		if probe.Duration > 0 {
			stream.Duration = probe.Duration
		}
	}
	if err = c.DB.WithContext(ctx).Create(stream).Error; err != nil {
		return err
	}
	c.Info("recording saved", "id", stream.ID, "path", stream.FilePath, "duration", stream.Duration)
	return nil
}

// List returns the recordings overlapping [start, end), oldest first.
func (c *Catalog) List(ctx context.Context, start, end time.Time) (streams []*RecordStream, err error) {
	err = c.DB.WithContext(ctx).Order("start_time").Find(&streams, "end_time>? AND start_time<?", start, end).Error
	return
}

func (c *Catalog) Get(ctx context.Context, id uint) (*RecordStream, error) {
	var stream RecordStream
	if err := c.DB.WithContext(ctx).First(&stream, id).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

func (c *Catalog) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
