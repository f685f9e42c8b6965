package record

import "time"

type RecordStream struct {
	ID                     uint `gorm:"primarykey"`
	StartTime, EndTime     time.Time
	FilePath               string `gorm:"index"`
	VideoCodec, AudioCodec string
	Width, Height          uint32
	Duration               time.Duration
	Timed                  bool
	Size                   int64
}
