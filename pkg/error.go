package pkg

import "errors"

var (
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrSinkConfiguration = errors.New("sink configuration failed")
	ErrNoAudioEncoder    = errors.New("no audio encoder available")
	ErrNotInitialized    = errors.New("capture engine not initialized")
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrPreviewNotRunning = errors.New("preview not running")
	ErrDisposed          = errors.New("disposed")
	ErrRecordFailed      = errors.New("record failed")
	ErrLockBuffer        = errors.New("lock buffer")
)
