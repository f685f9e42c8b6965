package camera

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"path/filepath"
	"strconv"

	. "m7s.live/camera/v5/pkg"
)

type StateResponse struct {
	Record       string `json:"record"`
	Preview      string `json:"preview"`
	RecordWidth  uint32 `json:"recordWidth"`
	RecordHeight uint32 `json:"recordHeight"`
	RecordFormat string `json:"recordFormat"`
}

func (c *CaptureController) RegisterHandler() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /api/state":           c.apiState,
		"POST /api/preview/start":  c.apiStartPreview,
		"POST /api/preview/stop":   c.apiPreviewAction(c.StopPreview),
		"POST /api/preview/pause":  c.apiPreviewAction(c.PausePreview),
		"POST /api/preview/resume": c.apiPreviewAction(c.ResumePreview),
		"GET /api/preview/frame":   c.apiPreviewFrame,
		"POST /api/record/start":   c.apiStartRecord,
		"POST /api/record/stop":    c.apiStopRecord,
		"POST /api/stream/start":   c.apiStartStream,
		"POST /api/stream/stop":    c.apiStopStream,
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrSinkConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidOperation), errors.Is(err, ErrDuplicateRequest), errors.Is(err, ErrPreviewNotRunning):
		return http.StatusConflict
	case errors.Is(err, ErrNotInitialized), errors.Is(err, ErrDisposed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeResult(w http.ResponseWriter, v any, err error) {
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (c *CaptureController) apiState(w http.ResponseWriter, r *http.Request) {
	width, height := c.GetRecordedVideoDimensions()
	writeResult(w, StateResponse{
		Record:       c.RecordState().String(),
		Preview:      c.PreviewState().String(),
		RecordWidth:  width,
		RecordHeight: height,
		RecordFormat: c.GetRecordedVideoFormatName(),
	}, nil)
}

func (c *CaptureController) apiStartPreview(w http.ResponseWriter, r *http.Request) {
	width, height, err := c.StartPreview(r.Context())
	writeResult(w, map[string]uint32{"width": width, "height": height}, err)
}

func (c *CaptureController) apiPreviewAction(action func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, c.PreviewState().String(), action())
	}
}

// apiPreviewFrame encodes the latest preview frame as PNG.
func (c *CaptureController) apiPreviewFrame(w http.ResponseWriter, r *http.Request) {
	frame, width, height := c.CopyPreviewFrame(nil)
	pixels := int(width) * int(height)
	if pixels == 0 || len(frame) < pixels*4 {
		http.Error(w, ErrPreviewNotRunning.Error(), http.StatusNotFound)
		return
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := range pixels {
		p := frame[i*4:]
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = p[2], p[1], p[0], 0xff
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		c.Debug("encode preview frame", "error", err)
	}
}

// apiStartRecord answers ?path=out.mp4&max=ms; max defaults to -1 (until stopped).
// path is relative to the record directory.
func (c *CaptureController) apiStartRecord(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("path")
	if name == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}
	if !filepath.IsLocal(name) {
		http.Error(w, "path must stay inside the record directory", http.StatusBadRequest)
		return
	}
	path := filepath.Join(c.recordDir, name)
	maxDurationMs := int64(-1)
	if v := query.Get("max"); v != "" {
		var err error
		if maxDurationMs, err = strconv.ParseInt(v, 10, 64); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	writeResult(w, map[string]string{"path": path}, c.StartRecording(r.Context(), path, maxDurationMs))
}

func (c *CaptureController) apiStopRecord(w http.ResponseWriter, r *http.Request) {
	path, err := c.StopRecording(r.Context())
	writeResult(w, map[string]string{"path": path}, err)
}

func (c *CaptureController) apiStartStream(w http.ResponseWriter, r *http.Request) {
	writeResult(w, c.RecordState().String(), c.StartImageStream(r.Context()))
}

func (c *CaptureController) apiStopStream(w http.ResponseWriter, r *http.Request) {
	writeResult(w, c.RecordState().String(), c.StopImageStream(r.Context()))
}
