package camera

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	. "m7s.live/camera/v5/pkg"
)

func newAPIServer(t *testing.T) (*httptest.Server, *CaptureController) {
	t.Helper()
	c, _ := newTestController(t, newFakeEngine())
	return serveAPI(t, c), c
}

func serveAPI(t *testing.T, c *CaptureController) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range c.RegisterHandler() {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestAPIRecording(t *testing.T) {
	server, c := newAPIServer(t)
	if res := post(t, server.URL+"/api/record/start"); res.StatusCode != http.StatusBadRequest {
		t.Errorf("start without path: %d", res.StatusCode)
	}
	if res := post(t, server.URL+"/api/record/start?path=clip.mp4&max=soon"); res.StatusCode != http.StatusBadRequest {
		t.Errorf("start with bad max: %d", res.StatusCode)
	}
	if res := post(t, server.URL+"/api/record/stop"); res.StatusCode != http.StatusConflict {
		t.Errorf("stop while idle: %d", res.StatusCode)
	}
	if res := post(t, server.URL+"/api/record/start?path=clip.mp4"); res.StatusCode != http.StatusOK {
		t.Fatalf("start: %d", res.StatusCode)
	}
	if c.RecordState() != RecordStateRunning {
		t.Fatalf("state = %s", c.RecordState())
	}

	res, err := http.Get(server.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	var state StateResponse
	json.NewDecoder(res.Body).Decode(&state)
	res.Body.Close()
	if state.Record != "running" || state.RecordFormat != "H264" || state.RecordWidth != 1280 {
		t.Errorf("state = %+v", state)
	}

	res = post(t, server.URL+"/api/record/stop")
	var stopped map[string]string
	json.NewDecoder(res.Body).Decode(&stopped)
	if res.StatusCode != http.StatusOK || stopped["path"] != "clip.mp4" {
		t.Errorf("stop: %d %v", res.StatusCode, stopped)
	}
}

func TestAPIPreviewFrameBeforePreview(t *testing.T) {
	server, _ := newAPIServer(t)
	res, err := http.Get(server.URL + "/api/preview/frame")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", res.StatusCode)
	}
	if res := post(t, server.URL+"/api/preview/pause"); res.StatusCode != http.StatusConflict {
		t.Errorf("pause while stopped: %d", res.StatusCode)
	}
}

func TestAPIPreviewFrameSizeOverflow(t *testing.T) {
	engine := newFakeEngine()
	c := NewCaptureController(engine, NewVideoType(SubtypeNV12, 32768, 32768, 30), &fakeApp{}, testConfig(), WithPreviewTarget(&fakeTarget{}))
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	server := serveAPI(t, c)
	done := make(chan error, 1)
	go func() {
		_, _, err := c.StartPreview(context.Background())
		done <- err
	}()
	waitFor(t, "preview starting", func() bool { return c.PreviewState() == PreviewStateStarting })
	c.listener.OnSample(&fakeSample{ticks: 10, buf: &fakeBuffer{data: make([]byte, 16)}})
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	// 32768*32768*4 wraps to zero in uint32
	res, err := http.Get(server.URL + "/api/preview/frame")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", res.StatusCode)
	}
}

func TestAPIRecordPathStaysInRecordDir(t *testing.T) {
	engine := newFakeEngine()
	conf := testConfig()
	conf.Record.RecordDir = "/srv/recordings"
	c := NewCaptureController(engine, sourceType(), nil, conf)
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	server := serveAPI(t, c)
	for _, name := range []string{"../escape.mp4", "/etc/escape.mp4", "day/../../escape.mp4"} {
		if res := post(t, server.URL+"/api/record/start?path="+url.QueryEscape(name)); res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d", name, res.StatusCode)
		}
	}
	if starts, _ := engine.counts(); starts != 0 {
		t.Fatalf("engine started %d times", starts)
	}
	if res := post(t, server.URL+"/api/record/start?path=day/clip.mp4"); res.StatusCode != http.StatusOK {
		t.Fatalf("start: %d", res.StatusCode)
	}
	want := filepath.Join("/srv/recordings", "day", "clip.mp4")
	if got := engine.sinks[SinkRecord].outputPath; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
