package camera

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	c, _ := newTestController(t, newFakeEngine())
	c.Stats.SamplesReceived.Add(3)
	c.Stats.StreamFrames.Add(2)
	collector := NewCollector("cam0", c)
	expected := `
# HELP camera_frames_total Frames forwarded
# TYPE camera_frames_total counter
camera_frames_total{destination="preview",device="cam0"} 0
camera_frames_total{destination="stream",device="cam0"} 2
# HELP camera_record_state Record state (0 not started, 1 starting, 2 running, 3 stopping)
# TYPE camera_record_state gauge
camera_record_state{device="cam0"} 0
# HELP camera_samples_received_total Samples delivered by the pipeline
# TYPE camera_samples_received_total counter
camera_samples_received_total{device="cam0"} 3
`
	if err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"camera_frames_total", "camera_record_state", "camera_samples_received_total"); err != nil {
		t.Error(err)
	}
	if n := testutil.CollectAndCount(collector, "camera_process_resident_memory_bytes"); n != 1 {
		t.Errorf("rss metrics = %d", n)
	}
}
