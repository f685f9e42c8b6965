package camera

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
)

type prometheusDesc struct {
	Samples struct {
		Received, Dropped *prometheus.Desc
	}
	Frames, Recordings, CaptureErrors, RecordState, PreviewState *prometheus.Desc

	Process struct {
		CPU, RSS *prometheus.Desc
	}
}

func (d *prometheusDesc) init(device string) {
	labels := prometheus.Labels{"device": device}
	d.Samples.Received = prometheus.NewDesc("camera_samples_received_total", "Samples delivered by the pipeline", nil, labels)
	d.Samples.Dropped = prometheus.NewDesc("camera_samples_dropped_total", "Samples not forwarded to preview or stream", nil, labels)
	d.Frames = prometheus.NewDesc("camera_frames_total", "Frames forwarded", []string{"destination"}, labels)
	d.Recordings = prometheus.NewDesc("camera_recordings_total", "Recordings confirmed by the pipeline", []string{"event"}, labels)
	d.CaptureErrors = prometheus.NewDesc("camera_capture_errors_total", "Capture errors reported by the pipeline", nil, labels)
	d.RecordState = prometheus.NewDesc("camera_record_state", "Record state (0 not started, 1 starting, 2 running, 3 stopping)", nil, labels)
	d.PreviewState = prometheus.NewDesc("camera_preview_state", "Preview state (0 not started, 1 starting, 2 running, 3 paused, 4 stopping)", nil, labels)
	d.Process.CPU = prometheus.NewDesc("camera_process_cpu_seconds_total", "CPU time spent by the capture process", []string{"mode"}, labels)
	d.Process.RSS = prometheus.NewDesc("camera_process_resident_memory_bytes", "Resident memory of the capture process", nil, labels)
}

// Collector exposes a CaptureController to prometheus.
type Collector struct {
	desc       prometheusDesc
	controller *CaptureController
	process    *process.Process
}

func NewCollector(device string, controller *CaptureController) *Collector {
	c := &Collector{controller: controller}
	c.desc.init(device)
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		c.process = p
	} else {
		controller.Warn("process metrics disabled", "error", err)
	}
	return c
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	desc := &c.desc
	ch <- desc.Samples.Received
	ch <- desc.Samples.Dropped
	ch <- desc.Frames
	ch <- desc.Recordings
	ch <- desc.CaptureErrors
	ch <- desc.RecordState
	ch <- desc.PreviewState
	ch <- desc.Process.CPU
	ch <- desc.Process.RSS
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	desc, s := &c.desc, &c.controller.Stats
	ch <- prometheus.MustNewConstMetric(desc.Samples.Received, prometheus.CounterValue, float64(s.SamplesReceived.Load()))
	ch <- prometheus.MustNewConstMetric(desc.Samples.Dropped, prometheus.CounterValue, float64(s.SamplesDropped.Load()))
	ch <- prometheus.MustNewConstMetric(desc.Frames, prometheus.CounterValue, float64(s.PreviewFrames.Load()), "preview")
	ch <- prometheus.MustNewConstMetric(desc.Frames, prometheus.CounterValue, float64(s.StreamFrames.Load()), "stream")
	ch <- prometheus.MustNewConstMetric(desc.Recordings, prometheus.CounterValue, float64(s.RecordingsStarted.Load()), "started")
	ch <- prometheus.MustNewConstMetric(desc.Recordings, prometheus.CounterValue, float64(s.RecordingsStopped.Load()), "stopped")
	ch <- prometheus.MustNewConstMetric(desc.CaptureErrors, prometheus.CounterValue, float64(s.CaptureErrors.Load()))
	ch <- prometheus.MustNewConstMetric(desc.RecordState, prometheus.GaugeValue, float64(c.controller.RecordState()))
	ch <- prometheus.MustNewConstMetric(desc.PreviewState, prometheus.GaugeValue, float64(c.controller.PreviewState()))
	if c.process == nil {
		return
	}
	if times, err := c.process.Times(); err == nil {
		ch <- prometheus.MustNewConstMetric(desc.Process.CPU, prometheus.CounterValue, times.User, "user")
		ch <- prometheus.MustNewConstMetric(desc.Process.CPU, prometheus.CounterValue, times.System, "system")
	}
	if mem, err := c.process.MemoryInfo(); err == nil {
		ch <- prometheus.MustNewConstMetric(desc.Process.RSS, prometheus.GaugeValue, float64(mem.RSS))
	}
}
