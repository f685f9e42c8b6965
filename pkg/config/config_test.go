package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	var engine Engine
	var conf Config
	conf.Parse(&engine, "TESTCAM")
	if engine.Preview.FPS != 30 || engine.Preview.Width != 640 {
		t.Errorf("unexpected preview defaults %+v", engine.Preview)
	}
	if !engine.Record.RecordAudio {
		t.Error("record audio should default to true")
	}
	if engine.StartTimeout != 10*time.Second {
		t.Errorf("expected 10s start timeout, got %v", engine.StartTimeout)
	}
	if engine.Record.FPS != 0 {
		t.Errorf("fps override should be unset, got %d", engine.Record.FPS)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TESTCAM_RECORD_VIDEOBITRATE", "4000000")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlText := "record:\n  fps: 25\n  videobitrate: 1000\n  recordaudio: false\nlog:\n  level: debug\nhttp:\n  listenaddr: \":9090\"\n"
	if err := os.WriteFile(path, []byte(yamlText), 0644); err != nil {
		t.Fatal(err)
	}
	var engine Engine
	c, err := Load(&engine, path, "TESTCAM")
	if err != nil {
		t.Fatal(err)
	}
	if src := c.Lookup("record.videobitrate").Source; src != SourceEnv {
		t.Errorf("bitrate source = %s", src)
	}
	if src := c.Lookup("record.fps").Source; src != SourceFile {
		t.Errorf("fps source = %s", src)
	}
	if src := c.Lookup("preview.width").Source; src != SourceDefault {
		t.Errorf("width source = %s", src)
	}
	if desc := c.Lookup("record.fps").Description(); desc != "frame rate override" {
		t.Errorf("fps description = %q", desc)
	}
	if c.Lookup("record.nothing") != nil {
		t.Error("lookup of unknown key")
	}
	if engine.Record.FPS != 25 {
		t.Errorf("expected fps 25 from file, got %d", engine.Record.FPS)
	}
	if engine.Record.VideoBitrate != 4000000 {
		t.Errorf("expected env bitrate, got %d", engine.Record.VideoBitrate)
	}
	if engine.Record.RecordAudio {
		t.Error("record audio should be disabled by file")
	}
	if engine.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", engine.Log.Level)
	}
	if engine.HTTP.ListenAddr != ":9090" {
		t.Errorf("expected :9090, got %q", engine.HTTP.ListenAddr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var engine Engine
	c, err := Load(&engine, filepath.Join(t.TempDir(), "missing.yaml"), "TESTCAM")
	if err != nil {
		t.Fatal(err)
	}
	if c.GetMap() == nil {
		t.Error("expected property map")
	}
	if engine.Catalog.DSN != "camera.db" {
		t.Errorf("unexpected dsn %q", engine.Catalog.DSN)
	}
}

func TestPreviewValidate(t *testing.T) {
	p := Preview{Width: 640, Height: 0, FPS: 30}
	if p.Validate() == nil {
		t.Error("expected error for zero height")
	}
	p.Height = 480
	if err := p.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"unitless duration": "starttimeout: 10\n",
		"bad number":        "virtual:\n  width: wide\n",
		"zero frame rate":   "virtual:\n  fps: 0\n",
		"scalar section":    "record: yes\n",
	} {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
		var engine Engine
		if _, err := Load(&engine, path, "TESTCAM"); err == nil {
			t.Errorf("%s: accepted", name)
		}
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TESTCAM_HTTP_WRITETIMEOUT", "250ms")
	var engine Engine
	if _, err := Load(&engine, "", "TESTCAM"); err != nil {
		t.Fatal(err)
	}
	if engine.HTTP.WriteTimeout != 250*time.Millisecond {
		t.Errorf("write timeout = %v", engine.HTTP.WriteTimeout)
	}
}
