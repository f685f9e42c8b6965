package plugin_logrotate

import (
	"io"
	"log/slog"

	"github.com/alchemy/rotoslog"
	"github.com/phsym/console-slog"
	"m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
	"m7s.live/camera/v5/plugin/logrotate/pb"
)

const timeFormat = "2006-01-02 15:04:05.000"

// LogRotatePlugin writes the log into rotated files under conf.Path and
// serves them over gRPC and its HTTP gateway.
type LogRotatePlugin struct {
	pb.UnimplementedApiServer
	config.Log
	logs    *pkg.MultiLogHandler
	handler slog.Handler
}

// New attaches a rotating file handler to logs. An empty Path leaves file
// logging off; the HTTP API then lists nothing.
func New(conf config.Log, logs *pkg.MultiLogHandler) (plugin *LogRotatePlugin, err error) {
	plugin = &LogRotatePlugin{Log: conf, logs: logs}
	if conf.Path == "" {
		return
	}
	builder := func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return console.NewHandler(w, &console.HandlerOptions{NoColor: true, Level: pkg.ParseLevel(conf.Level), TimeFormat: timeFormat})
	}
	plugin.handler, err = rotoslog.NewHandler(rotoslog.LogHandlerBuilder(builder), rotoslog.LogDir(conf.Path), rotoslog.MaxFileSize(conf.Size), rotoslog.DateTimeLayout(conf.Formatter), rotoslog.MaxRotatedFiles(conf.MaxFiles))
	if err != nil {
		return nil, err
	}
	logs.Add(plugin.handler)
	return
}

func (plugin *LogRotatePlugin) Close() {
	if plugin.handler != nil {
		plugin.logs.Remove(plugin.handler)
	}
}
