package plugin_logrotate

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/phsym/console-slog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/util"
	"m7s.live/camera/v5/plugin/logrotate/pb"
)

// RegisterHandler mounts the gateway for List and Get next to the raw tail
// stream.
func (plugin *LogRotatePlugin) RegisterHandler() map[string]http.HandlerFunc {
	gw := runtime.NewServeMux()
	pb.RegisterApiHandlerServer(context.Background(), gw, plugin)
	return map[string]http.HandlerFunc{
		"GET /api/logs":            gw.ServeHTTP,
		"GET /api/logs/{fileName}": gw.ServeHTTP,
		"GET /api/logs/tail":       plugin.tail,
	}
}

func (plugin *LogRotatePlugin) List(context.Context, *emptypb.Empty) (*pb.ResponseFileInfo, error) {
	res := &pb.ResponseFileInfo{}
	if plugin.Path == "" {
		return res, nil
	}
	entries, err := os.ReadDir(plugin.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	for _, entry := range entries {
		if info, err := entry.Info(); err == nil && info.Mode().IsRegular() {
			res.Files = append(res.Files, &pb.FileInfo{Name: info.Name(), Size: info.Size()})
		}
	}
	return res, nil
}

func (plugin *LogRotatePlugin) Get(_ context.Context, req *pb.RequestFileInfo) (*pb.ResponseOpen, error) {
	name := req.FileName
	if name == "" || name != filepath.Base(name) || name == ".." {
		return nil, status.Errorf(codes.InvalidArgument, "bad file name %q", name)
	}
	if plugin.Path == "" {
		return nil, status.Error(codes.NotFound, "file logging is off")
	}
	content, err := os.ReadFile(filepath.Join(plugin.Path, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, status.Errorf(codes.NotFound, "%s not found", name)
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &pb.ResponseOpen{Content: string(content)}, nil
}

// tail streams every record logged from now on as server-sent events. The
// first event, "open", carries the level the stream was opened with.
func (plugin *LogRotatePlugin) tail(w http.ResponseWriter, r *http.Request) {
	writer := util.NewSSE(w, r.Context())
	level := pkg.ParseLevel(plugin.Level)
	if err := writer.WriteEvent("open", []byte(level.String())); err != nil {
		return
	}
	h := console.NewHandler(writer, &console.HandlerOptions{NoColor: true, Level: level, TimeFormat: timeFormat})
	plugin.logs.Add(h)
	defer plugin.logs.Remove(h)
	<-r.Context().Done()
}
