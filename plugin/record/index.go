package plugin_record

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
	"gorm.io/gorm"
	"m7s.live/camera/v5/pkg/util"
	mp4 "m7s.live/camera/v5/plugin/mp4/pkg"
	"m7s.live/camera/v5/plugin/record/pb"
	record "m7s.live/camera/v5/plugin/record/pkg"
)

// RecordPlugin exposes the recording catalog over gRPC and its HTTP gateway.
// File downloads and probes stay plain HTTP.
type RecordPlugin struct {
	pb.UnimplementedApiServer
	Catalog *record.Catalog
}

func (plugin *RecordPlugin) RegisterHandler() map[string]http.HandlerFunc {
	gw := runtime.NewServeMux()
	pb.RegisterApiHandlerServer(context.Background(), gw, plugin)
	return map[string]http.HandlerFunc{
		"GET /api/recordings":            gw.ServeHTTP,
		"GET /api/recordings/{id}":       gw.ServeHTTP,
		"GET /download/{id}":             plugin.download,
		"GET /api/recordings/{id}/probe": plugin.probe,
	}
}

func toRecordFile(stream *record.RecordStream) *pb.RecordFile {
	return &pb.RecordFile{
		Id:         uint32(stream.ID),
		FilePath:   stream.FilePath,
		StartTime:  timestamppb.New(stream.StartTime),
		EndTime:    timestamppb.New(stream.EndTime),
		DurationMs: uint32(stream.Duration.Milliseconds()),
		VideoCodec: stream.VideoCodec,
		AudioCodec: stream.AudioCodec,
		Width:      stream.Width,
		Height:     stream.Height,
		Timed:      stream.Timed,
		Size:       stream.Size,
	}
}

// List answers range=start~end, the last 24 hours by default.
func (plugin *RecordPlugin) List(ctx context.Context, req *pb.ReqRecordList) (*pb.ResponseList, error) {
	endTime := time.Now()
	startTime := endTime.Add(-24 * time.Hour)
	if req.Range != "" {
		var err error
		if startTime, endTime, err = util.ParseTimeRange(req.Range); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	streams, err := plugin.Catalog.List(ctx, startTime, endTime)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	res := &pb.ResponseList{Data: make([]*pb.RecordFile, 0, len(streams))}
	for _, stream := range streams {
		res.Data = append(res.Data, toRecordFile(stream))
	}
	return res, nil
}

func (plugin *RecordPlugin) find(ctx context.Context, id uint) (*record.RecordStream, error) {
	stream, err := plugin.Catalog.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, status.Errorf(codes.NotFound, "recording %d not found", id)
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return stream, nil
}

func (plugin *RecordPlugin) Get(ctx context.Context, req *pb.ReqRecordGet) (*pb.RecordFile, error) {
	stream, err := plugin.find(ctx, uint(req.Id))
	if err != nil {
		return nil, err
	}
	return toRecordFile(stream), nil
}

func (plugin *RecordPlugin) lookup(w http.ResponseWriter, r *http.Request) *record.RecordStream {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	stream, err := plugin.find(r.Context(), uint(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			http.NotFound(w, r)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil
	}
	return stream
}

func (plugin *RecordPlugin) download(w http.ResponseWriter, r *http.Request) {
	stream := plugin.lookup(w, r)
	if stream == nil {
		return
	}
	plugin.Catalog.Info("download", "id", stream.ID, "filePath", stream.FilePath)
	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, stream.FilePath)
}

// probe reads the track layout back from the recorded file.
func (plugin *RecordPlugin) probe(w http.ResponseWriter, r *http.Request) {
	stream := plugin.lookup(w, r)
	if stream == nil {
		return
	}
	info, err := mp4.Probe(stream.FilePath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}
