package plugin_record

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	camera "m7s.live/camera/v5"
	"m7s.live/camera/v5/pkg/config"
	"m7s.live/camera/v5/plugin/record/pb"
	record "m7s.live/camera/v5/plugin/record/pkg"
)

func openCatalog(t *testing.T) *record.Catalog {
	t.Helper()
	catalog, err := record.Open(config.Catalog{DBType: "sqlite", DSN: filepath.Join(t.TempDir(), "catalog.db")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func saveClip(t *testing.T, catalog *record.Catalog, start time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("not really mp4"), 0644); err != nil {
		t.Fatal(err)
	}
	err := catalog.SaveRecording(context.Background(), &camera.RecordingInfo{
		Path:      path,
		StartTime: start,
		EndTime:   start.Add(time.Minute),
		Duration:  time.Minute,
		Codec:     "H264",
	})
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func newServer(t *testing.T) (*httptest.Server, *record.Catalog) {
	t.Helper()
	catalog := openCatalog(t)
	mux := http.NewServeMux()
	for pattern, handler := range (&RecordPlugin{Catalog: catalog}).RegisterHandler() {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, catalog
}

func TestListAndDownload(t *testing.T) {
	server, catalog := newServer(t)
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	path := saveClip(t, catalog, start)

	res, err := http.Get(server.URL + "/api/recordings?range=2024-05-01T09:00:00~11:00:00")
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	var list pb.ResponseList
	if err = protojson.Unmarshal(body, &list); err != nil {
		t.Fatalf("%s: %v", body, err)
	}
	if len(list.Data) != 1 || list.Data[0].FilePath != path {
		t.Fatalf("recordings = %v", list.Data)
	}
	file := list.Data[0]
	if file.DurationMs != 60000 || file.VideoCodec != "H264" || !file.StartTime.AsTime().Equal(start) {
		t.Errorf("recording = %v", file)
	}
	id := strconv.FormatUint(uint64(file.Id), 10)

	res, err = http.Get(server.URL + "/api/recordings/" + id)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	var got pb.RecordFile
	if err = protojson.Unmarshal(body, &got); err != nil || got.FilePath != path {
		t.Errorf("get = %s, %v", body, err)
	}

	res, err = http.Get(server.URL + "/download/" + id)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || res.ContentLength != int64(len("not really mp4")) {
		t.Errorf("download status=%d length=%d", res.StatusCode, res.ContentLength)
	}

	res, err = http.Get(server.URL + "/api/recordings/" + id + "/probe")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("probe of a broken file: %d", res.StatusCode)
	}
}

func TestBadRequests(t *testing.T) {
	server, _ := newServer(t)
	for url, want := range map[string]int{
		"/api/recordings?range=yesterday": http.StatusBadRequest,
		"/api/recordings?range=xx~yy":     http.StatusBadRequest,
		"/api/recordings":                 http.StatusOK,
		"/api/recordings/42":              http.StatusNotFound,
		"/api/recordings/abc":             http.StatusBadRequest,
		"/download/42":                    http.StatusNotFound,
		"/download/abc":                   http.StatusBadRequest,
	} {
		res, err := http.Get(server.URL + url)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
		if res.StatusCode != want {
			t.Errorf("%s: status %d, want %d", url, res.StatusCode, want)
		}
	}
}

func TestGRPC(t *testing.T) {
	catalog := openCatalog(t)
	start := time.Now().Add(-time.Hour).Truncate(time.Second)
	path := saveClip(t, catalog, start)

	lis := bufconn.Listen(1 << 16)
	server := grpc.NewServer()
	pb.RegisterApiServer(server, &RecordPlugin{Catalog: catalog})
	go server.Serve(lis)
	defer server.Stop()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	client := pb.NewApiClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := client.List(ctx, &pb.ReqRecordList{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.GetData()) != 1 || list.GetData()[0].GetFilePath() != path {
		t.Fatalf("recordings = %v", list.GetData())
	}
	file, err := client.Get(ctx, &pb.ReqRecordGet{Id: list.GetData()[0].GetId()})
	if err != nil {
		t.Fatal(err)
	}
	if !file.GetEndTime().AsTime().Equal(start.Add(time.Minute)) {
		t.Errorf("end time = %v", file.GetEndTime().AsTime())
	}
	if _, err = client.Get(ctx, &pb.ReqRecordGet{Id: 4242}); status.Code(err) != codes.NotFound {
		t.Errorf("missing recording: %v", err)
	}
	if _, err = client.List(ctx, &pb.ReqRecordList{Range: "yesterday"}); status.Code(err) != codes.InvalidArgument {
		t.Errorf("bad range: %v", err)
	}
}
