package plugin_logrotate

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
	"m7s.live/camera/v5/plugin/logrotate/pb"
)

func serve(t *testing.T, plugin *LogRotatePlugin) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range plugin.RegisterHandler() {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getMessage(t *testing.T, url string, msg proto.Message) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode == http.StatusOK {
		if err = protojson.Unmarshal(body, msg); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
	}
	return res.StatusCode
}

func TestListAndGet(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.log"), []byte("hello log"), 0644); err != nil {
		t.Fatal(err)
	}
	plugin := &LogRotatePlugin{Log: config.Log{Path: dir}, logs: pkg.NewMultiLogHandler(slog.LevelInfo)}
	server := serve(t, plugin)

	var files pb.ResponseFileInfo
	if code := getMessage(t, server.URL+"/api/logs", &files); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(files.Files) != 1 || files.Files[0].Name != "old.log" || files.Files[0].Size != 9 {
		t.Fatalf("files = %v", files.Files)
	}

	var open pb.ResponseOpen
	if code := getMessage(t, server.URL+"/api/logs/old.log", &open); code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	if open.Content != "hello log" {
		t.Errorf("content = %q", open.Content)
	}

	if code := getMessage(t, server.URL+"/api/logs/missing.log", &open); code != http.StatusNotFound {
		t.Errorf("missing file status = %d", code)
	}

	_, err := plugin.Get(context.Background(), &pb.RequestFileInfo{FileName: "../old.log"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("parent directory: %v", err)
	}
}

func TestDisabledFileLogging(t *testing.T) {
	plugin, err := New(config.Log{Level: "info"}, pkg.NewMultiLogHandler(slog.LevelInfo))
	if err != nil {
		t.Fatal(err)
	}
	defer plugin.Close()
	server := serve(t, plugin)
	var files pb.ResponseFileInfo
	if code := getMessage(t, server.URL+"/api/logs", &files); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(files.Files) != 0 {
		t.Errorf("files = %v", files.Files)
	}
	var open pb.ResponseOpen
	if code := getMessage(t, server.URL+"/api/logs/any.log", &open); code != http.StatusNotFound {
		t.Errorf("get status = %d", code)
	}
}

func TestGRPC(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.log"), []byte("line"), 0644); err != nil {
		t.Fatal(err)
	}
	plugin := &LogRotatePlugin{Log: config.Log{Path: dir}, logs: pkg.NewMultiLogHandler(slog.LevelInfo)}
	lis := bufconn.Listen(1 << 16)
	server := grpc.NewServer()
	pb.RegisterApiServer(server, plugin)
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

	files, err := client.List(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files.GetFiles()) != 1 || files.GetFiles()[0].GetName() != "a.log" {
		t.Fatalf("files = %v", files.GetFiles())
	}
	open, err := client.Get(ctx, &pb.RequestFileInfo{FileName: "a.log"})
	if err != nil {
		t.Fatal(err)
	}
	if open.GetContent() != "line" {
		t.Errorf("content = %q", open.GetContent())
	}
	if _, err = client.Get(ctx, &pb.RequestFileInfo{FileName: "b.log"}); status.Code(err) != codes.NotFound {
		t.Errorf("missing file: %v", err)
	}
}

func TestTail(t *testing.T) {
	logs := pkg.NewMultiLogHandler(slog.LevelInfo)
	plugin := &LogRotatePlugin{Log: config.Log{Level: "info"}, logs: logs}
	server := serve(t, plugin)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/logs/tail", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	scanner := bufio.NewScanner(res.Body)
	var opening []string
	for len(opening) < 2 && scanner.Scan() {
		opening = append(opening, scanner.Text())
	}
	if len(opening) != 2 || opening[0] != "event: open" || opening[1] != "data: INFO" {
		t.Fatalf("opening event = %q", opening)
	}

	logger := slog.New(logs)
	lines := make(chan string, 1)
	go func() {
		for scanner.Scan() {
			if strings.HasPrefix(scanner.Text(), "data: ") {
				lines <- scanner.Text()
				return
			}
		}
	}()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case line := <-lines:
			if !strings.Contains(line, "recording saved") {
				t.Errorf("line = %q", line)
			}
			return
		case <-tick.C:
			logger.Info("recording saved")
		case <-deadline:
			t.Fatal("no tailed record")
		}
	}
}
