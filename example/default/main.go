package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phsym/console-slog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	camera "m7s.live/camera/v5"
	"m7s.live/camera/v5/pkg"
	"m7s.live/camera/v5/pkg/config"
	plugin_logrotate "m7s.live/camera/v5/plugin/logrotate"
	logpb "m7s.live/camera/v5/plugin/logrotate/pb"
	plugin_record "m7s.live/camera/v5/plugin/record"
	recordpb "m7s.live/camera/v5/plugin/record/pb"
	record "m7s.live/camera/v5/plugin/record/pkg"
	plugin_stream "m7s.live/camera/v5/plugin/stream"
	plugin_virtual "m7s.live/camera/v5/plugin/virtual"
)

type handlerRegistry interface {
	RegisterHandler() map[string]http.HandlerFunc
}

// previewTarget keeps preview frames flowing; clients pull them from
// /api/preview/frame.
type previewTarget struct{}

func (previewTarget) MarkFrameAvailable() {}

func main() {
	confPath := flag.String("c", "config.yaml", "config file")
	flag.Parse()
	var conf config.Engine
	if _, err := config.Load(&conf, *confPath, "CAMERA"); err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logs := pkg.NewMultiLogHandler(pkg.ParseLevel(conf.Log.Level), console.NewHandler(os.Stdout, &console.HandlerOptions{Level: pkg.TraceLevel, TimeFormat: "15:04:05.000"}))
	logger := slog.New(logs)
	slog.SetDefault(logger)
	logRotate, err := plugin_logrotate.New(conf.Log, logs)
	if err != nil {
		logger.Error("log rotate", "error", err)
		os.Exit(1)
	}
	defer logRotate.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = run(ctx, &conf, logger, logRotate); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("exit", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Engine, logger *slog.Logger, logRotate *plugin_logrotate.LogRotatePlugin) error {
	engine, err := plugin_virtual.NewEngine(conf.Virtual, logger)
	if err != nil {
		return err
	}
	opts := []camera.ControllerOption{camera.WithLogger(logger.With("device", conf.Device)), camera.WithPreviewTarget(previewTarget{})}
	var catalog *record.Catalog
	if conf.Catalog.DSN != "" {
		if catalog, err = record.Open(conf.Catalog, logger); err != nil {
			return err
		}
		defer catalog.Close()
		opts = append(opts, camera.WithRecordStore(catalog))
	}
	hub := plugin_stream.NewHub(conf.HTTP, logger, nil)
	controller := camera.NewCaptureController(engine, engine.SourceType(), hub, conf, opts...)

	registry := prometheus.NewRegistry()
	registry.MustRegister(camera.NewCollector(conf.Device, controller), collectors.NewGoCollector())

	mux := http.NewServeMux()
	grpcServer := grpc.NewServer()
	logpb.RegisterApiServer(grpcServer, logRotate)
	plugins := []handlerRegistry{controller, logRotate}
	if catalog != nil {
		recordPlugin := &plugin_record.RecordPlugin{Catalog: catalog}
		recordpb.RegisterApiServer(grpcServer, recordPlugin)
		plugins = append(plugins, recordPlugin)
	}
	for _, plugin := range plugins {
		for pattern, handler := range plugin.RegisterHandler() {
			mux.HandleFunc(pattern, handler)
		}
	}
	mux.Handle("GET /ws/stream", hub)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: conf.HTTP.ListenAddr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(ctx)
	})
	g.Go(func() error {
		logger.Info("http listen", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if conf.HTTP.GRPCAddr != "" {
		lis, err := net.Listen("tcp", conf.HTTP.GRPCAddr)
		if err != nil {
			return err
		}
		g.Go(func() error {
			logger.Info("grpc listen", "addr", conf.HTTP.GRPCAddr)
			return grpcServer.Serve(lis)
		})
	}
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
			grpcServer.GracefulStop()
		}()
		if err := controller.Init(ctx); err != nil {
			return err
		}
		defer controller.Close()
		width, height, err := controller.StartPreview(ctx)
		if err != nil {
			return err
		}
		logger.Info("preview running", "width", width, "height", height)
		<-ctx.Done()
		return ctx.Err()
	})
	return g.Wait()
}
