package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshp123/gohome-hddtemp/internal/config"
	"github.com/joshp123/gohome-hddtemp/internal/core"
	"github.com/joshp123/gohome-hddtemp/internal/plugins"
	"github.com/joshp123/gohome-hddtemp/internal/router"
	"github.com/joshp123/gohome-hddtemp/internal/server"
)

func main() {
	configPath := flag.String("config", envOrDefault("GOHOME_CONFIG", config.DefaultPath), "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	grpcAddr := envOrDefault("GOHOME_GRPC_ADDR", cfg.Core.GrpcAddr)
	httpAddr := envOrDefault("GOHOME_HTTP_ADDR", cfg.Core.HttpAddr)

	compiled := plugins.Compiled(cfg)
	enabled := config.EnabledPlugins(cfg)
	if err := core.ValidateEnabledPlugins(compiled, enabled, false); err != nil {
		log.Fatalf("plugins: %v", err)
	}
	active := core.FilterPlugins(compiled, enabled, false)
	if err := core.ValidatePlugins(active); err != nil {
		log.Fatalf("plugins: %v", err)
	}
	for _, p := range active {
		if p.Health() != core.HealthHealthy {
			log.Printf("plugin %s %s: %s", p.ID(), p.Health(), p.HealthMessage())
		}
	}

	if err := core.WriteDashboards(cfg.Core.DashboardDir, active); err != nil {
		log.Printf("write dashboards: %v", err)
	}

	grpcServer, err := server.NewGRPCServer(grpcAddr)
	if err != nil {
		log.Fatalf("grpc listen: %v", err)
	}
	router.RegisterPlugins(grpcServer.Server, active)
	core.RegisterRegistryService(grpcServer.Server, core.NewRegistryService(active))

	metricsRegistry := core.MetricsRegistry(active)
	metricsRegistry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gohome_build_info",
		Help: "Build information",
	}, func() float64 { return 1 }))

	httpServer := server.NewHTTPServer(httpAddr, server.NewMux(active, metricsRegistry))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, p := range active {
		runner, ok := p.(core.Runner)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(id string, r core.Runner) {
			defer wg.Done()
			if err := r.Run(ctx); err != nil {
				log.Printf("plugin %s run: %v", id, err)
			}
		}(p.ID(), runner)
	}

	go func() {
		log.Printf("http listening %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	go func() {
		log.Printf("grpc listening %s", grpcAddr)
		if err := grpcServer.Serve(); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.Stop()
	wg.Wait()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
