package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/csrbfs/bfs500/internal/repository"
	"github.com/csrbfs/bfs500/internal/scheduler"
)

var (
	grpcAddr string
	httpAddr string
)

// serveCmd starts the benchmark job scheduler and exposes a gRPC health
// check plus an HTTP status page while it runs, so a long-running benchmark
// sweep can be monitored and probed by orchestration tooling.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the benchmark job scheduler with health and status endpoints",
	Long: `Start polling the benchmark job queue and run each job's make_bfs_tree
repetitions, exposing a standard gRPC health check service (used by
orchestrators like Kubernetes) and a minimal HTTP status page showing
scheduler worker utilization.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&grpcAddr, "grpc-addr", ":9090", "Listen address for the gRPC health service")
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "Listen address for the HTTP status page")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	db, err := repository.NewGormDB(&repository.DBConfig{
		Type:     cfg.Database.Type,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repos := repository.NewRepositories(db, cfg.Database.Type)
	defer repos.Close()

	processor := scheduler.NewDefaultJobProcessor(&scheduler.ProcessorConfig{
		Config: cfg,
		Repos:  repos,
		Logger: log,
	})
	sched := scheduler.New(scheduler.FromConfig(&cfg.Scheduler), repos.Job, processor, log)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	grpcServer := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthSrv)

	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	go func() {
		log.Info("gRPC health service listening on %s", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server stopped: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: statusHandler(sched, repos),
	}

	go func() {
		log.Info("HTTP status page listening on %s", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server stopped: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	if err := sched.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down...")
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()

	return nil
}

// statusHandler serves a JSON snapshot of scheduler and database health.
func statusHandler(sched *scheduler.Scheduler, repos *repository.Repositories) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := struct {
			Scheduler scheduler.SchedulerStats `json:"scheduler"`
			DBHealthy bool                     `json:"db_healthy"`
		}{
			Scheduler: sched.Stats(),
			DBHealthy: repos.HealthCheck(ctx) == nil,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})
	return mux
}
