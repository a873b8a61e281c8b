package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ConsoleKit/internal/config"
	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/monitoring"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/server"
	"github.com/GriffinCanCode/ConsoleKit/internal/session"
)

func main() {
	// Flags override the environment
	port := flag.String("port", "", "HTTP listen port")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.Logging.Level
	log, err := logging.New(logCfg)
	if err != nil {
		log = logging.NewDefault()
	}
	defer log.Sync()

	var metrics *monitoring.Metrics
	if cfg.Metrics.Enabled {
		metrics = monitoring.NewMetrics()
	}

	table := proc.NewTable(log)
	sessions := session.NewManager(session.Defaults{
		Shell:      cfg.Console.Shell,
		WorkingDir: cfg.Console.WorkingDir,
		Cols:       cfg.Console.Cols,
		Rows:       cfg.Console.Rows,
	}, table, log, metrics)

	srv := server.New(server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, sessions, table, log, metrics)

	log.Info("consoled starting",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Info("shutting down gracefully")
		if err := srv.Close(); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	case err := <-errChan:
		log.Fatal("server error", zap.Error(err))
	}
}
