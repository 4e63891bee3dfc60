package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aura-studio/funcapp/config"
	"github.com/aura-studio/funcapp/eventgrid"
	"github.com/aura-studio/funcapp/function"
	"github.com/aura-studio/funcapp/httphost"
	"github.com/aura-studio/funcapp/lambdahost"
	"github.com/aura-studio/funcapp/logging"
	"github.com/aura-studio/funcapp/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	app := function.NewApp()
	if err := eventgrid.Register(app); err != nil {
		logger.WithError(err).Fatal("failed to register triggers")
	}

	fnOpts := []function.Option{function.WithLogger(logger)}
	if cfg.ConfigFile != "" {
		fnOpts = append(fnOpts, function.WithConfigFile(cfg.ConfigFile))
	} else if _, err := function.FindDefaultConfigFile(); err == nil {
		fnOpts = append(fnOpts, function.WithDefaultConfigFile())
	}
	// Environment debug flag wins over the config file.
	if cfg.Debug {
		fnOpts = append(fnOpts, function.WithDebugMode(true))
	}

	var hostOpts []httphost.Option
	if cfg.MetricsEnabled {
		fnOpts = append(fnOpts, function.WithObserver(metrics.New(prometheus.DefaultRegisterer)))
		hostOpts = append(hostOpts, httphost.WithGatherer(prometheus.DefaultGatherer))
	}

	engine := function.NewEngine(app, fnOpts...)
	logger.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"triggers": app.Names(),
	}).Info("function app starting")

	switch cfg.Host {
	case config.HostLambda:
		lambdahost.Serve(engine, cfg.Trigger)
	case config.HostHTTP:
		hostOpts = append(hostOpts,
			httphost.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
			httphost.WithDebugMode(cfg.Debug),
		)

		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			logger.Info("shutting down")
			engine.Stop()
			if err := httphost.Close(); err != nil {
				logger.WithError(err).Error("graceful shutdown failed")
			}
		}()

		if err := httphost.Serve(engine, hostOpts...); err != nil {
			logger.WithError(err).Fatal("http host stopped")
		}
	default:
		logger.Fatalf("unrecognized host: %q", cfg.Host)
	}
}
