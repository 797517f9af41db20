package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/clients/usersapi"
	"github.com/BorisRostovskiy/usertable/internal/handlers/web"
	"github.com/BorisRostovskiy/usertable/internal/log"
	"github.com/BorisRostovskiy/usertable/internal/view"

	httpHealth "github.com/hellofresh/health-go/v5"
	"github.com/namsral/flag"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var version = "dev"

type config struct {
	Handler struct {
		Addr string `yaml:"addr"`
	} `yaml:"handler"`

	API  usersapi.Config `yaml:"api"`
	View view.Config     `yaml:"view"`
}

func mustSetupConfig(configFile string) config {
	var cfg config
	if file, err := os.ReadFile(configFile); err != nil {
		logrus.Fatalf("failed to read configuration file: %s", err)
	} else if err = yaml.Unmarshal(file, &cfg); err != nil {
		logrus.Fatalf("failed to unmarshal configuration: %s", err)
	}
	return cfg
}

func mustSetupHealth(client *usersapi.Client) *httpHealth.Health {
	h, err := httpHealth.New(
		httpHealth.WithSystemInfo(),
		httpHealth.WithComponent(httpHealth.Component{
			Name:    "User table",
			Version: version,
		}))
	if err != nil {
		logrus.Fatal(err)
	}
	if err = h.Register(httpHealth.Config{
		Name:      "users-api",
		Timeout:   time.Second * 5,
		SkipOnErr: true,
		Check:     client.Ping,
	}); err != nil {
		logrus.Fatal(err)
	}
	return h
}

func setupMetrics() (*view.Metrics, http.Handler) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return view.NewMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func main() {
	var configFile string
	var logLevel string
	var apiURL string

	flags := flag.NewFlagSet("User Table", flag.ContinueOnError)
	flags.StringVar(&logLevel, "log-level", "debug",
		"Log level. Available options: debug, info, warn, error")
	flags.StringVar(&configFile, "config_file", "/etc/userview.yaml", "configuration file")
	flags.StringVar(&apiURL, "api_url", "", "users endpoint, overrides api.base_url")
	flags.SetOutput(io.Discard)
	err := flags.Parse(os.Args[1:])

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Printf("UserTable\n\n")
			fmt.Printf("USAGE\n\n  %s [OPTIONS]\n\n", os.Args[0])
			fmt.Print("OPTIONS\n\n")
			flags.SetOutput(os.Stdout)
			flags.PrintDefaults()
			os.Exit(0)
		} else {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	logger := log.Setup(logLevel)
	cfg := mustSetupConfig(configFile)
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	client, err := usersapi.New(cfg.API, logger)
	if err != nil {
		logrus.Fatal(err)
	}
	metrics, metricsHandler := setupMetrics()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	views := view.NewRegistry(ctx, client, cfg.View, logger, metrics)

	httpSrv := &http.Server{
		Addr:              cfg.Handler.Addr,
		Handler:           web.New(logger, views, client, mustSetupHealth(client), metricsHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logrus.Fatal(serveErr)
		}
	}()
	logger.Printf("======| listen on %s | users api: %s | server version: %s |======\n",
		cfg.Handler.Addr, cfg.API.BaseURL, version)

	gracefulStop := make(chan os.Signal, 2)
	signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

	<-gracefulStop
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(shutdownCtx)
	views.Shutdown()
	logrus.Println("===DONE===")
}
